package export

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Report is a multi-section tabular document, one section per
// interest kind (productos, categorías, promociones).
type Report struct {
	Title       string
	GeneratedAt time.Time
	Sections    []Section
}

// Section is one titled table inside a report.
type Section struct {
	Heading string
	Headers []string
	Rows    [][]string
}

// PDFExporter renders reports with gofpdf.
type PDFExporter struct {
	orientation string
	pageSize    string
	fontSize    float64
}

// NewPDFExporter creates an A4 portrait exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{
		orientation: "P",
		pageSize:    "A4",
		fontSize:    10,
	}
}

// Export writes the report as a PDF.
func (p *PDFExporter) Export(report *Report, writer io.Writer) error {
	pdf := gofpdf.New(p.orientation, "mm", p.pageSize, "")
	// Arial core font is latin-1 only; translate accented Spanish text
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	if report.Title != "" {
		pdf.SetFont("Arial", "B", 16)
		pdf.Cell(0, 10, tr(report.Title))
		pdf.Ln(12)
	}

	if !report.GeneratedAt.IsZero() {
		pdf.SetFont("Arial", "I", 8)
		pdf.Cell(0, 5, tr(fmt.Sprintf("Generado: %s", report.GeneratedAt.Format("2006-01-02 15:04:05"))))
		pdf.Ln(10)
	}

	pageWidth, _ := pdf.GetPageSize()
	leftMargin, _, rightMargin, _ := pdf.GetMargins()
	usableWidth := pageWidth - leftMargin - rightMargin

	for _, section := range report.Sections {
		if len(section.Headers) == 0 {
			return fmt.Errorf("section %q has no headers", section.Heading)
		}
		colWidth := usableWidth / float64(len(section.Headers))

		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, tr(section.Heading))
		pdf.Ln(9)

		p.drawHeader(pdf, tr, section.Headers, colWidth)

		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Arial", "", p.fontSize)
		for _, row := range section.Rows {
			for _, value := range row {
				pdf.CellFormat(colWidth, 6, tr(value), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)

			// Near bottom of an A4 page
			if pdf.GetY() > 270 {
				pdf.AddPage()
				p.drawHeader(pdf, tr, section.Headers, colWidth)
				pdf.SetTextColor(0, 0, 0)
				pdf.SetFont("Arial", "", p.fontSize)
			}
		}
		pdf.Ln(6)
	}

	if err := pdf.Output(writer); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// GetContentType returns the MIME type for PDF files
func (p *PDFExporter) GetContentType() string {
	return "application/pdf"
}

// GetFileExtension returns the file extension for PDF files
func (p *PDFExporter) GetFileExtension() string {
	return ".pdf"
}

func (p *PDFExporter) drawHeader(pdf *gofpdf.Fpdf, tr func(string) string, headers []string, colWidth float64) {
	pdf.SetFont("Arial", "B", p.fontSize)
	pdf.SetFillColor(52, 73, 94)
	pdf.SetTextColor(255, 255, 255)
	for _, header := range headers {
		pdf.CellFormat(colWidth, 7, tr(header), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}
