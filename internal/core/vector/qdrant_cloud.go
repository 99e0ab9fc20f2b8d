package vector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// QdrantCloudProvider talks to Qdrant Cloud over its HTTP API.
type QdrantCloudProvider struct {
	apiKey     string
	url        string
	httpClient *http.Client
}

// NewQdrantCloudProvider creates the provider.
// url format: https://xxx-xxx.us-east.aws.cloud.qdrant.io
func NewQdrantCloudProvider(url, apiKey string) (*QdrantCloudProvider, error) {
	if url == "" {
		return nil, fmt.Errorf("Qdrant Cloud URL is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("Qdrant Cloud API key is required")
	}

	return &QdrantCloudProvider{
		apiKey: apiKey,
		url:    url,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

func (p *QdrantCloudProvider) Initialize(ctx context.Context) error {
	// Test connection by listing collections
	return p.doRequest(ctx, "GET", "/collections", nil, nil)
}

func (p *QdrantCloudProvider) CreateCollection(ctx context.Context, name string, vectorSize int) error {
	payload := map[string]interface{}{
		"vectors": map[string]interface{}{
			"size":     vectorSize,
			"distance": "Cosine",
		},
	}
	return p.doRequest(ctx, "PUT", fmt.Sprintf("/collections/%s", name), payload, nil)
}

func (p *QdrantCloudProvider) Upsert(ctx context.Context, collection string, points []Point) error {
	qdrantPoints := make([]map[string]interface{}, len(points))
	for i, point := range points {
		qdrantPoints[i] = map[string]interface{}{
			"id":      point.ID,
			"vector":  point.Vector,
			"payload": point.Payload,
		}
	}

	payload := map[string]interface{}{"points": qdrantPoints}
	return p.doRequest(ctx, "PUT", fmt.Sprintf("/collections/%s/points", collection), payload, nil)
}

func (p *QdrantCloudProvider) Search(ctx context.Context, collection string, query []float32, limit int) ([]SearchResult, error) {
	payload := map[string]interface{}{
		"vector":       query,
		"limit":        limit,
		"with_payload": true,
	}

	var response struct {
		Result []struct {
			ID      string                 `json:"id"`
			Score   float32                `json:"score"`
			Payload map[string]interface{} `json:"payload"`
		} `json:"result"`
	}

	err := p.doRequest(ctx, "POST", fmt.Sprintf("/collections/%s/points/search", collection), payload, &response)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, len(response.Result))
	for i, r := range response.Result {
		results[i] = SearchResult{
			ID:      r.ID,
			Score:   r.Score,
			Payload: r.Payload,
		}
	}
	return results, nil
}

func (p *QdrantCloudProvider) Delete(ctx context.Context, collection string, ids []string) error {
	payload := map[string]interface{}{"points": ids}
	return p.doRequest(ctx, "POST", fmt.Sprintf("/collections/%s/points/delete", collection), payload, nil)
}

func (p *QdrantCloudProvider) GetCollectionInfo(ctx context.Context, collection string) (*CollectionInfo, error) {
	var response struct {
		Result struct {
			Config struct {
				Params struct {
					Vectors struct {
						Size int `json:"size"`
					} `json:"vectors"`
				} `json:"params"`
			} `json:"config"`
			PointsCount int64  `json:"points_count"`
			Status      string `json:"status"`
		} `json:"result"`
	}

	err := p.doRequest(ctx, "GET", fmt.Sprintf("/collections/%s", collection), nil, &response)
	if err != nil {
		return nil, err
	}

	return &CollectionInfo{
		Name:        collection,
		VectorSize:  response.Result.Config.Params.Vectors.Size,
		PointsCount: response.Result.PointsCount,
		Status:      response.Result.Status,
	}, nil
}

func (p *QdrantCloudProvider) Close() error {
	// HTTP client doesn't need explicit closing
	return nil
}

func (p *QdrantCloudProvider) GetProviderType() string {
	return "qdrant_cloud"
}

func (p *QdrantCloudProvider) doRequest(ctx context.Context, method, path string, payload interface{}, result interface{}) error {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.url+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("api-key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, string(respBody))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}
