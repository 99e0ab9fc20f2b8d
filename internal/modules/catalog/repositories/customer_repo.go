package repositories

import (
	"errors"

	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepo interface {
	GetOrCreateByPhone(phone string) (*models.Customer, error)
	GetByID(id uuid.UUID) (*models.Customer, error)
	UpdateEmail(id uuid.UUID, email string) error
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepo {
	return &customerRepo{db: db}
}

// GetOrCreateByPhone returns the customer for a phone number, creating
// a guest record on first contact.
func (r *customerRepo) GetOrCreateByPhone(phone string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.Where("phone = ?", phone).First(&customer).Error
	if err == nil {
		return &customer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	customer = models.Customer{Phone: phone, Name: "Invitado"}
	if err := r.db.Create(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) GetByID(id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) UpdateEmail(id uuid.UUID, email string) error {
	return r.db.Model(&models.Customer{}).Where("id = ?", id).Update("email", email).Error
}
