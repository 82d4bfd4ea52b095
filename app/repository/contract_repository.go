package repository

import (
	"gorm.io/gorm"

	"github.com/FirdavsToshev/NumVault/app/models"
)

// contractRepository implements the ContractRepository interface
type contractRepository struct {
	db *gorm.DB
}

// NewContractRepository creates a new contract repository instance
func NewContractRepository(db *gorm.DB) ContractRepository {
	return &contractRepository{db: db}
}

// GetByID retrieves a contract with its number and subscriber preloaded
func (r *contractRepository) GetByID(id uint) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.Preload("PhoneNumber").Preload("Subscriber").First(&contract, id).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

// List returns all contracts joined with their number and subscriber
// summaries, newest start date first.
func (r *contractRepository) List() ([]models.Contract, error) {
	var contracts []models.Contract
	err := r.db.Preload("PhoneNumber").Preload("Subscriber").
		Order("start_date DESC").
		Find(&contracts).Error
	return contracts, err
}
