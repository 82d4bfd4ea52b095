package repository

import (
	"gorm.io/gorm"

	"github.com/FirdavsToshev/NumVault/app/models"
)

// managerRepository implements the ManagerRepository interface
type managerRepository struct {
	db *gorm.DB
}

// NewManagerRepository creates a new manager repository instance
func NewManagerRepository(db *gorm.DB) ManagerRepository {
	return &managerRepository{db: db}
}

// Create creates a new manager in the database
func (r *managerRepository) Create(manager *models.Manager) error {
	return r.db.Create(manager).Error
}

// GetByUsername retrieves a manager by their login name
func (r *managerRepository) GetByUsername(username string) (*models.Manager, error) {
	var manager models.Manager
	err := r.db.Where("username = ?", username).First(&manager).Error
	if err != nil {
		return nil, err
	}
	return &manager, nil
}
