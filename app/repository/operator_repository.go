package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/FirdavsToshev/NumVault/app/models"
)

// operatorRepository implements the OperatorRepository interface
type operatorRepository struct {
	db *gorm.DB
}

// NewOperatorRepository creates a new operator repository instance
func NewOperatorRepository(db *gorm.DB) OperatorRepository {
	return &operatorRepository{db: db}
}

// Create creates a new operator in the database
func (r *operatorRepository) Create(operator *models.Operator) error {
	return r.db.Create(operator).Error
}

// GetByID retrieves an operator by its ID
func (r *operatorRepository) GetByID(id uint) (*models.Operator, error) {
	var operator models.Operator
	err := r.db.First(&operator, id).Error
	if err != nil {
		return nil, err
	}
	return &operator, nil
}

// Update updates an existing operator
func (r *operatorRepository) Update(operator *models.Operator) error {
	return r.db.Save(operator).Error
}

// List returns operators ordered by name, each with its total and free
// number counts, optionally filtered by a name/MNC search term.
func (r *operatorRepository) List(search string) ([]OperatorWithCounts, error) {
	query := r.db.Model(&models.Operator{}).
		Select(`operators.*,
			(SELECT COUNT(*) FROM phone_numbers pn WHERE pn.operator_id = operators.id) AS numbers_count,
			(SELECT COUNT(*) FROM phone_numbers pn WHERE pn.operator_id = operators.id AND pn.status = 'free') AS free_numbers_count`)

	if s := strings.TrimSpace(search); s != "" {
		pattern := "%" + s + "%"
		query = query.Where("operators.name LIKE ? OR operators.mnc LIKE ?", pattern, pattern)
	}

	var operators []OperatorWithCounts
	err := query.Order("operators.name ASC").Find(&operators).Error
	return operators, err
}

// Count returns the total number of operators
func (r *operatorRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Operator{}).Count(&count).Error
	return count, err
}
