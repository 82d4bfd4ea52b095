package repository

import (
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/FirdavsToshev/NumVault/app/models"
)

var nonDigit = regexp.MustCompile(`\D`)

// numberRepository implements the NumberRepository interface
type numberRepository struct {
	db *gorm.DB
}

// NewNumberRepository creates a new phone number repository instance
func NewNumberRepository(db *gorm.DB) NumberRepository {
	return &numberRepository{db: db}
}

// GetByID retrieves a phone number by its ID
func (r *numberRepository) GetByID(id uint) (*models.PhoneNumber, error) {
	var number models.PhoneNumber
	err := r.db.First(&number, id).Error
	if err != nil {
		return nil, err
	}
	return &number, nil
}

// GetByIDWithRelations retrieves a phone number with operator, category and
// subscriber preloaded.
func (r *numberRepository) GetByIDWithRelations(id uint) (*models.PhoneNumber, error) {
	var number models.PhoneNumber
	err := r.db.Preload("Operator").Preload("Category").Preload("Subscriber").First(&number, id).Error
	if err != nil {
		return nil, err
	}
	return &number, nil
}

// GetByNumber retrieves a phone number by its dialable string
func (r *numberRepository) GetByNumber(number string) (*models.PhoneNumber, error) {
	var n models.PhoneNumber
	err := r.db.Where("number = ?", number).First(&n).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Update updates non-status fields of a phone number. Status changes must go
// through the lifecycle service so they are logged.
func (r *numberRepository) Update(number *models.PhoneNumber) error {
	return r.db.Save(number).Error
}

// List returns one page of the inventory, filtered and with relations
// preloaded. The search term matches the dialable string (including a fuzzy
// digits-only variant), the operator name and the subscriber name.
func (r *numberRepository) List(filter NumberFilter) (*NumberPage, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 200 {
		limit = 20
	}

	query := r.db.Model(&models.PhoneNumber{}).
		Joins("LEFT JOIN operators ON operators.id = phone_numbers.operator_id").
		Joins("LEFT JOIN subscribers ON subscribers.id = phone_numbers.subscriber_id")

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		cond := r.db.Where("phone_numbers.number LIKE ?", pattern).
			Or("operators.name LIKE ?", pattern).
			Or("subscribers.name LIKE ?", pattern)

		// Fuzzy digit search only if enough digits provided
		if digits := nonDigit.ReplaceAllString(search, ""); len(digits) > 2 {
			fuzzy := "%" + strings.Join(strings.Split(digits, ""), "%") + "%"
			cond = cond.Or("phone_numbers.number LIKE ?", fuzzy)
		}
		query = query.Where(cond)
	}
	if filter.OperatorID != 0 {
		query = query.Where("phone_numbers.operator_id = ?", filter.OperatorID)
	}
	if filter.CategoryID != 0 {
		query = query.Where("phone_numbers.category_id = ?", filter.CategoryID)
	}
	if filter.Status != "" {
		query = query.Where("phone_numbers.status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var numbers []models.PhoneNumber
	err := query.
		Preload("Operator").Preload("Category").Preload("Subscriber").
		Order("phone_numbers.created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&numbers).Error
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &NumberPage{
		Numbers:    numbers,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

// Count returns the total number of phone numbers
func (r *numberRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.PhoneNumber{}).Count(&count).Error
	return count, err
}

// CountByStatus returns the number of phone numbers in the given status
func (r *numberRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.PhoneNumber{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
