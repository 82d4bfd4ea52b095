package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/FirdavsToshev/NumVault/app/models"
)

// categoryRepository implements the CategoryRepository interface
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create creates a new category in the database
func (r *categoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// GetByID retrieves a category by its ID
func (r *categoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Update updates an existing category
func (r *categoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

// List returns categories ordered by name with their number counts,
// optionally filtered by a name/code search term.
func (r *categoryRepository) List(search string) ([]CategoryWithCounts, error) {
	query := r.db.Model(&models.Category{}).
		Select(`categories.*,
			(SELECT COUNT(*) FROM phone_numbers pn WHERE pn.category_id = categories.id) AS numbers_count`)

	if s := strings.TrimSpace(search); s != "" {
		pattern := "%" + s + "%"
		query = query.Where("categories.name LIKE ? OR categories.code LIKE ?", pattern, pattern)
	}

	var categories []CategoryWithCounts
	err := query.Order("categories.name ASC").Find(&categories).Error
	return categories, err
}
