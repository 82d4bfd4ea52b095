package repository

import (
	"gorm.io/gorm"

	"github.com/FirdavsToshev/NumVault/app/models"
)

// subscriberRepository implements the SubscriberRepository interface
type subscriberRepository struct {
	db *gorm.DB
}

// NewSubscriberRepository creates a new subscriber repository instance
func NewSubscriberRepository(db *gorm.DB) SubscriberRepository {
	return &subscriberRepository{db: db}
}

// Create creates a new subscriber in the database
func (r *subscriberRepository) Create(subscriber *models.Subscriber) error {
	return r.db.Create(subscriber).Error
}

// GetByID retrieves a subscriber by their ID
func (r *subscriberRepository) GetByID(id uint) (*models.Subscriber, error) {
	var subscriber models.Subscriber
	err := r.db.First(&subscriber, id).Error
	if err != nil {
		return nil, err
	}
	return &subscriber, nil
}

// Update updates an existing subscriber
func (r *subscriberRepository) Update(subscriber *models.Subscriber) error {
	return r.db.Save(subscriber).Error
}

// List returns all subscribers ordered by name
func (r *subscriberRepository) List() ([]models.Subscriber, error) {
	var subscribers []models.Subscriber
	err := r.db.Order("name ASC").Find(&subscribers).Error
	return subscribers, err
}

// Count returns the total number of subscribers
func (r *subscriberRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Subscriber{}).Count(&count).Error
	return count, err
}
