package repository

import (
	"gorm.io/gorm"

	"github.com/FirdavsToshev/NumVault/app/models"
)

// historyRepository implements the HistoryRepository interface
type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new status history repository instance
func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

// ListByNumber returns the audit trail of a phone number, newest first.
func (r *historyRepository) ListByNumber(phoneNumberID uint) ([]models.StatusHistory, error) {
	var history []models.StatusHistory
	err := r.db.Where("phone_number_id = ?", phoneNumberID).
		Order("created_at DESC, id DESC").
		Find(&history).Error
	return history, err
}
