package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatusHistory is the append-only audit trail of phone number status
// transitions. Rows are never updated; they are only removed by the cascade
// when the number itself is deleted. OldStatus is nil for the creation event.
type StatusHistory struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UUID          string    `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	PhoneNumberID uint      `gorm:"not null;index" json:"phone_number_id"`
	OldStatus     *string   `gorm:"type:varchar(20)" json:"old_status"`
	NewStatus     string    `gorm:"type:varchar(20);not null" json:"new_status"`
	Notes         string    `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (h *StatusHistory) TableName() string {
	return "status_histories"
}

func (h *StatusHistory) BeforeCreate(tx *gorm.DB) error {
	if h.UUID == "" {
		h.UUID = uuid.New().String()
	}
	return nil
}
