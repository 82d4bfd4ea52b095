package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Operator is a telecom carrier owning a block of numbers, identified by its
// short network code (MNC).
type Operator struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UUID         string    `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	Name         string    `gorm:"type:varchar(150);not null;index" json:"name" validate:"required,min=2,max=150"`
	MNC          string    `gorm:"column:mnc;type:varchar(10);not null;uniqueIndex" json:"mnc" validate:"required,min=1,max=10"`
	Logo         string    `gorm:"type:varchar(255)" json:"logo" validate:"max=255"`
	ContactPhone string    `gorm:"type:varchar(32)" json:"contact_phone" validate:"max=32"`
	ContactEmail string    `gorm:"type:varchar(200)" json:"contact_email" validate:"omitempty,email,max=200"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (o *Operator) Validate() error {
	v := validator.New()

	return v.Struct(o)
}

func (o *Operator) BeforeCreate(tx *gorm.DB) error {
	if o.UUID == "" {
		o.UUID = uuid.New().String()
	}
	return nil
}
