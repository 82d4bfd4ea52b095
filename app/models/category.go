package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SurchargeTypeFixed   = "fixed"
	SurchargeTypePercent = "percent"
)

// Category is a pricing/desirability tier (e.g. platinum, gold) applied to a
// phone number, carrying a surcharge.
type Category struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UUID          string    `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	Name          string    `gorm:"type:varchar(150);not null;index" json:"name" validate:"required,min=2,max=150"`
	Code          string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"code" validate:"required,min=2,max=50"`
	Surcharge     float64   `gorm:"not null;default:0" json:"surcharge" validate:"gte=0"`
	SurchargeType string    `gorm:"type:varchar(20);not null;default:'fixed'" json:"surcharge_type" validate:"oneof=fixed percent"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Category) Validate() error {
	v := validator.New()

	return v.Struct(c)
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == "" {
		c.UUID = uuid.New().String()
	}
	if c.SurchargeType == "" {
		c.SurchargeType = SurchargeTypeFixed
	}
	return nil
}
