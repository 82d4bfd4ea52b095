package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ContractStatusActive     = "active"
	ContractStatusTerminated = "terminated"
)

// Contract records a subscriber's right to use a phone number for a period.
// It drives the number's status transitions but does not own its lifecycle.
type Contract struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	UUID          string       `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	PhoneNumberID uint         `gorm:"not null;index" json:"phone_number_id" validate:"required"`
	SubscriberID  uint         `gorm:"not null;index" json:"subscriber_id" validate:"required"`
	StartDate     time.Time    `gorm:"not null;index" json:"start_date"`
	EndDate       *time.Time   `json:"end_date"`
	DocumentURL   string       `gorm:"type:varchar(255)" json:"document_url" validate:"max=255"`
	Status        string       `gorm:"type:varchar(20);not null;default:'active';index" json:"status" validate:"oneof=active terminated"`
	PhoneNumber   *PhoneNumber `gorm:"foreignKey:PhoneNumberID;constraint:OnDelete:CASCADE" json:"phone_number,omitempty"`
	Subscriber    *Subscriber  `gorm:"foreignKey:SubscriberID;constraint:OnDelete:CASCADE" json:"subscriber,omitempty"`
	CreatedAt     time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Contract) Validate() error {
	v := validator.New()

	return v.Struct(c)
}

func (c *Contract) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == "" {
		c.UUID = uuid.New().String()
	}
	if c.Status == "" {
		c.Status = ContractStatusActive
	}
	return nil
}

// IsActive reports whether the contract is still in force.
func (c *Contract) IsActive() bool {
	return c.Status == ContractStatusActive
}
