package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SubscriberTypeIndividual  = "individual"
	SubscriberTypeLegalEntity = "legal_entity"
)

// Subscriber is an individual or organization that may be bound to phone
// numbers via contracts. Passport fields apply to individuals, INN to legal
// entities.
type Subscriber struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UUID             string    `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	Type             string    `gorm:"type:varchar(20);not null;index" json:"type" validate:"required,oneof=individual legal_entity"`
	Name             string    `gorm:"type:varchar(200);not null;index" json:"name" validate:"required,min=2,max=200"`
	PassportSeries   string    `gorm:"type:varchar(10)" json:"passport_series" validate:"max=10"`
	PassportNumber   string    `gorm:"type:varchar(20)" json:"passport_number" validate:"max=20"`
	PassportIssuedBy string    `gorm:"type:varchar(200)" json:"passport_issued_by" validate:"max=200"`
	INN              string    `gorm:"column:inn;type:varchar(20);index" json:"inn" validate:"max=20"`
	ContactPhone     string    `gorm:"type:varchar(32);not null;index" json:"contact_phone" validate:"required,max=32"`
	Address          string    `gorm:"type:text" json:"address" validate:"required"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *Subscriber) Validate() error {
	v := validator.New()

	return v.Struct(s)
}

func (s *Subscriber) BeforeCreate(tx *gorm.DB) error {
	if s.UUID == "" {
		s.UUID = uuid.New().String()
	}
	return nil
}
