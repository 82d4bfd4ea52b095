package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NumberStatusFree       = "free"
	NumberStatusActive     = "active"
	NumberStatusReserved   = "reserved"
	NumberStatusBlocked    = "blocked"
	NumberStatusQuarantine = "quarantine"
)

// PhoneNumber is the aggregate root for status tracking. A number always
// belongs to one operator and one category; it references a subscriber only
// while bound to an active contract.
type PhoneNumber struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	UUID         string      `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	Number       string      `gorm:"type:varchar(32);not null;uniqueIndex" json:"number" validate:"required,min=3,max=32"`
	OperatorID   uint        `gorm:"not null;index" json:"operator_id" validate:"required"`
	CategoryID   uint        `gorm:"not null;index" json:"category_id" validate:"required"`
	Status       string      `gorm:"type:varchar(20);not null;default:'free';index" json:"status" validate:"omitempty,oneof=free active reserved blocked quarantine"`
	SubscriberID *uint       `gorm:"index" json:"subscriber_id"`
	Operator     *Operator   `gorm:"foreignKey:OperatorID;constraint:OnDelete:CASCADE" json:"operator,omitempty"`
	Category     *Category   `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"category,omitempty"`
	Subscriber   *Subscriber `gorm:"foreignKey:SubscriberID;constraint:OnDelete:SET NULL" json:"subscriber,omitempty"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (n *PhoneNumber) Validate() error {
	v := validator.New()

	return v.Struct(n)
}

// BeforeCreate assigns the public identifier and the initial status.
func (n *PhoneNumber) BeforeCreate(tx *gorm.DB) error {
	if n.UUID == "" {
		n.UUID = uuid.New().String()
	}
	if n.Status == "" {
		n.Status = NumberStatusFree
	}
	return nil
}

// IsBindable reports whether a contract may be opened against this number.
func (n *PhoneNumber) IsBindable() bool {
	return n.Status == NumberStatusFree || n.Status == NumberStatusReserved
}

// ValidNumberStatus reports whether s is one of the known status values.
func ValidNumberStatus(s string) bool {
	switch s {
	case NumberStatusFree, NumberStatusActive, NumberStatusReserved, NumberStatusBlocked, NumberStatusQuarantine:
		return true
	}
	return false
}
