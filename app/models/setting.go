package models

import (
	"strconv"
	"time"
)

// Setting keys known to the application.
const (
	SettingQuarantineDays = "quarantine_days"
	SettingCompanyName    = "company_name"
)

// DefaultQuarantineDays is the cooling-off period applied after contract
// termination when no explicit setting is stored.
const DefaultQuarantineDays = 30

// Setting is a single key-value application setting.
type Setting struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Key         string    `gorm:"column:setting_key;type:varchar(100);not null;uniqueIndex" json:"key" validate:"required,min=1,max=100"`
	Value       string    `gorm:"type:text;not null" json:"value"`
	Description string    `gorm:"type:varchar(255)" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IntValue parses the setting value as an integer, falling back to def.
func (s *Setting) IntValue(def int) int {
	v, err := strconv.Atoi(s.Value)
	if err != nil {
		return def
	}
	return v
}
