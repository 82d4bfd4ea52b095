package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Manager is an administrative account that may authenticate against the API.
type Manager struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UUID      string    `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	Username  string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"username" validate:"required,min=3,max=100"`
	Password  string    `gorm:"type:varchar(100);not null" json:"-" validate:"required,min=6"`
	Name      string    `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (m *Manager) Validate() error {
	v := validator.New()

	return v.Struct(m)
}

func (m *Manager) BeforeCreate(tx *gorm.DB) error {
	if m.UUID == "" {
		m.UUID = uuid.New().String()
	}
	return nil
}

// CreateManager builds a manager with a hashed password, validated and ready
// to be persisted.
func CreateManager(username, password, name string) (*Manager, error) {
	m := &Manager{
		Username: username,
		Password: password,
		Name:     name,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := m.SetPassword(password); err != nil {
		return nil, err
	}

	return m, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPassword verifies the given password against the stored hash.
func (m *Manager) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(m.Password), []byte(password))

	return err == nil
}

// SetPassword hashes and sets a new password for the manager.
func (m *Manager) SetPassword(password string) error {
	hashed, err := HashPassword(password)
	if err != nil {
		return err
	}
	m.Password = hashed
	return nil
}
