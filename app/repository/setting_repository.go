package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/FirdavsToshev/NumVault/app/models"
)

// settingRepository implements the SettingRepository interface
type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new setting repository instance
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

// GetAll returns every stored setting as a key-value map
func (r *settingRepository) GetAll() (map[string]string, error) {
	var settings []models.Setting
	if err := r.db.Find(&settings).Error; err != nil {
		return nil, err
	}
	result := make(map[string]string, len(settings))
	for _, s := range settings {
		result[s.Key] = s.Value
	}
	return result, nil
}

// SetValue creates or updates a single setting
func (r *settingRepository) SetValue(key, value string) error {
	var setting models.Setting
	err := r.db.Where("setting_key = ?", key).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			setting = models.Setting{Key: key, Value: value}
			return r.db.Create(&setting).Error
		}
		return err
	}
	if setting.Value == value {
		return nil
	}
	setting.Value = value
	return r.db.Save(&setting).Error
}

// GetInt parses a setting as an integer, falling back to def when the
// setting is missing or malformed.
func (r *settingRepository) GetInt(key string, def int) int {
	var setting models.Setting
	if err := r.db.Where("setting_key = ?", key).First(&setting).Error; err != nil {
		return def
	}
	return setting.IntValue(def)
}
