package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/FirdavsToshev/NumVault/app/models"
	"github.com/FirdavsToshev/NumVault/internal/pkg/env"
)

const maxRetries = 5
const retryDelay = 5 * time.Second

var DB *gorm.DB

func SetupDatabase() {
	var err error
	// "user:pass@tcp(127.0.0.1:3306)/dbname?charset=utf8mb4&parseTime=True&loc=Local"
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		env.GetEnv("DB_USER", ""),
		env.GetEnv("DB_PASSWORD", ""),
		env.GetEnv("DB_HOST", "127.0.0.1"),
		env.GetEnv("DB_PORT", "3306"),
		env.GetEnv("DB_NAME", ""),
	)

	for i := 0; i < maxRetries; i++ {
		DB, err = gorm.Open(mysql.New(mysql.Config{
			DSN:                      dsn,
			DefaultStringSize:        256,
			DisableDatetimePrecision: true,
			DontSupportRenameIndex:   true,
			DontSupportRenameColumn:  true,
		}), &gorm.Config{})
		if err == nil {
			AutoMigrate(DB)

			return
		}

		log.Printf("Failed to connect to database (try %d/%d): %v", i+1, maxRetries, err)
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	if err != nil {
		panic(err)
	}
}

// AutoMigrate keeps the schema in sync with the model structs. The SQL
// migrations under migrations/ remain the source of truth for production.
func AutoMigrate(db *gorm.DB) {
	if err := db.AutoMigrate(
		&models.Operator{},
		&models.Category{},
		&models.Subscriber{},
		&models.PhoneNumber{},
		&models.Contract{},
		&models.StatusHistory{},
		&models.Setting{},
		&models.Manager{},
	); err != nil {
		log.Printf("auto migration failed: %v", err)
	}
}

// GetDB returns the global database handle.
func GetDB() *gorm.DB {
	return DB
}

// SetDB overrides the global handle. Used by tests running against sqlite.
func SetDB(db *gorm.DB) {
	DB = db
}
