package scheduler

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/FirdavsToshev/NumVault/app/models"
	"github.com/FirdavsToshev/NumVault/internal/pkg/database"
	"github.com/FirdavsToshev/NumVault/internal/pkg/lifecycle"
)

func newSweeperTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// sqlite has no row locks; drop the FOR UPDATE clause so the
	// lifecycle service runs unchanged.
	db.ClauseBuilders["FOR"] = func(c clause.Clause, builder clause.Builder) {}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.AutoMigrate(db)
	return db
}

// quarantinedNumber creates a number, binds it and terminates the contract,
// leaving the number quarantined with a history row entered at enteredAt.
func quarantinedNumber(t *testing.T, db *gorm.DB, svc *lifecycle.Service, dialable string, operatorID, categoryID, subscriberID uint, enteredAt time.Time) *models.PhoneNumber {
	t.Helper()

	number := &models.PhoneNumber{Number: dialable, OperatorID: operatorID, CategoryID: categoryID}
	require.NoError(t, svc.CreateNumber(number))

	contract, err := svc.CreateContract(number.ID, subscriberID, time.Now())
	require.NoError(t, err)
	require.NoError(t, svc.TerminateContract(contract.ID))

	require.NoError(t, db.Model(&models.StatusHistory{}).
		Where("phone_number_id = ? AND new_status = ?", number.ID, models.NumberStatusQuarantine).
		Update("created_at", enteredAt).Error)
	return number
}

func TestSweepReleasesExpiredQuarantine(t *testing.T) {
	db := newSweeperTestDB(t)
	svc := lifecycle.NewService(db)

	operator := models.Operator{Name: "Tcell", MNC: "03"}
	category := models.Category{Name: "Gold", Code: "gold", SurchargeType: models.SurchargeTypeFixed}
	subscriber := models.Subscriber{Type: models.SubscriberTypeIndividual, Name: "Ivanov Ivan", ContactPhone: "+992900000001", Address: "Dushanbe"}
	require.NoError(t, db.Create(&operator).Error)
	require.NoError(t, db.Create(&category).Error)
	require.NoError(t, db.Create(&subscriber).Error)

	expired := quarantinedNumber(t, db, svc, "+992900111111", operator.ID, category.ID, subscriber.ID,
		time.Now().AddDate(0, 0, -models.DefaultQuarantineDays-1))
	fresh := quarantinedNumber(t, db, svc, "+992900222222", operator.ID, category.ID, subscriber.ID,
		time.Now().AddDate(0, 0, -1))

	sweeper := NewQuarantineSweeper(db)
	released, err := sweeper.Sweep()
	require.NoError(t, err)
	assert.Equal(t, 1, released)

	var got models.PhoneNumber
	require.NoError(t, db.First(&got, expired.ID).Error)
	assert.Equal(t, models.NumberStatusFree, got.Status)

	require.NoError(t, db.First(&got, fresh.ID).Error)
	assert.Equal(t, models.NumberStatusQuarantine, got.Status)

	// The release is logged like every other transition.
	var entry models.StatusHistory
	require.NoError(t, db.Where("phone_number_id = ?", expired.ID).Order("id DESC").First(&entry).Error)
	assert.Equal(t, models.NumberStatusFree, entry.NewStatus)
	assert.Equal(t, lifecycle.NoteQuarantineExpired, entry.Notes)
}

func TestSweepHonorsConfiguredPeriod(t *testing.T) {
	db := newSweeperTestDB(t)
	svc := lifecycle.NewService(db)

	operator := models.Operator{Name: "Tcell", MNC: "03"}
	category := models.Category{Name: "Gold", Code: "gold", SurchargeType: models.SurchargeTypeFixed}
	subscriber := models.Subscriber{Type: models.SubscriberTypeIndividual, Name: "Ivanov Ivan", ContactPhone: "+992900000001", Address: "Dushanbe"}
	require.NoError(t, db.Create(&operator).Error)
	require.NoError(t, db.Create(&category).Error)
	require.NoError(t, db.Create(&subscriber).Error)

	require.NoError(t, db.Create(&models.Setting{Key: models.SettingQuarantineDays, Value: "5"}).Error)

	number := quarantinedNumber(t, db, svc, "+992900333333", operator.ID, category.ID, subscriber.ID,
		time.Now().AddDate(0, 0, -6))

	sweeper := NewQuarantineSweeper(db)
	released, err := sweeper.Sweep()
	require.NoError(t, err)
	assert.Equal(t, 1, released)

	var got models.PhoneNumber
	require.NoError(t, db.First(&got, number.ID).Error)
	assert.Equal(t, models.NumberStatusFree, got.Status)
}

func TestSweepIgnoresNumbersNoLongerQuarantined(t *testing.T) {
	db := newSweeperTestDB(t)
	svc := lifecycle.NewService(db)

	operator := models.Operator{Name: "Tcell", MNC: "03"}
	category := models.Category{Name: "Gold", Code: "gold", SurchargeType: models.SurchargeTypeFixed}
	subscriber := models.Subscriber{Type: models.SubscriberTypeIndividual, Name: "Ivanov Ivan", ContactPhone: "+992900000001", Address: "Dushanbe"}
	require.NoError(t, db.Create(&operator).Error)
	require.NoError(t, db.Create(&category).Error)
	require.NoError(t, db.Create(&subscriber).Error)

	number := quarantinedNumber(t, db, svc, "+992900444444", operator.ID, category.ID, subscriber.ID,
		time.Now().AddDate(0, 0, -models.DefaultQuarantineDays-1))

	// A manual edit moved the number on before the sweep ran.
	_, err := svc.UpdateNumberStatus(number.ID, models.NumberStatusBlocked, "fraud complaint")
	require.NoError(t, err)

	sweeper := NewQuarantineSweeper(db)
	released, err := sweeper.Sweep()
	require.NoError(t, err)
	assert.Zero(t, released)

	var got models.PhoneNumber
	require.NoError(t, db.First(&got, number.ID).Error)
	assert.Equal(t, models.NumberStatusBlocked, got.Status)
}
