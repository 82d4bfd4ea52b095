package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/FirdavsToshev/NumVault/app/models"
	"github.com/FirdavsToshev/NumVault/app/repository"
	"github.com/FirdavsToshev/NumVault/internal/pkg/lifecycle"
)

// QuarantineSweeper periodically releases quarantined numbers back to free
// once the configured cooling-off period has elapsed. The release itself
// goes through the lifecycle service so every transition stays logged; the
// sweeper only owns the timing.
type QuarantineSweeper struct {
	db       *gorm.DB
	svc      *lifecycle.Service
	settings repository.SettingRepository
	cron     *cron.Cron
}

func NewQuarantineSweeper(db *gorm.DB) *QuarantineSweeper {
	return &QuarantineSweeper{
		db:       db,
		svc:      lifecycle.NewService(db),
		settings: repository.NewSettingRepository(db),
		cron:     cron.New(),
	}
}

// Start schedules the hourly sweep.
func (s *QuarantineSweeper) Start() {
	if _, err := s.cron.AddFunc("@hourly", func() {
		released, err := s.Sweep()
		if err != nil {
			log.Printf("quarantine sweep failed: %v", err)
			return
		}
		if released > 0 {
			log.Printf("quarantine sweep released %d numbers", released)
		}
	}); err != nil {
		log.Printf("failed to schedule quarantine sweep: %v", err)
		return
	}
	s.cron.Start()
}

// Stop halts the schedule; a running sweep finishes first.
func (s *QuarantineSweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Sweep releases every quarantined number whose entry into quarantine is
// older than the quarantine_days setting. Returns the number of releases.
func (s *QuarantineSweeper) Sweep() (int, error) {
	days := s.settings.GetInt(models.SettingQuarantineDays, models.DefaultQuarantineDays)
	cutoff := time.Now().AddDate(0, 0, -days)

	var rows []struct {
		PhoneNumberID uint
		LastChange    time.Time
	}
	err := s.db.Model(&models.StatusHistory{}).
		Select("status_histories.phone_number_id AS phone_number_id, MAX(status_histories.created_at) AS last_change").
		Joins("JOIN phone_numbers pn ON pn.id = status_histories.phone_number_id AND pn.status = ?", models.NumberStatusQuarantine).
		Where("status_histories.new_status = ?", models.NumberStatusQuarantine).
		Group("status_histories.phone_number_id").
		Scan(&rows).Error
	if err != nil {
		return 0, err
	}

	released := 0
	for _, row := range rows {
		if !row.LastChange.Before(cutoff) {
			continue
		}
		if err := s.svc.ReleaseQuarantine(row.PhoneNumberID, lifecycle.NoteQuarantineExpired); err != nil {
			// The number may have changed state since the query; skip it.
			log.Printf("failed to release number %d from quarantine: %v", row.PhoneNumberID, err)
			continue
		}
		released++
	}
	return released, nil
}
