package lifecycle

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/FirdavsToshev/NumVault/app/models"
)

// Default audit notes attached when the caller provides none.
const (
	NoteNumberCreated      = "number created"
	NoteContractCreated    = "contract created"
	NoteContractTerminated = "contract terminated"
	NoteContractDeleted    = "contract deleted"
	NoteSubscriberDeleted  = "subscriber deleted"
	NoteManualChange       = "manual status change"
	NoteQuarantineExpired  = "quarantine period expired"
)

// Service owns every mutation of PhoneNumber.status. Each operation runs as
// one transaction; a failure partway through leaves all tables untouched.
// No retries are performed, storage errors surface to the caller as-is.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateNumber persists a new phone number together with its creation audit
// row.
func (s *Service) CreateNumber(number *models.PhoneNumber) error {
	if err := number.Validate(); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(number).Error; err != nil {
			return err
		}
		entry := creationEntry(number, NoteNumberCreated)
		return tx.Create(&entry).Error
	})
}

// BulkCreateNumbers imports a batch of dialable strings for one operator and
// category. Numbers that already exist are skipped. Returns the count of
// numbers actually created.
func (s *Service) BulkCreateNumbers(numbers []string, operatorID, categoryID uint) (int, error) {
	created := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing []string
		if err := tx.Model(&models.PhoneNumber{}).
			Where("number IN ?", numbers).
			Pluck("number", &existing).Error; err != nil {
			return err
		}
		seen := make(map[string]bool, len(existing))
		for _, n := range existing {
			seen[n] = true
		}

		for _, raw := range numbers {
			if raw == "" || seen[raw] {
				continue
			}
			seen[raw] = true
			number := models.PhoneNumber{
				Number:     raw,
				OperatorID: operatorID,
				CategoryID: categoryID,
				Status:     models.NumberStatusFree,
			}
			if err := tx.Create(&number).Error; err != nil {
				return err
			}
			entry := creationEntry(&number, NoteNumberCreated)
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

// CreateContract opens an active contract binding a subscriber to a number.
// The number row is locked for the duration of the transaction so two
// concurrent calls cannot both bind the same free number.
func (s *Service) CreateContract(phoneNumberID, subscriberID uint, startDate time.Time) (*models.Contract, error) {
	var contract models.Contract
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var number models.PhoneNumber
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&number, phoneNumberID).Error; err != nil {
			return wrapNotFound(err, "phone number", phoneNumberID)
		}
		if err := tx.First(&models.Subscriber{}, subscriberID).Error; err != nil {
			return wrapNotFound(err, "subscriber", subscriberID)
		}

		next, err := Apply(number.Status, EventContractCreated)
		if err != nil {
			return err
		}

		var active int64
		if err := tx.Model(&models.Contract{}).
			Where("phone_number_id = ? AND status = ?", number.ID, models.ContractStatusActive).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return ErrActiveContractExists
		}

		contract = models.Contract{
			PhoneNumberID: number.ID,
			SubscriberID:  subscriberID,
			StartDate:     startDate,
			Status:        models.ContractStatusActive,
		}
		if err := tx.Create(&contract).Error; err != nil {
			return err
		}

		entry := applyChange(&number, next, NoteContractCreated)
		number.SubscriberID = &subscriberID
		if err := tx.Save(&number).Error; err != nil {
			return err
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

// TerminateContract ends an active contract: the contract is marked
// terminated with an end date and the number enters quarantine with its
// subscriber binding cleared. Terminating an already-terminated contract is
// rejected without side effects.
func (s *Service) TerminateContract(contractID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var contract models.Contract
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&contract, contractID).Error; err != nil {
			return wrapNotFound(err, "contract", contractID)
		}
		if !contract.IsActive() {
			return ErrContractNotActive
		}

		var number models.PhoneNumber
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&number, contract.PhoneNumberID).Error; err != nil {
			return wrapNotFound(err, "phone number", contract.PhoneNumberID)
		}

		next, err := Apply(number.Status, EventContractTerminated)
		if err != nil {
			return err
		}

		now := time.Now()
		contract.Status = models.ContractStatusTerminated
		contract.EndDate = &now
		if err := tx.Save(&contract).Error; err != nil {
			return err
		}

		entry := applyChange(&number, next, NoteContractTerminated)
		if err := tx.Save(&number).Error; err != nil {
			return err
		}
		return tx.Create(&entry).Error
	})
}

// DeleteContract removes a contract row entirely and returns the number to
// free. Unlike termination this is a correction path: the number becomes
// available again immediately, with no quarantine.
func (s *Service) DeleteContract(contractID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var contract models.Contract
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&contract, contractID).Error; err != nil {
			return wrapNotFound(err, "contract", contractID)
		}

		var number models.PhoneNumber
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&number, contract.PhoneNumberID).Error; err != nil {
			return wrapNotFound(err, "phone number", contract.PhoneNumberID)
		}

		next, err := Apply(number.Status, EventContractDeleted)
		if err != nil {
			return err
		}

		if err := tx.Delete(&contract).Error; err != nil {
			return err
		}

		entry := applyChange(&number, next, NoteContractDeleted)
		if err := tx.Save(&number).Error; err != nil {
			return err
		}
		return tx.Create(&entry).Error
	})
}

// UpdateNumberStatus performs a manual status edit outside the contract flow.
// The edit still goes through the transition table and is still logged.
func (s *Service) UpdateNumberStatus(phoneNumberID uint, newStatus, notes string) (*models.PhoneNumber, error) {
	if notes == "" {
		notes = NoteManualChange
	}
	var number models.PhoneNumber
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&number, phoneNumberID).Error; err != nil {
			return wrapNotFound(err, "phone number", phoneNumberID)
		}

		next, err := ApplyManual(number.Status, newStatus)
		if err != nil {
			return err
		}

		entry := applyChange(&number, next, notes)
		if err := tx.Save(&number).Error; err != nil {
			return err
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &number, nil
}

// ReleaseQuarantine returns a quarantined number to free. Used by the
// quarantine sweeper once the cooling-off period has elapsed.
func (s *Service) ReleaseQuarantine(phoneNumberID uint, notes string) error {
	if notes == "" {
		notes = NoteQuarantineExpired
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		var number models.PhoneNumber
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&number, phoneNumberID).Error; err != nil {
			return wrapNotFound(err, "phone number", phoneNumberID)
		}

		next, err := Apply(number.Status, EventQuarantineReleased)
		if err != nil {
			return err
		}

		entry := applyChange(&number, next, notes)
		if err := tx.Save(&number).Error; err != nil {
			return err
		}
		return tx.Create(&entry).Error
	})
}

// DeletePhoneNumber removes a number together with its contracts and history
// in one transaction.
func (s *Service) DeletePhoneNumber(phoneNumberID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var number models.PhoneNumber
		if err := tx.First(&number, phoneNumberID).Error; err != nil {
			return wrapNotFound(err, "phone number", phoneNumberID)
		}
		return deleteNumbers(tx, []uint{number.ID})
	})
}

// DeleteOperator removes an operator and cascades onto every number it owns,
// including their contracts and history, as one atomic operation.
func (s *Service) DeleteOperator(operatorID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var operator models.Operator
		if err := tx.First(&operator, operatorID).Error; err != nil {
			return wrapNotFound(err, "operator", operatorID)
		}
		ids, err := numberIDsWhere(tx, "operator_id = ?", operatorID)
		if err != nil {
			return err
		}
		if err := deleteNumbers(tx, ids); err != nil {
			return err
		}
		return tx.Delete(&operator).Error
	})
}

// DeleteCategory removes a category with the same cascade as DeleteOperator.
func (s *Service) DeleteCategory(categoryID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, categoryID).Error; err != nil {
			return wrapNotFound(err, "category", categoryID)
		}
		ids, err := numberIDsWhere(tx, "category_id = ?", categoryID)
		if err != nil {
			return err
		}
		if err := deleteNumbers(tx, ids); err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
}

// DeleteSubscriber removes a subscriber, deletes their contracts and returns
// any numbers still bound to them to free. Without the release step a
// deleted subscriber would leave numbers active with a dangling binding.
func (s *Service) DeleteSubscriber(subscriberID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var subscriber models.Subscriber
		if err := tx.First(&subscriber, subscriberID).Error; err != nil {
			return wrapNotFound(err, "subscriber", subscriberID)
		}

		var bound []models.PhoneNumber
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("subscriber_id = ?", subscriberID).
			Find(&bound).Error; err != nil {
			return err
		}
		for i := range bound {
			entry := applyChange(&bound[i], models.NumberStatusFree, NoteSubscriberDeleted)
			if err := tx.Save(&bound[i]).Error; err != nil {
				return err
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("subscriber_id = ?", subscriberID).Delete(&models.Contract{}).Error; err != nil {
			return err
		}
		return tx.Delete(&subscriber).Error
	})
}

func numberIDsWhere(tx *gorm.DB, query string, args ...interface{}) ([]uint, error) {
	var ids []uint
	err := tx.Model(&models.PhoneNumber{}).Where(query, args...).Pluck("id", &ids).Error
	return ids, err
}

// deleteNumbers removes the given numbers with their dependent contract and
// history rows. Must run inside an open transaction.
func deleteNumbers(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("phone_number_id IN ?", ids).Delete(&models.Contract{}).Error; err != nil {
		return err
	}
	if err := tx.Where("phone_number_id IN ?", ids).Delete(&models.StatusHistory{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.PhoneNumber{}).Error
}

func wrapNotFound(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %d", ErrNotFound, entity, id)
	}
	return err
}
