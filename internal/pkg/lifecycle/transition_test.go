package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FirdavsToshev/NumVault/app/models"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		current string
		event   Event
		want    string
		wantErr bool
	}{
		{"contract on free number", models.NumberStatusFree, EventContractCreated, models.NumberStatusActive, false},
		{"contract on reserved number", models.NumberStatusReserved, EventContractCreated, models.NumberStatusActive, false},
		{"contract on active number", models.NumberStatusActive, EventContractCreated, "", true},
		{"contract on blocked number", models.NumberStatusBlocked, EventContractCreated, "", true},
		{"contract on quarantined number", models.NumberStatusQuarantine, EventContractCreated, "", true},
		{"termination enters quarantine", models.NumberStatusActive, EventContractTerminated, models.NumberStatusQuarantine, false},
		{"contract deletion frees the number", models.NumberStatusActive, EventContractDeleted, models.NumberStatusFree, false},
		{"release from quarantine", models.NumberStatusQuarantine, EventQuarantineReleased, models.NumberStatusFree, false},
		{"release of a free number", models.NumberStatusFree, EventQuarantineReleased, "", true},
		{"release of an active number", models.NumberStatusActive, EventQuarantineReleased, "", true},
		{"unknown event", models.NumberStatusFree, Event("reboot"), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.current, tt.event)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyManual(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		requested string
		wantErr   bool
	}{
		{"free to reserved", models.NumberStatusFree, models.NumberStatusReserved, false},
		{"free to blocked", models.NumberStatusFree, models.NumberStatusBlocked, false},
		{"blocked back to free", models.NumberStatusBlocked, models.NumberStatusFree, false},
		{"quarantine to free", models.NumberStatusQuarantine, models.NumberStatusFree, false},
		{"same status rejected", models.NumberStatusReserved, models.NumberStatusReserved, true},
		{"active only via contract", models.NumberStatusFree, models.NumberStatusActive, true},
		{"unknown status rejected", models.NumberStatusFree, "parked", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyManual(tt.current, tt.requested)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.requested, got)
		})
	}
}

func TestApplyChangeClearsSubscriberWhenLeavingActive(t *testing.T) {
	subID := uint(7)
	n := &models.PhoneNumber{ID: 1, Status: models.NumberStatusActive, SubscriberID: &subID}

	entry := applyChange(n, models.NumberStatusQuarantine, "test")

	assert.Equal(t, models.NumberStatusQuarantine, n.Status)
	assert.Nil(t, n.SubscriberID)
	if assert.NotNil(t, entry.OldStatus) {
		assert.Equal(t, models.NumberStatusActive, *entry.OldStatus)
	}
	assert.Equal(t, models.NumberStatusQuarantine, entry.NewStatus)
}

func TestCreationEntryHasNoOldStatus(t *testing.T) {
	n := &models.PhoneNumber{ID: 4, Status: models.NumberStatusFree}

	entry := creationEntry(n, NoteNumberCreated)

	assert.Nil(t, entry.OldStatus)
	assert.Equal(t, models.NumberStatusFree, entry.NewStatus)
	assert.Equal(t, uint(4), entry.PhoneNumberID)
}
