package lifecycle

import (
	"fmt"

	"github.com/FirdavsToshev/NumVault/app/models"
)

// Event identifies the operation driving a status change.
type Event string

const (
	EventContractCreated    Event = "contract_created"
	EventContractTerminated Event = "contract_terminated"
	EventContractDeleted    Event = "contract_deleted"
	EventQuarantineReleased Event = "quarantine_released"
)

// Apply resolves the status a number moves to when event fires while the
// number is in current. These are the only transitions with side effects
// beyond the audit log; manual edits go through ApplyManual.
func Apply(current string, event Event) (string, error) {
	switch event {
	case EventContractCreated:
		if current == models.NumberStatusFree || current == models.NumberStatusReserved {
			return models.NumberStatusActive, nil
		}
		return "", fmt.Errorf("%w: cannot open a contract on a %s number", ErrInvalidTransition, current)
	case EventContractTerminated:
		return models.NumberStatusQuarantine, nil
	case EventContractDeleted:
		return models.NumberStatusFree, nil
	case EventQuarantineReleased:
		if current != models.NumberStatusQuarantine {
			return "", fmt.Errorf("%w: number is %s, not quarantined", ErrInvalidTransition, current)
		}
		return models.NumberStatusFree, nil
	}
	return "", fmt.Errorf("%w: unknown event %q", ErrInvalidTransition, event)
}

// ApplyManual validates a direct status edit. Same-status writes are rejected
// so that no empty history rows appear, and active is only reachable through
// CreateContract so the subscriber binding can never desynchronize.
func ApplyManual(current, requested string) (string, error) {
	if !models.ValidNumberStatus(requested) {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, requested)
	}
	if requested == current {
		return "", fmt.Errorf("%w: number is already %s", ErrInvalidTransition, current)
	}
	if requested == models.NumberStatusActive {
		return "", fmt.Errorf("%w: active is only reachable through a contract", ErrInvalidTransition)
	}
	return requested, nil
}

// applyChange mutates the number in memory and returns the history row that
// must be persisted in the same transaction. Callers never write the status
// column directly, so the audit trail cannot be bypassed. Leaving active
// always clears the subscriber binding.
func applyChange(n *models.PhoneNumber, newStatus, notes string) models.StatusHistory {
	old := n.Status
	entry := models.StatusHistory{
		PhoneNumberID: n.ID,
		OldStatus:     &old,
		NewStatus:     newStatus,
		Notes:         notes,
	}
	n.Status = newStatus
	if newStatus != models.NumberStatusActive {
		n.SubscriberID = nil
	}
	return entry
}

// creationEntry is the audit row logged when a number first appears. The old
// status is nil only for this event.
func creationEntry(n *models.PhoneNumber, notes string) models.StatusHistory {
	return models.StatusHistory{
		PhoneNumberID: n.ID,
		OldStatus:     nil,
		NewStatus:     n.Status,
		Notes:         notes,
	}
}
