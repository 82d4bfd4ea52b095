package lifecycle

import "errors"

var (
	// ErrNotFound signals that a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidTransition signals a status change the transition table rejects.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrContractNotActive signals an operation on an already-terminated contract.
	ErrContractNotActive = errors.New("contract is not active")

	// ErrActiveContractExists guards the one-active-contract-per-number rule.
	ErrActiveContractExists = errors.New("phone number already has an active contract")
)
