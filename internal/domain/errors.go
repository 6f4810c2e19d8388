package domain

import "errors"

// Domain errors. All are detected before any snapshot mutation; the
// surrounding layer decides whether to surface or retry.
var (
	// Validation
	ErrNothingToPay      = errors.New("payment has no amount and no water bill update")
	ErrNegativeAmount    = errors.New("amount must not be negative")
	ErrReferenceRequired = errors.New("payment reference is required for non-cash methods")
	ErrInvalidMethod     = errors.New("unsupported payment method")
	ErrNoAdvance         = errors.New("tenant has no advance balance")
	ErrNothingToSettle   = errors.New("record has no balance due")
	ErrNameRequired      = errors.New("name is required")
	ErrInvalidDate       = errors.New("leaving date cannot precede entry date")
	ErrInvalidMonth      = errors.New("month must be between 1 and 12")

	// Not found
	ErrTenantNotFound = errors.New("tenant not found")
	ErrRecordNotFound = errors.New("monthly record not found")

	// Concurrency: the record changed between read and write. Callers
	// should re-fetch and retry from a fresh snapshot.
	ErrStaleRecord = errors.New("monthly record was modified concurrently")
)
