package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in store
// - ErrDuplicate: a uniqueness constraint rejected the write
// - ErrConflict: optimistic version check failed, or write against a terminal state
// - ErrInvalidState: entity in wrong state for requested operation
// - ErrInsufficientBalance: a debit would take a balance negative
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound            = errors.New("not found")
	ErrDuplicate           = errors.New("duplicate")
	ErrConflict            = errors.New("conflict")
	ErrInvalidState        = errors.New("invalid state")
	ErrInsufficientBalance = errors.New("insufficient balance")
)
