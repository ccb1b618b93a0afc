package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages.
const (
	// Local store errors
	ErrMsgStoreUnavailable = "local store unavailable"
	ErrMsgRecordNotFound   = "record not found"
	ErrMsgUnknownStore     = "unknown store"
	ErrMsgMissingEntityID  = "record has no id"

	// Queue errors
	ErrMsgMutationNotFound = "pending mutation not found"
	ErrMsgInvalidMutation  = "invalid mutation"

	// Sync errors
	ErrMsgOffline       = "device is offline"
	ErrMsgRemoteFailure = "remote backend error"

	// Validation errors (used for partial matches)
	ErrMsgValidationFailed = "validation failed"
)

// Common domain errors.
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrStoreUnavailable indicates the persistent medium could not be opened
	// or a transaction failed outright. Callers are expected to degrade to
	// online-only behavior rather than crash.
	ErrStoreUnavailable = errors.New(ErrMsgStoreUnavailable)

	// ErrRecordNotFound is returned by point lookups when no record exists for
	// the given id. Absence is a valid outcome, not a store failure.
	ErrRecordNotFound = errors.New(ErrMsgRecordNotFound)

	// ErrUnknownStore is returned when a store name is not one of StoreNames.
	ErrUnknownStore = errors.New(ErrMsgUnknownStore)

	// ErrMissingEntityID is returned when a record payload carries no id.
	ErrMissingEntityID = errors.New(ErrMsgMissingEntityID)

	// ErrMutationNotFound is returned by queue operations targeting an id that
	// is no longer pending.
	ErrMutationNotFound = errors.New(ErrMsgMutationNotFound)

	// ErrInvalidMutation is returned when a mutation is malformed (unknown
	// type, missing entity id, or a nil snapshot on a non-delete).
	ErrInvalidMutation = errors.New(ErrMsgInvalidMutation)

	// ErrOffline is returned when an operation requires connectivity and the
	// externally supplied signal says the device is offline.
	ErrOffline = errors.New(ErrMsgOffline)

	// ErrRemoteFailure wraps replay and download failures from the remote
	// backend collaborator.
	ErrRemoteFailure = errors.New(ErrMsgRemoteFailure)

	// ErrValidationFailed wraps payload validation errors on save.
	ErrValidationFailed = errors.New(ErrMsgValidationFailed)
)
