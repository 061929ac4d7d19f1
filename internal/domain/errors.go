package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Catalog errors
	ErrMsgCatalogEmpty = "no eligible spirits in catalog"

	// Persistence errors
	ErrMsgPersistenceUnavailable = "pity state persistence unavailable"

	// Pull errors
	ErrMsgInvalidBatchSize = "invalid batch size"

	// Configuration errors
	ErrMsgInvalidConfig = "invalid gacha configuration"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrCatalogEmpty means even the tier fallback found nothing to draw. Configuration error.
	ErrCatalogEmpty = errors.New(ErrMsgCatalogEmpty)

	// ErrPersistenceUnavailable means pity state could not be loaded or confirmed.
	ErrPersistenceUnavailable = errors.New(ErrMsgPersistenceUnavailable)

	// ErrInvalidBatchSize is returned before any draw runs.
	ErrInvalidBatchSize = errors.New(ErrMsgInvalidBatchSize)

	ErrInvalidConfig = errors.New(ErrMsgInvalidConfig)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
