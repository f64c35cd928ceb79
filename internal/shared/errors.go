package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Catalog errors
	ErrCatalogLoad    = fmt.Errorf("catalog load failed")
	ErrCatalogEmpty   = fmt.Errorf("catalog is empty")
	ErrEntryNotFound  = fmt.Errorf("catalog entry not found")
	ErrServiceTimeout = fmt.Errorf("operation timed out")

	// Roller errors
	ErrExhausted = fmt.Errorf("no unseen items remain")
	ErrNotReady  = fmt.Errorf("roller not ready")

	// Storage errors
	ErrStorage         = fmt.Errorf("storage failure")
	ErrPayloadTooLarge = fmt.Errorf("persisted payload too large")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
