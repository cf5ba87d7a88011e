package domain

import "errors"

var (
	// ErrSoldOut is the normal terminal outcome of a purchase against an
	// empty pool. It is not retried automatically.
	ErrSoldOut = errors.New("no tickets available")

	// ErrAllocationFailed wraps a transient store failure during purchase
	// (lock timeout, deadlock, connection loss). The transaction is rolled
	// back before it surfaces, so retrying is always safe.
	ErrAllocationFailed = errors.New("allocation failed")

	// ErrIngestionFailed means a row in a batch failed to insert; the whole
	// batch was rolled back and the caller may resubmit it.
	ErrIngestionFailed = errors.New("ingestion failed")

	// ErrValidation rejects a malformed ingestion draft before any
	// transaction opens.
	ErrValidation = errors.New("validation failed")

	ErrVendorNotFound   = errors.New("vendor not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrConfigNotFound   = errors.New("configuration not found")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrInvalidID        = errors.New("invalid id")
)
