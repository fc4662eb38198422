package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers.
// Grouped by the failure taxonomy: validation, precondition, consistency,
// not-found and external-service classes.
var (
	// Validation errors
	ErrEmptySelection    = errors.New("empty product selection")
	ErrMissingActor      = errors.New("missing actor")
	ErrIncompleteAddress = errors.New("incomplete address")
	ErrDomainValidation  = errors.New("domain validation error")

	// Precondition errors
	ErrIllegalTransition   = errors.New("illegal order status transition")
	ErrWrongActor          = errors.New("actor is not allowed to perform this transition")
	ErrMinWeightNotReached = errors.New("minimum order weight not reached")
	ErrOrderNotReceivable  = errors.New("order has not been received by the owner yet")
	ErrParticipantNotActive = errors.New("participant is not accepted")

	// Consistency errors
	ErrLotMismatch       = errors.New("product references more than one lot within the order")
	ErrLedgerInconsistent = errors.New("ledger aggregates diverge from line items")

	// Not-found errors
	ErrOrderNotFound       = errors.New("order not found")
	ErrOfferNotFound       = errors.New("offer not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrLineItemNotFound    = errors.New("line item not found")
	ErrPickupSlotNotFound  = errors.New("pickup slot not found")
	ErrProductNotFound     = errors.New("product not found")

	// Auth errors
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrEmailConflict        = errors.New("email already registered")

	// Reservation errors
	ErrInsufficientStock = errors.New("insufficient lot stock")

	// External service errors (recoverable, user-surfaced)
	ErrGeocodingFailed   = errors.New("geocoding service failed")
	ErrPaymentFailed     = errors.New("payment service failed")
	ErrCatalogUnavailable = errors.New("catalog service unavailable")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
