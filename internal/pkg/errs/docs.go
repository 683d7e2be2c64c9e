// Package errs provides standardized error types for the order service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers two groups of errors:
//   - Generic validation errors (ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError, ObjectNotFoundError, VersionIsInvalidError)
//   - Domain and infrastructure errors specific to order processing
//     (InvalidStateError, InvalidTransitionError, EmptyOrderError,
//     InsufficientInventoryError, InventoryUnavailableError,
//     ConcurrencyConflictError)
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrInvalidState)
//   - A struct type with fields for error details
//   - Constructor functions, with and without cause where a cause makes sense
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is can classify against the sentinel
//
// The distinction between business rejections (InsufficientInventoryError,
// InvalidStateError) and transient infrastructure faults
// (InventoryUnavailableError, ConcurrencyConflictError) drives the retry
// policy in the application layer: business rejections are never retried,
// transient faults get bounded retries before being surfaced.
package errs
