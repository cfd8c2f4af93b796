// Package errs provides standardized error types for the orders application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types grouped by the kind of failure:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - ObjectNotFoundError: an object cannot be found
//   - AccessDeniedError: the acting principal lacks a capability
//   - StatusTransitionError: the operation is not legal in the current lifecycle state
//   - ConcurrencyConflictError: a conditional update lost a race
//   - StorageUnavailableError: the backing store failed
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify errors with errors.Is against the sentinels, or with IsValidation
// for the whole input-validation family.
package errs
