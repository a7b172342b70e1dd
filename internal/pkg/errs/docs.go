// Package errs holds the error taxonomy shared by the domain, the use cases and
// the adapters.
//
// Every kind has a sentinel (ErrValueIsRequired, ErrConflict, ...) and a struct
// carrying the offending parameter, built with a New* function with or without a
// cause. The structs unwrap to their sentinel, so callers branch with errors.Is
// and read details with errors.As:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: rejected input
//   - ObjectNotFoundError: lookup misses, including ids of another selling point
//   - ConflictError: a phone or catalog name already taken, or a likely duplicate order
//   - ObjectIsReferencedError: a delete refused because orders still use the record
//   - NotificationFailedError: the customer could not be told; nothing was written
//
// IsTransient separates retryable infrastructure failures from all of the above.
package errs
