// Package errs provides the standardized error types used across the
// dispatch service: missing values, invalid values, out-of-range values,
// and objects that could not be found.
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type carrying the error details
//   - Constructor functions with and without an underlying cause
//   - Error() for the formatted message, Unwrap() returning the sentinel
//
// Callers classify errors with errors.Is against the sentinels, which is
// how the HTTP layer maps domain failures to status codes.
package errs
