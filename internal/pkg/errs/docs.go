// Package errs provides standardized error types for the kitchen backend.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() for errors.Is support
//
// Expected "nothing to do" outcomes (an order already held, already
// terminal) are not modeled here; those paths return booleans from their
// operations and only unexpected failures become errors.
package errs
