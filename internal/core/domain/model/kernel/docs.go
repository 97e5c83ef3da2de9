// Package kernel provides core domain primitives used throughout the
// kitchen domain model.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and
//     comparison capabilities
//
// These primitives are immutable and thread-safe, ensuring domain objects
// built on top of them are always in a valid state.
package kernel
