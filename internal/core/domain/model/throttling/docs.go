// Package throttling holds the decision rules of the kitchen admission
// control engine: the per-restaurant Settings value object (built from an
// opaque settings blob, clamped and repaired on every read), the Load
// snapshot, and the pure trigger/recovery predicates over both.
//
// The package is deliberately free of I/O. Reading the blob and counting
// orders belong to the application layer; holding and releasing belong to
// the order aggregate.
package throttling
