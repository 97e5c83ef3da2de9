// Package services provides domain services for logic that spans more than
// one aggregate. Currently this is the pacing estimator, which derives an
// auto-fire baseline from historical course durations collected across many
// orders.
package services
