// Package order implements the Order aggregate: the lifecycle status
// machine, the per-course fire sub-state machine carried by the order's
// items, the NONE/HELD/RELEASED throttle lifecycle, and the append-only
// status history records.
//
// All mutation goes through aggregate methods so that a hold, release, or
// transition is always one consistent multi-entity change; the persistence
// layer writes the whole aggregate in a single transaction.
package order
