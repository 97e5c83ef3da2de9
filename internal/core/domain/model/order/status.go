package order

import (
	"errors"
	"fmt"
	"strings"

	"kitchen/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel wrapped by InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	pending ──> confirmed ──> preparing ──> ready ──> completed
//	   │            │             │           │
//	   └────────────┴─────────────┴───────────┴──> cancelled
//
// completed and cancelled are terminal. Status is a value object that
// validates transitions and provides string representations for
// persistence and display.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status of a newly placed order.
	StatusPending

	// StatusConfirmed indicates the restaurant has accepted the order.
	StatusConfirmed

	// StatusPreparing indicates the kitchen is working the order.
	StatusPreparing

	// StatusReady indicates every item is out of the kitchen.
	StatusReady

	// StatusCompleted indicates the order was handed off. Terminal.
	StatusCompleted

	// StatusCancelled indicates the order was cancelled. Terminal.
	StatusCancelled
)

// getStatusStrings maps every Status value to its wire/storage string.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusPending:   "pending",
		StatusConfirmed: "confirmed",
		StatusPreparing: "preparing",
		StatusReady:     "ready",
		StatusCompleted: "completed",
		StatusCancelled: "cancelled",
	}
}

// getTransitionTable returns the allowed edges of the status machine.
// Terminal statuses map to empty slices rather than being absent so a
// lookup can distinguish "terminal" from "unknown status".
func getTransitionTable() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:   {StatusConfirmed, StatusCancelled},
		StatusConfirmed: {StatusPreparing, StatusCancelled},
		StatusPreparing: {StatusReady, StatusCancelled},
		StatusReady:     {StatusCompleted, StatusCancelled},
		StatusCompleted: {},
		StatusCancelled: {},
	}
}

// StatusFromString parses a status from its lowercase string form.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status is one of the defined lifecycle values.
func (s Status) Validate() error {
	if _, ok := getTransitionTable()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lowercase name of the status. Implements fmt.Stringer
// and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// NextStatuses returns the statuses reachable from s, in table order.
// Returns an empty slice for terminal or unknown statuses.
func (s Status) NextStatuses() []Status {
	next, ok := getTransitionTable()[s]
	if !ok {
		return []Status{}
	}
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo reports whether the edge s -> next is in the table.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range getTransitionTable()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// InvalidTransitionError rejects a status edge that is not in the
// transition table. The message enumerates the valid next statuses so the
// caller can surface it directly to the user.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the
// rejected edge from -> to.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	next := e.From.NextStatuses()
	if len(next) == 0 {
		return fmt.Sprintf("%s: cannot change status from %s to %s: %s is a final status",
			ErrInvalidTransition, e.From, e.To, e.From)
	}

	names := make([]string, len(next))
	for i, s := range next {
		names[i] = s.String()
	}
	return fmt.Sprintf("%s: cannot change status from %s to %s (valid next statuses: %s)",
		ErrInvalidTransition, e.From, e.To, strings.Join(names, ", "))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
