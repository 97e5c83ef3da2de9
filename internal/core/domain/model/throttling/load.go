package throttling

import (
	"time"

	"kitchen/internal/core/domain/model/order"
)

// OverdueAge is the fixed age cutoff after which an active order counts as
// overdue.
const OverdueAge = 25 * time.Minute

// Load is a point-in-time snapshot of a restaurant's kitchen queue.
// Held orders are excluded from the active and overdue counts: they are
// not yet "in" the kitchen queue.
//
// A Load is always computed fresh inside the transaction that consumes it;
// it is never cached between decisions.
type Load struct {
	ActiveOrders  int
	OverdueOrders int
	HeldOrders    int
}

// TriggerReason returns the hold reason the current load justifies, or
// false when the kitchen is under its ceilings. Active overload is checked
// first: it is the coarser, earlier signal.
func TriggerReason(load Load, settings Settings) (order.ThrottleReason, bool) {
	if load.ActiveOrders >= settings.MaxActiveOrders() {
		return order.ThrottleReasonActiveOverload, true
	}
	if load.OverdueOrders >= settings.MaxOverdueOrders() {
		return order.ThrottleReasonOverdueOverload, true
	}
	return order.ThrottleReasonNone, false
}

// Recovered reports whether load has dropped far enough under the release
// ceilings to admit a held order back into the kitchen.
func Recovered(load Load, settings Settings) bool {
	return load.ActiveOrders <= settings.ReleaseActiveOrders() &&
		load.OverdueOrders <= settings.ReleaseOverdueOrders()
}
