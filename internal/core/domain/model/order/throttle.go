package order

// ThrottleState is the admission-control lifecycle tag on an order,
// independent of its business status. The machine is NONE -> HELD ->
// RELEASED and is strictly one-way: an order released once can never be
// held again in the same lifecycle.
type ThrottleState int

const (
	// ThrottleNone means the order has never been held.
	ThrottleNone ThrottleState = iota

	// ThrottleHeld means the order is parked off the kitchen display.
	ThrottleHeld

	// ThrottleReleased means the order was held once and let back in. Terminal.
	ThrottleReleased
)

func (s ThrottleState) String() string {
	switch s {
	case ThrottleHeld:
		return "HELD"
	case ThrottleReleased:
		return "RELEASED"
	default:
		return "NONE"
	}
}

// ThrottleStateFromString parses a stored throttle state. Anything
// unrecognized maps to NONE.
func ThrottleStateFromString(s string) ThrottleState {
	switch s {
	case "HELD":
		return ThrottleHeld
	case "RELEASED":
		return ThrottleReleased
	default:
		return ThrottleNone
	}
}

// ThrottleReason records why an order was held.
type ThrottleReason int

const (
	// ThrottleReasonNone is the zero value for orders that were never held.
	ThrottleReasonNone ThrottleReason = iota

	// ThrottleReasonActiveOverload: active order count reached the trigger ceiling.
	ThrottleReasonActiveOverload

	// ThrottleReasonOverdueOverload: overdue order count reached the trigger ceiling.
	ThrottleReasonOverdueOverload

	// ThrottleReasonManualHold: an operator parked the order by hand.
	ThrottleReasonManualHold
)

func (r ThrottleReason) String() string {
	switch r {
	case ThrottleReasonActiveOverload:
		return "ACTIVE_OVERLOAD"
	case ThrottleReasonOverdueOverload:
		return "OVERDUE_OVERLOAD"
	case ThrottleReasonManualHold:
		return "MANUAL_HOLD"
	default:
		return ""
	}
}

// ThrottleReasonFromString parses a stored hold reason. Anything
// unrecognized maps to the zero reason.
func ThrottleReasonFromString(s string) ThrottleReason {
	switch s {
	case "ACTIVE_OVERLOAD":
		return ThrottleReasonActiveOverload
	case "OVERDUE_OVERLOAD":
		return ThrottleReasonOverdueOverload
	case "MANUAL_HOLD":
		return ThrottleReasonManualHold
	default:
		return ThrottleReasonNone
	}
}

// ReleaseReason records why a held order was let back into the kitchen.
type ReleaseReason int

const (
	// ReleaseReasonNone is the zero value for orders that were never released.
	ReleaseReasonNone ReleaseReason = iota

	// ReleaseReasonLoadRecovered: load dropped under the release ceilings
	// (or throttling was turned off and the queue drained).
	ReleaseReasonLoadRecovered

	// ReleaseReasonMaxHoldTimeout: the hold outlived maxHoldMinutes.
	ReleaseReasonMaxHoldTimeout

	// ReleaseReasonManualRelease: an operator released the order by hand.
	ReleaseReasonManualRelease
)

func (r ReleaseReason) String() string {
	switch r {
	case ReleaseReasonLoadRecovered:
		return "LOAD_RECOVERED"
	case ReleaseReasonMaxHoldTimeout:
		return "MAX_HOLD_TIMEOUT"
	case ReleaseReasonManualRelease:
		return "MANUAL_RELEASE"
	default:
		return ""
	}
}

// ReleaseReasonFromString parses a stored release reason. Anything
// unrecognized maps to the zero reason.
func ReleaseReasonFromString(s string) ReleaseReason {
	switch s {
	case "LOAD_RECOVERED":
		return ReleaseReasonLoadRecovered
	case "MAX_HOLD_TIMEOUT":
		return ReleaseReasonMaxHoldTimeout
	case "MANUAL_RELEASE":
		return ReleaseReasonManualRelease
	default:
		return ReleaseReasonNone
	}
}

// ThrottleSource records whether the engine or an operator drove the most
// recent hold or release.
type ThrottleSource int

const (
	// ThrottleSourceAuto marks engine-driven holds and releases.
	ThrottleSourceAuto ThrottleSource = iota

	// ThrottleSourceManual marks operator overrides.
	ThrottleSourceManual
)

func (s ThrottleSource) String() string {
	if s == ThrottleSourceManual {
		return "MANUAL"
	}
	return "AUTO"
}

// ThrottleSourceFromString parses a stored throttle source, defaulting to
// AUTO.
func ThrottleSourceFromString(s string) ThrottleSource {
	if s == "MANUAL" {
		return ThrottleSourceManual
	}
	return ThrottleSourceAuto
}
