package throttling

import "strconv"

// Defaults applied when a restaurant's settings blob is missing a field or
// carries a value that does not parse.
const (
	DefaultEnabled              = false
	DefaultMaxActiveOrders      = 20
	DefaultMaxOverdueOrders     = 5
	DefaultReleaseActiveOrders  = 15
	DefaultReleaseOverdueOrders = 3
	DefaultMaxHoldMinutes       = 15
	DefaultAllowRushThrottle    = false
)

// Clamping bounds for the numeric settings.
const (
	minOrderThreshold = 1
	maxOrderThreshold = 500
	minHoldMinutes    = 1
	maxHoldMinutes    = 120
)

// Settings keys as stored in the restaurant's settings blob.
const (
	keyEnabled              = "throttle_enabled"
	keyMaxActiveOrders      = "throttle_max_active_orders"
	keyMaxOverdueOrders     = "throttle_max_overdue_orders"
	keyReleaseActiveOrders  = "throttle_release_active_orders"
	keyReleaseOverdueOrders = "throttle_release_overdue_orders"
	keyMaxHoldMinutes       = "throttle_max_hold_minutes"
	keyAllowRushThrottle    = "throttle_allow_rush"
)

// Settings is the typed per-restaurant throttling configuration. It is
// produced only by NewSettingsFromBlob, so values are always clamped and
// cross-validated; nothing deeper in the engine ever re-checks them.
type Settings struct {
	enabled              bool
	maxActiveOrders      int
	maxOverdueOrders     int
	releaseActiveOrders  int
	releaseOverdueOrders int
	maxHoldMinutes       int
	allowRushThrottle    bool
}

// NewSettingsFromBlob coerces an opaque key/value blob into Settings. The
// constructor never fails: missing or malformed values fall back to
// defaults, numeric values are clamped into their valid ranges, and a
// release ceiling that reached its trigger ceiling is lowered to one below
// it so the release condition stays strictly easier than the trigger.
func NewSettingsFromBlob(blob map[string]string) Settings {
	s := Settings{
		enabled:              parseBool(blob, keyEnabled, DefaultEnabled),
		maxActiveOrders:      parseClampedInt(blob, keyMaxActiveOrders, DefaultMaxActiveOrders, minOrderThreshold, maxOrderThreshold),
		maxOverdueOrders:     parseClampedInt(blob, keyMaxOverdueOrders, DefaultMaxOverdueOrders, minOrderThreshold, maxOrderThreshold),
		releaseActiveOrders:  parseClampedInt(blob, keyReleaseActiveOrders, DefaultReleaseActiveOrders, 0, maxOrderThreshold),
		releaseOverdueOrders: parseClampedInt(blob, keyReleaseOverdueOrders, DefaultReleaseOverdueOrders, 0, maxOrderThreshold),
		maxHoldMinutes:       parseClampedInt(blob, keyMaxHoldMinutes, DefaultMaxHoldMinutes, minHoldMinutes, maxHoldMinutes),
		allowRushThrottle:    parseBool(blob, keyAllowRushThrottle, DefaultAllowRushThrottle),
	}

	if s.releaseActiveOrders >= s.maxActiveOrders {
		s.releaseActiveOrders = s.maxActiveOrders - 1
	}
	if s.releaseOverdueOrders >= s.maxOverdueOrders {
		s.releaseOverdueOrders = s.maxOverdueOrders - 1
	}

	return s
}

// Enabled reports whether throttling is active for the restaurant.
func (s Settings) Enabled() bool { return s.enabled }

// MaxActiveOrders is the active-order count that triggers a hold.
func (s Settings) MaxActiveOrders() int { return s.maxActiveOrders }

// MaxOverdueOrders is the overdue-order count that triggers a hold.
func (s Settings) MaxOverdueOrders() int { return s.maxOverdueOrders }

// ReleaseActiveOrders is the active-order ceiling under which held orders
// may be released.
func (s Settings) ReleaseActiveOrders() int { return s.releaseActiveOrders }

// ReleaseOverdueOrders is the overdue-order ceiling under which held orders
// may be released.
func (s Settings) ReleaseOverdueOrders() int { return s.releaseOverdueOrders }

// MaxHoldMinutes is the safety-valve timeout after which a held order is
// released regardless of load.
func (s Settings) MaxHoldMinutes() int { return s.maxHoldMinutes }

// AllowRushThrottle reports whether rush orders lose their hold exemption.
func (s Settings) AllowRushThrottle() bool { return s.allowRushThrottle }

func parseBool(blob map[string]string, key string, fallback bool) bool {
	raw, ok := blob[key]
	if !ok {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}

func parseClampedInt(blob map[string]string, key string, fallback, minValue, maxValue int) int {
	v := fallback
	if raw, ok := blob[key]; ok {
		parsed, err := strconv.Atoi(raw)
		if err == nil {
			v = parsed
		}
	}
	if v < minValue {
		return minValue
	}
	if v > maxValue {
		return maxValue
	}
	return v
}
