package services

import (
	"math"
	"sort"
	"time"
)

// Lookback window bounds for pacing analytics, in days.
const (
	MinLookbackDays     = 1
	MaxLookbackDays     = 90
	DefaultLookbackDays = 30
)

// Sample and baseline bounds, in seconds.
const (
	maxPlausibleSeconds    = 7200
	defaultBaselineSeconds = 900
	defaultP50Seconds      = 900
	defaultP80Seconds      = 1200
	minBaselineSeconds     = 300
	maxBaselineSeconds     = 2700
)

// Confidence thresholds on sample size.
const (
	highConfidenceSamples   = 120
	mediumConfidenceSamples = 40
)

// PacingConfidence grades how much historical data backs a recommendation.
type PacingConfidence string

const (
	PacingConfidenceLow    PacingConfidence = "low"
	PacingConfidenceMedium PacingConfidence = "medium"
	PacingConfidenceHigh   PacingConfidence = "high"
)

// PacingMetrics is the recommendation produced from historical course
// fire-to-complete durations: the suggested auto-fire baseline delay plus
// the percentiles it was derived from.
type PacingMetrics struct {
	SampleSize      int
	BaselineSeconds int
	P50Seconds      int
	P80Seconds      int
	Confidence      PacingConfidence
	GeneratedAt     time.Time
}

// ClampLookbackDays normalizes a requested lookback window: zero means the
// default, everything else is clamped into [MinLookbackDays, MaxLookbackDays].
func ClampLookbackDays(days int) int {
	if days == 0 {
		return DefaultLookbackDays
	}
	if days < MinLookbackDays {
		return MinLookbackDays
	}
	if days > MaxLookbackDays {
		return MaxLookbackDays
	}
	return days
}

// PacingEstimator turns raw fire-to-complete durations into a pacing
// recommendation. It is a pure domain service: callers collect the samples,
// the estimator only does the math, and it never fails — with no usable
// samples it degrades to a fixed low-confidence default.
type PacingEstimator struct{}

// NewPacingEstimator creates a PacingEstimator.
func NewPacingEstimator() PacingEstimator {
	return PacingEstimator{}
}

// Estimate computes pacing metrics from whole-second durations.
// Non-positive and implausible (> 2h) samples are discarded. With zero
// usable samples the fixed default is returned. Otherwise p50 and p80 come
// from linear-interpolation percentiles and the baseline is their weighted
// blend, clamped into [minBaselineSeconds, maxBaselineSeconds].
func (PacingEstimator) Estimate(durationsSeconds []int64, generatedAt time.Time) PacingMetrics {
	samples := make([]int64, 0, len(durationsSeconds))
	for _, d := range durationsSeconds {
		if d > 0 && d <= maxPlausibleSeconds {
			samples = append(samples, d)
		}
	}

	if len(samples) == 0 {
		return PacingMetrics{
			SampleSize:      0,
			BaselineSeconds: defaultBaselineSeconds,
			P50Seconds:      defaultP50Seconds,
			P80Seconds:      defaultP80Seconds,
			Confidence:      PacingConfidenceLow,
			GeneratedAt:     generatedAt,
		}
	}

	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })

	p50 := percentile(samples, 0.5)
	p80 := percentile(samples, 0.8)

	baseline := int(math.Round(p50*0.7 + p80*0.3))
	if baseline < minBaselineSeconds {
		baseline = minBaselineSeconds
	}
	if baseline > maxBaselineSeconds {
		baseline = maxBaselineSeconds
	}

	return PacingMetrics{
		SampleSize:      len(samples),
		BaselineSeconds: baseline,
		P50Seconds:      int(math.Round(p50)),
		P80Seconds:      int(math.Round(p80)),
		Confidence:      confidenceFor(len(samples)),
		GeneratedAt:     generatedAt,
	}
}

// percentile computes a linear-interpolation percentile over an ascending
// slice: index = (n-1)*p, interpolated between the floor and ceil samples.
func percentile(sorted []int64, p float64) float64 {
	idx := float64(len(sorted)-1) * p
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo == hi {
		return float64(sorted[lo])
	}
	frac := idx - float64(lo)
	return float64(sorted[lo]) + frac*float64(sorted[hi]-sorted[lo])
}

func confidenceFor(sampleSize int) PacingConfidence {
	switch {
	case sampleSize >= highConfidenceSamples:
		return PacingConfidenceHigh
	case sampleSize >= mediumConfidenceSamples:
		return PacingConfidenceMedium
	default:
		return PacingConfidenceLow
	}
}
