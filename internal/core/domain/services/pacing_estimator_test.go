package services_test

import (
	"testing"
	"time"

	"kitchen/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestPacingEstimator_Estimate(t *testing.T) {
	now := time.Now()
	estimator := services.NewPacingEstimator()

	metrics := estimator.Estimate([]int64{600, 600, 600, 600, 1200}, now)

	assert.Equal(t, 5, metrics.SampleSize)
	assert.Equal(t, 600, metrics.P50Seconds)
	assert.Equal(t, 720, metrics.P80Seconds)
	assert.Equal(t, 636, metrics.BaselineSeconds)
	assert.Equal(t, services.PacingConfidenceLow, metrics.Confidence)
	assert.Equal(t, now, metrics.GeneratedAt)
}

func TestPacingEstimator_Estimate_NoSamples(t *testing.T) {
	now := time.Now()
	estimator := services.NewPacingEstimator()

	metrics := estimator.Estimate(nil, now)

	assert.Equal(t, 0, metrics.SampleSize)
	assert.Equal(t, 900, metrics.BaselineSeconds)
	assert.Equal(t, 900, metrics.P50Seconds)
	assert.Equal(t, 1200, metrics.P80Seconds)
	assert.Equal(t, services.PacingConfidenceLow, metrics.Confidence)
}

func TestPacingEstimator_Estimate_DiscardsImplausibleSamples(t *testing.T) {
	now := time.Now()
	estimator := services.NewPacingEstimator()

	// zero, negative and >2h samples are dropped; only the 600s survive
	metrics := estimator.Estimate([]int64{0, -30, 7201, 600, 600}, now)

	assert.Equal(t, 2, metrics.SampleSize)
	assert.Equal(t, 600, metrics.P50Seconds)
	assert.Equal(t, 600, metrics.P80Seconds)
	assert.Equal(t, 600, metrics.BaselineSeconds)
}

func TestPacingEstimator_Estimate_AllDiscardedFallsBackToDefault(t *testing.T) {
	estimator := services.NewPacingEstimator()

	metrics := estimator.Estimate([]int64{0, -1, 9000}, time.Now())

	assert.Equal(t, 0, metrics.SampleSize)
	assert.Equal(t, 900, metrics.BaselineSeconds)
	assert.Equal(t, services.PacingConfidenceLow, metrics.Confidence)
}

func TestPacingEstimator_Estimate_BaselineClamps(t *testing.T) {
	estimator := services.NewPacingEstimator()

	fast := estimator.Estimate([]int64{60, 60, 60}, time.Now())
	assert.Equal(t, 300, fast.BaselineSeconds)

	slow := estimator.Estimate([]int64{7000, 7000, 7000}, time.Now())
	assert.Equal(t, 2700, slow.BaselineSeconds)
}

func TestPacingEstimator_Estimate_ConfidenceBoundaries(t *testing.T) {
	estimator := services.NewPacingEstimator()

	makeSamples := func(n int) []int64 {
		out := make([]int64, n)
		for i := range out {
			out[i] = 600
		}
		return out
	}

	assert.Equal(t, services.PacingConfidenceLow, estimator.Estimate(makeSamples(39), time.Now()).Confidence)
	assert.Equal(t, services.PacingConfidenceMedium, estimator.Estimate(makeSamples(40), time.Now()).Confidence)
	assert.Equal(t, services.PacingConfidenceMedium, estimator.Estimate(makeSamples(119), time.Now()).Confidence)
	assert.Equal(t, services.PacingConfidenceHigh, estimator.Estimate(makeSamples(120), time.Now()).Confidence)
}

func TestClampLookbackDays(t *testing.T) {
	assert.Equal(t, 30, services.ClampLookbackDays(0))
	assert.Equal(t, 1, services.ClampLookbackDays(-5))
	assert.Equal(t, 1, services.ClampLookbackDays(1))
	assert.Equal(t, 45, services.ClampLookbackDays(45))
	assert.Equal(t, 90, services.ClampLookbackDays(90))
	assert.Equal(t, 90, services.ClampLookbackDays(91))
}
