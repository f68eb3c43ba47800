// SPDX-License-Identifier: GPL-3.0-only

package phase_test

import (
	"math"
	"testing"

	"github.com/shini4i/fan-delays/internal/phase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelay(t *testing.T) {
	tests := []struct {
		name        string
		alpha       float64
		halfCycleUs float64
		limits      phase.Limits
		expected    int
	}{
		{
			name:        "zero angle is clamped up to the minimum delay",
			alpha:       0,
			halfCycleUs: 10000,
			limits:      phase.DefaultLimits(),
			expected:    50,
		},
		{
			name:        "full angle at 50Hz is clamped down to the maximum delay",
			alpha:       math.Pi,
			halfCycleUs: 10000,
			limits:      phase.DefaultLimits(),
			expected:    9500,
		},
		{
			name:        "full angle at 60Hz stays below the maximum delay",
			alpha:       math.Pi,
			halfCycleUs: 1e6 / 120,
			limits:      phase.DefaultLimits(),
			expected:    8333,
		},
		{
			name:        "quarter cycle",
			alpha:       math.Pi / 2,
			halfCycleUs: 10000,
			limits:      phase.DefaultLimits(),
			expected:    5000,
		},
		{
			name:        "custom limits widen the range",
			alpha:       math.Pi,
			halfCycleUs: 10000,
			limits:      phase.Limits{MinDelayUs: 0, MaxDelayUs: 10000},
			expected:    10000,
		},
		{
			name:        "huge raw delay is clamped without overflow",
			alpha:       math.Pi,
			halfCycleUs: 1e300,
			limits:      phase.DefaultLimits(),
			expected:    9500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := phase.Delay(tt.alpha, tt.halfCycleUs, tt.limits)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func TestDelay_Degenerate(t *testing.T) {
	tests := []struct {
		name        string
		alpha       float64
		halfCycleUs float64
	}{
		{name: "NaN half-cycle", alpha: 1, halfCycleUs: math.NaN()},
		{name: "NaN angle", alpha: math.NaN(), halfCycleUs: 10000},
		{name: "infinite half-cycle", alpha: 1, halfCycleUs: math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := phase.Delay(tt.alpha, tt.halfCycleUs, phase.DefaultLimits())
			assert.ErrorIs(t, err, phase.ErrNumericDegenerate)
		})
	}
}

func TestLimits_Clamp(t *testing.T) {
	limits := phase.DefaultLimits()
	assert.Equal(t, 50, limits.Clamp(0))
	assert.Equal(t, 50, limits.Clamp(49))
	assert.Equal(t, 50, limits.Clamp(50))
	assert.Equal(t, 4000, limits.Clamp(4000))
	assert.Equal(t, 9500, limits.Clamp(9500))
	assert.Equal(t, 9500, limits.Clamp(9501))
	assert.Equal(t, 9500, limits.Clamp(1e300))
}

func TestLimits_Validate(t *testing.T) {
	assert.NoError(t, phase.DefaultLimits().Validate())
	assert.NoError(t, phase.Limits{MinDelayUs: 100, MaxDelayUs: 100}.Validate())
	assert.ErrorIs(t, phase.Limits{MinDelayUs: -1, MaxDelayUs: 100}.Validate(), phase.ErrInvalidConfiguration)
	assert.ErrorIs(t, phase.Limits{MinDelayUs: 200, MaxDelayUs: 100}.Validate(), phase.ErrInvalidConfiguration)
}

func TestDefaultLimits(t *testing.T) {
	limits := phase.DefaultLimits()
	assert.Equal(t, 50, limits.MinDelayUs)
	assert.Equal(t, 9500, limits.MaxDelayUs)
}
