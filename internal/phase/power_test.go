// SPDX-License-Identifier: GPL-3.0-only

package phase_test

import (
	"math"
	"testing"

	"github.com/shini4i/fan-delays/internal/phase"
	"github.com/stretchr/testify/assert"
)

func TestPowerOfAngle_Endpoints(t *testing.T) {
	assert.InDelta(t, 1.0, phase.PowerOfAngle(0), 1e-9, "no delay delivers full power")
	assert.InDelta(t, 0.0, phase.PowerOfAngle(math.Pi), 1e-9, "firing at the end of the half-cycle delivers nothing")
	assert.InDelta(t, 0.5, phase.PowerOfAngle(math.Pi/2), 1e-12, "firing at the peak delivers half power")
}

func TestPowerOfAngle_MonotonicAndBounded(t *testing.T) {
	const steps = 1000
	prev := phase.PowerOfAngle(0)
	for i := 1; i <= steps; i++ {
		alpha := math.Pi * float64(i) / steps
		p := phase.PowerOfAngle(alpha)

		assert.GreaterOrEqual(t, p, -1e-12, "power below 0 at alpha=%v", alpha)
		assert.LessOrEqual(t, p, 1+1e-12, "power above 1 at alpha=%v", alpha)
		assert.GreaterOrEqual(t, prev, p, "power increased at alpha=%v", alpha)
		prev = p
	}
}

func TestPowerOfDelay(t *testing.T) {
	tests := []struct {
		name        string
		delayUs     int
		halfCycleUs float64
		expected    float64
	}{
		{
			name:        "zero delay is full power",
			delayUs:     0,
			halfCycleUs: 10000,
			expected:    1,
		},
		{
			name:        "half of a 50Hz half-cycle is half power",
			delayUs:     5000,
			halfCycleUs: 10000,
			expected:    0.5,
		},
		{
			name:        "full half-cycle is no power",
			delayUs:     10000,
			halfCycleUs: 10000,
			expected:    0,
		},
		{
			name:        "level 1 delay at 50Hz delivers about 5%",
			delayUs:     7980,
			halfCycleUs: 10000,
			expected:    0.05,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, phase.PowerOfDelay(tt.delayUs, tt.halfCycleUs), 1e-4)
		})
	}
}
