// SPDX-License-Identifier: GPL-3.0-only

package phase

import (
	"fmt"
	"math"
)

const (
	// DefaultMinDelayUs is the shortest delay emitted. Firing closer to the zero
	// crossing risks the triac not latching.
	DefaultMinDelayUs = 50

	// DefaultMaxDelayUs is the longest delay emitted, kept clear of the end of a
	// 50 Hz half-cycle.
	DefaultMaxDelayUs = 9500
)

// Limits bounds the delays written into a table.
type Limits struct {
	MinDelayUs int
	MaxDelayUs int
}

// DefaultLimits returns the limits used by the fan firmware.
func DefaultLimits() Limits {
	return Limits{MinDelayUs: DefaultMinDelayUs, MaxDelayUs: DefaultMaxDelayUs}
}

// Validate checks that the limits describe a non-empty, non-negative range.
func (l Limits) Validate() error {
	if l.MinDelayUs < 0 {
		return fmt.Errorf("%w: min delay %d us is negative", ErrInvalidConfiguration, l.MinDelayUs)
	}
	if l.MinDelayUs > l.MaxDelayUs {
		return fmt.Errorf("%w: min delay %d us exceeds max delay %d us",
			ErrInvalidConfiguration, l.MinDelayUs, l.MaxDelayUs)
	}
	return nil
}

// Clamp ensures the delay is within the limits and returns it in whole microseconds.
func (l Limits) Clamp(delayUs float64) int {
	if delayUs < float64(l.MinDelayUs) {
		return l.MinDelayUs
	}
	if delayUs > float64(l.MaxDelayUs) {
		return l.MaxDelayUs
	}
	return int(delayUs)
}

// Delay converts a phase angle to a firing delay in whole microseconds.
// The raw delay is rounded half to even and then clamped, so a table
// regenerated for the same half-cycle is identical to the previous one.
func Delay(alpha, halfCycleUs float64, limits Limits) (int, error) {
	raw := alpha * halfCycleUs / math.Pi
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, fmt.Errorf("%w: delay for angle %v and half-cycle %v us", ErrNumericDegenerate, alpha, halfCycleUs)
	}
	// Clamped in float space so huge values never overflow the int conversion.
	return limits.Clamp(math.RoundToEven(raw)), nil
}
