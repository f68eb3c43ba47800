// SPDX-License-Identifier: GPL-3.0-only

// Package phase converts between conduction power and triac firing delays for
// phase-control dimming of an AC load.
package phase

import "math"

// PowerOfAngle returns the normalized conduction power delivered when the triac
// fires alpha radians into each half-cycle. alpha must lie in [0, pi].
func PowerOfAngle(alpha float64) float64 {
	return 1 - alpha/math.Pi + math.Sin(2*alpha)/(2*math.Pi)
}

// PowerOfDelay returns the conduction power actually delivered by a firing delay
// of delayUs microseconds within a half-cycle of halfCycleUs microseconds.
func PowerOfDelay(delayUs int, halfCycleUs float64) float64 {
	return PowerOfAngle(float64(delayUs) * math.Pi / halfCycleUs)
}
