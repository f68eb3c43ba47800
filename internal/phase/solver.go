// SPDX-License-Identifier: GPL-3.0-only

package phase

import "math"

// BisectionIterations is the fixed number of halvings performed by AngleFromPower.
// 50 halvings of [0, pi] resolve the angle to about 3e-15 rad.
const BisectionIterations = 50

// AngleFromPower returns the phase angle at which PowerOfAngle equals power.
// The search always runs BisectionIterations steps, so the result is
// reproducible for a given input.
func AngleFromPower(power float64) float64 {
	lo, hi := 0.0, math.Pi
	for i := 0; i < BisectionIterations; i++ {
		mid := (lo + hi) / 2
		if PowerOfAngle(mid) > power {
			// Still too much power, fire later
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}
