// SPDX-License-Identifier: GPL-3.0-only

package phase

import (
	"fmt"
	"math"
)

const (
	// PercentEntries is the length of a percent-indexed table (0% through 100%).
	PercentEntries = 101

	// MaxLevels is the largest level table LevelTable will build.
	MaxLevels = 1024
)

// Generator builds delay tables for a given set of limits.
// A Generator holds no mutable state and is safe for concurrent use.
type Generator struct {
	limits Limits
}

// GeneratorOption is a functional option for configuring a Generator.
type GeneratorOption func(*Generator)

// WithLimits overrides the delay limits applied to every table entry.
func WithLimits(limits Limits) GeneratorOption {
	return func(g *Generator) {
		g.limits = limits
	}
}

// NewGenerator creates a generator using DefaultLimits unless overridden.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{limits: DefaultLimits()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Limits returns the delay limits applied by the generator.
func (g *Generator) Limits() Limits {
	return g.limits
}

// LevelTable returns one delay per fan level. Level 1 (index 0) delivers
// minPower and the last level delivers full power, with the levels in between
// evenly spaced in power.
func (g *Generator) LevelTable(levels int, minPower, halfCycleUs float64) ([]int, error) {
	if levels < 2 || levels > MaxLevels {
		return nil, fmt.Errorf("%w: levels must be between 2 and %d, got %d", ErrInvalidConfiguration, MaxLevels, levels)
	}
	if math.IsNaN(minPower) || minPower < 0 || minPower >= 1 {
		return nil, fmt.Errorf("%w: min power %v must be in [0, 1)", ErrInvalidConfiguration, minPower)
	}
	if err := g.validate(halfCycleUs); err != nil {
		return nil, err
	}

	step := (1 - minPower) / float64(levels-1)
	delays := make([]int, levels)
	for i := range delays {
		d, err := Delay(AngleFromPower(minPower+float64(i)*step), halfCycleUs, g.limits)
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", i+1, err)
		}
		delays[i] = d
	}
	return delays, nil
}

// PercentTable returns PercentEntries delays, where index p delivers p percent power.
func (g *Generator) PercentTable(halfCycleUs float64) ([]int, error) {
	if err := g.validate(halfCycleUs); err != nil {
		return nil, err
	}

	delays := make([]int, PercentEntries)
	for p := range delays {
		d, err := Delay(AngleFromPower(float64(p)/100), halfCycleUs, g.limits)
		if err != nil {
			return nil, fmt.Errorf("percent %d: %w", p, err)
		}
		delays[p] = d
	}
	return delays, nil
}

func (g *Generator) validate(halfCycleUs float64) error {
	if math.IsNaN(halfCycleUs) || math.IsInf(halfCycleUs, 0) || halfCycleUs <= 0 {
		return fmt.Errorf("%w: half-cycle %v us must be a positive finite duration", ErrInvalidConfiguration, halfCycleUs)
	}
	return g.limits.Validate()
}
