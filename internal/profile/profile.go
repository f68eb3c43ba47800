// SPDX-License-Identifier: GPL-3.0-only

// Package profile describes table generation jobs and loads them from TOML files.
package profile

import (
	"fmt"
	"math"

	"github.com/shini4i/fan-delays/internal/phase"
)

const (
	// DefaultFrequency is the mains frequency in Hz used when none is given.
	DefaultFrequency = 50.0

	// DefaultLevels is the number of fan speed levels in the firmware.
	DefaultLevels = 9

	// DefaultMinPower is the conduction power of level 1. Lower power risks
	// the triac not latching.
	DefaultMinPower = 0.05
)

// Profile is a single table generation job.
type Profile struct {
	Name        string
	Frequency   float64
	HalfCycleUs float64 // overrides Frequency when non-zero
	Levels      int
	MinPower    float64
	IncludeOff  bool
	Output      string
}

// Default returns the 50Hz, 9 level profile used by the fan firmware.
func Default() Profile {
	return Profile{
		Frequency: DefaultFrequency,
		Levels:    DefaultLevels,
		MinPower:  DefaultMinPower,
	}
}

// GenerateAll returns the standard 50Hz and 60Hz jobs, each with and without
// the OFF entry.
func GenerateAll() []Profile {
	var profiles []Profile
	for _, freq := range []float64{50, 60} {
		for _, off := range []bool{false, true} {
			p := Default()
			p.Frequency = freq
			p.IncludeOff = off
			p.Name = p.DefaultOutput()
			p.Output = p.DefaultOutput()
			profiles = append(profiles, p)
		}
	}
	return profiles
}

// HalfCycle returns the half-cycle duration in microseconds.
// An explicit HalfCycleUs wins over Frequency.
func (p Profile) HalfCycle() float64 {
	if p.HalfCycleUs != 0 {
		return p.HalfCycleUs
	}
	return 1e6 / (2 * p.Frequency)
}

// FrequencyLabel returns the mains frequency the tables are generated for,
// derived from the half-cycle when one was given explicitly.
func (p Profile) FrequencyLabel() float64 {
	if p.HalfCycleUs != 0 {
		return 1 / (2 * p.HalfCycleUs * 1e-6)
	}
	return p.Frequency
}

// DefaultOutput returns the artifact name derived from the frequency, e.g.
// fan_delay_output_50hz_off.txt.
func (p Profile) DefaultOutput() string {
	suffix := ""
	if p.IncludeOff {
		suffix = "_off"
	}
	return fmt.Sprintf("fan_delay_output_%dhz%s.txt", int(p.FrequencyLabel()), suffix)
}

// OutputName returns Output, falling back to DefaultOutput.
func (p Profile) OutputName() string {
	if p.Output != "" {
		return p.Output
	}
	return p.DefaultOutput()
}

// Validate rejects profiles that cannot produce a table.
func (p Profile) Validate() error {
	if p.HalfCycleUs != 0 {
		if math.IsNaN(p.HalfCycleUs) || math.IsInf(p.HalfCycleUs, 0) || p.HalfCycleUs < 0 {
			return fmt.Errorf("%w: half-cycle %v us must be a positive finite duration",
				phase.ErrInvalidConfiguration, p.HalfCycleUs)
		}
	} else if math.IsNaN(p.Frequency) || math.IsInf(p.Frequency, 0) || p.Frequency <= 0 {
		return fmt.Errorf("%w: frequency %v Hz must be positive", phase.ErrInvalidConfiguration, p.Frequency)
	}
	if p.Levels < 2 || p.Levels > phase.MaxLevels {
		return fmt.Errorf("%w: levels must be between 2 and %d, got %d",
			phase.ErrInvalidConfiguration, phase.MaxLevels, p.Levels)
	}
	if math.IsNaN(p.MinPower) || p.MinPower < 0 || p.MinPower >= 1 {
		return fmt.Errorf("%w: min power %v must be in [0, 1)", phase.ErrInvalidConfiguration, p.MinPower)
	}
	return nil
}
