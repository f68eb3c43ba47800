// SPDX-License-Identifier: GPL-3.0-only

package profile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/shini4i/fan-delays/internal/phase"
)

// ErrNoProfiles is returned when a profile file defines no [[profile]] entries.
var ErrNoProfiles = errors.New("no profiles defined")

// File is the content of a TOML profile file.
//
//	min_delay_us = 50
//	max_delay_us = 9500
//
//	[[profile]]
//	name = "kitchen-60hz"
//	frequency = 60
//	include_off = true
type File struct {
	Limits   phase.Limits
	Profiles []Profile
}

// fileDoc mirrors File with optional fields so unset keys can take defaults.
type fileDoc struct {
	MinDelayUs *int         `toml:"min_delay_us"`
	MaxDelayUs *int         `toml:"max_delay_us"`
	Profiles   []profileDoc `toml:"profile"`
}

type profileDoc struct {
	Name        string   `toml:"name"`
	Frequency   *float64 `toml:"frequency"`
	HalfCycleUs *float64 `toml:"half_cycle_us"`
	Levels      *int     `toml:"levels"`
	MinPower    *float64 `toml:"min_power"`
	IncludeOff  bool     `toml:"include_off"`
	Output      string   `toml:"output"`
}

// Load reads a profile file. Unset fields take the package defaults and every
// profile is validated.
func Load(path string) (*File, error) {
	var doc fileDoc
	md, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode profile file %s: %w", path, err)
	}
	return build(&doc, md, path)
}

// Parse decodes a profile file held in memory. The name is only used in error messages.
func Parse(name, data string) (*File, error) {
	var doc fileDoc
	md, err := toml.Decode(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode profile file %s: %w", name, err)
	}
	return build(&doc, md, name)
}

func build(doc *fileDoc, md toml.MetaData, name string) (*File, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys in %s: %s",
			phase.ErrInvalidConfiguration, name, strings.Join(keys, ", "))
	}
	if len(doc.Profiles) == 0 {
		return nil, fmt.Errorf("%w: %s: %w", phase.ErrInvalidConfiguration, name, ErrNoProfiles)
	}

	f := &File{Limits: phase.DefaultLimits()}
	if doc.MinDelayUs != nil {
		f.Limits.MinDelayUs = *doc.MinDelayUs
	}
	if doc.MaxDelayUs != nil {
		f.Limits.MaxDelayUs = *doc.MaxDelayUs
	}
	if err := f.Limits.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	for i, pd := range doc.Profiles {
		p := Default()
		p.Name = pd.Name
		p.IncludeOff = pd.IncludeOff
		p.Output = pd.Output
		if pd.Frequency != nil {
			p.Frequency = *pd.Frequency
		}
		if pd.HalfCycleUs != nil {
			p.HalfCycleUs = *pd.HalfCycleUs
			if p.HalfCycleUs == 0 {
				return nil, fmt.Errorf("%s: profile %d: %w: half-cycle must be positive",
					name, i+1, phase.ErrInvalidConfiguration)
			}
		}
		if pd.Levels != nil {
			p.Levels = *pd.Levels
		}
		if pd.MinPower != nil {
			p.MinPower = *pd.MinPower
		}
		if p.Name == "" {
			p.Name = p.DefaultOutput()
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%s: profile %q: %w", name, p.Name, err)
		}
		f.Profiles = append(f.Profiles, p)
	}
	return f, nil
}
