// SPDX-License-Identifier: GPL-3.0-only

// Package render formats delay tables as the text artifact pasted into the fan firmware.
package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shini4i/fan-delays/internal/phase"
)

const (
	// LevelArrayName is the C identifier of the per-level delay array.
	LevelArrayName = "FAN_DELAY_US"

	// PercentArrayName is the C identifier of the percent-indexed delay array.
	PercentArrayName = "DELAY_FROM_PERCENT"
)

// Document holds everything written into one artifact.
type Document struct {
	Levels      []int   // level delays, level 1 first
	Percent     []int   // percent-indexed delays
	HalfCycleUs float64 // half-cycle the tables were computed for
	Frequency   float64 // mains frequency shown in the header
	IncludeOff  bool    // prepend an OFF (0) entry to the level array
}

// Render returns the artifact text. Lines are separated by '\n' with no
// trailing newline.
func Render(doc Document) string {
	var lines []string
	lines = append(lines, Header(doc.Frequency, doc.HalfCycleUs, len(doc.Levels)))
	lines = append(lines, "["+join(doc.Levels)+"]")
	lines = append(lines, "")
	lines = append(lines, Indices(doc.Levels)...)
	lines = append(lines, "")

	levels := doc.Levels
	if doc.IncludeOff {
		levels = append([]int{0}, doc.Levels...)
	}
	lines = append(lines, "\nC array to paste into code:\n"+CArray(LevelArrayName, levels))
	lines = append(lines, "")
	lines = append(lines, PowerTable(doc.Levels, doc.HalfCycleUs)...)
	lines = append(lines, "")
	lines = append(lines, "\nC array to paste into code:\n"+CArray(PercentArrayName, doc.Percent))

	return strings.Join(lines, "\n")
}

// Header returns the first line of the artifact.
func Header(frequency, halfCycleUs float64, levels int) string {
	return fmt.Sprintf("Computed FAN_DELAY_US for %dHz (half-cycle %s us), levels 1..%d",
		int(frequency), formatFloat(halfCycleUs), levels)
}

// Indices returns one "index i: d us" line per delay.
func Indices(delays []int) []string {
	lines := make([]string, len(delays))
	for i, d := range delays {
		lines[i] = fmt.Sprintf("index %d: %d us", i, d)
	}
	return lines
}

// CArray returns a C constant array declaration holding values.
func CArray(name string, values []int) string {
	return fmt.Sprintf("const unsigned int %s[%d] = {%s};", name, len(values), join(values))
}

// PowerTable lists the conduction power each emitted delay actually delivers,
// which differs slightly from the target because of rounding and clamping.
func PowerTable(delays []int, halfCycleUs float64) []string {
	lines := []string{"Normalized conduction power for each delay:"}
	for i, d := range delays {
		p := phase.PowerOfDelay(d, halfCycleUs)
		lines = append(lines, fmt.Sprintf("level %d | delay %d us | P=%.4f -> %.1f%%", i+1, d, p, p*100))
	}
	return lines
}

func join(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

// formatFloat prints the shortest representation that round-trips, always
// keeping a fractional part ("10000.0", "8333.333333333334").
func formatFloat(v float64) string {
	abs := math.Abs(v)
	if abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
