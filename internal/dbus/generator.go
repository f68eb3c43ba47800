// SPDX-License-Identifier: GPL-3.0-only

package dbus

//go:generate mockgen -source=generator.go -destination=mocks/generator_mock.go -package=mocks

// TableGenerator produces delay tables.
// This interface allows for mocking in tests.
type TableGenerator interface {
	// LevelTable returns one delay per level, level 1 first.
	LevelTable(levels int, minPower, halfCycleUs float64) ([]int, error)

	// PercentTable returns the 101 percent-indexed delays.
	PercentTable(halfCycleUs float64) ([]int, error)
}
