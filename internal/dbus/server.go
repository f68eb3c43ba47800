// SPDX-License-Identifier: GPL-3.0-only

// Package dbus exposes delay table generation as a D-Bus session service, so
// desktop tooling can fetch tables without shelling out to the CLI.
package dbus

import (
	"errors"
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/shini4i/fan-delays/internal/profile"
	"github.com/shini4i/fan-delays/internal/render"
)

// ErrRateLimitExceeded is returned when table requests exceed the rate limit.
var ErrRateLimitExceeded = errors.New("rate limit exceeded")

const (
	// rateLimitPerSecond is the maximum number of table requests per second.
	rateLimitPerSecond = 20

	// rateLimitBurst is the maximum burst size for table requests.
	rateLimitBurst = 5
)

const (
	// ServiceName is the D-Bus service name.
	ServiceName = "io.github.shini4i.FanDelays"

	// ObjectPath is the D-Bus object path.
	ObjectPath = "/io/github/shini4i/FanDelays"

	// InterfaceName is the D-Bus interface name.
	InterfaceName = "io.github.shini4i.FanDelays"
)

// Table kinds reported by the TableGenerated signal.
const (
	KindLevel   = "level"
	KindPercent = "percent"
)

// IntrospectXML is the D-Bus introspection XML for the service.
const IntrospectXML = `
<node name="` + ObjectPath + `">
  <interface name="` + InterfaceName + `">
    <method name="HalfCycle">
      <arg name="frequency" type="d" direction="in"/>
      <arg name="halfCycleUs" type="d" direction="out"/>
    </method>
    <method name="LevelTable">
      <arg name="halfCycleUs" type="d" direction="in"/>
      <arg name="levels" type="u" direction="in"/>
      <arg name="minPower" type="d" direction="in"/>
      <arg name="delays" type="au" direction="out"/>
    </method>
    <method name="PercentTable">
      <arg name="halfCycleUs" type="d" direction="in"/>
      <arg name="delays" type="au" direction="out"/>
    </method>
    <method name="Render">
      <arg name="frequency" type="d" direction="in"/>
      <arg name="halfCycleUs" type="d" direction="in"/>
      <arg name="levels" type="u" direction="in"/>
      <arg name="minPower" type="d" direction="in"/>
      <arg name="includeOff" type="b" direction="in"/>
      <arg name="text" type="s" direction="out"/>
    </method>
    <signal name="TableGenerated">
      <arg name="kind" type="s"/>
      <arg name="halfCycleUs" type="d"/>
      <arg name="entries" type="u"/>
    </signal>
  </interface>
  ` + introspect.IntrospectDataString + `
</node>
`

// Server implements the D-Bus table service.
//
// Thread safety: the generator is stateless, and connMu protects the D-Bus
// connection used for signal emission.
type Server struct {
	conn        *dbus.Conn
	connMu      sync.RWMutex // Protects conn field only
	generator   TableGenerator
	rateLimiter *rate.Limiter
}

// NewServer creates a new D-Bus server backed by the given generator.
func NewServer(generator TableGenerator) *Server {
	return &Server{
		generator:   generator,
		rateLimiter: rate.NewLimiter(rateLimitPerSecond, rateLimitBurst),
	}
}

// Start connects to the session bus and exports the service.
func (s *Server) Start() error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}

	// Ensure connection is closed if setup fails
	success := false
	defer func() {
		if !success {
			if closeErr := conn.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("Failed to close D-Bus connection during cleanup")
			}
		}
	}()

	if err := conn.Export(s, ObjectPath, InterfaceName); err != nil {
		return fmt.Errorf("failed to export server: %w", err)
	}

	err = conn.Export(introspect.Introspectable(IntrospectXML), ObjectPath, "org.freedesktop.DBus.Introspectable")
	if err != nil {
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	reply, err := conn.RequestName(ServiceName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("name %s already taken", ServiceName)
	}

	s.connMu.Lock()
	s.conn = conn
	s.connMu.Unlock()

	success = true
	log.Info().Str("service", ServiceName).Msg("D-Bus service started")
	return nil
}

// Stop disconnects from the session bus.
func (s *Server) Stop() error {
	s.connMu.Lock()
	conn := s.conn
	s.conn = nil
	s.connMu.Unlock()

	if conn != nil {
		return conn.Close()
	}
	return nil
}

// HalfCycle returns the half-cycle duration in microseconds for a mains frequency.
func (s *Server) HalfCycle(frequency float64) (float64, *dbus.Error) {
	if !s.rateLimiter.Allow() {
		log.Warn().Msg("Rate limit exceeded for HalfCycle")
		return 0, dbus.MakeFailedError(ErrRateLimitExceeded)
	}

	p := profile.Default()
	p.Frequency = frequency
	if err := p.Validate(); err != nil {
		return 0, dbus.MakeFailedError(err)
	}
	return p.HalfCycle(), nil
}

// LevelTable returns the per-level delays for the given half-cycle.
func (s *Server) LevelTable(halfCycleUs float64, levels uint32, minPower float64) ([]uint32, *dbus.Error) {
	if !s.rateLimiter.Allow() {
		log.Warn().Msg("Rate limit exceeded for LevelTable")
		return nil, dbus.MakeFailedError(ErrRateLimitExceeded)
	}

	delays, err := s.generator.LevelTable(int(levels), minPower, halfCycleUs)
	if err != nil {
		log.Error().Err(err).Float64("half_cycle_us", halfCycleUs).Uint32("levels", levels).Msg("Failed to generate level table")
		return nil, dbus.MakeFailedError(err)
	}

	log.Debug().Float64("half_cycle_us", halfCycleUs).Int("entries", len(delays)).Msg("Generated level table")
	s.emitTableGenerated(KindLevel, halfCycleUs, len(delays))
	return toUint32(delays), nil
}

// PercentTable returns the percent-indexed delays for the given half-cycle.
func (s *Server) PercentTable(halfCycleUs float64) ([]uint32, *dbus.Error) {
	if !s.rateLimiter.Allow() {
		log.Warn().Msg("Rate limit exceeded for PercentTable")
		return nil, dbus.MakeFailedError(ErrRateLimitExceeded)
	}

	delays, err := s.generator.PercentTable(halfCycleUs)
	if err != nil {
		log.Error().Err(err).Float64("half_cycle_us", halfCycleUs).Msg("Failed to generate percent table")
		return nil, dbus.MakeFailedError(err)
	}

	log.Debug().Float64("half_cycle_us", halfCycleUs).Int("entries", len(delays)).Msg("Generated percent table")
	s.emitTableGenerated(KindPercent, halfCycleUs, len(delays))
	return toUint32(delays), nil
}

// Render returns the full text artifact for one profile. A non-zero
// halfCycleUs overrides frequency.
func (s *Server) Render(frequency, halfCycleUs float64, levels uint32, minPower float64, includeOff bool) (string, *dbus.Error) {
	if !s.rateLimiter.Allow() {
		log.Warn().Msg("Rate limit exceeded for Render")
		return "", dbus.MakeFailedError(ErrRateLimitExceeded)
	}

	p := profile.Profile{
		Frequency:   frequency,
		HalfCycleUs: halfCycleUs,
		Levels:      int(levels),
		MinPower:    minPower,
		IncludeOff:  includeOff,
	}
	if err := p.Validate(); err != nil {
		return "", dbus.MakeFailedError(err)
	}

	half := p.HalfCycle()
	levelDelays, err := s.generator.LevelTable(p.Levels, p.MinPower, half)
	if err != nil {
		return "", dbus.MakeFailedError(err)
	}
	percentDelays, err := s.generator.PercentTable(half)
	if err != nil {
		return "", dbus.MakeFailedError(err)
	}

	log.Debug().Float64("half_cycle_us", half).Int("levels", p.Levels).Msg("Rendered tables")
	return render.Render(render.Document{
		Levels:      levelDelays,
		Percent:     percentDelays,
		HalfCycleUs: half,
		Frequency:   p.FrequencyLabel(),
		IncludeOff:  p.IncludeOff,
	}), nil
}

// emitTableGenerated emits the TableGenerated signal.
func (s *Server) emitTableGenerated(kind string, halfCycleUs float64, entries int) {
	s.connMu.RLock()
	conn := s.conn
	s.connMu.RUnlock()

	if conn == nil {
		return
	}

	// #nosec G115 -- tables hold at most a few hundred entries
	err := conn.Emit(ObjectPath, InterfaceName+".TableGenerated", kind, halfCycleUs, uint32(entries))
	if err != nil {
		log.Error().Err(err).Msg("Failed to emit TableGenerated signal")
	}
}

func toUint32(delays []int) []uint32 {
	out := make([]uint32, len(delays))
	for i, d := range delays {
		// #nosec G115 -- delays are clamped to non-negative limits
		out[i] = uint32(d)
	}
	return out
}
