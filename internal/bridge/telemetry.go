package bridge

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/skyhawk-robotics/interop-bridge/internal/geom"
	"github.com/skyhawk-robotics/interop-bridge/internal/serial"
	"github.com/skyhawk-robotics/interop-bridge/pkg/bus"
	"github.com/skyhawk-robotics/interop-bridge/pkg/httpserver"
)

const cacheKeyTelemetry = "interop:telemetry:last"

// HeadingMsg is the compass document on the vehicle bus.
type HeadingMsg struct {
	Degrees float64 `json:"degrees"`
}

// TelemetryPoster is the slice of the interop client this service needs.
type TelemetryPoster interface {
	PostTelemetry(ctx context.Context, fix geom.NavSatFix, headingDeg float64) error
}

// Telemetry tracks the latest position fix and heading from the bus and
// uploads a fresh snapshot of the pair every period. Nothing is uploaded
// until both sensors have reported.
type Telemetry struct {
	client TelemetryPoster
	cache  Cache
	ttl    time.Duration
	period time.Duration
	logger zerolog.Logger

	mu      sync.Mutex
	fix     *geom.NavSatFix
	heading *float64
}

func NewTelemetry(client TelemetryPoster, cache Cache, ttl, period time.Duration, logger zerolog.Logger) *Telemetry {
	return &Telemetry{
		client: client,
		cache:  cache,
		ttl:    ttl,
		period: period,
		logger: logger,
	}
}

// Subscribe attaches the sensor handlers to the bus.
func (s *Telemetry) Subscribe(nc *nats.Conn) error {
	if _, err := nc.Subscribe(bus.SubjectNavSatFix, s.handleNavSat); err != nil {
		return err
	}
	_, err := nc.Subscribe(bus.SubjectHeading, s.handleHeading)
	return err
}

func (s *Telemetry) handleNavSat(msg *nats.Msg) {
	var fix geom.NavSatFix
	if err := json.Unmarshal(msg.Data, &fix); err != nil {
		s.logger.Warn().Err(err).Msg("invalid navsat payload")
		return
	}
	s.mu.Lock()
	s.fix = &fix
	s.mu.Unlock()
}

func (s *Telemetry) handleHeading(msg *nats.Msg) {
	var heading HeadingMsg
	if err := json.Unmarshal(msg.Data, &heading); err != nil {
		s.logger.Warn().Err(err).Msg("invalid heading payload")
		return
	}
	s.mu.Lock()
	s.heading = &heading.Degrees
	s.mu.Unlock()
}

// Run uploads at the configured period until ctx is canceled.
func (s *Telemetry) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.uploadOnce(ctx)
		}
	}
}

func (s *Telemetry) uploadOnce(ctx context.Context) {
	s.mu.Lock()
	fix, heading := s.fix, s.heading
	s.mu.Unlock()
	if fix == nil || heading == nil {
		return
	}

	if err := s.client.PostTelemetry(ctx, *fix, *heading); err != nil {
		httpserver.IncCounter("telemetry_upload_failures")
		logFailure(s.logger, "upload telemetry", err)
		return
	}
	httpserver.IncCounter("telemetry_uploads")

	if s.cache != nil {
		data, err := json.Marshal(serial.TelemetryToWire(*fix, *heading))
		if err == nil {
			if err := s.cache.Set(ctx, cacheKeyTelemetry, data, s.ttl); err != nil {
				s.logger.Warn().Err(err).Msg("cache telemetry failed")
			}
		}
	}
}
