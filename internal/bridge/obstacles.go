package bridge

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/skyhawk-robotics/interop-bridge/internal/geom"
	"github.com/skyhawk-robotics/interop-bridge/pkg/bus"
	"github.com/skyhawk-robotics/interop-bridge/pkg/httpserver"
)

const (
	cacheKeyMovingObstacles     = "interop:obstacles:moving"
	cacheKeyStationaryObstacles = "interop:obstacles:stationary"
)

// ObstacleFetcher is the slice of the interop client this service needs.
type ObstacleFetcher interface {
	GetObstacles(ctx context.Context, frame string, lifetime time.Duration) (moving, stationary []geom.Marker, err error)
}

// Obstacles polls the obstacle sets and republishes them on the bus.
type Obstacles struct {
	client   ObstacleFetcher
	pub      Publisher
	cache    Cache
	frame    string
	lifetime time.Duration
	period   time.Duration
	logger   zerolog.Logger
}

func NewObstacles(client ObstacleFetcher, pub Publisher, cache Cache, frame string, lifetime, period time.Duration, logger zerolog.Logger) *Obstacles {
	return &Obstacles{
		client:   client,
		pub:      pub,
		cache:    cache,
		frame:    frame,
		lifetime: lifetime,
		period:   period,
		logger:   logger,
	}
}

// Run polls at the configured period until ctx is canceled.
func (s *Obstacles) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.publishOnce(ctx)
		}
	}
}

func (s *Obstacles) publishOnce(ctx context.Context) {
	moving, stationary, err := s.client.GetObstacles(ctx, s.frame, s.lifetime)
	if err != nil {
		httpserver.IncCounter("obstacle_poll_failures")
		logFailure(s.logger, "fetch obstacles", err)
		return
	}
	s.publish(ctx, bus.SubjectMovingObstacles, cacheKeyMovingObstacles, moving)
	s.publish(ctx, bus.SubjectStationaryObstacles, cacheKeyStationaryObstacles, stationary)
	httpserver.IncCounter("obstacle_polls")
}

func (s *Obstacles) publish(ctx context.Context, subject, cacheKey string, markers []geom.Marker) {
	data, err := json.Marshal(markers)
	if err != nil {
		s.logger.Error().Err(err).Str("subject", subject).Msg("encode markers failed")
		return
	}
	if err := s.pub.Publish(subject, data); err != nil {
		s.logger.Error().Err(err).Str("subject", subject).Msg("publish markers failed")
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, data, s.lifetime); err != nil {
			s.logger.Warn().Err(err).Str("key", cacheKey).Msg("cache markers failed")
		}
	}
}
