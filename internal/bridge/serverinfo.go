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

const cacheKeyServerInfo = "interop:server_info"

// ServerInfoFetcher is the slice of the interop client this service needs.
type ServerInfoFetcher interface {
	GetServerInfo(ctx context.Context) (geom.ServerInfo, error)
}

// ServerInfo polls the judge server's broadcast message and republishes it.
type ServerInfo struct {
	client ServerInfoFetcher
	pub    Publisher
	cache  Cache
	ttl    time.Duration
	period time.Duration
	logger zerolog.Logger
}

func NewServerInfo(client ServerInfoFetcher, pub Publisher, cache Cache, ttl, period time.Duration, logger zerolog.Logger) *ServerInfo {
	return &ServerInfo{
		client: client,
		pub:    pub,
		cache:  cache,
		ttl:    ttl,
		period: period,
		logger: logger,
	}
}

// Run polls at the configured period until ctx is canceled.
func (s *ServerInfo) Run(ctx context.Context) error {
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

func (s *ServerInfo) publishOnce(ctx context.Context) {
	info, err := s.client.GetServerInfo(ctx)
	if err != nil {
		httpserver.IncCounter("server_info_poll_failures")
		logFailure(s.logger, "fetch server info", err)
		return
	}
	data, err := json.Marshal(info)
	if err != nil {
		s.logger.Error().Err(err).Msg("encode server info failed")
		return
	}
	if err := s.pub.Publish(bus.SubjectServerInfo, data); err != nil {
		s.logger.Error().Err(err).Msg("publish server info failed")
		return
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyServerInfo, data, s.ttl); err != nil {
			s.logger.Warn().Err(err).Msg("cache server info failed")
		}
	}
	httpserver.IncCounter("server_info_polls")
}
