package main

import (
	"context"
	"log"

	"github.com/skyhawk-robotics/interop-bridge/internal/bridge"
	"github.com/skyhawk-robotics/interop-bridge/internal/platform"
)

func main() {
	err := platform.Run("obstacles", platform.Options{}, func(ctx context.Context, d platform.Deps) error {
		svc := bridge.NewObstacles(
			d.Client,
			d.NATS,
			bridge.NewRedisCache(d.Redis),
			d.Cfg.FrameID,
			d.Cfg.MarkerLifetime,
			d.Cfg.SyncPeriod,
			d.Logger,
		)
		return svc.Run(ctx)
	})
	if err != nil {
		log.Fatalf("obstacles failed: %v", err)
	}
}
