package main

import (
	"context"
	"log"

	"github.com/skyhawk-robotics/interop-bridge/internal/bridge"
	"github.com/skyhawk-robotics/interop-bridge/internal/platform"
)

func main() {
	err := platform.Run("telemetry", platform.Options{}, func(ctx context.Context, d platform.Deps) error {
		svc := bridge.NewTelemetry(
			d.Client,
			bridge.NewRedisCache(d.Redis),
			d.Cfg.MarkerLifetime,
			d.Cfg.SyncPeriod,
			d.Logger,
		)
		if err := svc.Subscribe(d.NATS); err != nil {
			return err
		}
		return svc.Run(ctx)
	})
	if err != nil {
		log.Fatalf("telemetry failed: %v", err)
	}
}
