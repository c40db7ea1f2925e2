package main

import (
	"context"
	"log"

	"github.com/skyhawk-robotics/interop-bridge/internal/bridge"
	"github.com/skyhawk-robotics/interop-bridge/internal/platform"
	"github.com/skyhawk-robotics/interop-bridge/internal/targetstore"
)

func main() {
	opts := platform.Options{WithPostgres: true}
	err := platform.Run("targets", opts, func(ctx context.Context, d platform.Deps) error {
		if err := targetstore.EnsureSchema(ctx, d.DB); err != nil {
			return err
		}
		repo := targetstore.NewPostgresRepository(d.DB)
		svc := bridge.NewTargets(d.Client, repo, d.Logger)
		if err := svc.Subscribe(ctx, d.NATS); err != nil {
			return err
		}
		d.Logger.Info().Msg("target service ready")
		<-ctx.Done()
		return ctx.Err()
	})
	if err != nil {
		log.Fatalf("targets failed: %v", err)
	}
}
