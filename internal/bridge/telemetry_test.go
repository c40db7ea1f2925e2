package bridge

import (
	"context"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/skyhawk-robotics/interop-bridge/internal/geom"
	"github.com/skyhawk-robotics/interop-bridge/internal/testutil"
)

type fakeTelemetryPoster struct {
	posted []struct {
		fix     geom.NavSatFix
		heading float64
	}
	err error
}

func (f *fakeTelemetryPoster) PostTelemetry(_ context.Context, fix geom.NavSatFix, headingDeg float64) error {
	if f.err != nil {
		return f.err
	}
	f.posted = append(f.posted, struct {
		fix     geom.NavSatFix
		heading float64
	}{fix, headingDeg})
	return nil
}

func TestTelemetryWaitsForBothSensors(t *testing.T) {
	t.Parallel()
	poster := &fakeTelemetryPoster{}
	svc := NewTelemetry(poster, nil, time.Second, time.Second, zerolog.Nop())

	ctx, cancel := testutil.Context(t)
	defer cancel()

	svc.uploadOnce(ctx)
	if len(poster.posted) != 0 {
		t.Fatal("uploaded before any sensor reported")
	}

	svc.handleNavSat(&nats.Msg{Data: []byte(`{"latitude": 38.149, "longitude": -76.432, "altitude": 30.48}`)})
	svc.uploadOnce(ctx)
	if len(poster.posted) != 0 {
		t.Fatal("uploaded with position but no heading")
	}

	svc.handleHeading(&nats.Msg{Data: []byte(`{"degrees": 90}`)})
	svc.uploadOnce(ctx)
	if len(poster.posted) != 1 {
		t.Fatalf("expected 1 upload, got %d", len(poster.posted))
	}
	got := poster.posted[0]
	if got.fix.Latitude != 38.149 || got.heading != 90 {
		t.Fatalf("unexpected upload: %+v", got)
	}
}

func TestTelemetryUploadsLatestValues(t *testing.T) {
	t.Parallel()
	poster := &fakeTelemetryPoster{}
	svc := NewTelemetry(poster, nil, time.Second, time.Second, zerolog.Nop())

	ctx, cancel := testutil.Context(t)
	defer cancel()

	svc.handleNavSat(&nats.Msg{Data: []byte(`{"latitude": 1, "longitude": 2, "altitude": 3}`)})
	svc.handleHeading(&nats.Msg{Data: []byte(`{"degrees": 10}`)})
	svc.handleNavSat(&nats.Msg{Data: []byte(`{"latitude": 4, "longitude": 5, "altitude": 6}`)})
	svc.handleHeading(&nats.Msg{Data: []byte(`{"degrees": 20}`)})

	svc.uploadOnce(ctx)
	if len(poster.posted) != 1 {
		t.Fatalf("expected 1 upload, got %d", len(poster.posted))
	}
	got := poster.posted[0]
	if got.fix.Latitude != 4 || got.heading != 20 {
		t.Fatalf("stale values uploaded: %+v", got)
	}
}

func TestTelemetryIgnoresMalformedSensorPayloads(t *testing.T) {
	t.Parallel()
	poster := &fakeTelemetryPoster{}
	svc := NewTelemetry(poster, nil, time.Second, time.Second, zerolog.Nop())

	ctx, cancel := testutil.Context(t)
	defer cancel()

	svc.handleNavSat(&nats.Msg{Data: []byte(`{garbage`)})
	svc.handleHeading(&nats.Msg{Data: []byte(`{"degrees": 45}`)})
	svc.uploadOnce(ctx)
	if len(poster.posted) != 0 {
		t.Fatal("malformed navsat payload should not count as a fix")
	}
}

func TestTelemetryCachesLastUpload(t *testing.T) {
	t.Parallel()
	poster := &fakeTelemetryPoster{}
	cache := newFakeCache()
	ttl := 2 * time.Second
	svc := NewTelemetry(poster, cache, ttl, time.Second, zerolog.Nop())

	ctx, cancel := testutil.Context(t)
	defer cancel()

	svc.handleNavSat(&nats.Msg{Data: []byte(`{"latitude": 38.149, "longitude": -76.432, "altitude": 30.48}`)})
	svc.handleHeading(&nats.Msg{Data: []byte(`{"degrees": 90}`)})
	svc.uploadOnce(ctx)

	entry, ok := cache.entries[cacheKeyTelemetry]
	if !ok {
		t.Fatal("telemetry was not cached")
	}
	if entry.ttl != ttl {
		t.Fatalf("expected ttl %v, got %v", ttl, entry.ttl)
	}
}
