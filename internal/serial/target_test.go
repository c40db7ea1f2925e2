package serial

import (
	"encoding/json"
	"testing"

	"github.com/skyhawk-robotics/interop-bridge/internal/geom"
	"github.com/skyhawk-robotics/interop-bridge/internal/wire"
)

func TestTargetRoundTrip(t *testing.T) {
	t.Parallel()
	original := geom.Target{
		Type:              geom.TargetStandard,
		Latitude:          38.1478,
		Longitude:         -76.4275,
		Orientation:       geom.North,
		Shape:             geom.ShapeStar,
		BackgroundColor:   geom.ColorOrange,
		Alphanumeric:      "C",
		AlphanumericColor: geom.ColorBlack,
		Description:       "",
		Autonomous:        false,
	}

	raw, err := json.Marshal(TargetToWire(original))
	if err != nil {
		t.Fatal(err)
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{
		"type", "latitude", "longitude", "orientation", "shape",
		"background_color", "alphanumeric", "alphanumeric_color",
		"description", "autonomous",
	} {
		if _, ok := doc[key]; !ok {
			t.Fatalf("serialized target missing %q: %s", key, raw)
		}
	}
	if doc["type"] != "standard" || doc["orientation"] != "n" || doc["shape"] != "star" {
		t.Fatalf("enumeration fields not unwrapped: %s", raw)
	}

	var patch wire.TargetPatch
	if err := json.Unmarshal(raw, &patch); err != nil {
		t.Fatal(err)
	}
	if got := TargetFromWire(patch); got != original {
		t.Fatalf("round trip mismatch:\n  got  %+v\n  want %+v", got, original)
	}
}

func TestTargetFromWirePermissiveDecode(t *testing.T) {
	t.Parallel()
	raw := `{
		"id": 3,
		"user": 1,
		"type": null,
		"latitude": 38.1478,
		"some_future_key": {"nested": true}
	}`
	var patch wire.TargetPatch
	if err := json.Unmarshal([]byte(raw), &patch); err != nil {
		t.Fatal(err)
	}

	target := TargetFromWire(patch)
	if target.ID != 3 {
		t.Fatalf("expected id 3, got %d", target.ID)
	}
	if target.Latitude != 38.1478 {
		t.Fatalf("expected latitude set, got %v", target.Latitude)
	}
	if target.Type != "" {
		t.Fatalf("null field should keep its default, got %q", target.Type)
	}
	if target.Shape != "" || target.Autonomous {
		t.Fatalf("missing fields should keep defaults: %+v", target)
	}
}
