package serial

import (
	"github.com/skyhawk-robotics/interop-bridge/internal/geom"
	"github.com/skyhawk-robotics/interop-bridge/internal/wire"
)

// TargetToWire emits the fixed schema field set. Categorical fields are
// unwrapped to their underlying scalars; everything else is copied by value.
func TargetToWire(t geom.Target) wire.Target {
	return wire.Target{
		Type:              string(t.Type),
		Latitude:          t.Latitude,
		Longitude:         t.Longitude,
		Orientation:       string(t.Orientation),
		Shape:             string(t.Shape),
		BackgroundColor:   string(t.BackgroundColor),
		Alphanumeric:      t.Alphanumeric,
		AlphanumericColor: string(t.AlphanumericColor),
		Description:       t.Description,
		Autonomous:        t.Autonomous,
	}
}

// TargetFromWire merges a patch into a zero-valued target: null or absent
// fields keep their defaults. This is a partial-update contract, not a
// validator; values are not range-checked.
func TargetFromWire(p wire.TargetPatch) geom.Target {
	var t geom.Target
	if p.ID != nil {
		t.ID = *p.ID
	}
	if p.Type != nil {
		t.Type = geom.TargetType(*p.Type)
	}
	if p.Latitude != nil {
		t.Latitude = *p.Latitude
	}
	if p.Longitude != nil {
		t.Longitude = *p.Longitude
	}
	if p.Orientation != nil {
		t.Orientation = geom.Orientation(*p.Orientation)
	}
	if p.Shape != nil {
		t.Shape = geom.Shape(*p.Shape)
	}
	if p.BackgroundColor != nil {
		t.BackgroundColor = geom.Color(*p.BackgroundColor)
	}
	if p.Alphanumeric != nil {
		t.Alphanumeric = *p.Alphanumeric
	}
	if p.AlphanumericColor != nil {
		t.AlphanumericColor = geom.Color(*p.AlphanumericColor)
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Autonomous != nil {
		t.Autonomous = *p.Autonomous
	}
	return t
}
