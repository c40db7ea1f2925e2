// Package geom holds the vehicle-side data model the bridge translates
// interoperability payloads into. All planar coordinates are UTM meters.
package geom

import "time"

// Header tags geometry with the coordinate frame it is expressed in and the
// time it was generated.
type Header struct {
	FrameID string    `json:"frame_id"`
	Stamp   time.Time `json:"stamp"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type PointStamped struct {
	Header Header `json:"header"`
	Point  Point  `json:"point"`
}

type PolygonStamped struct {
	Header Header  `json:"header"`
	Points []Point `json:"points"`
}

type ColorRGBA struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// MarkerType selects the geometry a Marker represents.
type MarkerType string

const (
	MarkerSphere   MarkerType = "sphere"
	MarkerCylinder MarkerType = "cylinder"
	MarkerPoints   MarkerType = "points"
)

// Marker is a transient visualization object. A zero Lifetime means the
// marker never goes stale.
type Marker struct {
	Header   Header        `json:"header"`
	NS       string        `json:"ns"`
	Type     MarkerType    `json:"type"`
	Color    ColorRGBA     `json:"color"`
	Lifetime time.Duration `json:"lifetime"`
	Scale    Vector3       `json:"scale"`
	Position Point         `json:"position"`
	Points   []Point       `json:"points,omitempty"`
}

// FlyZone is a flight boundary polygon with altitude limits in meters.
type FlyZone struct {
	Zone   PolygonStamped `json:"zone"`
	MinAlt float64        `json:"min_alt"`
	MaxAlt float64        `json:"max_alt"`
}

type FlyZoneArray struct {
	Zones []FlyZone `json:"zones"`
}

// Mission is the read-only composite decoded from one mission record.
type Mission struct {
	ID                   int64          `json:"id"`
	Active               bool           `json:"active"`
	FlyZones             FlyZoneArray   `json:"fly_zones"`
	SearchGrid           PolygonStamped `json:"search_grid"`
	Waypoints            Marker         `json:"waypoints"`
	AirDropPos           PointStamped   `json:"air_drop_pos"`
	OffAxisTargetPos     PointStamped   `json:"off_axis_target_pos"`
	EmergentLastKnownPos PointStamped   `json:"emergent_last_known_pos"`
}

// NavSatFix is a position fix from the vehicle's GPS. Altitude is MSL meters.
type NavSatFix struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude"`
}

// ServerInfo is the judge server's broadcast message and clocks.
type ServerInfo struct {
	Message     string    `json:"message"`
	MessageTime time.Time `json:"message_time"`
	ServerTime  time.Time `json:"server_time"`
}
