// Package wire mirrors the interoperability server's JSON schema. Geodetic
// coordinates are degrees, altitudes and radii are feet, timestamps are
// ISO-8601 strings.
package wire

// LatLon is a 2D geodetic position.
type LatLon struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Waypoint is a 3D geodetic position with MSL altitude in feet.
type Waypoint struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	AltitudeMSL float64 `json:"altitude_msl"`
}

// FlyZone is one flight boundary record.
type FlyZone struct {
	AltitudeMSLMin float64  `json:"altitude_msl_min"`
	AltitudeMSLMax float64  `json:"altitude_msl_max"`
	BoundaryPoints []LatLon `json:"boundary_pts"`
}

// Mission is one record from /api/missions. The sub-object pointers
// distinguish a missing field from a present-but-zero one.
type Mission struct {
	ID                   int64      `json:"id"`
	Active               bool       `json:"active"`
	FlyZones             []FlyZone  `json:"fly_zones"`
	SearchGridPoints     []Waypoint `json:"search_grid_points"`
	MissionWaypoints     []Waypoint `json:"mission_waypoints"`
	AirDropPos           *LatLon    `json:"air_drop_pos"`
	OffAxisTargetPos     *LatLon    `json:"off_axis_target_pos"`
	EmergentLastKnownPos *LatLon    `json:"emergent_last_known_pos"`
}

// MovingObstacle is a sphere travelling along a server-defined path.
type MovingObstacle struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	AltitudeMSL  float64 `json:"altitude_msl"`
	SphereRadius float64 `json:"sphere_radius"`
}

// StationaryObstacle is a vertical cylinder rooted at ground level.
type StationaryObstacle struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	CylinderRadius float64 `json:"cylinder_radius"`
	CylinderHeight float64 `json:"cylinder_height"`
}

// Obstacles is the /api/obstacles payload. Both lists are optional.
type Obstacles struct {
	Moving     []MovingObstacle     `json:"moving_obstacles"`
	Stationary []StationaryObstacle `json:"stationary_obstacles"`
}

// Telemetry is the /api/telemetry upload body.
type Telemetry struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	AltitudeMSL float64 `json:"altitude_msl"`
	UASHeading  float64 `json:"uas_heading"`
}

// ServerInfo is the /api/server_info payload.
type ServerInfo struct {
	Message          string `json:"message"`
	MessageTimestamp string `json:"message_timestamp"`
	ServerTime       string `json:"server_time"`
}

// Target is the outbound target body. Every schema field is emitted,
// including zero values, so a PUT fully describes the submission.
type Target struct {
	Type              string  `json:"type"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	Orientation       string  `json:"orientation"`
	Shape             string  `json:"shape"`
	BackgroundColor   string  `json:"background_color"`
	Alphanumeric      string  `json:"alphanumeric"`
	AlphanumericColor string  `json:"alphanumeric_color"`
	Description       string  `json:"description"`
	Autonomous        bool    `json:"autonomous"`
}

// TargetPatch is the inbound target body. Each field is a pointer so that
// null and absent values can be told apart from zero ones; unknown keys are
// dropped by the decoder.
type TargetPatch struct {
	ID                *int64   `json:"id"`
	Type              *string  `json:"type"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	Orientation       *string  `json:"orientation"`
	Shape             *string  `json:"shape"`
	BackgroundColor   *string  `json:"background_color"`
	Alphanumeric      *string  `json:"alphanumeric"`
	AlphanumericColor *string  `json:"alphanumeric_color"`
	Description       *string  `json:"description"`
	Autonomous        *bool    `json:"autonomous"`
}

// TargetID is the /api/targets POST response.
type TargetID struct {
	ID int64 `json:"id"`
}
