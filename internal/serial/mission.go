package serial

import (
	"time"

	"github.com/skyhawk-robotics/interop-bridge/internal/geom"
	"github.com/skyhawk-robotics/interop-bridge/internal/wire"
)

// Waypoint markers never expire and render as small points.
const waypointScale = 0.1

// MissionFromWire decomposes one mission record into the six vehicle-side
// objects, all sharing the caller's frame and stamp.
func MissionFromWire(m wire.Mission, frame string, stamp time.Time) (geom.Mission, error) {
	header := geom.Header{FrameID: frame, Stamp: stamp}

	if m.FlyZones == nil {
		return geom.Mission{}, &SchemaError{Field: "fly_zones"}
	}
	if m.SearchGridPoints == nil {
		return geom.Mission{}, &SchemaError{Field: "search_grid_points"}
	}
	if m.MissionWaypoints == nil {
		return geom.Mission{}, &SchemaError{Field: "mission_waypoints"}
	}
	if m.AirDropPos == nil {
		return geom.Mission{}, &SchemaError{Field: "air_drop_pos"}
	}
	if m.OffAxisTargetPos == nil {
		return geom.Mission{}, &SchemaError{Field: "off_axis_target_pos"}
	}
	if m.EmergentLastKnownPos == nil {
		return geom.Mission{}, &SchemaError{Field: "emergent_last_known_pos"}
	}

	flyzones, err := flyZonesFromWire(m.FlyZones, header)
	if err != nil {
		return geom.Mission{}, err
	}
	searchGrid, err := polygonFromWire(m.SearchGridPoints, header)
	if err != nil {
		return geom.Mission{}, err
	}
	waypoints, err := waypointsFromWire(m.MissionWaypoints, header)
	if err != nil {
		return geom.Mission{}, err
	}
	airDrop, err := pointFromWire(*m.AirDropPos, header)
	if err != nil {
		return geom.Mission{}, err
	}
	offAxis, err := pointFromWire(*m.OffAxisTargetPos, header)
	if err != nil {
		return geom.Mission{}, err
	}
	emergent, err := pointFromWire(*m.EmergentLastKnownPos, header)
	if err != nil {
		return geom.Mission{}, err
	}

	return geom.Mission{
		ID:                   m.ID,
		Active:               m.Active,
		FlyZones:             flyzones,
		SearchGrid:           searchGrid,
		Waypoints:            waypoints,
		AirDropPos:           airDrop,
		OffAxisTargetPos:     offAxis,
		EmergentLastKnownPos: emergent,
	}, nil
}

func flyZonesFromWire(zones []wire.FlyZone, header geom.Header) (geom.FlyZoneArray, error) {
	out := geom.FlyZoneArray{Zones: make([]geom.FlyZone, 0, len(zones))}
	for _, zone := range zones {
		fz := geom.FlyZone{
			Zone:   geom.PolygonStamped{Header: header},
			MinAlt: FeetToMeters(zone.AltitudeMSLMin),
			MaxAlt: FeetToMeters(zone.AltitudeMSLMax),
		}
		for _, pt := range zone.BoundaryPoints {
			easting, northing, err := Project(pt.Latitude, pt.Longitude)
			if err != nil {
				return geom.FlyZoneArray{}, err
			}
			fz.Zone.Points = append(fz.Zone.Points, geom.Point{X: easting, Y: northing})
		}
		out.Zones = append(out.Zones, fz)
	}
	return out, nil
}

func polygonFromWire(points []wire.Waypoint, header geom.Header) (geom.PolygonStamped, error) {
	polygon := geom.PolygonStamped{Header: header}
	for _, pt := range points {
		easting, northing, err := Project(pt.Latitude, pt.Longitude)
		if err != nil {
			return geom.PolygonStamped{}, err
		}
		polygon.Points = append(polygon.Points, geom.Point{
			X: easting,
			Y: northing,
			Z: FeetToMeters(pt.AltitudeMSL),
		})
	}
	return polygon, nil
}

func waypointsFromWire(points []wire.Waypoint, header geom.Header) (geom.Marker, error) {
	marker := geom.Marker{
		Header: header,
		NS:     "waypoints",
		Type:   geom.MarkerPoints,
		Scale:  geom.Vector3{X: waypointScale, Y: waypointScale, Z: waypointScale},
	}
	for _, pt := range points {
		easting, northing, err := Project(pt.Latitude, pt.Longitude)
		if err != nil {
			return geom.Marker{}, err
		}
		marker.Points = append(marker.Points, geom.Point{
			X: easting,
			Y: northing,
			Z: FeetToMeters(pt.AltitudeMSL),
		})
	}
	return marker, nil
}

func pointFromWire(pt wire.LatLon, header geom.Header) (geom.PointStamped, error) {
	easting, northing, err := Project(pt.Latitude, pt.Longitude)
	if err != nil {
		return geom.PointStamped{}, err
	}
	return geom.PointStamped{
		Header: header,
		Point:  geom.Point{X: easting, Y: northing},
	}, nil
}
