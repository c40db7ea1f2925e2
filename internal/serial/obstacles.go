package serial

import (
	"time"

	"github.com/skyhawk-robotics/interop-bridge/internal/geom"
	"github.com/skyhawk-robotics/interop-bridge/internal/wire"
)

// All obstacle markers share one display color.
var obstacleColor = geom.ColorRGBA{R: 218.0 / 255.0, G: 41.0 / 255.0, B: 28.0 / 255.0, A: 1.0}

// ObstaclesFromWire decodes the obstacles payload into sphere markers for
// moving obstacles and cylinder markers for stationary ones. A missing list
// yields an empty slice, never an error.
func ObstaclesFromWire(o wire.Obstacles, frame string, lifetime time.Duration, stamp time.Time) (moving, stationary []geom.Marker, err error) {
	header := geom.Header{FrameID: frame, Stamp: stamp}

	moving = make([]geom.Marker, 0, len(o.Moving))
	for _, obj := range o.Moving {
		easting, northing, err := Project(obj.Latitude, obj.Longitude)
		if err != nil {
			return nil, nil, err
		}
		radius := FeetToMeters(obj.SphereRadius)
		moving = append(moving, geom.Marker{
			Header:   header,
			NS:       "moving_obstacles",
			Type:     geom.MarkerSphere,
			Color:    obstacleColor,
			Lifetime: lifetime,
			Scale:    geom.Vector3{X: radius, Y: radius, Z: radius},
			Position: geom.Point{
				X: easting,
				Y: northing,
				Z: FeetToMeters(obj.AltitudeMSL),
			},
		})
	}

	stationary = make([]geom.Marker, 0, len(o.Stationary))
	for _, obj := range o.Stationary {
		easting, northing, err := Project(obj.Latitude, obj.Longitude)
		if err != nil {
			return nil, nil, err
		}
		radius := FeetToMeters(obj.CylinderRadius)
		height := FeetToMeters(obj.CylinderHeight)
		stationary = append(stationary, geom.Marker{
			Header:   header,
			NS:       "stationary_obstacles",
			Type:     geom.MarkerCylinder,
			Color:    obstacleColor,
			Lifetime: lifetime,
			Scale:    geom.Vector3{X: radius, Y: radius, Z: height},
			// Cylinders are positioned at their vertical center, not
			// their base.
			Position: geom.Point{X: easting, Y: northing, Z: height / 2},
		})
	}

	return moving, stationary, nil
}
