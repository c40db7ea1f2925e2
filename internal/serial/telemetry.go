package serial

import (
	"github.com/skyhawk-robotics/interop-bridge/internal/geom"
	"github.com/skyhawk-robotics/interop-bridge/internal/wire"
)

// TelemetryToWire builds an upload body from a position fix and a compass
// heading in degrees.
func TelemetryToWire(fix geom.NavSatFix, headingDeg float64) wire.Telemetry {
	return wire.Telemetry{
		Latitude:    fix.Latitude,
		Longitude:   fix.Longitude,
		AltitudeMSL: MetersToFeet(fix.Altitude),
		UASHeading:  headingDeg,
	}
}
