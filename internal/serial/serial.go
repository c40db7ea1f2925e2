// Package serial converts between the interoperability wire schema and the
// vehicle data model. It performs no I/O; callers supply the frame and
// generation stamp attached to decoded geometry.
package serial

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/im7mortal/UTM"
	"github.com/relvacode/iso8601"
)

// SchemaError reports a required field missing from a decoded payload.
type SchemaError struct {
	Field string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// ErrImageConversion wraps raster encode/decode failures.
var ErrImageConversion = errors.New("image conversion failed")

const metersPerFoot = 0.3048

// FeetToMeters converts a distance from feet to meters.
func FeetToMeters(ft float64) float64 {
	return ft * metersPerFoot
}

// MetersToFeet converts a distance from meters to feet.
func MetersToFeet(m float64) float64 {
	return m / metersPerFoot
}

// Project converts a geodetic position into planar UTM easting/northing
// meters. The inverse is never needed: derived coordinates are not uploaded.
func Project(lat, lon float64) (easting, northing float64, err error) {
	easting, northing, _, _, err = UTM.FromLatLon(lat, lon, lat >= 0)
	if err != nil {
		return 0, 0, fmt.Errorf("project %f,%f: %w", lat, lon, err)
	}
	return easting, northing, nil
}

// ParseISO8601 parses a server timestamp. Times without an explicit offset
// are UTC. The server emits both 'T'- and space-separated forms.
// Sub-microsecond digits are dropped: the upstream schema never carries
// finer precision and downstream consumers rely on the whole-microsecond
// ceiling.
func ParseISO8601(s string) (time.Time, error) {
	if len(s) > 10 && s[10] == ' ' {
		s = strings.Replace(s, " ", "T", 1)
	}
	t, err := iso8601.ParseString(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t.Truncate(time.Microsecond), nil
}
