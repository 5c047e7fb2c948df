// Package qibla gives the direction and distance from a point to the Kaaba.
package qibla

import (
	"math"

	"github.com/soniakeys/meeus/v3/globe"
	"github.com/soniakeys/unit"

	"github.com/smokyabdulrahman/prayer-engine/internal/prayertime"
)

// Kaaba is the position of the Kaaba in Makkah.
var Kaaba = prayertime.Coordinate{Latitude: 21.4225, Longitude: 39.8262}

// Result holds the initial great-circle bearing in degrees clockwise from
// true north, and the distance along the Earth's surface in kilometres.
type Result struct {
	Bearing    float64
	DistanceKm float64
}

// Direction returns the qibla from c. At the Kaaba itself the bearing is 0.
func Direction(c prayertime.Coordinate) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}

	phi1 := c.Latitude * math.Pi / 180
	phi2 := Kaaba.Latitude * math.Pi / 180
	dl := (Kaaba.Longitude - c.Longitude) * math.Pi / 180

	y := math.Sin(dl) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dl)
	bearing := math.Mod(math.Atan2(y, x)*180/math.Pi+360, 360)

	// globe measures longitude positively westward.
	from := globe.Coord{Lat: unit.AngleFromDeg(c.Latitude), Lon: unit.AngleFromDeg(-c.Longitude)}
	to := globe.Coord{Lat: unit.AngleFromDeg(Kaaba.Latitude), Lon: unit.AngleFromDeg(-Kaaba.Longitude)}
	dist := 0.0
	if from != to {
		dist = globe.Earth76.Distance(from, to)
	}

	return Result{Bearing: bearing, DistanceKm: dist}, nil
}

// Compass returns the 16-point compass name of a bearing, e.g. "NE".
func Compass(bearing float64) string {
	points := [...]string{"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE", "S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW"}
	i := int(math.Round(math.Mod(bearing+360, 360)/22.5)) % len(points)
	return points[i]
}
