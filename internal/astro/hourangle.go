package astro

import "math"

// SunriseDepression is the apparent depression of the Sun's centre at
// sunrise and sunset: 34' of refraction plus a 16' solar semi-diameter.
const SunriseDepression = 0.833

// HourAngle solves
//
//	cos H = (sin(-depression) - sin(lat)·sin(dec)) / (cos(lat)·cos(dec))
//
// for the hour angle H in degrees, in [0, 180]. A positive depression is
// below the horizon, a negative one is an elevation above it.
//
// ok is false when the right-hand side falls outside [-1, 1], meaning the
// Sun never reaches that altitude on this date at this latitude.
func HourAngle(lat, dec, depression float64) (h float64, ok bool) {
	denom := cosD(lat) * cosD(dec)
	if denom == 0 {
		return 0, false
	}
	c := (sinD(-depression) - sinD(lat)*sinD(dec)) / denom
	if math.IsNaN(c) || c < -1 || c > 1 {
		return 0, false
	}
	return acosD(c), true
}

// AsrElevation returns the solar elevation at which an object's shadow is
// factor times its length plus its shadow at local noon:
//
//	elevation = arccot(factor + tan|lat - dec|)
//
// ok is false when the Sun does not clear the horizon at noon, where the
// shadow ratio is undefined.
func AsrElevation(lat, dec, factor float64) (elevation float64, ok bool) {
	zenith := math.Abs(lat - dec)
	if zenith >= 90 {
		return 0, false
	}
	t := factor + tanD(zenith)
	if t <= 0 {
		return 0, false
	}
	return atanD(1 / t), true
}
