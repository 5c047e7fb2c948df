// Package astro holds the astronomical building blocks of the prayer engine:
// a low-order solar ephemeris and the hour-angle equation.
//
// Everything here is a pure function of its arguments. Angles are in
// degrees unless a name says otherwise.
package astro

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// J2000 is the Julian day of the J2000.0 epoch (2000-01-01 12:00 TT).
const J2000 = 2451545.0

// SolarParameters is the per-date solar state the prayer engine needs.
type SolarParameters struct {
	Declination    float64 // degrees, positive north
	EquationOfTime float64 // minutes, apparent minus mean solar time
}

// JulianDay returns the continuous Julian day count at 0h UT of the given
// proleptic Gregorian date.
func JulianDay(year int, month time.Month, day int) float64 {
	return julian.CalendarGregorianToJD(year, int(month), float64(day))
}

// DeclinationAndEquationOfTime returns the solar parameters at 12h UT of the
// given date.
func DeclinationAndEquationOfTime(year int, month time.Month, day int) SolarParameters {
	return SolarPosition(JulianDay(year, month, day) + 0.5)
}

// SolarPosition evaluates the solar ephemeris at Julian day jd.
//
// The model is the usual low-precision one:
//
//	g   = mean anomaly of the Sun
//	q   = mean longitude of the Sun
//	L   = ecliptic longitude (q plus the equation of center)
//	eps = mean obliquity of the ecliptic
//
// It is good to about an arc-minute in declination and a few seconds in the
// equation of time between 1901 and 2099, and drifts slowly outside that.
func SolarPosition(jd float64) SolarParameters {
	d := jd - J2000

	g := normalize360(357.529 + 0.98560028*d)
	q := normalize360(280.459 + 0.98564736*d)
	L := normalize360(q + 1.915*sinD(g) + 0.020*sinD(2*g))
	eps := 23.439 - 0.00000036*d

	dec := asinD(sinD(eps) * sinD(L))

	// Right ascension in hours, kept in the same quadrant as L.
	ra := atan2D(cosD(eps)*sinD(L), cosD(L)) / 15
	ra = normalize24(ra)

	eqt := q/15 - ra
	eqt = eqt - 24*math.Round(eqt/24)

	return SolarParameters{
		Declination:    dec,
		EquationOfTime: eqt * 60,
	}
}
