// Package prayertime computes the daily prayer schedule for a date,
// coordinate and calculation method.
//
// The engine works in decimal hours of the requested UTC offset, anchored
// on the local meridian transit of the Sun, and only converts to wall-clock
// time at the end. It never reads the system clock.
package prayertime

import (
	"fmt"
	"math"
	"time"

	"github.com/smokyabdulrahman/prayer-engine/internal/astro"
	"github.com/smokyabdulrahman/prayer-engine/internal/method"
)

// MaxOffsetMinutes bounds the UTC offsets accepted by Compute.
const MaxOffsetMinutes = 18 * 60

// Compute returns the schedule for date at coord under m, with wall-clock
// times in a fixed zone tzOffsetMinutes east of UTC.
//
// Fajr and Isha fall back to m.HighLatRule when their twilight angle is
// never reached. Sunrise, Maghrib and Asr have no fallback; when the Sun
// does not cross the horizon, or stays below it at noon, the result is a
// *NoSolutionError.
func Compute(date Date, coord Coordinate, m method.CalculationMethod, tzOffsetMinutes int) (Schedule, error) {
	if err := date.Validate(); err != nil {
		return Schedule{}, err
	}
	if err := coord.Validate(); err != nil {
		return Schedule{}, err
	}
	if err := m.Validate(); err != nil {
		return Schedule{}, fmt.Errorf("%w: %v", ErrInvalidMethod, err)
	}
	if tzOffsetMinutes < -MaxOffsetMinutes || tzOffsetMinutes > MaxOffsetMinutes {
		return Schedule{}, &ValidationError{
			Field:  "time zone offset",
			Value:  fmt.Sprintf("%d minutes", tzOffsetMinutes),
			Reason: "must be within ±18 hours",
			kind:   ErrInvalidTimeZone,
		}
	}

	hours, adjusted, err := solveDay(date, coord, m, float64(tzOffsetMinutes)/60)
	if err != nil {
		return Schedule{}, err
	}

	zone := time.FixedZone(offsetName(tzOffsetMinutes), tzOffsetMinutes*60)
	midnight := date.Midnight(zone)

	minutes := roundMinutes(hours)

	s := Schedule{Date: date, Coordinate: coord, Method: m}
	for _, k := range Kinds {
		s.Events[k] = Event{
			Kind:      k,
			Athan:     midnight.Add(time.Duration(minutes[k]) * time.Minute),
			DayOffset: int(math.Floor(minutes[k] / (24 * 60))),
			Adjusted:  adjusted[k],
		}
	}

	if err := checkOrder(s); err != nil {
		return Schedule{}, err
	}
	return s, nil
}

// ComputeIn is Compute with the UTC offset taken from loc at local noon of
// date. The returned events are expressed in loc.
func ComputeIn(date Date, coord Coordinate, m method.CalculationMethod, loc *time.Location) (Schedule, error) {
	if err := date.Validate(); err != nil {
		return Schedule{}, err
	}
	if loc == nil {
		loc = time.UTC
	}
	_, offset := time.Date(date.Year, date.Month, date.Day, 12, 0, 0, 0, loc).Zone()

	s, err := Compute(date, coord, m, offset/60)
	if err != nil {
		return Schedule{}, err
	}
	return s.In(loc), nil
}

// solveDay returns the decimal hours of each event, measured from midnight
// of date in a zone tz hours east of UTC. Values outside [0, 24) belong to
// the neighbouring days.
func solveDay(date Date, coord Coordinate, m method.CalculationMethod, tz float64) (hours [len(Kinds)]float64, adjusted [len(Kinds)]bool, err error) {
	lat, lon := coord.Latitude, coord.Longitude

	// Evaluate the Sun at the local meridian transit rather than at 12h UT.
	jd := astro.JulianDay(date.Year, date.Month, date.Day) + 0.5 - lon/360
	sun := astro.SolarPosition(jd)
	dec := sun.Declination

	dhuhr := 12 + tz - lon/15 - sun.EquationOfTime/60
	hours[Dhuhr] = dhuhr

	var missing []Kind

	hRise, ok := astro.HourAngle(lat, dec, astro.SunriseDepression)
	if !ok {
		missing = append(missing, Sunrise, Maghrib)
	}
	sunrise := dhuhr - hRise/15
	sunset := dhuhr + hRise/15
	hours[Sunrise] = sunrise
	hours[Maghrib] = sunset

	if el, ok := astro.AsrElevation(lat, dec, float64(m.AsrFactor)); ok {
		if hAsr, ok := astro.HourAngle(lat, dec, -el); ok {
			hours[Asr] = dhuhr + hAsr/15
		} else {
			missing = append(missing, Asr)
		}
	} else {
		missing = append(missing, Asr)
	}

	var needFajr, needIsha bool
	if hFajr, ok := astro.HourAngle(lat, dec, m.FajrAngle); ok {
		hours[Fajr] = dhuhr - hFajr/15
	} else {
		needFajr = true
	}

	switch {
	case m.UsesInterval():
		hours[Isha] = sunset + float64(m.IshaInterval)/60
	default:
		if hIsha, ok := astro.HourAngle(lat, dec, m.IshaAngle); ok {
			hours[Isha] = dhuhr + hIsha/15
		} else {
			needIsha = true
		}
	}

	// The fallback rules are defined relative to sunrise and sunset, so they
	// cannot help when those are missing too.
	horizonOK := !containsKind(missing, Sunrise)
	if (needFajr || needIsha) && (m.HighLatRule == method.None || !horizonOK) {
		if needFajr {
			missing = append(missing, Fajr)
		}
		if needIsha {
			missing = append(missing, Isha)
		}
	} else if needFajr || needIsha {
		night := 24 - (sunset - sunrise)
		if needFajr {
			hours[Fajr] = sunrise - m.HighLatRule.NightPortion(m.FajrAngle)*night
			adjusted[Fajr] = true
		}
		if needIsha {
			hours[Isha] = sunset + m.HighLatRule.NightPortion(m.IshaAngle)*night
			adjusted[Isha] = true
		}
	}

	if len(missing) > 0 {
		return hours, adjusted, &NoSolutionError{
			Kinds:      sortKinds(missing),
			Date:       date,
			Coordinate: coord,
			Rule:       m.HighLatRule,
		}
	}
	return hours, adjusted, nil
}

// roundMinutes rounds each event to the nearest minute. Events that are in
// order but fall on the same minute are pushed apart, outward from Dhuhr, so
// that a night or a day only minutes long still yields distinct times.
// Events that are out of order before rounding are left for checkOrder.
func roundMinutes(hours [len(Kinds)]float64) (minutes [len(Kinds)]float64) {
	for k := range hours {
		minutes[k] = math.Round(hours[k] * 60)
	}
	for k := int(Dhuhr) - 1; k >= 0; k-- {
		if hours[k] < hours[k+1] && minutes[k] >= minutes[k+1] {
			minutes[k] = minutes[k+1] - 1
		}
	}
	for k := int(Dhuhr) + 1; k < len(minutes); k++ {
		if hours[k] > hours[k-1] && minutes[k] <= minutes[k-1] {
			minutes[k] = minutes[k-1] + 1
		}
	}
	return minutes
}

// checkOrder asserts that athan times strictly increase through the
// canonical order.
func checkOrder(s Schedule) error {
	for i := 1; i < len(s.Events); i++ {
		prev, cur := s.Events[i-1], s.Events[i]
		if !cur.Athan.After(prev.Athan) {
			return fmt.Errorf("%w: %s at %s is not after %s at %s on %s",
				ErrInconsistentSchedule,
				cur.Kind, cur.Athan.Format(time.RFC3339),
				prev.Kind, prev.Athan.Format(time.RFC3339),
				s.Date)
		}
	}
	return nil
}

func containsKind(list []Kind, k Kind) bool {
	for _, x := range list {
		if x == k {
			return true
		}
	}
	return false
}

func sortKinds(list []Kind) []Kind {
	out := make([]Kind, 0, len(list))
	for _, k := range Kinds {
		if containsKind(list, k) {
			out = append(out, k)
		}
	}
	return out
}

// offsetName formats a UTC offset as "UTC+03:00".
func offsetName(minutes int) string {
	sign := '+'
	if minutes < 0 {
		sign = '-'
		minutes = -minutes
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, minutes/60, minutes%60)
}
