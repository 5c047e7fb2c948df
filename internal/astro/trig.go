package astro

import "math"

func deg2rad(d float64) float64 { return d * math.Pi / 180 }

func rad2deg(r float64) float64 { return r * 180 / math.Pi }

func sinD(deg float64) float64 { return math.Sin(deg2rad(deg)) }

func cosD(deg float64) float64 { return math.Cos(deg2rad(deg)) }

func tanD(deg float64) float64 { return math.Tan(deg2rad(deg)) }

func asinD(x float64) float64 { return rad2deg(math.Asin(x)) }

func acosD(x float64) float64 { return rad2deg(math.Acos(x)) }

func atanD(x float64) float64 { return rad2deg(math.Atan(x)) }

func atan2D(y, x float64) float64 { return rad2deg(math.Atan2(y, x)) }

func normalize360(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

func normalize24(h float64) float64 {
	h = math.Mod(h, 24)
	if h < 0 {
		h += 24
	}
	return h
}
