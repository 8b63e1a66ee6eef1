package ephem

import "math"

func normalize360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a -= 360
	}
	return a
}

func cosDeg(deg float64) float64 {
	return math.Cos(deg * math.Pi / 180)
}
