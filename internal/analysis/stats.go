package analysis

import "math"

// Percent returns n/d*100 rounded to 2 decimals, 0 when d is 0.
func Percent(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return round2(float64(n) / float64(d) * 100)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// sampleStd is the n-1 standard deviation via Welford; 0 below two values.
func sampleStd(vals []float64) float64 {
	var n int
	var mean, m2 float64
	for _, x := range vals {
		n++
		delta := x - mean
		mean += delta / float64(n)
		m2 += delta * (x - mean)
	}
	if n < 2 {
		return 0
	}
	return math.Sqrt(m2 / float64(n-1))
}
