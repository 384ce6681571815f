package emath

import(
	"math"
	"sort"
)

// Some functions that only operate on basic types, that are useful

// https://www.sjbrown.co.uk/posts/gamma-correct-rendering/ - "linear RGB to sRGB"
// `f` is assumed to be in the range [0,1]
func GammaExpand_F64(f float64) float64 {
	if f <= 0.0031308 {
		return 12.92 * f
	}
	return 1.055 * math.Pow(f, 1.0/2.4) - 0.055
}

// Median sorts `vals` in place. An even count averages the middle
// pair. An empty slice has no median, and returns NaN.
func Median(vals []float64) float64 {
	n := len(vals)
	if n == 0 {
		return math.NaN()
	}

	sort.Float64s(vals)
	if n%2 == 1 {
		return vals[n/2]
	}
	return (vals[n/2-1] + vals[n/2]) / 2.0
}

// Clamp8 rounds to the nearest integer and clips into [0,255]. NaN maps to 0.
func Clamp8(f float64) uint8 {
	if math.IsNaN(f) || f <= 0.0 {
		return 0
	}
	if f >= 255.0 {
		return 255
	}
	return uint8(math.Round(f))
}
