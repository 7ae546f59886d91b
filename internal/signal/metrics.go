package signal

import "math"

// epsilon guards all near-zero divisions; metrics return 0 instead of
// NaN/Inf when a denominator falls at or below it.
const epsilon = 1e-12

// THDPercent is total harmonic distortion: the root-sum-square of all
// non-fundamental amplitudes over the fundamental, as a percentage.
func THDPercent(harmonics map[int]float64) float64 {
	i1 := harmonics[1]
	if i1 <= epsilon {
		return 0
	}
	s := 0.0
	for h, mag := range harmonics {
		if h != 1 {
			s += mag * mag
		}
	}
	return math.Sqrt(s) / i1 * 100
}

// TriplenIndexPercent is the THD formula restricted to harmonic orders
// that are non-zero multiples of 3. Triplens add arithmetically in the
// neutral conductor, so they get their own index.
func TriplenIndexPercent(harmonics map[int]float64) float64 {
	i1 := harmonics[1]
	if i1 <= epsilon {
		return 0
	}
	s := 0.0
	for h, mag := range harmonics {
		if h != 0 && h%3 == 0 {
			s += mag * mag
		}
	}
	return math.Sqrt(s) / i1 * 100
}

// HarmonicRatioPercent is a single order's amplitude as a percentage of
// the fundamental.
func HarmonicRatioPercent(harmonics map[int]float64, order int) float64 {
	i1 := harmonics[1]
	if i1 <= epsilon {
		return 0
	}
	return harmonics[order] / i1 * 100
}

// CrestFactor is peak over RMS. Elevated values indicate pulsed
// non-linear current draw.
func CrestFactor(sig []float64) float64 {
	if len(sig) == 0 {
		return 0
	}
	r := rms(sig)
	if r <= epsilon {
		return 0
	}
	peak := 0.0
	for _, v := range sig {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak / r
}

// VariabilityPercent is the coefficient of variation: population standard
// deviation over the absolute mean, as a percentage.
func VariabilityPercent(sig []float64) float64 {
	if len(sig) == 0 {
		return 0
	}
	mu := mean(sig)
	if math.Abs(mu) <= epsilon {
		return 0
	}
	return popStdDev(sig, mu) / math.Abs(mu) * 100
}

func mean(data []float64) float64 {
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

func popStdDev(data []float64, mu float64) float64 {
	sumSq := 0.0
	for _, v := range data {
		sumSq += (v - mu) * (v - mu)
	}
	return math.Sqrt(sumSq / float64(len(data)))
}

func rms(data []float64) float64 {
	sumSq := 0.0
	for _, v := range data {
		sumSq += v * v
	}
	return math.Sqrt(sumSq / float64(len(data)))
}
