package triagekit

import "math"

// Entropy computes the Shannon entropy of the sample in bits per byte,
// rounded to 4 decimals. The result is always in [0.0, 8.0]; an empty
// sample yields exactly 0.0.
//
// Callers bound the sample (see Config.EntropySampleSize): entropy for
// files larger than the bound describes the sampled prefix only.
func Entropy(data []byte) float64 {
	if len(data) == 0 {
		return 0.0
	}

	var freq [256]int
	for _, b := range data {
		freq[b]++
	}

	// H = -Σ p(x) * log2(p(x)) over buckets with p > 0
	var entropy float64
	length := float64(len(data))
	for _, count := range freq {
		if count > 0 {
			p := float64(count) / length
			entropy -= p * math.Log2(p)
		}
	}

	return math.Round(entropy*10000) / 10000
}
