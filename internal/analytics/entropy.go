package analytics

import (
	"math"

	"FlowScope/internal/model"
)

// Entropy computes the Shannon entropy in bits of a frequency distribution.
// Zero counts are skipped so log2 is never evaluated at 0; an empty or
// all-zero distribution has entropy 0. The result is rounded to 4 decimals
// for stable display.
func Entropy(counts []int) float64 {
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return 0
	}

	h := 0.0
	for _, c := range counts {
		if c <= 0 {
			continue
		}
		p := float64(c) / float64(total)
		h -= p * math.Log2(p)
	}
	return roundTo(h, 4)
}

// AddressEntropy computes the Shannon entropy of the flows-per-address
// distribution for one endpoint role. Higher values mean more address
// diversity in the batch.
func AddressEntropy(flows []model.FlowRecord, role Role) float64 {
	freq := make(map[string]int)
	for i := range flows {
		freq[address(&flows[i], role)]++
	}
	counts := make([]int, 0, len(freq))
	for _, c := range freq {
		counts = append(counts, c)
	}
	return Entropy(counts)
}
