package analytics

import "FlowScope/internal/model"

// Summarize computes the scalar statistics over one batch of flows.
// Rate and duration means are taken only over flows where the field is
// present; a missing value is excluded from both numerator and denominator
// rather than coerced to 0.
func Summarize(flows []model.FlowRecord) model.SummaryStats {
	s := model.SummaryStats{TotalFlows: len(flows)}

	srcSet := make(map[string]struct{})
	dstSet := make(map[string]struct{})
	for i := range flows {
		f := &flows[i]
		if f.IsAnomaly {
			s.TotalAnomalies++
		}
		if f.ByteCount != nil {
			s.TotalBytes += *f.ByteCount
		}
		if f.Src != "" {
			srcSet[f.Src] = struct{}{}
		}
		if f.Dst != "" {
			dstSet[f.Dst] = struct{}{}
		}
	}
	s.UniqueSrcIPs = len(srcSet)
	s.UniqueDstIPs = len(dstSet)

	if s.TotalFlows > 0 {
		s.AnomalyRatio = roundTo(float64(s.TotalAnomalies)/float64(s.TotalFlows)*100, 2)
	}

	s.AvgPktRate = roundTo(meanPresent(flows, func(f *model.FlowRecord) *float64 { return f.PktRate }), 3)
	s.AvgByteRate = roundTo(meanPresent(flows, func(f *model.FlowRecord) *float64 { return f.ByteRate }), 3)
	s.AvgPayloadSize = roundTo(meanPresent(flows, func(f *model.FlowRecord) *float64 { return f.AvgPayloadSize }), 2)
	s.AvgDuration = roundTo(meanPresent(flows, func(f *model.FlowRecord) *float64 { return f.Duration }), 3)

	return s
}

// meanPresent averages the selected field over flows that carry it.
// An empty eligible set yields 0.
func meanPresent(flows []model.FlowRecord, field func(*model.FlowRecord) *float64) float64 {
	sum := 0.0
	n := 0
	for i := range flows {
		if v := field(&flows[i]); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
