package analytics

import "FlowScope/internal/model"

// SeverityDistribution counts flows per severity. A flow without a severity
// is counted as LOW; an explicit UNKNOWN keeps its own bucket.
func SeverityDistribution(flows []model.FlowRecord) map[string]int {
	return countBy(flows, func(f *model.FlowRecord) string {
		if f.Severity == "" {
			return string(model.SeverityLow)
		}
		return string(f.Severity)
	})
}

// ProtocolDistribution counts flows per protocol label. A flow without a
// protocol is counted in the UNKNOWN bucket.
func ProtocolDistribution(flows []model.FlowRecord) map[string]int {
	return countBy(flows, func(f *model.FlowRecord) string {
		if f.Proto == "" {
			return "UNKNOWN"
		}
		return f.Proto
	})
}

// countBy builds a frequency map over the selected categorical value.
// Every flow lands in exactly one bucket; nothing is dropped.
func countBy(flows []model.FlowRecord, key func(*model.FlowRecord) string) map[string]int {
	counts := make(map[string]int)
	for i := range flows {
		counts[key(&flows[i])]++
	}
	return counts
}
