package patterns

import "FlowScope/internal/model"

// ThreatScore rates one flow on a 0-100 scale. Anomalous classification
// carries half the scale; high rates and port fan-out add the rest.
func ThreatScore(f *model.FlowRecord) int {
	score := 0
	if f.IsAnomaly {
		score += 50
	}
	if f.PktRate != nil && *f.PktRate > 100 {
		score += 15
	}
	if f.ByteRate != nil && *f.ByteRate > 10000 {
		score += 15
	}
	if f.UniqueDstPorts > 10 {
		score += 20
	}
	if score > 100 {
		score = 100
	}
	return score
}

// SeverityForScore maps a threat score onto the severity scale.
func SeverityForScore(score int) model.Severity {
	switch {
	case score >= 80:
		return model.SeverityCritical
	case score >= 60:
		return model.SeverityHigh
	case score >= 40:
		return model.SeverityMedium
	default:
		return model.SeverityLow
	}
}

// Enrich returns a new slice in which every flow carries a threat score and,
// where the upstream classifier left them empty, a severity and a reason.
// Explicit input severities and reasons are preserved; the input slice is
// never modified.
func Enrich(flows []model.FlowRecord) []model.FlowRecord {
	enriched := make([]model.FlowRecord, len(flows))
	copy(enriched, flows)

	// Exfiltration is judged against the batch itself: the 95th percentile
	// of byte counts across this batch's anomalous flows.
	var byteCounts []float64
	for i := range enriched {
		if enriched[i].IsAnomaly && enriched[i].ByteCount != nil {
			byteCounts = append(byteCounts, float64(*enriched[i].ByteCount))
		}
	}
	byteThreshold, haveBytes := percentile(byteCounts)

	for i := range enriched {
		f := &enriched[i]
		f.ThreatScore = ThreatScore(f)
		if f.Severity == "" {
			f.Severity = SeverityForScore(f.ThreatScore)
		}
		if f.Reason == "" {
			f.Reason = classify(f, byteThreshold, haveBytes)
		}
	}
	return enriched
}

// classify picks the most specific reason that applies to an anomalous flow.
func classify(f *model.FlowRecord, byteThreshold float64, haveBytes bool) string {
	if !f.IsAnomaly {
		return model.ReasonNormal
	}
	switch {
	case f.UniqueDstPorts > 10:
		return model.ReasonPortScan
	case f.PktRate != nil && *f.PktRate > 100:
		return model.ReasonDDoSSuspect
	case haveBytes && f.ByteCount != nil && float64(*f.ByteCount) >= byteThreshold:
		return model.ReasonExfiltration
	default:
		return model.ReasonAnomaly
	}
}
