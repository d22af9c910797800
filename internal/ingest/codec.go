// Package ingest carries flow batches between services. The upstream
// contract is schema-free JSON, so the wire envelope is a protobuf Struct
// and decoding applies the defaulting rules instead of rejecting input.
package ingest

import (
	"FlowScope/internal/model"
)

// DecodeBatch converts a duck-typed batch envelope into a typed Batch.
// Unknown keys (statistics, patterns, alerts blocks from the upstream
// service) are ignored; malformed entries degrade to defaults, never errors.
func DecodeBatch(raw map[string]any) *model.Batch {
	batch := &model.Batch{ModelEvals: make(map[string]model.ModelEvalStats)}

	if flows, ok := raw["flows"].([]any); ok {
		batch.Flows = make([]model.FlowRecord, 0, len(flows))
		for _, item := range flows {
			if m, ok := item.(map[string]any); ok {
				batch.Flows = append(batch.Flows, DecodeFlow(m))
			}
		}
	}
	if evals, ok := raw["model_evaluations"].(map[string]any); ok {
		for name, item := range evals {
			if m, ok := item.(map[string]any); ok {
				batch.ModelEvals[name] = DecodeModelEval(m)
			}
		}
	}
	return batch
}

// DecodeFlow converts one duck-typed flow entry. Absent or non-numeric
// values stay nil on the pointer fields so "missing" survives decoding;
// string defaults ("unknown" addresses, LOW severity) are applied where
// the values are consumed, not here.
func DecodeFlow(m map[string]any) model.FlowRecord {
	return model.FlowRecord{
		Src:            asString(m, "src"),
		Dst:            asString(m, "dst"),
		Proto:          asString(m, "proto"),
		PktCount:       asCount(m, "pkt_count"),
		ByteCount:      asCount(m, "byte_count"),
		Duration:       asOptFloat(m, "duration"),
		PktRate:        asOptFloat(m, "pkt_rate"),
		ByteRate:       asOptFloat(m, "byte_rate"),
		AvgPayloadSize: asOptFloat(m, "avg_payload_size"),
		UniqueSrcPorts: valueOrZero(asCount(m, "unique_src_ports")),
		UniqueDstPorts: valueOrZero(asCount(m, "unique_dst_ports")),
		Severity:       model.Severity(asString(m, "severity")),
		Reason:         asString(m, "reason"),
		Confidence:     asFloat(m, "confidence"),
		AnomalyScore:   asFloat(m, "anomaly_score"),
		IsAnomaly:      asBool(m, "is_anomaly"),
		ThreatScore:    int(asFloat(m, "threat_score")),
	}
}

// DecodeModelEval converts one duck-typed model evaluation entry.
func DecodeModelEval(m map[string]any) model.ModelEvalStats {
	return model.ModelEvalStats{
		InferenceTimeSec:   asFloat(m, "inference_time_sec"),
		AnomaliesDetected:  int(asFloat(m, "anomalies_detected")),
		PseudoAccuracyPct:  asOptFloat(m, "pseudo_accuracy_pct"),
		PseudoPrecisionPct: asOptFloat(m, "pseudo_precision_pct"),
		StabilityPct:       asOptFloat(m, "stability_pct"),
		MeanConfidence:     asFloat(m, "mean_confidence"),
		ScoreVariance:      asFloat(m, "score_variance"),
	}
}

func asString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// asFloat reads a numeric field, 0 when absent or not a number.
// Both JSON and protobuf Struct decoding deliver numbers as float64.
func asFloat(m map[string]any, key string) float64 {
	f, _ := m[key].(float64)
	return f
}

// asOptFloat reads a numeric field, nil when absent or not a number.
func asOptFloat(m map[string]any, key string) *float64 {
	f, ok := m[key].(float64)
	if !ok {
		return nil
	}
	return &f
}

// asCount reads a non-negative integer field, nil when absent or malformed.
func asCount(m map[string]any, key string) *uint64 {
	f, ok := m[key].(float64)
	if !ok || f < 0 {
		return nil
	}
	v := uint64(f)
	return &v
}

func asBool(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func valueOrZero(v *uint64) uint64 {
	if v == nil {
		return 0
	}
	return *v
}
