package analytics

import (
	"math"

	"FlowScope/internal/model"
)

// VolumeField selects the numeric flow field an extremum is taken over.
type VolumeField string

const (
	FieldPktCount  VolumeField = "pkt_count"
	FieldByteCount VolumeField = "byte_count"
)

// MaxFlow returns a copy of the flow with the maximal value of the given
// field. Missing values count as 0. Ties keep the first flow in input order.
// The second return value is false when the input is empty.
func MaxFlow(flows []model.FlowRecord, field VolumeField) (model.FlowRecord, bool) {
	return extreme(flows, field, false)
}

// MinFlow returns a copy of the flow with the minimal value of the given
// field. Missing values count as +Inf, so a flow lacking the field is never
// reported as minimal. Ties keep the first flow in input order.
func MinFlow(flows []model.FlowRecord, field VolumeField) (model.FlowRecord, bool) {
	return extreme(flows, field, true)
}

func extreme(flows []model.FlowRecord, field VolumeField, min bool) (model.FlowRecord, bool) {
	if len(flows) == 0 {
		return model.FlowRecord{}, false
	}

	best := 0
	bestVal := volumeValue(&flows[0], field, min)
	for i := 1; i < len(flows); i++ {
		v := volumeValue(&flows[i], field, min)
		// Strict comparison keeps the first-encountered flow on ties.
		if (min && v < bestVal) || (!min && v > bestVal) {
			best, bestVal = i, v
		}
	}
	return flows[best], true
}

// volumeValue reads the selected field with the direction-specific default
// for missing values: 0 for max so absent fields never win, +Inf for min.
func volumeValue(f *model.FlowRecord, field VolumeField, min bool) float64 {
	var v *uint64
	if field == FieldByteCount {
		v = f.ByteCount
	} else {
		v = f.PktCount
	}
	if v == nil {
		if min {
			return math.Inf(1)
		}
		return 0
	}
	return float64(*v)
}
