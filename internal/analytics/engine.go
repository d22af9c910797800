// Package analytics implements the flow aggregation engine: pure functions
// that turn one batch of classified flows and model evaluation metrics into
// a derived report. Nothing in this package mutates its input or keeps state
// between invocations, so concurrent calls need no coordination.
package analytics

import "FlowScope/internal/model"

// Engine assembles aggregated reports. It holds only configuration, never
// data, so a single Engine is safe for concurrent use.
type Engine struct {
	topN int
}

// NewEngine creates an engine producing rankings of the given size.
// A non-positive size falls back to the default of 5.
func NewEngine(topN int) *Engine {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Engine{topN: topN}
}

// BuildReport derives the full report for one batch. The same batch always
// produces the same report; every field is recomputed per call.
func (e *Engine) BuildReport(batch *model.Batch) *model.AggregatedReport {
	flows := batch.Flows

	report := &model.AggregatedReport{
		SeverityDistribution: SeverityDistribution(flows),
		ProtocolDistribution: ProtocolDistribution(flows),
		TopSources:           TopTalkers(flows, RoleSrc, e.topN),
		TopDestinations:      TopTalkers(flows, RoleDst, e.topN),
		Summary:              Summarize(flows),
		SrcEntropy:           AddressEntropy(flows, RoleSrc),
		DstEntropy:           AddressEntropy(flows, RoleDst),
		ModelStrength:        ModelStrength(batch.ModelEvals),
	}

	if f, ok := MaxFlow(flows, FieldPktCount); ok {
		report.Extremes.MaxPktCount = &f
	}
	if f, ok := MinFlow(flows, FieldPktCount); ok {
		report.Extremes.MinPktCount = &f
	}
	if f, ok := MaxFlow(flows, FieldByteCount); ok {
		report.Extremes.MaxByteCount = &f
	}
	if f, ok := MinFlow(flows, FieldByteCount); ok {
		report.Extremes.MinByteCount = &f
	}

	return report
}
