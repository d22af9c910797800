// Package patterns identifies attack patterns among anomalous flows and
// derives per-flow threat scores and severities.
package patterns

import (
	"github.com/montanaflynn/stats"

	"FlowScope/internal/model"
)

// Percentile above which an anomalous flow counts as an outlier for the
// rate and volume based patterns.
const outlierPercentile = 95

// PortScanFinding records one flow touching suspiciously many ports.
type PortScanFinding struct {
	Src            string `json:"src"`
	Dst            string `json:"dst"`
	UniqueDstPorts uint64 `json:"unique_dst_ports"`
}

// DDoSFinding records one flow with an outlier packet rate.
type DDoSFinding struct {
	Src      string  `json:"src"`
	Dst      string  `json:"dst"`
	PktRate  float64 `json:"pkt_rate"`
	PktCount uint64  `json:"pkt_count"`
}

// ExfilFinding records one flow with an outlier byte volume.
type ExfilFinding struct {
	Src       string  `json:"src"`
	Dst       string  `json:"dst"`
	ByteCount uint64  `json:"byte_count"`
	Duration  float64 `json:"duration"`
}

// Report lists the flows matching each known anomaly pattern.
type Report struct {
	PortScans     []PortScanFinding `json:"port_scan"`
	DDoSSuspects  []DDoSFinding     `json:"ddos_suspect"`
	Exfiltrations []ExfilFinding    `json:"data_exfiltration"`
}

// Detect scans the anomalous flows of a batch for known patterns. A batch
// without anomalies yields a report with empty lists, never an error.
func Detect(flows []model.FlowRecord) *Report {
	report := &Report{
		PortScans:     []PortScanFinding{},
		DDoSSuspects:  []DDoSFinding{},
		Exfiltrations: []ExfilFinding{},
	}

	var anomalies []*model.FlowRecord
	for i := range flows {
		if flows[i].IsAnomaly {
			anomalies = append(anomalies, &flows[i])
		}
	}
	if len(anomalies) == 0 {
		return report
	}

	var pktRates, byteCounts []float64
	for _, f := range anomalies {
		if f.PktRate != nil {
			pktRates = append(pktRates, *f.PktRate)
		}
		if f.ByteCount != nil {
			byteCounts = append(byteCounts, float64(*f.ByteCount))
		}
	}
	rateThreshold, haveRates := percentile(pktRates)
	byteThreshold, haveBytes := percentile(byteCounts)

	for _, f := range anomalies {
		if f.UniqueDstPorts > 10 {
			report.PortScans = append(report.PortScans, PortScanFinding{
				Src:            f.Src,
				Dst:            f.Dst,
				UniqueDstPorts: f.UniqueDstPorts,
			})
		}
		if haveRates && f.PktRate != nil && *f.PktRate >= rateThreshold {
			finding := DDoSFinding{Src: f.Src, Dst: f.Dst, PktRate: *f.PktRate}
			if f.PktCount != nil {
				finding.PktCount = *f.PktCount
			}
			report.DDoSSuspects = append(report.DDoSSuspects, finding)
		}
		if haveBytes && f.ByteCount != nil && float64(*f.ByteCount) >= byteThreshold {
			finding := ExfilFinding{Src: f.Src, Dst: f.Dst, ByteCount: *f.ByteCount}
			if f.Duration != nil {
				finding.Duration = *f.Duration
			}
			report.Exfiltrations = append(report.Exfiltrations, finding)
		}
	}
	return report
}

// percentile returns the batch outlier threshold for a metric, reporting
// false when no flow carried the metric.
func percentile(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	p, err := stats.Percentile(values, outlierPercentile)
	if err != nil {
		return 0, false
	}
	return p, true
}
