package model

import "time"

// Severity is the ordinal threat level assigned to a flow.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
	SeverityUnknown  Severity = "UNKNOWN"
)

// severityRank orders severities for threshold comparisons. An unrecognized
// severity ranks below LOW so it never crosses a notification threshold.
var severityRank = map[Severity]int{
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// Rank returns the numeric order of a severity, 0 for unrecognized values.
func (s Severity) Rank() int {
	return severityRank[s]
}

// FlowRecord is one pre-classified network flow as received from the
// upstream detector. Numeric fields that may legitimately be absent are
// pointers: nil means "missing", which is never the same as present-but-zero.
type FlowRecord struct {
	Src            string   `json:"src"`
	Dst            string   `json:"dst"`
	Proto          string   `json:"proto"`
	PktCount       *uint64  `json:"pkt_count"`
	ByteCount      *uint64  `json:"byte_count"`
	Duration       *float64 `json:"duration"`
	PktRate        *float64 `json:"pkt_rate"`
	ByteRate       *float64 `json:"byte_rate"`
	AvgPayloadSize *float64 `json:"avg_payload_size"`
	UniqueSrcPorts uint64   `json:"unique_src_ports"`
	UniqueDstPorts uint64   `json:"unique_dst_ports"`
	Severity       Severity `json:"severity"`
	Reason         string   `json:"reason"`
	Confidence     float64  `json:"confidence"`
	AnomalyScore   float64  `json:"anomaly_score"`
	IsAnomaly      bool     `json:"is_anomaly"`
	ThreatScore    int      `json:"threat_score"`
}

// ModelEvalStats holds the evaluation metrics declared by one detection model.
// The three percentage metrics are nil when the model did not report them;
// they score as zero but display as "not available".
type ModelEvalStats struct {
	InferenceTimeSec   float64  `json:"inference_time_sec"`
	AnomaliesDetected  int      `json:"anomalies_detected"`
	PseudoAccuracyPct  *float64 `json:"pseudo_accuracy_pct"`
	PseudoPrecisionPct *float64 `json:"pseudo_precision_pct"`
	StabilityPct       *float64 `json:"stability_pct"`
	MeanConfidence     float64  `json:"mean_confidence"`
	ScoreVariance      float64  `json:"score_variance"`
}

// Batch is one engine input: the flows of a single upload together with the
// evaluation metrics of every model that classified them.
type Batch struct {
	Flows      []FlowRecord              `json:"flows"`
	ModelEvals map[string]ModelEvalStats `json:"model_evaluations"`
}

// AddressWeight is one entry of a top-talker ranking.
type AddressWeight struct {
	Address string `json:"address"`
	Weight  uint64 `json:"weight"`
}

// ExtremeFlows references the flows holding the extreme values of the two
// volume fields. A nil entry means the batch was empty.
type ExtremeFlows struct {
	MaxPktCount  *FlowRecord `json:"max_pkt_count"`
	MinPktCount  *FlowRecord `json:"min_pkt_count"`
	MaxByteCount *FlowRecord `json:"max_byte_count"`
	MinByteCount *FlowRecord `json:"min_byte_count"`
}

// SummaryStats holds the scalar statistics computed over one batch.
// Percentages are 0-100 floats, byte counts raw integers.
type SummaryStats struct {
	TotalFlows     int     `json:"total_flows"`
	TotalAnomalies int     `json:"total_anomalies"`
	AnomalyRatio   float64 `json:"anomaly_ratio"`
	TotalBytes     uint64  `json:"total_bytes"`
	AvgPktRate     float64 `json:"avg_pkt_rate"`
	AvgByteRate    float64 `json:"avg_byte_rate"`
	AvgPayloadSize float64 `json:"avg_payload_size"`
	AvgDuration    float64 `json:"avg_duration"`
	UniqueSrcIPs   int     `json:"unique_src_ips"`
	UniqueDstIPs   int     `json:"unique_dst_ips"`
}

// AggregatedReport is the fully derived output of the aggregation engine.
// It carries no timestamp: the same input always produces the same report,
// and writers that need one wrap it in a TimestampedReport.
type AggregatedReport struct {
	SeverityDistribution map[string]int     `json:"severity_distribution"`
	ProtocolDistribution map[string]int     `json:"protocol_distribution"`
	TopSources           []AddressWeight    `json:"top_sources"`
	TopDestinations      []AddressWeight    `json:"top_destinations"`
	Summary              SummaryStats       `json:"summary"`
	SrcEntropy           float64            `json:"src_entropy"`
	DstEntropy           float64            `json:"dst_entropy"`
	Extremes             ExtremeFlows       `json:"extremes"`
	ModelStrength        map[string]float64 `json:"model_strength"`
}

// TimestampedReport is the persistence envelope around an AggregatedReport.
type TimestampedReport struct {
	Timestamp time.Time         `json:"timestamp"`
	Report    *AggregatedReport `json:"report"`
}

// Alert is one actionable record generated from an anomalous flow.
type Alert struct {
	ID            string   `json:"id"`
	Timestamp     string   `json:"timestamp"`
	Severity      Severity `json:"severity"`
	PatternType   string   `json:"pattern_type"`
	SourceIP      string   `json:"source_ip"`
	DestinationIP string   `json:"destination_ip"`
	Protocol      string   `json:"protocol"`
	PacketCount   uint64   `json:"packet_count"`
	ByteCount     uint64   `json:"byte_count"`
	ThreatScore   int      `json:"threat_score"`
	Description   string   `json:"description"`
}

// AlertSummary aggregates the current alert history for dashboard display.
type AlertSummary struct {
	Total       int            `json:"total"`
	BySeverity  map[string]int `json:"by_severity"`
	ByType      map[string]int `json:"by_type"`
	RecentCount int            `json:"recent_count"`
}

// Classification reasons attached to flows and alerts.
const (
	ReasonPortScan     = "port_scan"
	ReasonDDoSSuspect  = "ddos_suspect"
	ReasonExfiltration = "data_exfiltration"
	ReasonAnomaly      = "anomaly"
	ReasonNormal       = "normal"
)

// ReasonLabels maps classification reasons to their dashboard display names.
var ReasonLabels = map[string]string{
	ReasonPortScan:     "Port Scan",
	ReasonDDoSSuspect:  "DDoS Suspect",
	ReasonExfiltration: "Data Exfiltration",
	ReasonAnomaly:      "Anomaly",
	ReasonNormal:       "Normal",
}
