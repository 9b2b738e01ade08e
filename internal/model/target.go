package model

// Target is a single address to look up, parsed from an input line
// such as:
//   185.94.111.1
//   185.94.111.1 m
// The second token, when present, overrides the run-wide query flags
// for that line only.
type Target struct {
	IP    string // dotted or alternate colon/dash notation
	Flags string // per-line query flags, "" means use the run default
	Raw   string // original line for debugging
}

// CheckResult is the final outcome for a single target after one
// lookup. Exactly one lookup is performed per target; a failed lookup
// is reported here, never retried.
type CheckResult struct {
	Input      Target  `json:"input"`
	OK         bool    `json:"ok"`
	Score      string  `json:"score"`       // service "result" field, numeric string
	ScoreValue float64 `json:"score_value"` // parsed Score, -1 when unavailable
	RiskLabel  string  `json:"risk_label"`  // block / high / suspect / clean / unknown
	BadIP      bool    `json:"bad_ip"`
	Country    string  `json:"country"` // service echo, geo database fallback
	City       string  `json:"city"`    // geo database only
	ISP        string  `json:"isp"`     // ASN organization when available
	LatencyMs  int64   `json:"latency_ms"`
	StatusCode int     `json:"status_code"` // HTTP status when one was observed
	Error      string  `json:"error"`       // classified failure text, "" on success
	ErrorKind  string  `json:"error_kind"`  // timeout / connection / incomplete / http_status / content_type / malformed_body / service
}

// BatchStats aggregates summary analytics for an entire run.
type BatchStats struct {
	TotalTargets          int     `json:"total_targets"`
	UniqueTargets         int     `json:"unique_targets"`
	Succeeded             int     `json:"succeeded"`
	TransportFailures     int     `json:"transport_failures"`
	ServiceFailures       int     `json:"service_failures"`
	HighRisk              int     `json:"high_risk"`
	AvgScore              float64 `json:"avg_score"`
	AvgLatencyMs          float64 `json:"avg_latency_ms"`
	SuccessRatePct        float64 `json:"success_rate_pct"`
	TotalProcessingTimeMs int64   `json:"total_processing_time_ms"`
}
