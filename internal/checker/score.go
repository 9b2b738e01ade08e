package checker

// Risk labels bucket the service score for reporting. The service
// reports probability of abuse in [0,1]; operators typically block at
// 0.99 and review from 0.95.
const (
	RiskBlock   = "block"
	RiskHigh    = "high"
	RiskSuspect = "suspect"
	RiskClean   = "clean"
	RiskUnknown = "unknown"
)

// RiskLabel buckets a parsed score. Values outside [0,1], including
// the -1 the runner uses when no numeric score arrived, map to
// unknown.
func RiskLabel(score float64) string {
	switch {
	case score < 0 || score > 1:
		return RiskUnknown
	case score >= 0.99:
		return RiskBlock
	case score >= 0.95:
		return RiskHigh
	case score >= 0.50:
		return RiskSuspect
	default:
		return RiskClean
	}
}
