package analytics

import (
	"time"

	"github.com/August26/ipintel-go/internal/checker"
	"github.com/August26/ipintel-go/internal/model"
)

// highRiskThreshold is the score from which a target counts as high
// risk in the summary.
const highRiskThreshold = 0.95

// Compute aggregates per-target results into run statistics.
func Compute(results []model.CheckResult, totalDuration time.Duration) model.BatchStats {
	stats := model.BatchStats{
		TotalTargets:          len(results),
		TotalProcessingTimeMs: totalDuration.Milliseconds(),
	}

	seen := make(map[string]struct{})

	var scoreSum float64
	var scoreCount int64

	var latencySum int64
	var latencyCount int64

	for _, r := range results {
		seen[r.Input.IP] = struct{}{}

		if !r.OK {
			if checker.IsTransportKind(r.ErrorKind) {
				stats.TransportFailures++
			} else {
				stats.ServiceFailures++
			}
			continue
		}

		stats.Succeeded++

		if r.LatencyMs > 0 {
			latencySum += r.LatencyMs
			latencyCount++
		}
		if r.ScoreValue >= 0 {
			scoreSum += r.ScoreValue
			scoreCount++
			if r.ScoreValue >= highRiskThreshold {
				stats.HighRisk++
			}
		}
	}

	stats.UniqueTargets = len(seen)

	if scoreCount > 0 {
		stats.AvgScore = scoreSum / float64(scoreCount)
	}
	if latencyCount > 0 {
		stats.AvgLatencyMs = float64(latencySum) / float64(latencyCount)
	}
	if stats.TotalTargets > 0 {
		stats.SuccessRatePct = (float64(stats.Succeeded) / float64(stats.TotalTargets)) * 100.0
	}

	return stats
}
