package checker

import "testing"

func TestRiskLabel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{score: -1, want: RiskUnknown},
		{score: 1.5, want: RiskUnknown},
		{score: 0, want: RiskClean},
		{score: 0.49, want: RiskClean},
		{score: 0.50, want: RiskSuspect},
		{score: 0.94, want: RiskSuspect},
		{score: 0.95, want: RiskHigh},
		{score: 0.989, want: RiskHigh},
		{score: 0.99, want: RiskBlock},
		{score: 1.0, want: RiskBlock},
	}

	for _, tt := range tests {
		if got := RiskLabel(tt.score); got != tt.want {
			t.Fatalf("RiskLabel(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
