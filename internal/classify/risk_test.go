package classify

import (
	"testing"

	"github.com/verilens/verilens/internal/model"
)

func TestDeriveRisk(t *testing.T) {
	tests := []struct {
		verdict    model.Verdict
		confidence int
		want       model.RiskLevel
	}{
		{model.VerdictAIGenerated, 99, model.RiskHigh},
		{model.VerdictAIGenerated, 85, model.RiskHigh},
		{model.VerdictAIGenerated, 84, model.RiskMedium},
		{model.VerdictAIGenerated, 60, model.RiskMedium},
		{model.VerdictAIGenerated, 59, model.RiskLow},
		{model.VerdictAIGenerated, 1, model.RiskLow},
		{model.VerdictNaturalReal, 99, model.RiskLow},
		{model.VerdictNaturalReal, 85, model.RiskLow},
		{model.VerdictNaturalReal, 84, model.RiskMedium},
		{model.VerdictNaturalReal, 1, model.RiskMedium},
	}

	for _, tt := range tests {
		got := DeriveRisk(tt.verdict, tt.confidence)
		if got != tt.want {
			t.Errorf("DeriveRisk(%s, %d) = %s, want %s", tt.verdict, tt.confidence, got, tt.want)
		}
	}
}
