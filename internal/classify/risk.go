package classify

import "github.com/verilens/verilens/internal/model"

// DeriveRisk maps (verdict, confidence) to a review-urgency tier.
// Thresholds are inclusive:
//
//	Natural/Real ≥85 → Low, otherwise Medium
//	AI-Generated ≥85 → High, 60–84 → Medium, <60 → Low
func DeriveRisk(verdict model.Verdict, confidence int) model.RiskLevel {
	if verdict != model.VerdictAIGenerated {
		if confidence >= 85 {
			return model.RiskLow
		}
		return model.RiskMedium
	}
	switch {
	case confidence >= 85:
		return model.RiskHigh
	case confidence >= 60:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}
