package model

// Verdict is the canonical two-way outcome of a classification
type Verdict string

const (
	VerdictAIGenerated Verdict = "AI-Generated"
	VerdictNaturalReal Verdict = "Natural/Real"
)

// RiskLevel is a coarse severity bucket derived from verdict and confidence
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// RawItem is one label/score entry from a provider response.
// Score is provider-supplied and treated as if in [0,1].
type RawItem struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// AnalysisResult is the complete outcome of analyzing one image.
// It is fully determined by the raw provider responses, with no hidden state.
type AnalysisResult struct {
	Verdict         Verdict   `json:"verdict"`
	Confidence      int       `json:"confidence"` // always within [1, 99]
	RiskLevel       RiskLevel `json:"risk_level"`
	DetectedObjects []string  `json:"detected_objects"`
	Reasons         []string  `json:"reasons"`
	ProviderUsed    string    `json:"provider_used"`
}
