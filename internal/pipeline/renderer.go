package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/verilens/verilens/internal/model"
)

// Renderer prints scan records to the terminal and writes JSON reports
type Renderer struct {
	noColor bool
}

// NewRenderer creates a renderer
func NewRenderer(noColor bool) *Renderer {
	return &Renderer{noColor: noColor}
}

// RenderSummary prints a colored, human-readable summary to stdout
func (r *Renderer) RenderSummary(rec *model.ScanRecord) {
	if r.noColor {
		color.NoColor = true
	}

	verdictColor := color.New(color.FgGreen, color.Bold)
	if rec.Result.Verdict == model.VerdictAIGenerated {
		verdictColor = color.New(color.FgRed, color.Bold)
	}

	riskColor := color.New(color.FgGreen)
	switch rec.Result.RiskLevel {
	case model.RiskMedium:
		riskColor = color.New(color.FgYellow)
	case model.RiskHigh:
		riskColor = color.New(color.FgRed)
	}

	fmt.Printf("Source:     %s (%s)\n", rec.Source, rec.SourceType)
	fmt.Printf("Verdict:    %s (%d%% confidence)\n", verdictColor.Sprint(string(rec.Result.Verdict)), rec.Result.Confidence)
	fmt.Printf("Risk:       %s\n", riskColor.Sprint(string(rec.Result.RiskLevel)))
	fmt.Printf("Provider:   %s\n", rec.Result.ProviderUsed)
	if len(rec.Result.DetectedObjects) > 0 {
		fmt.Printf("Objects:    %s\n", strings.Join(rec.Result.DetectedObjects, ", "))
	}
	fmt.Println("Reasons:")
	for _, reason := range rec.Result.Reasons {
		fmt.Printf("  - %s\n", reason)
	}
}

// RenderJSON writes the record as indented JSON to path
func (r *Renderer) RenderJSON(rec *model.ScanRecord, path string) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
