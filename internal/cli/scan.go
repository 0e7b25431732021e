package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verilens/verilens/internal/model"
	"github.com/verilens/verilens/internal/pipeline"
)

var (
	outJSON     string
	scanTimeout time.Duration
	noCache     bool
	noHistory   bool
	noColor     bool
	openaiOn    bool
	openaiModel string
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <file|url>",
	Short: "Analyze a single image (or video first frame)",
	Long: `Scan classifies one image as AI-generated or natural:
- Consults the classifier cascade in order until one model succeeds
- Runs best-effort object detection alongside
- Derives a risk tier and a bounded, deterministic explanation

Example:
  verilens scan ./photo.jpg
  verilens scan https://example.com/image.png --json report.json
  verilens scan ./clip.mp4
  verilens scan ./photo.jpg --openai`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&outJSON, "json", "", "write the scan record as JSON to this path")
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 3*time.Minute, "overall scan timeout (provider cold-starts are slow)")
	scanCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	scanCmd.Flags().BoolVar(&noHistory, "no-history", false, "do not persist the scan record")
	scanCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	scanCmd.Flags().BoolVar(&openaiOn, "openai", false, "append a vision-model classifier to the cascade (needs OPENAI_API_KEY)")
	scanCmd.Flags().StringVar(&openaiModel, "openai-model", "gpt-4o-mini", "vision model for --openai")
}

func runScan(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	cfg := loadConfig()
	cfg.Cache.Enabled = !noCache
	cfg.History.Enabled = cfg.History.Enabled && !noHistory
	cfg.Output.NoColor = noColor

	if openaiOn {
		cfg.Providers.OpenAI.Enabled = true
		cfg.Providers.OpenAI.Model = openaiModel
		cfg.Providers.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.Providers.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	if err := requireAPIKey(cfg); err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", input)
	}

	record, err := analyzeInput(ctx, p, input)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.NoColor)
	renderer.RenderSummary(record)

	if outJSON != "" {
		if err := renderer.RenderJSON(record, outJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "Wrote JSON: %s\n", outJSON)
		}
	}

	return nil
}

func analyzeInput(ctx context.Context, p *pipeline.Pipeline, input string) (*model.ScanRecord, error) {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return p.AnalyzeURL(ctx, input)
	}
	return p.AnalyzeFile(ctx, input)
}
