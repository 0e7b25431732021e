package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/verilens/verilens/internal/pipeline"
	"github.com/verilens/verilens/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	batchRobots  bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze multiple images from a file in parallel",
	Long: `Batch analyzes many images concurrently:
- Read image paths or URLs from the input file (one per line)
- Analyze them in parallel with a configurable worker count
- Rate-limit outbound calls per host
- Write one JSON report per input

Example:
  verilens batch images.txt
  verilens batch images.txt --concurrency 8 --output-dir ./reports
  verilens batch urls.txt --respect-robots`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./verilens-reports", "output directory for JSON reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for the batch")
	batchCmd.Flags().BoolVar(&batchRobots, "respect-robots", false, "check robots.txt before fetching remote images")
}

func runBatch(cmd *cobra.Command, args []string) error {
	inputs, err := worker.ReadInputs(args[0])
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no inputs found in %s", args[0])
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := loadConfig()
	cfg.HTTP.RespectRobots = batchRobots
	if err := requireAPIKey(cfg); err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Analyzing %d inputs with %d workers\n", len(inputs), concurrency)

	processor := worker.NewBatchProcessor(p, concurrency)
	results := processor.Process(ctx, inputs)

	renderer := pipeline.NewRenderer(true)
	failed := 0
	for i, r := range results {
		if r.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Input, r.Error)
			continue
		}
		path := filepath.Join(outputDir, fmt.Sprintf("report-%03d.json", i+1))
		if err := renderer.RenderJSON(r.Record, path); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Input, err)
			continue
		}
		fmt.Fprintf(os.Stderr, "✓ %s → %s (%s, %d%%)\n", r.Input, path, r.Record.Result.Verdict, r.Record.Result.Confidence)
	}

	fmt.Fprintf(os.Stderr, "Done: %d ok, %d failed\n", len(results)-failed, failed)
	if failed == len(results) {
		return fmt.Errorf("all %d inputs failed", failed)
	}
	return nil
}
