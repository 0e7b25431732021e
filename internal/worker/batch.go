package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/verilens/verilens/internal/model"
)

// Analyzer analyzes one image path or URL
type Analyzer interface {
	AnalyzeFile(ctx context.Context, path string) (*model.ScanRecord, error)
	AnalyzeURL(ctx context.Context, rawURL string) (*model.ScanRecord, error)
}

// AnalyzeJob analyzes a single batch input
type AnalyzeJob struct {
	Input    string
	Analyzer Analyzer
}

// AnalyzeResult pairs a batch input with its outcome
type AnalyzeResult struct {
	Input  string
	Record *model.ScanRecord
	Error  error
}

// GetError returns the job error, if any
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// Execute runs the analysis for one input
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	var (
		rec *model.ScanRecord
		err error
	)
	if isURL(j.Input) {
		rec, err = j.Analyzer.AnalyzeURL(ctx, j.Input)
	} else {
		rec, err = j.Analyzer.AnalyzeFile(ctx, j.Input)
	}
	return &AnalyzeResult{Input: j.Input, Record: rec, Error: err}
}

// BatchProcessor analyzes many inputs concurrently
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a processor with the given worker count
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// Process analyzes every input and returns one result per input
func (b *BatchProcessor) Process(ctx context.Context, inputs []string) []*AnalyzeResult {
	if len(inputs) == 0 {
		return nil
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	go func() {
		<-ctx.Done()
		pool.Shutdown()
	}()

	for _, input := range inputs {
		pool.Submit(&AnalyzeJob{Input: input, Analyzer: b.analyzer})
	}

	results := make([]*AnalyzeResult, 0, len(inputs))
	for _, r := range pool.Wait() {
		if ar, ok := r.(*AnalyzeResult); ok {
			results = append(results, ar)
		}
	}
	return results
}

// ReadInputs reads batch inputs from a file, one per line, skipping blanks
// and comment lines.
func ReadInputs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var inputs []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		inputs = append(inputs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}
	return inputs, nil
}

func isURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}
