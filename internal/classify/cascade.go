package classify

import (
	"context"
	"errors"
	"fmt"

	"github.com/verilens/verilens/internal/model"
	"github.com/verilens/verilens/internal/provider"
)

// ErrAllProvidersFailed is returned when every classifier in the cascade
// failed. No partial verdict is ever produced in that case.
var ErrAllProvidersFailed = errors.New("all AI-detection providers failed")

// Analyzer runs the classification cascade and assembles the final result.
// It is stateless across requests and safe for concurrent use.
type Analyzer struct {
	classifiers []provider.Provider
	detector    provider.Provider // nil disables object detection
}

// NewAnalyzer creates an analyzer over an ordered classifier cascade and an
// optional object-detection provider.
func NewAnalyzer(classifiers []provider.Provider, detector provider.Provider) *Analyzer {
	return &Analyzer{
		classifiers: classifiers,
		detector:    detector,
	}
}

// Analyze classifies the image. Classifiers are attempted strictly in
// declared order; the first one whose response normalizes wins, and no
// provider is retried. Object detection runs concurrently and degrades to
// an empty list on any failure. The two paths join only when the result is
// assembled.
func (a *Analyzer) Analyze(ctx context.Context, image []byte) (*model.AnalysisResult, error) {
	objectsCh := a.detectObjects(ctx, image)

	var (
		cls     Classification
		used    string
		lastErr error
	)

	for _, c := range a.classifiers {
		raw, err := c.Infer(ctx, image)
		if err != nil {
			lastErr = err
			continue
		}
		cls, err = Normalize(raw)
		if err != nil {
			lastErr = fmt.Errorf("'%s': %w", c.Name(), err)
			continue
		}
		used = c.Name()
		break
	}

	if used == "" {
		hint := ""
		if errors.Is(lastErr, provider.ErrUnauthorized) {
			hint = " Make sure your token can call inference providers."
		}
		return nil, fmt.Errorf("%w.%s Last error: %v", ErrAllProvidersFailed, hint, lastErr)
	}

	objects := <-objectsCh

	return &model.AnalysisResult{
		Verdict:         cls.Verdict,
		Confidence:      cls.Confidence,
		RiskLevel:       DeriveRisk(cls.Verdict, cls.Confidence),
		DetectedObjects: objects,
		Reasons:         SynthesizeReasons(cls.Verdict, cls.Confidence, objects, used),
		ProviderUsed:    used,
	}, nil
}

// detectObjects launches the single best-effort detection call. The result
// channel is buffered so the goroutine never outlives an aborted request,
// and every failure mode collapses to an empty object list.
func (a *Analyzer) detectObjects(ctx context.Context, image []byte) <-chan []string {
	ch := make(chan []string, 1)
	if a.detector == nil {
		ch <- []string{}
		return ch
	}
	go func() {
		raw, err := a.detector.Infer(ctx, image)
		if err != nil {
			ch <- []string{}
			return
		}
		objects := TagObjects(raw)
		if objects == nil {
			objects = []string{}
		}
		ch <- objects
	}()
	return ch
}
