package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/verilens/verilens/internal/classify"
	"github.com/verilens/verilens/internal/history"
	"github.com/verilens/verilens/internal/imaging"
	"github.com/verilens/verilens/internal/model"
	"github.com/verilens/verilens/internal/provider"
)

// Pipeline wires acquisition, the analyzer, the result cache, and the
// history store into the complete scan flow.
type Pipeline struct {
	analyzer *classify.Analyzer
	fetcher  *Fetcher
	store    *history.Store       // nil when history is disabled
	cache    *history.ResultCache // nil when caching is disabled
	cfg      *model.Config
}

// New builds a pipeline from configuration
func New(cfg *model.Config) (*Pipeline, error) {
	classifiers, detector, err := provider.Build(cfg.Providers, cfg.HTTP)
	if err != nil {
		return nil, fmt.Errorf("build providers: %w", err)
	}

	p := &Pipeline{
		analyzer: classify.NewAnalyzer(classifiers, detector),
		fetcher:  NewFetcher(cfg.HTTP),
		cfg:      cfg,
	}

	if cfg.History.Enabled && cfg.History.Dir != "" {
		p.store = history.NewStore(cfg.History.Dir)
	}
	if cfg.Cache.Enabled {
		p.cache = history.NewResultCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}

	return p, nil
}

// History returns the store, or nil when history is disabled
func (p *Pipeline) History() *history.Store {
	return p.store
}

// AnalyzeFile analyzes a local image or video file
func (p *Pipeline) AnalyzeFile(ctx context.Context, path string) (*model.ScanRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if int64(len(data)) > p.cfg.HTTP.MaxImageBytes {
		return nil, fmt.Errorf("file exceeds the %d MB limit", p.cfg.HTTP.MaxImageBytes/(1024*1024))
	}
	return p.AnalyzeBytes(ctx, data, filepath.Base(path), model.SourceFile)
}

// AnalyzeURL fetches a remote image and analyzes it
func (p *Pipeline) AnalyzeURL(ctx context.Context, rawURL string) (*model.ScanRecord, error) {
	data, err := p.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return p.AnalyzeBytes(ctx, data, rawURL, model.SourceURL)
}

// AnalyzeBytes runs the full flow on raw bytes: sniff and validate, extract
// a video frame when needed, consult the result cache, run the cascade, and
// persist the record.
func (p *Pipeline) AnalyzeBytes(ctx context.Context, data []byte, source string, sourceType model.SourceType) (*model.ScanRecord, error) {
	if imaging.IsVideo(data) {
		frame, err := ExtractFrame(ctx, data)
		if err != nil {
			return nil, err
		}
		data = frame
	}

	if _, err := imaging.ValidateImage(data); err != nil {
		return nil, err
	}

	result, err := p.analyze(ctx, data)
	if err != nil {
		return nil, err
	}

	rec := &model.ScanRecord{
		Source:         source,
		SourceType:     sourceType,
		Result:         *result,
		PerceptualHash: imaging.PerceptualHash(data),
		Meta:           imaging.ReadMeta(data),
	}

	if p.store != nil {
		if err := p.store.Save(rec); err != nil {
			// History is auxiliary: a full verdict beats a stored one.
			fmt.Fprintf(os.Stderr, "Warning: failed to save scan record: %v\n", err)
		}
	}

	return rec, nil
}

func (p *Pipeline) analyze(ctx context.Context, data []byte) (*model.AnalysisResult, error) {
	var key string
	if p.cache != nil {
		key = history.Key(data)
		if cached, ok := p.cache.Get(key); ok {
			return cached, nil
		}
	}

	result, err := p.analyzer.Analyze(ctx, data)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		p.cache.Set(key, result)
	}
	return result, nil
}
