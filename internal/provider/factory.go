package provider

import (
	"fmt"

	"github.com/verilens/verilens/internal/model"
	"github.com/verilens/verilens/internal/worker"
)

// Build constructs the ordered classifier cascade and the object-detection
// provider from configuration. The detector is nil when not configured;
// detection is optional at every level. Proxy settings are the process-wide
// ones and apply to provider calls the same as to image fetches.
func Build(cfg model.ProvidersConfig, httpCfg model.HTTPConfig) (classifiers []Provider, detector Provider, err error) {
	if len(cfg.Classifiers) == 0 && !cfg.OpenAI.Enabled {
		return nil, nil, fmt.Errorf("no classification providers configured")
	}

	shared := Config{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Timeout:     int(cfg.Timeout.Seconds()),
		RatePerHost: cfg.RatePerHost,
		Burst:       cfg.Burst,
		HTTPProxy:   httpCfg.HTTPProxy,
		HTTPSProxy:  httpCfg.HTTPSProxy,
	}

	// One limiter across all providers: they share the router host.
	limiter := worker.NewLimiter(cfg.RatePerHost, cfg.Burst)

	for _, modelID := range cfg.Classifiers {
		classifiers = append(classifiers, NewHFProvider(modelID, shared, limiter))
	}

	if cfg.OpenAI.Enabled {
		p, err := NewOpenAIProvider(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("openai provider: %w", err)
		}
		classifiers = append(classifiers, p)
	}

	if cfg.Detector != "" {
		detector = NewHFProvider(cfg.Detector, shared, limiter)
	}

	return classifiers, detector, nil
}
