package model

import "time"

// Config is the complete runtime configuration.
// Built once at startup (flags > VERILENS_* env > config file > defaults)
// and passed into constructors; no lazy globals.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Providers ProvidersConfig `yaml:"providers"`
	Cache     CacheConfig     `yaml:"cache"`
	History   HistoryConfig   `yaml:"history"`
	Server    ServerConfig    `yaml:"server"`
	Output    OutputConfig    `yaml:"output"`
}

// HTTPConfig controls image acquisition (URL fetches). The proxy settings
// are process-wide and also apply to provider calls.
type HTTPConfig struct {
	FetchTimeout  time.Duration `yaml:"fetch_timeout"`
	UserAgent     string        `yaml:"user_agent"`
	MaxImageBytes int64         `yaml:"max_image_bytes"`
	RespectRobots bool          `yaml:"respect_robots"` // robots.txt check before batch URL fetches
	HTTPProxy     string        `yaml:"http_proxy,omitempty"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty"`
}

// ProvidersConfig configures the inference-provider cascade
type ProvidersConfig struct {
	// APIKey is the bearer token for the inference router.
	// The token must be allowed to call inference providers.
	APIKey string `yaml:"api_key,omitempty"`

	// BaseURL is the inference router prefix; model IDs are appended to it.
	BaseURL string `yaml:"base_url"`

	// Classifiers are model IDs tried in declared order until one succeeds.
	Classifiers []string `yaml:"classifiers"`

	// Detector is the object-detection model (one best-effort call, no cascade).
	Detector string `yaml:"detector"`

	// Timeout bounds each provider call. Inference cold-starts are slow.
	Timeout time.Duration `yaml:"timeout"`

	// RatePerHost and Burst bound outbound calls per provider host.
	RatePerHost float64 `yaml:"rate_per_host"`
	Burst       int     `yaml:"burst"`

	OpenAI OpenAIConfig `yaml:"openai"`
}

// OpenAIConfig enables an optional vision-model classifier appended to the
// cascade after the dedicated detection models.
type OpenAIConfig struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"api_key,omitempty"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url,omitempty"`
}

// CacheConfig controls the in-memory result cache keyed by image content
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled"`
	TTL             time.Duration `yaml:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// HistoryConfig controls the on-disk scan history
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
	MaxList int    `yaml:"max_list"`
}

// ServerConfig controls the HTTP API
type ServerConfig struct {
	Addr         string   `yaml:"addr"`
	AllowOrigins []string `yaml:"allow_origins"`
}

// OutputConfig controls CLI rendering
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
	NoColor bool `yaml:"no_color"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			FetchTimeout:  20 * time.Second,
			UserAgent:     "VeriLens/1.0 (+https://github.com/verilens/verilens)",
			MaxImageBytes: 5 * 1024 * 1024,
		},
		Providers: ProvidersConfig{
			BaseURL: "https://router.huggingface.co/hf-inference/models/",
			Classifiers: []string{
				"Ateeqq/ai-vs-human-image-detector",
				"dima806/ai_vs_real_image_detection",
			},
			Detector:    "facebook/detr-resnet-50",
			Timeout:     60 * time.Second,
			RatePerHost: 2,
			Burst:       4,
			OpenAI: OpenAIConfig{
				Model: "gpt-4o-mini",
			},
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             time.Hour,
			CleanupInterval: 10 * time.Minute,
		},
		History: HistoryConfig{
			Enabled: true,
			Dir:     "", // resolved to ~/.verilens/history at startup
			MaxList: 50,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			AllowOrigins: []string{"*"},
		},
	}
}
