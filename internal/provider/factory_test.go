package provider

import (
	"net/http"
	"testing"
	"time"

	"github.com/verilens/verilens/internal/model"
)

func TestBuild_CascadeOrderAndDetector(t *testing.T) {
	cfg := model.ProvidersConfig{
		APIKey:      "test-key",
		BaseURL:     "https://router.example/models/",
		Classifiers: []string{"acme/model-a", "acme/model-b"},
		Detector:    "acme/detector",
		Timeout:     30 * time.Second,
	}

	classifiers, detector, err := Build(cfg, model.HTTPConfig{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(classifiers) != 2 {
		t.Fatalf("expected 2 classifiers, got %d", len(classifiers))
	}
	if classifiers[0].Name() != "acme/model-a" || classifiers[1].Name() != "acme/model-b" {
		t.Errorf("cascade order not preserved: %s, %s", classifiers[0].Name(), classifiers[1].Name())
	}
	if detector == nil || detector.Name() != "acme/detector" {
		t.Errorf("detector not built from config")
	}
}

func TestBuild_NoProviders(t *testing.T) {
	if _, _, err := Build(model.ProvidersConfig{}, model.HTTPConfig{}); err == nil {
		t.Error("expected error with no providers configured")
	}
}

func TestBuild_NilDetectorWhenUnset(t *testing.T) {
	cfg := model.ProvidersConfig{
		Classifiers: []string{"acme/model-a"},
	}

	_, detector, err := Build(cfg, model.HTTPConfig{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if detector != nil {
		t.Errorf("expected nil detector, got %v", detector.Name())
	}
}

func TestBuild_WiresProxySettings(t *testing.T) {
	cfg := model.ProvidersConfig{
		Classifiers: []string{"acme/model-a"},
	}
	httpCfg := model.HTTPConfig{
		HTTPProxy:  "http://proxy.internal:3128",
		HTTPSProxy: "http://proxy.internal:3129",
	}

	classifiers, _, err := Build(cfg, httpCfg)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	hf, ok := classifiers[0].(*HFProvider)
	if !ok {
		t.Fatalf("expected an HF provider, got %T", classifiers[0])
	}
	transport := hf.httpClient.Transport.(*http.Transport)

	req, _ := http.NewRequest(http.MethodPost, "https://router.example/models/acme/model-a", nil)
	proxyURL, err := transport.Proxy(req)
	if err != nil {
		t.Fatalf("proxy func failed: %v", err)
	}
	if proxyURL == nil || proxyURL.String() != "http://proxy.internal:3129" {
		t.Errorf("https call did not use the configured proxy: %v", proxyURL)
	}

	req, _ = http.NewRequest(http.MethodPost, "http://router.example/models/acme/model-a", nil)
	proxyURL, err = transport.Proxy(req)
	if err != nil {
		t.Fatalf("proxy func failed: %v", err)
	}
	if proxyURL == nil || proxyURL.String() != "http://proxy.internal:3128" {
		t.Errorf("http call did not use the configured proxy: %v", proxyURL)
	}
}
