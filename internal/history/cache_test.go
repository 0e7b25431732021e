package history

import (
	"testing"
	"time"

	"github.com/verilens/verilens/internal/model"
)

func TestResultCache_RoundTrip(t *testing.T) {
	cache := NewResultCache(time.Minute, time.Minute)

	result := &model.AnalysisResult{
		Verdict:      model.VerdictAIGenerated,
		Confidence:   88,
		RiskLevel:    model.RiskHigh,
		ProviderUsed: "acme/detector",
	}

	key := Key([]byte("image-bytes"))
	cache.Set(key, result)

	got, found := cache.Get(key)
	if !found {
		t.Fatal("expected cache hit")
	}
	if got.Verdict != model.VerdictAIGenerated || got.Confidence != 88 {
		t.Errorf("unexpected cached result: %+v", got)
	}
}

func TestResultCache_Miss(t *testing.T) {
	cache := NewResultCache(time.Minute, time.Minute)
	if _, found := cache.Get(Key([]byte("never-stored"))); found {
		t.Error("expected cache miss")
	}
}

func TestResultCache_Expires(t *testing.T) {
	cache := NewResultCache(20*time.Millisecond, time.Minute)

	key := Key([]byte("short-lived"))
	cache.Set(key, &model.AnalysisResult{Verdict: model.VerdictNaturalReal})

	time.Sleep(50 * time.Millisecond)
	if _, found := cache.Get(key); found {
		t.Error("expected entry to expire")
	}
}

func TestKey_ContentAddressed(t *testing.T) {
	a := Key([]byte("same"))
	b := Key([]byte("same"))
	c := Key([]byte("different"))

	if a != b {
		t.Error("identical bytes must produce identical keys")
	}
	if a == c {
		t.Error("different bytes must produce different keys")
	}
}
