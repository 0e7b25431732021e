package classify

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/verilens/verilens/internal/model"
)

func TestNormalize_BasicAIVerdict(t *testing.T) {
	raw := json.RawMessage(`[{"label":"ai","score":0.97},{"label":"hum","score":0.03}]`)

	cls, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if cls.Verdict != model.VerdictAIGenerated {
		t.Errorf("expected AI verdict, got %s", cls.Verdict)
	}
	if cls.Confidence != 97 {
		t.Errorf("expected confidence 97, got %d", cls.Confidence)
	}
}

func TestNormalize_RealVerdict(t *testing.T) {
	raw := json.RawMessage(`[{"label":"FAKE","score":0.12},{"label":"REAL","score":0.88}]`)

	cls, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if cls.Verdict != model.VerdictNaturalReal {
		t.Errorf("expected natural verdict, got %s", cls.Verdict)
	}
	if cls.Confidence != 88 {
		t.Errorf("expected confidence 88, got %d", cls.Confidence)
	}
}

func TestNormalize_TieResolvesToAI(t *testing.T) {
	// Equal scores must deterministically resolve to AI, never randomly.
	raw := json.RawMessage(`[{"label":"ai","score":0.5},{"label":"real","score":0.5}]`)

	for i := 0; i < 10; i++ {
		cls, err := Normalize(raw)
		if err != nil {
			t.Fatalf("Normalize failed: %v", err)
		}
		if cls.Verdict != model.VerdictAIGenerated {
			t.Fatalf("tie resolved to %s on attempt %d", cls.Verdict, i)
		}
	}
}

func TestNormalize_ConfidenceClamped(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"exact 1.0 clamps to 99", `[{"label":"ai","score":1.0}]`, 99},
		{"exact 0.0 clamps to 1", `[{"label":"ai","score":0.0}]`, 1},
		{"0.995 rounds then clamps", `[{"label":"ai","score":0.995}]`, 99},
		{"0.004 rounds then clamps", `[{"label":"ai","score":0.004}]`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls, err := Normalize(json.RawMessage(tt.raw))
			if err != nil {
				t.Fatalf("Normalize failed: %v", err)
			}
			if cls.Confidence != tt.want {
				t.Errorf("expected confidence %d, got %d", tt.want, cls.Confidence)
			}
			if cls.Confidence < 1 || cls.Confidence > 99 {
				t.Errorf("confidence %d out of [1,99]", cls.Confidence)
			}
		})
	}
}

func TestNormalize_BatchUnwrap(t *testing.T) {
	flat := json.RawMessage(`[{"label":"ai","score":0.8},{"label":"hum","score":0.2}]`)
	batched := json.RawMessage(`[[{"label":"ai","score":0.8},{"label":"hum","score":0.2}]]`)

	flatCls, err := Normalize(flat)
	if err != nil {
		t.Fatalf("flat Normalize failed: %v", err)
	}
	batchedCls, err := Normalize(batched)
	if err != nil {
		t.Fatalf("batched Normalize failed: %v", err)
	}

	if flatCls != batchedCls {
		t.Errorf("batched form normalized differently: %+v vs %+v", batchedCls, flatCls)
	}
}

func TestNormalize_SubstringFallback(t *testing.T) {
	// "cat-photo" is in no exact set but contains "photo".
	raw := json.RawMessage(`[{"label":"cat-photo","score":0.9}]`)

	cls, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if cls.Verdict != model.VerdictNaturalReal {
		t.Errorf("expected natural verdict via substring fallback, got %s", cls.Verdict)
	}
	if cls.Confidence != 90 {
		t.Errorf("expected confidence 90, got %d", cls.Confidence)
	}
}

func TestNormalize_TopScoreFallback(t *testing.T) {
	// Vocabulary matches nothing at all: the top-scored item decides.
	tests := []struct {
		name string
		raw  string
		want model.Verdict
	}{
		{"unknown label routes to AI", `[{"label":"deepdream","score":0.7},{"label":"glitch","score":0.3}]`, model.VerdictAIGenerated},
		{"top item with real-ish substring routes to natural", `[{"label":"humdrum-scene","score":0.7},{"label":"glitch","score":0.3}]`, model.VerdictNaturalReal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls, err := Normalize(json.RawMessage(tt.raw))
			if err != nil {
				t.Fatalf("Normalize failed: %v", err)
			}
			if cls.Verdict != tt.want {
				t.Errorf("expected %s, got %s", tt.want, cls.Verdict)
			}
			if cls.Confidence != 70 {
				t.Errorf("expected confidence 70 from top item, got %d", cls.Confidence)
			}
		})
	}
}

func TestNormalize_KeepsHighestScorePerBucket(t *testing.T) {
	raw := json.RawMessage(`[{"label":"ai","score":0.4},{"label":"synthetic","score":0.6},{"label":"real","score":0.3}]`)

	cls, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if cls.Verdict != model.VerdictAIGenerated {
		t.Errorf("expected AI verdict, got %s", cls.Verdict)
	}
	if cls.Confidence != 60 {
		t.Errorf("expected max bucket score 60, got %d", cls.Confidence)
	}
}

func TestNormalize_LabelsTrimmedAndLowercased(t *testing.T) {
	raw := json.RawMessage(`[{"label":"  FAKE  ","score":0.9},{"label":"Real","score":0.1}]`)

	cls, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if cls.Verdict != model.VerdictAIGenerated {
		t.Errorf("expected AI verdict, got %s", cls.Verdict)
	}
}

func TestNormalize_EmptyLeadingLabelAccepted(t *testing.T) {
	// A present-but-empty label is valid structure; only a missing label
	// field rejects the response. The empty item matches no vocabulary and
	// the remaining items decide.
	raw := json.RawMessage(`[{"label":"","score":0.9},{"label":"ai","score":0.5}]`)

	cls, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if cls.Verdict != model.VerdictAIGenerated {
		t.Errorf("expected AI verdict, got %s", cls.Verdict)
	}
	if cls.Confidence != 50 {
		t.Errorf("expected confidence 50 from the labeled item, got %d", cls.Confidence)
	}
}

func TestNormalize_UnrecognizedStructure(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty array", `[]`},
		{"object body", `{"error":"boom"}`},
		{"missing label field", `[{"score":0.9}]`},
		{"non-JSON", `warming up`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(json.RawMessage(tt.raw))
			if !errors.Is(err, ErrUnrecognized) {
				t.Errorf("expected ErrUnrecognized, got %v", err)
			}
		})
	}
}
