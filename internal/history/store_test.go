package history

import (
	"testing"
	"time"

	"github.com/verilens/verilens/internal/model"
)

func sampleRecord(source string, verdict model.Verdict) *model.ScanRecord {
	return &model.ScanRecord{
		Source:     source,
		SourceType: model.SourceFile,
		Result: model.AnalysisResult{
			Verdict:      verdict,
			Confidence:   91,
			RiskLevel:    model.RiskHigh,
			ProviderUsed: "acme/detector",
		},
	}
}

func TestStore_SaveAssignsIDAndTimestamp(t *testing.T) {
	store := NewStore(t.TempDir())

	rec := sampleRecord("a.jpg", model.VerdictAIGenerated)
	if err := store.Save(rec); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if rec.ID == "" {
		t.Error("Save did not assign an ID")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("Save did not assign a timestamp")
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	store := NewStore(t.TempDir())

	sources := []string{"first.jpg", "second.jpg", "third.jpg"}
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, src := range sources {
		rec := sampleRecord(src, model.VerdictAIGenerated)
		rec.CreatedAt = base.Add(time.Duration(i) * time.Second)
		if err := store.Save(rec); err != nil {
			t.Fatalf("Save %s failed: %v", src, err)
		}
	}

	records, err := store.List(0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].Source != "third.jpg" || records[2].Source != "first.jpg" {
		t.Errorf("records not newest-first: %s, %s, %s",
			records[0].Source, records[1].Source, records[2].Source)
	}
}

func TestStore_ListLimit(t *testing.T) {
	store := NewStore(t.TempDir())

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := sampleRecord("img.jpg", model.VerdictNaturalReal)
		rec.CreatedAt = base.Add(time.Duration(i) * time.Second)
		if err := store.Save(rec); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	records, err := store.List(2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 records with limit, got %d", len(records))
	}
}

func TestStore_RoundTripsResult(t *testing.T) {
	store := NewStore(t.TempDir())

	rec := sampleRecord("portrait.png", model.VerdictAIGenerated)
	rec.Result.DetectedObjects = []string{"person", "chair"}
	rec.Result.Reasons = []string{"Very strong AI-generation signals detected by acme/detector."}
	rec.PerceptualHash = "d:0011223344556677"
	rec.Meta = model.ImageMeta{Format: "image/png", CameraMake: "Canon"}

	if err := store.Save(rec); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	records, err := store.List(1)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	got := records[0]
	if got.Result.Verdict != model.VerdictAIGenerated || got.Result.Confidence != 91 {
		t.Errorf("result did not survive the round trip: %+v", got.Result)
	}
	if len(got.Result.DetectedObjects) != 2 || got.Result.DetectedObjects[0] != "person" {
		t.Errorf("objects did not survive the round trip: %v", got.Result.DetectedObjects)
	}
	if got.Meta.CameraMake != "Canon" {
		t.Errorf("metadata did not survive the round trip: %+v", got.Meta)
	}
}

func TestStore_EmptyDir(t *testing.T) {
	store := NewStore(t.TempDir() + "/missing")

	records, err := store.List(10)
	if err != nil {
		t.Fatalf("List on missing dir failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}

	n, err := store.Count()
	if err != nil {
		t.Fatalf("Count on missing dir failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected count 0, got %d", n)
	}
}

func TestStore_Count(t *testing.T) {
	store := NewStore(t.TempDir())

	for i := 0; i < 4; i++ {
		if err := store.Save(sampleRecord("img.jpg", model.VerdictNaturalReal)); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	n, err := store.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 4 {
		t.Errorf("expected count 4, got %d", n)
	}
}
