package classify

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/verilens/verilens/internal/model"
)

// ErrUnrecognized marks a response whose structure or vocabulary cannot be
// normalized. The cascade treats it like any other provider failure and
// moves on to the next model.
var ErrUnrecognized = errors.New("response structure unrecognized")

// Classification is the canonical outcome of normalizing one provider response
type Classification struct {
	Verdict    model.Verdict
	Confidence int // clamped to [1, 99]
}

// Label vocabularies differ per model ("ai"/"hum", "FAKE"/"REAL", ...).
// Matching runs in three ordered tiers so it stays auditable:
// exact AI set, exact real set, then a substring fallback toward real.
var (
	aiLabels = map[string]bool{
		"ai": true, "artificial": true, "fake": true, "generated": true,
		"ai-generated": true, "aigc": true, "synthetic": true,
	}
	realLabels = map[string]bool{
		"hum": true, "human": true, "real": true, "natural": true,
		"photograph": true, "photo": true, "authentic": true,
	}
	realHints = []string{"real", "natural", "photo", "human", "authentic"}

	// last-resort tier, applied to the top-scored item only
	topRealHints = []string{"real", "natural", "photo", "human", "hum", "authentic"}
)

// Normalize maps a raw classifier response onto a canonical verdict and
// confidence. A single level of batch wrapping is recognized and unwrapped.
func Normalize(raw json.RawMessage) (Classification, error) {
	items, err := decodeItems(raw)
	if err != nil {
		return Classification{}, err
	}

	var aiScore, realScore float64

	for _, item := range items {
		label := strings.ToLower(strings.TrimSpace(item.Label))
		switch {
		case aiLabels[label]:
			aiScore = math.Max(aiScore, item.Score)
		case realLabels[label]:
			realScore = math.Max(realScore, item.Score)
		default:
			for _, hint := range realHints {
				if strings.Contains(label, hint) {
					realScore = math.Max(realScore, item.Score)
					break
				}
			}
		}
	}

	// Entirely unknown vocabulary: bucket the top-scored item by substring.
	if aiScore == 0 && realScore == 0 {
		sorted := make([]model.RawItem, len(items))
		copy(sorted, items)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Score > sorted[j].Score
		})
		top := sorted[0]
		label := strings.ToLower(top.Label)
		looksReal := false
		for _, hint := range topRealHints {
			if strings.Contains(label, hint) {
				looksReal = true
				break
			}
		}
		if looksReal {
			realScore = top.Score
		} else {
			aiScore = top.Score
		}
	}

	// Ties resolve toward AI. Changing this flips observable verdicts.
	if aiScore >= realScore {
		return Classification{
			Verdict:    model.VerdictAIGenerated,
			Confidence: toConfidence(aiScore),
		}, nil
	}
	return Classification{
		Verdict:    model.VerdictNaturalReal,
		Confidence: toConfidence(realScore),
	}, nil
}

// wireItem is the decode target for provider items. The label is a pointer
// so a present-but-empty label is distinguishable from a missing field:
// only the latter marks the structure as unrecognized.
type wireItem struct {
	Label *string `json:"label"`
	Score float64 `json:"score"`
}

func toRawItems(wire []wireItem) []model.RawItem {
	items := make([]model.RawItem, len(wire))
	for i, w := range wire {
		if w.Label != nil {
			items[i].Label = *w.Label
		}
		items[i].Score = w.Score
	}
	return items
}

// decodeItems parses a flat [{label,score}] list, unwrapping one batching
// level ([[...]]) when present. Recognition keys on the first element
// carrying a label field.
func decodeItems(raw json.RawMessage) ([]model.RawItem, error) {
	var wire []wireItem
	if err := json.Unmarshal(raw, &wire); err != nil || len(wire) == 0 || wire[0].Label == nil {
		var batched [][]wireItem
		if err2 := json.Unmarshal(raw, &batched); err2 == nil &&
			len(batched) > 0 && len(batched[0]) > 0 && batched[0][0].Label != nil {
			return toRawItems(batched[0]), nil
		}
		return nil, fmt.Errorf("%w: %s", ErrUnrecognized, truncateRaw(raw))
	}
	return toRawItems(wire), nil
}

// toConfidence converts a raw [0,1] score to a percentage, clamped to
// [1, 99] so the result never implies absolute or zero certainty.
func toConfidence(score float64) int {
	c := int(math.Round(score * 100))
	if c < 1 {
		return 1
	}
	if c > 99 {
		return 99
	}
	return c
}

func truncateRaw(raw json.RawMessage) string {
	const max = 120
	s := string(raw)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
