package classify

import (
	"encoding/json"
	"sort"
	"strings"
)

const (
	maxObjects   = 8
	minItemScore = 0.50
)

// TagObjects maps a raw object-detection response onto a deduplicated list
// of labels, highest score first, capped at eight entries. Detection is
// best-effort throughout: empty or malformed input yields an empty list,
// never an error. Bounding boxes in the response are ignored.
func TagObjects(raw json.RawMessage) []string {
	var wire []wireItem
	if err := json.Unmarshal(raw, &wire); err != nil || len(wire) == 0 || wire[0].Label == nil {
		return nil
	}
	items := toRawItems(wire)

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})

	seen := make(map[string]bool, maxObjects)
	objects := make([]string, 0, maxObjects)
	for _, item := range items {
		label := strings.TrimSpace(item.Label)
		if label == "" || item.Score < minItemScore || seen[label] {
			continue
		}
		seen[label] = true
		objects = append(objects, label)
		if len(objects) >= maxObjects {
			break
		}
	}
	return objects
}
