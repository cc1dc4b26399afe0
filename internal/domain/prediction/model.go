package prediction

// Source is one web citation backing a grounded prediction.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// WinProbability carries the model's outcome percentages. The triple is not
// normalized to sum to 100; the vendor output is passed through as-is.
type WinProbability struct {
	Home int `json:"home"`
	Away int `json:"away"`
	Draw int `json:"draw"`
}

// Prediction is one AI-generated match verdict. Scoreline is an opaque
// "H-A" string; consumers split it on "-" rather than parsing integers.
// A nil Sources slice means the grounding step returned no citations,
// which is distinct from an empty list.
type Prediction struct {
	Winner            string         `json:"winner"`
	Scoreline         string         `json:"scoreline"`
	WinProbability    WinProbability `json:"winProbability"`
	TacticalBreakdown string         `json:"tacticalBreakdown"`
	Sources           []Source       `json:"sources,omitempty"`
	SearchHTML        string         `json:"searchHtml,omitempty"`
}

// DedupeSources drops citations whose URI was already seen, keeping the
// first occurrence and the original order. An empty result collapses to nil
// so callers can tell "nothing found" apart from "present but empty".
func DedupeSources(items []Source) []Source {
	if len(items) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(items))
	out := make([]Source, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.URI]; ok {
			continue
		}
		seen[item.URI] = struct{}{}
		out = append(out, item)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
