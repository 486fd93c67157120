// Package validate holds the gate every record must clear before it may be
// persisted.
package validate

import "sofhub/internal/domain"

// IsValid reports whether a result may be saved: non-nil, a vessel name, and
// at least one event. This is the sole Save precondition.
func IsValid(res *domain.ExtractionResult) bool {
	return res != nil && res.Vessel != "" && len(res.Events) > 0
}

// Sanitize returns a copy of the result with every nameless event stripped,
// preserving the relative order of the survivors. All other fields pass
// through unchanged; numeric fields are never touched and missing ones never
// synthesized.
func Sanitize(res *domain.ExtractionResult) *domain.ExtractionResult {
	if res == nil {
		return nil
	}
	out := *res
	out.Events = make([]domain.Event, 0, len(res.Events))
	for _, ev := range res.Events {
		if ev.Name == "" {
			continue
		}
		out.Events = append(out.Events, ev)
	}
	return &out
}
