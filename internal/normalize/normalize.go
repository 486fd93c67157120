// Package normalize is the single reconciliation point between the two
// extraction producers. Everything downstream sees only the canonical event
// shape it emits.
package normalize

import (
	"strings"

	"github.com/google/uuid"

	"sofhub/internal/domain"
)

// Apply canonicalizes a freshly produced ExtractionResult in place: event
// names are trimmed, every event gets a stable identifier, and the events
// slice is never nil. Identifiers already present (e.g. on a re-normalized
// saved snapshot) are kept so in-flight references stay valid.
func Apply(res *domain.ExtractionResult) *domain.ExtractionResult {
	if res == nil {
		return nil
	}
	if res.Events == nil {
		res.Events = []domain.Event{}
	}
	for i := range res.Events {
		ev := &res.Events[i]
		ev.Name = strings.TrimSpace(ev.Name)
		ev.Start = strings.TrimSpace(ev.Start)
		ev.End = strings.TrimSpace(ev.End)
		if ev.ID == uuid.Nil {
			ev.ID = uuid.New()
		}
	}
	return res
}

// MissingTime applies the missing-time predicate to a raw start/end pair.
// Kept as a free function so callers that have not built an Event yet (the
// tabular extractor, tests) share the exact rule with the Event codec.
func MissingTime(start, end string) bool {
	return domain.Event{Start: start, End: end}.MissingTime()
}
