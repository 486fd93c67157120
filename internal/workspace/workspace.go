// Package workspace owns the current in-memory extraction result per owner:
// the explicit create/replace/clear lifecycle and pre-save event corrections.
package workspace

import (
	"sync"

	"github.com/google/uuid"

	"sofhub/internal/domain"
)

// EventPatch carries replacement values for an event's editable fields. Nil
// fields are left untouched.
type EventPatch struct {
	Name  *string `json:"name"`
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// Manager holds the current ExtractionResult for each owner. A new upload
// replaces the result wholesale; any in-progress edit state is discarded with
// it. Two in-flight extractions racing to completion leave the last one to
// resolve as the final result.
type Manager struct {
	mu      sync.Mutex
	current map[uuid.UUID]*domain.ExtractionResult
}

// NewManager creates an empty workspace manager.
func NewManager() *Manager {
	return &Manager{current: make(map[uuid.UUID]*domain.ExtractionResult)}
}

// Replace installs a result as the owner's current workspace, discarding
// whatever was there.
func (m *Manager) Replace(owner uuid.UUID, res *domain.ExtractionResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current[owner] = res
}

// Current returns the owner's current result, or ErrWorkspaceEmpty.
func (m *Manager) Current(owner uuid.UUID) (*domain.ExtractionResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.current[owner]
	if !ok || res == nil {
		return nil, domain.ErrWorkspaceEmpty
	}
	return res, nil
}

// Clear drops the owner's current result.
func (m *Manager) Clear(owner uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.current, owner)
}

// UpdateEvent replaces the editable fields of the event at the given
// position.
func (m *Manager) UpdateEvent(owner uuid.UUID, index int, patch EventPatch) (*domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.current[owner]
	if !ok || res == nil {
		return nil, domain.ErrWorkspaceEmpty
	}
	if index < 0 || index >= len(res.Events) {
		return nil, domain.ErrEventNotFound
	}
	applyPatch(&res.Events[index], patch)
	ev := res.Events[index]
	return &ev, nil
}

// UpdateEventByID is the identifier-addressed form of UpdateEvent; stable
// identifiers survive deletes of other events where positions do not.
func (m *Manager) UpdateEventByID(owner, eventID uuid.UUID, patch EventPatch) (*domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.current[owner]
	if !ok || res == nil {
		return nil, domain.ErrWorkspaceEmpty
	}
	for i := range res.Events {
		if res.Events[i].ID == eventID {
			applyPatch(&res.Events[i], patch)
			ev := res.Events[i]
			return &ev, nil
		}
	}
	return nil, domain.ErrEventNotFound
}

// DeleteEvent removes the event at the given position, shifting later
// positions down by one. Positional references held across a delete are
// invalidated; prefer the identifier-addressed form.
func (m *Manager) DeleteEvent(owner uuid.UUID, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.current[owner]
	if !ok || res == nil {
		return domain.ErrWorkspaceEmpty
	}
	if index < 0 || index >= len(res.Events) {
		return domain.ErrEventNotFound
	}
	res.Events = append(res.Events[:index], res.Events[index+1:]...)
	return nil
}

// DeleteEventByID removes the event with the given stable identifier.
func (m *Manager) DeleteEventByID(owner, eventID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.current[owner]
	if !ok || res == nil {
		return domain.ErrWorkspaceEmpty
	}
	for i := range res.Events {
		if res.Events[i].ID == eventID {
			res.Events = append(res.Events[:i], res.Events[i+1:]...)
			return nil
		}
	}
	return domain.ErrEventNotFound
}

func applyPatch(ev *domain.Event, patch EventPatch) {
	if patch.Name != nil {
		ev.Name = *patch.Name
	}
	if patch.Start != nil {
		ev.Start = *patch.Start
	}
	if patch.End != nil {
		ev.End = *patch.End
	}
}
