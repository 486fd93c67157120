package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents an account that owns a record set.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Event is the canonical timestamped operational event. Both extraction
// producers are reconciled into this one shape by the normalizer; no other
// component reads the legacy wire keys.
type Event struct {
	ID    uuid.UUID
	Name  string
	Start string
	End   string
	Type  string
}

// eventWire carries both the current schema (name, start_time, end_time) and
// the legacy schema (event, start, end) so output from either producer, and
// records saved by older clients, decode and render directly.
type eventWire struct {
	ID          *uuid.UUID `json:"id,omitempty"`
	Name        string     `json:"name"`
	LegacyName  string     `json:"event,omitempty"`
	Start       string     `json:"start"`
	End         string     `json:"end"`
	StartTime   string     `json:"start_time"`
	EndTime     string     `json:"end_time"`
	Type        string     `json:"event_type,omitempty"`
	MissingTime bool       `json:"missing_time"`
}

// MarshalJSON emits the event under both schemas.
func (e Event) MarshalJSON() ([]byte, error) {
	w := eventWire{
		Name:        e.Name,
		LegacyName:  e.Name,
		Start:       e.Start,
		End:         e.End,
		StartTime:   e.Start,
		EndTime:     e.End,
		Type:        e.Type,
		MissingTime: e.MissingTime(),
	}
	if e.ID != uuid.Nil {
		w.ID = &e.ID
	}
	return json.Marshal(w)
}

// UnmarshalJSON accepts either schema, preferring the current one.
func (e *Event) UnmarshalJSON(data []byte) error {
	var w eventWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.ID != nil {
		e.ID = *w.ID
	}
	e.Name = w.Name
	if e.Name == "" {
		e.Name = w.LegacyName
	}
	e.Start = w.StartTime
	if e.Start == "" {
		e.Start = w.Start
	}
	e.End = w.EndTime
	if e.End == "" {
		e.End = w.End
	}
	e.Type = w.Type
	return nil
}

// TimeSentinel is emitted by the document extraction service when a line
// carried no parseable clock time.
const TimeSentinel = "--:--"

// MissingTime reports whether the event's timestamps are unusable: either
// time empty, either time the "--:--" sentinel, or both times exactly
// "00:00". The final clause is a conjunction: start "00:00" with a real end
// time is not flagged.
func (e Event) MissingTime() bool {
	return e.Start == "" || e.End == "" ||
		e.Start == TimeSentinel || e.End == TimeSentinel ||
		(e.Start == "00:00" && e.End == "00:00")
}

// ExtractionResult is the in-memory canonical vessel/event record produced by
// either extraction path. It is created wholesale per upload, replaced
// wholesale by the next upload, and exists only in memory until saved.
type ExtractionResult struct {
	Vessel          string  `json:"vessel"`
	VoyageFrom      string  `json:"voyage_from"`
	VoyageTo        string  `json:"voyage_to"`
	Cargo           string  `json:"cargo"`
	Port            string  `json:"port"`
	Operation       string  `json:"operation"`
	DemurragePerDay float64 `json:"demurrage_per_day"`
	DispatchPerDay  float64 `json:"dispatch_per_day"`
	LoadRatePerDay  float64 `json:"load_rate_per_day"`
	CargoQtyMt      float64 `json:"cargo_qty_mt"`
	Events          []Event `json:"events"`
	SourceFile      string  `json:"source_file"`
	// SourceKey is the archive object key of the uploaded source document,
	// empty when archiving is disabled.
	SourceKey   string    `json:"source_key,omitempty"`
	ExtractedAt time.Time `json:"extracted_at"`
}

// SavedRecord is a durably persisted snapshot of a validated
// ExtractionResult plus presentation metadata. Only Title is mutable after
// creation.
type SavedRecord struct {
	ID            int64            `json:"id"`
	Title         string           `json:"title"`
	Date          string           `json:"date"`
	CreatedAt     time.Time        `json:"created_at"`
	Vessel        string           `json:"vessel"`
	Port          string           `json:"port"`
	TotalEvents   int              `json:"total_events"`
	Status        RecordStatus     `json:"status"`
	ExtractedData ExtractionResult `json:"extracted_data"`
	// Events duplicates ExtractedData.Events for export convenience.
	Events     []Event `json:"events"`
	SourceFile string  `json:"source_file"`
	SourceKey  string  `json:"source_key,omitempty"`
}
