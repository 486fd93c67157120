package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sofhub/internal/domain"
)

func TestEvent_MissingTime(t *testing.T) {
	tests := []struct {
		start, end string
		want       bool
	}{
		{"08:00", "10:00", false},
		{"00:00", "17:00", false},
		{"17:00", "00:00", false},
		{"00:00", "00:00", true},
		{"", "10:00", true},
		{"08:00", "", true},
		{"", "", true},
		{"--:--", "10:00", true},
		{"08:00", "--:--", true},
		{"", "--:--", true},
		{"--:--", "--:--", true},
	}
	for _, tt := range tests {
		ev := domain.Event{Start: tt.start, End: tt.end}
		assert.Equal(t, tt.want, ev.MissingTime(), "start=%q end=%q", tt.start, tt.end)
	}
}

func TestEvent_MarshalJSON_EmitsBothSchemas(t *testing.T) {
	id := uuid.New()
	ev := domain.Event{ID: id, Name: "Loading", Start: "08:00", End: "10:00", Type: "cargo"}

	data, err := json.Marshal(ev)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, id.String(), m["id"])
	assert.Equal(t, "Loading", m["name"])
	assert.Equal(t, "Loading", m["event"])
	assert.Equal(t, "08:00", m["start"])
	assert.Equal(t, "08:00", m["start_time"])
	assert.Equal(t, "10:00", m["end"])
	assert.Equal(t, "10:00", m["end_time"])
	assert.Equal(t, "cargo", m["event_type"])
	assert.Equal(t, false, m["missing_time"])
}

func TestEvent_MarshalJSON_MissingTimeFlag(t *testing.T) {
	data, err := json.Marshal(domain.Event{Name: "Shifting", Start: "00:00", End: "00:00"})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, true, m["missing_time"])
}

func TestEvent_UnmarshalJSON_CurrentSchema(t *testing.T) {
	var ev domain.Event
	err := json.Unmarshal([]byte(`{"name":"Loading","start_time":"08:00","end_time":"10:00"}`), &ev)
	require.NoError(t, err)

	assert.Equal(t, "Loading", ev.Name)
	assert.Equal(t, "08:00", ev.Start)
	assert.Equal(t, "10:00", ev.End)
}

func TestEvent_UnmarshalJSON_LegacySchema(t *testing.T) {
	var ev domain.Event
	err := json.Unmarshal([]byte(`{"event":"Discharge","start":"09:30","end":"11:00"}`), &ev)
	require.NoError(t, err)

	assert.Equal(t, "Discharge", ev.Name)
	assert.Equal(t, "09:30", ev.Start)
	assert.Equal(t, "11:00", ev.End)
}

func TestEvent_UnmarshalJSON_CurrentSchemaWins(t *testing.T) {
	var ev domain.Event
	err := json.Unmarshal([]byte(`{"name":"New","event":"Old","start":"01:00","start_time":"02:00","end":"03:00","end_time":"04:00"}`), &ev)
	require.NoError(t, err)

	assert.Equal(t, "New", ev.Name)
	assert.Equal(t, "02:00", ev.Start)
	assert.Equal(t, "04:00", ev.End)
}

func TestEvent_JSONRoundTrip(t *testing.T) {
	orig := domain.Event{ID: uuid.New(), Name: "NOR Tendered", Start: "06:00", End: "--:--"}

	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var back domain.Event
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, orig, back)
}
