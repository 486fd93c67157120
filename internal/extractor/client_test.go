package extractor_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sofhub/internal/config"
	"sofhub/internal/domain"
	"sofhub/internal/extractor"
	"sofhub/internal/port"
)

func newClient(baseURL string) port.DocumentExtractor {
	return extractor.NewClient(&config.ExtractorConfig{BaseURL: baseURL, TimeoutSecs: 5})
}

func TestExtract_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/extract", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "sof.pdf", hdr.Filename)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"vessel": "MV OCEAN",
			"port": "Singapore",
			"events": [{"event": "NOR Tendered", "start": "06:00", "end": "--:--"}]
		}`))
	}))
	defer srv.Close()

	res, err := newClient(srv.URL).Extract(context.Background(), "sof.pdf", []byte("%PDF-1.4"))

	require.NoError(t, err)
	assert.Equal(t, "MV OCEAN", res.Vessel)
	assert.Equal(t, "Singapore", res.Port)
	assert.Equal(t, "sof.pdf", res.SourceFile)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "NOR Tendered", res.Events[0].Name)
	assert.Equal(t, "06:00", res.Events[0].Start)
	assert.Equal(t, "--:--", res.Events[0].End)
}

func TestExtract_MissingVesselDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"events": []}`))
	}))
	defer srv.Close()

	res, err := newClient(srv.URL).Extract(context.Background(), "sof.pdf", []byte("x"))

	require.NoError(t, err)
	assert.Equal(t, "Unknown Vessel", res.Vessel)
	assert.NotNil(t, res.Events)
	assert.Empty(t, res.Events)
}

func TestExtract_MalformedEventsDropped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"vessel": "MV OCEAN", "events": {"not": "an array"}}`))
	}))
	defer srv.Close()

	res, err := newClient(srv.URL).Extract(context.Background(), "sof.pdf", []byte("x"))

	require.NoError(t, err)
	assert.Empty(t, res.Events)
}

func TestExtract_NotConfigured(t *testing.T) {
	_, err := newClient("").Extract(context.Background(), "sof.pdf", []byte("x"))

	assert.ErrorIs(t, err, domain.ErrExtractionUnavailable)
}

func TestExtract_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).Extract(context.Background(), "sof.pdf", []byte("x"))

	assert.ErrorIs(t, err, domain.ErrExtractionUnavailable)
}

func TestExtract_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newClient(srv.URL).Extract(context.Background(), "sof.pdf", []byte("x"))

	assert.ErrorIs(t, err, domain.ErrExtractionUnavailable)
}

func TestExtract_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).Extract(context.Background(), "sof.pdf", []byte("x"))

	assert.ErrorIs(t, err, domain.ErrExtractionUnavailable)
}
