package ingest_test

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sofhub/internal/domain"
	"sofhub/internal/ingest"
)

func TestRoute(t *testing.T) {
	tests := []struct {
		filename string
		path     domain.IngestPath
		wantErr  bool
	}{
		{"sof.csv", domain.PathTabular, false},
		{"sof.xls", domain.PathTabular, false},
		{"sof.xlsx", domain.PathTabular, false},
		{"SOF.CSV", domain.PathTabular, false},
		{"sof.pdf", domain.PathDocument, false},
		{"sof.doc", domain.PathDocument, false},
		{"sof.docx", domain.PathDocument, false},
		{"sof.txt", "", true},
		{"sof", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		path, err := ingest.Route(tt.filename)
		if tt.wantErr {
			assert.ErrorIs(t, err, domain.ErrUnsupportedFormat, tt.filename)
			continue
		}
		require.NoError(t, err, tt.filename)
		assert.Equal(t, tt.path, path, tt.filename)
	}
}

func TestExt(t *testing.T) {
	assert.Equal(t, "csv", ingest.Ext("sof.csv"))
	assert.Equal(t, "xlsx", ingest.Ext("Report.XLSX"))
	assert.Equal(t, "", ingest.Ext("noext"))
}

func header(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name}
}

func TestSelect_FirstFilePerPathWins(t *testing.T) {
	files := []*multipart.FileHeader{
		header("first.csv"),
		header("second.csv"),
		header("scan.pdf"),
		header("other.docx"),
	}

	tabular, document, unsupported := ingest.Select(files)

	require.NotNil(t, tabular)
	require.NotNil(t, document)
	assert.Equal(t, "first.csv", tabular.Filename)
	assert.Equal(t, "scan.pdf", document.Filename)
	assert.Empty(t, unsupported)
}

func TestSelect_CollectsUnsupported(t *testing.T) {
	files := []*multipart.FileHeader{
		header("notes.txt"),
		header("image.png"),
	}

	tabular, document, unsupported := ingest.Select(files)

	assert.Nil(t, tabular)
	assert.Nil(t, document)
	require.Len(t, unsupported, 2)
	assert.Equal(t, "notes.txt", unsupported[0].Filename)
}

func TestSelect_MixedBatch(t *testing.T) {
	files := []*multipart.FileHeader{
		header("readme.md"),
		header("sof.xlsx"),
	}

	tabular, document, unsupported := ingest.Select(files)

	require.NotNil(t, tabular)
	assert.Equal(t, "sof.xlsx", tabular.Filename)
	assert.Nil(t, document)
	assert.Len(t, unsupported, 1)
}
