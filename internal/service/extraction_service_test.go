package service_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sofhub/internal/config"
	"sofhub/internal/domain"
	"sofhub/internal/port"
	"sofhub/internal/service"
	"sofhub/internal/workspace"
	"sofhub/mocks"
)

// uploadBatch builds real multipart file headers so fh.Open works in tests.
func uploadBatch(t *testing.T, files map[string]string) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&buf, mw.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	var headers []*multipart.FileHeader
	for _, fhs := range form.File {
		headers = append(headers, fhs...)
	}
	return headers
}

func newExtractionService(remote port.DocumentExtractor, archive port.ObjectStorage, bucket string) (service.ExtractionService, *workspace.Manager) {
	ws := workspace.NewManager()
	svc := service.NewExtractionService(ws, remote, archive,
		&config.S3Config{Bucket: bucket},
		&config.UploadConfig{MaxFileSizeMB: 10},
	)
	return svc, ws
}

func TestExtractionService_Ingest_CSV(t *testing.T) {
	svc, ws := newExtractionService(new(mocks.MockDocumentExtractor), nil, "")
	owner := uuid.New()
	files := uploadBatch(t, map[string]string{
		"sof.csv": "Vessel,Event,Start Time,End Time\nMV TEST,Loading,08:00,10:00",
	})

	res, err := svc.Ingest(context.Background(), owner, files)

	require.NoError(t, err)
	assert.Equal(t, "MV TEST", res.Vessel)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "Loading", res.Events[0].Name)
	assert.NotEqual(t, uuid.Nil, res.Events[0].ID)

	current, err := ws.Current(owner)
	require.NoError(t, err)
	assert.Same(t, res, current)
}

func TestExtractionService_Ingest_NoFiles(t *testing.T) {
	svc, _ := newExtractionService(new(mocks.MockDocumentExtractor), nil, "")

	_, err := svc.Ingest(context.Background(), uuid.New(), nil)

	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestExtractionService_Ingest_UnsupportedOnly(t *testing.T) {
	svc, ws := newExtractionService(new(mocks.MockDocumentExtractor), nil, "")
	owner := uuid.New()
	files := uploadBatch(t, map[string]string{"notes.txt": "hello"})

	_, err := svc.Ingest(context.Background(), owner, files)

	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	_, err = ws.Current(owner)
	assert.ErrorIs(t, err, domain.ErrWorkspaceEmpty)
}

func TestExtractionService_Ingest_HeaderOnlyCSV(t *testing.T) {
	svc, _ := newExtractionService(new(mocks.MockDocumentExtractor), nil, "")
	files := uploadBatch(t, map[string]string{"sof.csv": "Vessel,Event"})

	_, err := svc.Ingest(context.Background(), uuid.New(), files)

	assert.ErrorIs(t, err, domain.ErrNoExtractableVesselRow)
}

func TestExtractionService_Ingest_Document(t *testing.T) {
	remote := new(mocks.MockDocumentExtractor)
	remote.On("Extract", mock.Anything, "sof.pdf", []byte("%PDF")).Return(&domain.ExtractionResult{
		Vessel: "MV OCEAN",
		Events: []domain.Event{{Name: "NOR Tendered", Start: "06:00", End: "--:--"}},
	}, nil)

	svc, ws := newExtractionService(remote, nil, "")
	owner := uuid.New()
	files := uploadBatch(t, map[string]string{"sof.pdf": "%PDF"})

	res, err := svc.Ingest(context.Background(), owner, files)

	require.NoError(t, err)
	assert.Equal(t, "MV OCEAN", res.Vessel)
	assert.NotEqual(t, uuid.Nil, res.Events[0].ID)

	_, err = ws.Current(owner)
	assert.NoError(t, err)
	remote.AssertExpectations(t)
}

func TestExtractionService_Ingest_DocumentExtractorDown(t *testing.T) {
	remote := new(mocks.MockDocumentExtractor)
	remote.On("Extract", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.ErrExtractionUnavailable)

	svc, ws := newExtractionService(remote, nil, "")
	owner := uuid.New()
	files := uploadBatch(t, map[string]string{"sof.pdf": "%PDF"})

	_, err := svc.Ingest(context.Background(), owner, files)

	assert.ErrorIs(t, err, domain.ErrExtractionUnavailable)
	_, err = ws.Current(owner)
	assert.ErrorIs(t, err, domain.ErrWorkspaceEmpty)
}

func TestExtractionService_Ingest_ArchivesSource(t *testing.T) {
	archive := new(mocks.MockObjectStorage)
	archive.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "sof-archive" && in.ContentType == "text/csv"
	})).Return(&port.UploadOutput{Location: "s3://sof-archive/x"}, nil)

	svc, _ := newExtractionService(new(mocks.MockDocumentExtractor), archive, "sof-archive")
	files := uploadBatch(t, map[string]string{
		"sof.csv": "Vessel,Event\nMV TEST,Loading",
	})

	_, err := svc.Ingest(context.Background(), uuid.New(), files)

	require.NoError(t, err)
	archive.AssertExpectations(t)
}

func TestExtractionService_Ingest_ArchiveFailureIsBestEffort(t *testing.T) {
	archive := new(mocks.MockObjectStorage)
	archive.On("Upload", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	svc, ws := newExtractionService(new(mocks.MockDocumentExtractor), archive, "sof-archive")
	owner := uuid.New()
	files := uploadBatch(t, map[string]string{
		"sof.csv": "Vessel,Event\nMV TEST,Loading",
	})

	res, err := svc.Ingest(context.Background(), owner, files)

	require.NoError(t, err)
	assert.Equal(t, "MV TEST", res.Vessel)
	_, err = ws.Current(owner)
	assert.NoError(t, err)
}

func TestExtractionService_Ingest_ReplacesPrevious(t *testing.T) {
	svc, ws := newExtractionService(new(mocks.MockDocumentExtractor), nil, "")
	owner := uuid.New()

	first := uploadBatch(t, map[string]string{"a.csv": "Vessel,Event\nMV FIRST,Loading"})
	_, err := svc.Ingest(context.Background(), owner, first)
	require.NoError(t, err)

	second := uploadBatch(t, map[string]string{"b.csv": "Vessel,Event\nMV SECOND,Discharge"})
	_, err = svc.Ingest(context.Background(), owner, second)
	require.NoError(t, err)

	current, err := ws.Current(owner)
	require.NoError(t, err)
	assert.Equal(t, "MV SECOND", current.Vessel)
}

func TestExtractionService_EventOperations(t *testing.T) {
	svc, _ := newExtractionService(new(mocks.MockDocumentExtractor), nil, "")
	owner := uuid.New()
	files := uploadBatch(t, map[string]string{
		"sof.csv": "Vessel,Event,Start Time,End Time\nMV TEST,Loading,08:00,10:00\nMV TEST,Discharge,11:00,12:00",
	})
	res, err := svc.Ingest(context.Background(), owner, files)
	require.NoError(t, err)
	require.Len(t, res.Events, 2)

	newStart := "08:30"
	ev, err := svc.UpdateEventByID(owner, res.Events[0].ID, workspace.EventPatch{Start: &newStart})
	require.NoError(t, err)
	assert.Equal(t, "08:30", ev.Start)

	require.NoError(t, svc.DeleteEventByIndex(owner, 1))

	current, err := svc.Current(owner)
	require.NoError(t, err)
	require.Len(t, current.Events, 1)
	assert.Equal(t, "Loading", current.Events[0].Name)

	svc.Clear(owner)
	_, err = svc.Current(owner)
	assert.ErrorIs(t, err, domain.ErrWorkspaceEmpty)
}

func TestExtractionService_Ingest_RecordsArchiveKey(t *testing.T) {
	archive := new(mocks.MockObjectStorage)
	archive.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)

	svc, ws := newExtractionService(new(mocks.MockDocumentExtractor), archive, "sof-archive")
	owner := uuid.New()
	files := uploadBatch(t, map[string]string{
		"sof.csv": "Vessel,Event\nMV TEST,Loading",
	})

	res, err := svc.Ingest(context.Background(), owner, files)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.SourceKey, "sources/"+owner.String()+"/"))
	assert.True(t, strings.HasSuffix(res.SourceKey, "/sof.csv"))

	current, err := ws.Current(owner)
	require.NoError(t, err)
	assert.Equal(t, res.SourceKey, current.SourceKey)
}

func TestExtractionService_SourceURL(t *testing.T) {
	archive := new(mocks.MockObjectStorage)
	archive.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	archive.On("GetPresignedURL", mock.Anything, "sof-archive", mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "sources/")
	}), mock.Anything).Return("https://sof-archive.example/signed", nil)

	svc, _ := newExtractionService(new(mocks.MockDocumentExtractor), archive, "sof-archive")
	owner := uuid.New()
	files := uploadBatch(t, map[string]string{
		"sof.csv": "Vessel,Event\nMV TEST,Loading",
	})
	_, err := svc.Ingest(context.Background(), owner, files)
	require.NoError(t, err)

	url, err := svc.SourceURL(context.Background(), owner)

	require.NoError(t, err)
	assert.Equal(t, "https://sof-archive.example/signed", url)
	archive.AssertExpectations(t)
}

func TestExtractionService_SourceURL_NotArchived(t *testing.T) {
	svc, _ := newExtractionService(new(mocks.MockDocumentExtractor), nil, "")
	owner := uuid.New()
	files := uploadBatch(t, map[string]string{
		"sof.csv": "Vessel,Event\nMV TEST,Loading",
	})
	_, err := svc.Ingest(context.Background(), owner, files)
	require.NoError(t, err)

	_, err = svc.SourceURL(context.Background(), owner)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExtractionService_SourceURL_EmptyWorkspace(t *testing.T) {
	svc, _ := newExtractionService(new(mocks.MockDocumentExtractor), nil, "")

	_, err := svc.SourceURL(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrWorkspaceEmpty)
}

func TestExtractionService_Ingest_DocumentFailureKeepsTabularResult(t *testing.T) {
	remote := new(mocks.MockDocumentExtractor)
	remote.On("Extract", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.ErrExtractionUnavailable)

	svc, ws := newExtractionService(remote, nil, "")
	owner := uuid.New()
	files := uploadBatch(t, map[string]string{
		"sof.csv": "Vessel,Event\nMV TEST,Loading",
		"sof.pdf": "%PDF",
	})

	res, err := svc.Ingest(context.Background(), owner, files)

	require.NoError(t, err)
	assert.Equal(t, "MV TEST", res.Vessel)

	current, err := ws.Current(owner)
	require.NoError(t, err)
	assert.Equal(t, "MV TEST", current.Vessel)
}

func TestExtractionService_Ingest_UnreadableWorkbook(t *testing.T) {
	svc, _ := newExtractionService(new(mocks.MockDocumentExtractor), nil, "")
	files := uploadBatch(t, map[string]string{"sof.xlsx": "not a zip archive"})

	_, err := svc.Ingest(context.Background(), uuid.New(), files)

	assert.ErrorIs(t, err, domain.ErrNoExtractableVesselRow)
}
