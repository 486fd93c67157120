package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"

	"github.com/google/uuid"

	"sofhub/internal/config"
	"sofhub/internal/domain"
	"sofhub/internal/ingest"
	"sofhub/internal/normalize"
	"sofhub/internal/port"
	"sofhub/internal/workspace"
)

// ExtractionService turns uploaded files into the owner's current
// ExtractionResult and mediates pre-save event corrections.
type ExtractionService interface {
	Ingest(ctx context.Context, owner uuid.UUID, files []*multipart.FileHeader) (*domain.ExtractionResult, error)
	Current(owner uuid.UUID) (*domain.ExtractionResult, error)
	SourceURL(ctx context.Context, owner uuid.UUID) (string, error)
	Clear(owner uuid.UUID)
	UpdateEventByID(owner, eventID uuid.UUID, patch workspace.EventPatch) (*domain.Event, error)
	UpdateEventByIndex(owner uuid.UUID, index int, patch workspace.EventPatch) (*domain.Event, error)
	DeleteEventByID(owner, eventID uuid.UUID) error
	DeleteEventByIndex(owner uuid.UUID, index int) error
}

type extractionService struct {
	workspaces *workspace.Manager
	remote     port.DocumentExtractor
	archive    port.ObjectStorage
	s3cfg      *config.S3Config
	uploadCfg  *config.UploadConfig
}

// NewExtractionService creates an ExtractionService. archive may be nil when
// no bucket is configured; source files are then not archived.
func NewExtractionService(
	workspaces *workspace.Manager,
	remote port.DocumentExtractor,
	archive port.ObjectStorage,
	s3cfg *config.S3Config,
	uploadCfg *config.UploadConfig,
) ExtractionService {
	return &extractionService{
		workspaces: workspaces,
		remote:     remote,
		archive:    archive,
		s3cfg:      s3cfg,
		uploadCfg:  uploadCfg,
	}
}

// Ingest routes the upload batch, processes the first file offered to each
// path (additional files are silently discarded), and installs the outcome as
// the owner's current result. When both paths receive a file each result
// replaces the previous one; the last to resolve wins, matching the
// concurrency contract of the store.
func (s *extractionService) Ingest(ctx context.Context, owner uuid.UUID, files []*multipart.FileHeader) (*domain.ExtractionResult, error) {
	tabular, document, unsupported := ingest.Select(files)
	if tabular == nil && document == nil {
		if len(unsupported) > 0 {
			log.Printf("extractionService.Ingest: rejected %d unsupported file(s), first %q",
				len(unsupported), unsupported[0].Filename)
		}
		return nil, domain.ErrUnsupportedFormat
	}

	var result *domain.ExtractionResult

	if tabular != nil {
		res, err := s.processTabular(ctx, owner, tabular)
		if err != nil {
			return nil, err
		}
		result = res
	}

	if document != nil {
		res, err := s.processDocument(ctx, owner, document)
		if err != nil {
			// The tabular result already replaced the workspace; returning
			// an error here would hide that from the caller. Report the
			// partial success instead.
			if result != nil {
				log.Printf("extractionService.Ingest: document %s failed after tabular success: %v",
					document.Filename, err)
				return result, nil
			}
			return nil, err
		}
		result = res
	}

	return result, nil
}

func (s *extractionService) processTabular(ctx context.Context, owner uuid.UUID, fh *multipart.FileHeader) (*domain.ExtractionResult, error) {
	content, err := s.readAll(fh)
	if err != nil {
		return nil, err
	}

	var rows []ingest.Row
	if ingest.Ext(fh.Filename) == "csv" {
		rows = ingest.ParseTable(string(content))
	} else {
		rows, err = ingest.RowsFromWorkbook(bytes.NewReader(content))
		if err != nil {
			log.Printf("extractionService.processTabular: unreadable workbook %s: %v", fh.Filename, err)
			return nil, domain.ErrNoExtractableVesselRow
		}
	}

	res := ingest.ExtractFromRows(rows, fh.Filename)
	if res == nil {
		return nil, domain.ErrNoExtractableVesselRow
	}
	normalize.Apply(res)

	res.SourceKey = s.archiveSource(ctx, owner, fh.Filename, content)
	s.workspaces.Replace(owner, res)
	log.Printf("extractionService.processTabular: %s extracted, vessel=%q events=%d",
		fh.Filename, res.Vessel, len(res.Events))
	return res, nil
}

func (s *extractionService) processDocument(ctx context.Context, owner uuid.UUID, fh *multipart.FileHeader) (*domain.ExtractionResult, error) {
	content, err := s.readAll(fh)
	if err != nil {
		return nil, err
	}

	res, err := s.remote.Extract(ctx, fh.Filename, content)
	if err != nil {
		return nil, err
	}
	normalize.Apply(res)

	res.SourceKey = s.archiveSource(ctx, owner, fh.Filename, content)
	s.workspaces.Replace(owner, res)
	log.Printf("extractionService.processDocument: %s extracted, vessel=%q events=%d",
		fh.Filename, res.Vessel, len(res.Events))
	return res, nil
}

func (s *extractionService) readAll(fh *multipart.FileHeader) ([]byte, error) {
	maxBytes := s.uploadCfg.MaxFileSizeMB * 1024 * 1024
	if fh.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload %s: %w", fh.Filename, err)
	}
	defer func() { _ = f.Close() }()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading upload %s: %w", fh.Filename, err)
	}
	return content, nil
}

// archiveSource stores the raw upload in the archive bucket and returns the
// object key, or "" when archiving is disabled or failed. Best effort:
// extraction already succeeded and a failed archive write must not undo it.
func (s *extractionService) archiveSource(ctx context.Context, owner uuid.UUID, filename string, content []byte) string {
	if s.archive == nil || s.s3cfg.Bucket == "" {
		return ""
	}
	key := fmt.Sprintf("sources/%s/%s/%s", owner, uuid.New(), filename)
	contentType := domain.ContentTypes[ingest.Ext(filename)]
	_, err := s.archive.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(content),
		ContentType: contentType,
		Size:        int64(len(content)),
	})
	if err != nil {
		log.Printf("extractionService.archiveSource: archiving %s failed: %v", filename, err)
		return ""
	}
	return key
}

func (s *extractionService) Current(owner uuid.UUID) (*domain.ExtractionResult, error) {
	return s.workspaces.Current(owner)
}

// sourceURLExpirySecs bounds how long a presigned source download stays
// valid.
const sourceURLExpirySecs = 900

// SourceURL returns a presigned download URL for the current result's
// archived source document. ErrNotFound when the upload was not archived.
func (s *extractionService) SourceURL(ctx context.Context, owner uuid.UUID) (string, error) {
	res, err := s.workspaces.Current(owner)
	if err != nil {
		return "", err
	}
	if s.archive == nil || res.SourceKey == "" {
		return "", domain.ErrNotFound
	}
	return s.archive.GetPresignedURL(ctx, s.s3cfg.Bucket, res.SourceKey, sourceURLExpirySecs)
}

func (s *extractionService) Clear(owner uuid.UUID) {
	s.workspaces.Clear(owner)
}

func (s *extractionService) UpdateEventByID(owner, eventID uuid.UUID, patch workspace.EventPatch) (*domain.Event, error) {
	return s.workspaces.UpdateEventByID(owner, eventID, patch)
}

func (s *extractionService) UpdateEventByIndex(owner uuid.UUID, index int, patch workspace.EventPatch) (*domain.Event, error) {
	return s.workspaces.UpdateEvent(owner, index, patch)
}

func (s *extractionService) DeleteEventByID(owner, eventID uuid.UUID) error {
	return s.workspaces.DeleteEventByID(owner, eventID)
}

func (s *extractionService) DeleteEventByIndex(owner uuid.UUID, index int) error {
	return s.workspaces.DeleteEvent(owner, index)
}
