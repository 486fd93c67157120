package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"sofhub/internal/config"
	"sofhub/internal/domain"
	"sofhub/internal/port"
	"sofhub/internal/validate"
	"sofhub/internal/workspace"
)

// RecordService manages the owner's durable SavedRecord sequence.
type RecordService interface {
	Save(ctx context.Context, owner uuid.UUID, title string) (*domain.SavedRecord, error)
	List(ctx context.Context, owner uuid.UUID, search string) ([]domain.SavedRecord, error)
	Get(ctx context.Context, owner uuid.UUID, id int64) (*domain.SavedRecord, error)
	Rename(ctx context.Context, owner uuid.UUID, id int64, title string) (*domain.SavedRecord, error)
	Delete(ctx context.Context, owner uuid.UUID, id int64) error
}

type recordService struct {
	repo       port.RecordSetRepository
	workspaces *workspace.Manager
	archive    port.ObjectStorage
	s3cfg      *config.S3Config
}

// NewRecordService creates a RecordService over the record-set repository.
// archive may be nil when no bucket is configured; deleting a record then
// leaves no archived source to clean up.
func NewRecordService(repo port.RecordSetRepository, workspaces *workspace.Manager, archive port.ObjectStorage, s3cfg *config.S3Config) RecordService {
	return &recordService{repo: repo, workspaces: workspaces, archive: archive, s3cfg: s3cfg}
}

// Save gates the owner's current result through IsValid, sanitizes it, and
// prepends a new SavedRecord to the sequence. A failed gate blocks the save
// entirely; nothing partial is written.
func (s *recordService) Save(ctx context.Context, owner uuid.UUID, title string) (*domain.SavedRecord, error) {
	res, err := s.workspaces.Current(owner)
	if err != nil {
		return nil, domain.ErrValidationFailed
	}
	if !validate.IsValid(res) {
		return nil, domain.ErrValidationFailed
	}
	clean := validate.Sanitize(res)

	now := time.Now().UTC()
	if title == "" {
		title = clean.Vessel
	}
	record := domain.SavedRecord{
		// Unix milliseconds: two saves within the same millisecond would
		// collide. Acceptable for a human-driven save flow.
		ID:            now.UnixMilli(),
		Title:         title,
		Date:          now.Format("2006-01-02"),
		CreatedAt:     now,
		Vessel:        clean.Vessel,
		Port:          clean.Port,
		TotalEvents:   len(clean.Events),
		Status:        domain.RecordStatusCompleted,
		ExtractedData: *clean,
		Events:        clean.Events,
		SourceFile:    clean.SourceFile,
		SourceKey:     clean.SourceKey,
	}

	records, err := s.repo.Get(ctx, owner)
	if err != nil {
		return nil, err
	}
	records = append([]domain.SavedRecord{record}, records...)
	if err := s.repo.Put(ctx, owner, records); err != nil {
		return nil, err
	}

	log.Printf("recordService.Save: saved record %d (%s, %d events) for owner %s",
		record.ID, record.Vessel, record.TotalEvents, owner)
	return &record, nil
}

// List loads the sequence, silently dropping any entry whose snapshot no
// longer clears the validation gate, and applies the optional search term as
// a case-insensitive substring match on title, vessel, and port. The filter
// is a view; nothing is persisted.
func (s *recordService) List(ctx context.Context, owner uuid.UUID, search string) ([]domain.SavedRecord, error) {
	records, err := s.repo.Get(ctx, owner)
	if err != nil {
		return nil, err
	}

	out := make([]domain.SavedRecord, 0, len(records))
	for _, rec := range records {
		snapshot := rec.ExtractedData
		if !validate.IsValid(&snapshot) {
			continue
		}
		if search != "" && !matches(&rec, search) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func matches(rec *domain.SavedRecord, term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(rec.Title), term) ||
		strings.Contains(strings.ToLower(rec.Vessel), term) ||
		strings.Contains(strings.ToLower(rec.Port), term)
}

func (s *recordService) Get(ctx context.Context, owner uuid.UUID, id int64) (*domain.SavedRecord, error) {
	records, err := s.List(ctx, owner, "")
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

// Rename rewrites only the matching entry's title, then writes the whole
// sequence back. Title is the only field mutable after creation.
func (s *recordService) Rename(ctx context.Context, owner uuid.UUID, id int64, title string) (*domain.SavedRecord, error) {
	records, err := s.repo.Get(ctx, owner)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			records[i].Title = title
			if err := s.repo.Put(ctx, owner, records); err != nil {
				return nil, err
			}
			rec := records[i]
			return &rec, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

// Delete removes the record from the sequence and, best effort, its archived
// source document from the bucket.
func (s *recordService) Delete(ctx context.Context, owner uuid.UUID, id int64) error {
	records, err := s.repo.Get(ctx, owner)
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].ID == id {
			sourceKey := records[i].SourceKey
			records = append(records[:i], records[i+1:]...)
			if err := s.repo.Put(ctx, owner, records); err != nil {
				return err
			}
			s.dropArchivedSource(ctx, sourceKey)
			return nil
		}
	}
	return domain.ErrRecordNotFound
}

func (s *recordService) dropArchivedSource(ctx context.Context, key string) {
	if s.archive == nil || key == "" {
		return
	}
	if err := s.archive.Delete(ctx, s.s3cfg.Bucket, key); err != nil {
		log.Printf("recordService.dropArchivedSource: deleting %s failed: %v", key, err)
	}
}
