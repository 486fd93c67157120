package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"sofhub/internal/export"
	"sofhub/internal/workspace"
)

// ExportService produces CSV/JSON artifacts from the in-memory workspace or
// any persisted record.
type ExportService interface {
	WorkspaceCSV(owner uuid.UUID) (filename string, data []byte, err error)
	WorkspaceJSON(owner uuid.UUID) (filename string, data []byte, err error)
	RecordCSV(ctx context.Context, owner uuid.UUID, id int64) (filename string, data []byte, err error)
	RecordJSON(ctx context.Context, owner uuid.UUID, id int64) (filename string, data []byte, err error)
}

type exportService struct {
	workspaces *workspace.Manager
	records    RecordService
}

// NewExportService creates an ExportService.
func NewExportService(workspaces *workspace.Manager, records RecordService) ExportService {
	return &exportService{workspaces: workspaces, records: records}
}

func (s *exportService) WorkspaceCSV(owner uuid.UUID) (string, []byte, error) {
	res, err := s.workspaces.Current(owner)
	if err != nil {
		return "", nil, err
	}
	data, err := export.EventsCSV(res.Events)
	if err != nil {
		return "", nil, err
	}
	return export.CSVFilename(time.Now()), data, nil
}

func (s *exportService) WorkspaceJSON(owner uuid.UUID) (string, []byte, error) {
	res, err := s.workspaces.Current(owner)
	if err != nil {
		return "", nil, err
	}
	data, err := export.JSON(res)
	if err != nil {
		return "", nil, err
	}
	return export.JSONFilename(time.Now()), data, nil
}

func (s *exportService) RecordCSV(ctx context.Context, owner uuid.UUID, id int64) (string, []byte, error) {
	rec, err := s.records.Get(ctx, owner, id)
	if err != nil {
		return "", nil, err
	}
	data, err := export.EventsCSV(rec.Events)
	if err != nil {
		return "", nil, err
	}
	return export.CSVFilename(time.Now()), data, nil
}

func (s *exportService) RecordJSON(ctx context.Context, owner uuid.UUID, id int64) (string, []byte, error) {
	rec, err := s.records.Get(ctx, owner, id)
	if err != nil {
		return "", nil, err
	}
	data, err := export.JSON(rec)
	if err != nil {
		return "", nil, err
	}
	return export.JSONFilename(time.Now()), data, nil
}
