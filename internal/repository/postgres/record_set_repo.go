package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sofhub/internal/domain"
	"sofhub/internal/port"
)

type recordSetRepo struct {
	db *sqlx.DB
}

// NewRecordSetRepo creates a PostgreSQL-backed RecordSetRepository. Each
// owner's records live in one jsonb column rewritten whole on every change;
// concurrent writers are last-writer-wins.
func NewRecordSetRepo(db *sqlx.DB) port.RecordSetRepository {
	return &recordSetRepo{db: db}
}

func (r *recordSetRepo) Get(ctx context.Context, owner uuid.UUID) ([]domain.SavedRecord, error) {
	var raw []byte
	err := r.db.GetContext(ctx, &raw,
		"SELECT records FROM record_sets WHERE owner_id = $1", owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []domain.SavedRecord{}, nil
		}
		return nil, fmt.Errorf("recordSetRepo.Get: %w", err)
	}

	var records []domain.SavedRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("recordSetRepo.Get: decoding record set: %w", err)
	}
	return records, nil
}

func (r *recordSetRepo) Put(ctx context.Context, owner uuid.UUID, records []domain.SavedRecord) error {
	if records == nil {
		records = []domain.SavedRecord{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("recordSetRepo.Put: encoding record set: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO record_sets (owner_id, records, updated_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (owner_id) DO UPDATE SET records = $2, updated_at = $3`,
		owner, raw, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("recordSetRepo.Put: %w", err)
	}
	return nil
}
