package port

import (
	"context"

	"github.com/google/uuid"

	"sofhub/internal/domain"
)

// RecordSetRepository persists each owner's SavedRecord sequence as one
// JSON-encoded document under a single durable key. Reads and writes move
// the whole sequence; there is no per-record isolation and the last writer
// wins.
type RecordSetRepository interface {
	Get(ctx context.Context, owner uuid.UUID) ([]domain.SavedRecord, error)
	Put(ctx context.Context, owner uuid.UUID, records []domain.SavedRecord) error
}

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
