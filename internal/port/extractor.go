package port

import (
	"context"

	"sofhub/internal/domain"
)

// DocumentExtractor abstracts the remote document-understanding service that
// turns PDF/Word bytes into an extraction payload. The algorithm behind it is
// entirely the service's responsibility.
type DocumentExtractor interface {
	Extract(ctx context.Context, filename string, content []byte) (*domain.ExtractionResult, error)
}
