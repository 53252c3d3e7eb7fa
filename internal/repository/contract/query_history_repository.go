package contract

import (
	"context"

	"tabular-qa-be/internal/entity"
	"tabular-qa-be/internal/repository/specification"

	"github.com/google/uuid"
)

// QueryHistoryRepository is append-only on the service side: no update is
// exposed, and deletion only happens as a cascade of a file delete.
type QueryHistoryRepository interface {
	Create(ctx context.Context, record *entity.QueryRecord) error
	DeleteAllByFileId(ctx context.Context, fileId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QueryRecord, error)
}
