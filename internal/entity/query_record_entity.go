package entity

import (
	"time"

	"github.com/google/uuid"
)

// QueryRecord is append-only: once written it is never updated or deleted
// except by cascade when its file is removed.
type QueryRecord struct {
	Id             uuid.UUID
	FileId         uuid.UUID
	UserId         uuid.UUID
	Question       string
	Answer         string
	ModelUsed      string
	Cached         bool
	ResponseTimeMs float64
	CreatedAt      time.Time
}
