package dto

import (
	"time"

	"github.com/google/uuid"
)

type QueryRequest struct {
	FileId   uuid.UUID `json:"file_id" validate:"required"`
	Question string    `json:"question" validate:"required"`
	Model    string    `json:"model"`
}

type QueryResponse struct {
	Answer         string    `json:"answer"`
	FileId         uuid.UUID `json:"file_id"`
	Question       string    `json:"question"`
	ModelUsed      string    `json:"model_used"`
	Cached         bool      `json:"cached"`
	ResponseTimeMs float64   `json:"response_time_ms"`
}

type QueryHistoryResponse struct {
	Id             uuid.UUID `json:"id"`
	FileId         uuid.UUID `json:"file_id"`
	Question       string    `json:"question"`
	Answer         string    `json:"answer"`
	ModelUsed      string    `json:"model_used"`
	Cached         bool      `json:"cached"`
	ResponseTimeMs float64   `json:"response_time_ms"`
	CreatedAt      time.Time `json:"created_at"`
}
