package dto

import (
	"time"

	"github.com/google/uuid"
)

type FileUploadResponse struct {
	Id               uuid.UUID `json:"id"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"original_filename"`
	FileType         string    `json:"file_type"`
	RowCount         int       `json:"row_count"`
	ColumnCount      int       `json:"column_count"`
	Columns          []string  `json:"columns"`
	FileSizeKB       float64   `json:"file_size_kb"`
	UploadedAt       time.Time `json:"uploaded_at"`
}
