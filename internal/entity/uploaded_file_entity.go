package entity

import (
	"time"

	"github.com/google/uuid"
)

type UploadedFile struct {
	Id               uuid.UUID
	UserId           uuid.UUID
	Filename         string
	OriginalFilename string
	FilePath         string
	FileType         string // "csv", "xlsx" or "xls"
	RowCount         int
	ColumnCount      int
	Columns          []string
	FileSizeKB       float64
	UploadedAt       time.Time
}
