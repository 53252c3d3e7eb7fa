package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UploadedFile struct {
	Id               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId           uuid.UUID      `gorm:"type:uuid;not null;index"`
	Filename         string         `gorm:"type:varchar(255);not null"`
	OriginalFilename string         `gorm:"type:varchar(255);not null"`
	FilePath         string         `gorm:"type:varchar(512);not null"`
	FileType         string         `gorm:"type:varchar(16);not null"`
	RowCount         int            `gorm:"not null;default:0"`
	ColumnCount      int            `gorm:"not null;default:0"`
	Columns          datatypes.JSON `gorm:"type:jsonb"`
	FileSizeKB       float64
	UploadedAt       time.Time `gorm:"autoCreateTime"`
}

func (UploadedFile) TableName() string {
	return "uploaded_files"
}
