package model

import (
	"time"

	"github.com/google/uuid"
)

type QueryRecord struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FileId         uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId         uuid.UUID `gorm:"type:uuid;not null;index"`
	Question       string    `gorm:"type:text;not null"`
	Answer         string    `gorm:"type:text;not null"`
	ModelUsed      string    `gorm:"type:varchar(64)"`
	Cached         bool      `gorm:"not null;default:false"`
	ResponseTimeMs float64
	CreatedAt      time.Time `gorm:"autoCreateTime;index"`
}

func (QueryRecord) TableName() string {
	return "query_history"
}
