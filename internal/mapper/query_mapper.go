package mapper

import (
	"tabular-qa-be/internal/entity"
	"tabular-qa-be/internal/model"
)

type QueryMapper struct{}

func NewQueryMapper() *QueryMapper {
	return &QueryMapper{}
}

func (m *QueryMapper) ToEntity(q *model.QueryRecord) *entity.QueryRecord {
	if q == nil {
		return nil
	}
	return &entity.QueryRecord{
		Id:             q.Id,
		FileId:         q.FileId,
		UserId:         q.UserId,
		Question:       q.Question,
		Answer:         q.Answer,
		ModelUsed:      q.ModelUsed,
		Cached:         q.Cached,
		ResponseTimeMs: q.ResponseTimeMs,
		CreatedAt:      q.CreatedAt,
	}
}

func (m *QueryMapper) ToModel(q *entity.QueryRecord) *model.QueryRecord {
	if q == nil {
		return nil
	}
	return &model.QueryRecord{
		Id:             q.Id,
		FileId:         q.FileId,
		UserId:         q.UserId,
		Question:       q.Question,
		Answer:         q.Answer,
		ModelUsed:      q.ModelUsed,
		Cached:         q.Cached,
		ResponseTimeMs: q.ResponseTimeMs,
		CreatedAt:      q.CreatedAt,
	}
}

func (m *QueryMapper) ToEntities(records []*model.QueryRecord) []*entity.QueryRecord {
	entities := make([]*entity.QueryRecord, len(records))
	for i, q := range records {
		entities[i] = m.ToEntity(q)
	}
	return entities
}
