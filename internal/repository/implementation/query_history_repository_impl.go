package implementation

import (
	"context"

	"tabular-qa-be/internal/entity"
	"tabular-qa-be/internal/mapper"
	"tabular-qa-be/internal/model"
	"tabular-qa-be/internal/repository/contract"
	"tabular-qa-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QueryHistoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.QueryMapper
}

func NewQueryHistoryRepository(db *gorm.DB) contract.QueryHistoryRepository {
	return &QueryHistoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewQueryMapper(),
	}
}

func (r *QueryHistoryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *QueryHistoryRepositoryImpl) Create(ctx context.Context, record *entity.QueryRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *QueryHistoryRepositoryImpl) DeleteAllByFileId(ctx context.Context, fileId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("file_id = ?", fileId).Delete(&model.QueryRecord{}).Error
}

func (r *QueryHistoryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QueryRecord, error) {
	var models []*model.QueryRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
