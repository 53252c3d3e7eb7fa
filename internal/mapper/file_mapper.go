package mapper

import (
	"encoding/json"

	"tabular-qa-be/internal/entity"
	"tabular-qa-be/internal/model"

	"gorm.io/datatypes"
)

type FileMapper struct{}

func NewFileMapper() *FileMapper {
	return &FileMapper{}
}

func (m *FileMapper) ToEntity(f *model.UploadedFile) *entity.UploadedFile {
	if f == nil {
		return nil
	}

	var columns []string
	if len(f.Columns) > 0 {
		// A corrupt column list is not fatal; the file itself is still usable.
		_ = json.Unmarshal(f.Columns, &columns)
	}

	return &entity.UploadedFile{
		Id:               f.Id,
		UserId:           f.UserId,
		Filename:         f.Filename,
		OriginalFilename: f.OriginalFilename,
		FilePath:         f.FilePath,
		FileType:         f.FileType,
		RowCount:         f.RowCount,
		ColumnCount:      f.ColumnCount,
		Columns:          columns,
		FileSizeKB:       f.FileSizeKB,
		UploadedAt:       f.UploadedAt,
	}
}

func (m *FileMapper) ToModel(f *entity.UploadedFile) *model.UploadedFile {
	if f == nil {
		return nil
	}

	var columns datatypes.JSON
	if f.Columns != nil {
		if raw, err := json.Marshal(f.Columns); err == nil {
			columns = raw
		}
	}

	return &model.UploadedFile{
		Id:               f.Id,
		UserId:           f.UserId,
		Filename:         f.Filename,
		OriginalFilename: f.OriginalFilename,
		FilePath:         f.FilePath,
		FileType:         f.FileType,
		RowCount:         f.RowCount,
		ColumnCount:      f.ColumnCount,
		Columns:          columns,
		FileSizeKB:       f.FileSizeKB,
		UploadedAt:       f.UploadedAt,
	}
}

func (m *FileMapper) ToEntities(files []*model.UploadedFile) []*entity.UploadedFile {
	entities := make([]*entity.UploadedFile, len(files))
	for i, f := range files {
		entities[i] = m.ToEntity(f)
	}
	return entities
}
