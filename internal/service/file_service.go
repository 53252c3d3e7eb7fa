package service

import (
	"context"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tabular-qa-be/internal/config"
	"tabular-qa-be/internal/dto"
	"tabular-qa-be/internal/entity"
	"tabular-qa-be/internal/pkg/apperror"
	"tabular-qa-be/internal/pkg/logger"
	"tabular-qa-be/internal/repository/specification"
	"tabular-qa-be/internal/repository/unitofwork"
	"tabular-qa-be/pkg/events"
	pktNats "tabular-qa-be/pkg/nats"
	"tabular-qa-be/pkg/tabular"

	"github.com/google/uuid"
)

type IFileService interface {
	Upload(ctx context.Context, userId uuid.UUID, fileHeader *multipart.FileHeader) (*dto.FileUploadResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.FileUploadResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, fileId uuid.UUID) error
}

type fileService struct {
	uowFactory     unitofwork.RepositoryFactory
	uploadCfg      config.UploadConfig
	log            logger.ILogger
	auditPublisher IAuditPublisher
	eventPublisher *pktNats.Publisher
}

func NewFileService(
	uowFactory unitofwork.RepositoryFactory,
	uploadCfg config.UploadConfig,
	log logger.ILogger,
	auditPublisher IAuditPublisher,
	eventPublisher *pktNats.Publisher,
) IFileService {
	return &fileService{
		uowFactory:     uowFactory,
		uploadCfg:      uploadCfg,
		log:            log,
		auditPublisher: auditPublisher,
		eventPublisher: eventPublisher,
	}
}

var allowedExtensions = map[string]string{
	".csv":  tabular.TypeCSV,
	".xlsx": tabular.TypeXLSX,
	".xls":  tabular.TypeXLS,
}

func (s *fileService) Upload(ctx context.Context, userId uuid.UUID, fileHeader *multipart.FileHeader) (*dto.FileUploadResponse, error) {
	// 1. Validate extension and size before anything touches disk.
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	fileType, ok := allowedExtensions[ext]
	if !ok {
		return nil, apperror.Validation("only CSV and Excel files are supported")
	}

	maxBytes := int64(s.uploadCfg.MaxFileSizeMB) * 1024 * 1024
	if fileHeader.Size > maxBytes {
		return nil, apperror.Validation(fmt.Sprintf("file exceeds %dMB limit", s.uploadCfg.MaxFileSizeMB))
	}

	// 2. Store under a collision-free name.
	if err := os.MkdirAll(s.uploadCfg.Dir, 0o755); err != nil {
		return nil, err
	}
	uniqueName := uuid.New().String() + ext
	storedPath := filepath.Join(s.uploadCfg.Dir, uniqueName)

	if err := s.saveUpload(fileHeader, storedPath); err != nil {
		return nil, err
	}

	// 3. Parse to detect shape; an unreadable file is rejected and removed.
	table, err := tabular.Load(storedPath, fileType)
	if err != nil {
		_ = os.Remove(storedPath)
		return nil, apperror.Validation("could not parse file, ensure it is a valid CSV or Excel")
	}

	record := &entity.UploadedFile{
		Id:               uuid.New(),
		UserId:           userId,
		Filename:         uniqueName,
		OriginalFilename: fileHeader.Filename,
		FilePath:         storedPath,
		FileType:         fileType,
		RowCount:         table.RowCount(),
		ColumnCount:      table.ColumnCount(),
		Columns:          table.Columns,
		FileSizeKB:       math.Round(float64(fileHeader.Size)/1024*100) / 100,
		UploadedAt:       time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.FileRepository().Create(ctx, record); err != nil {
		_ = os.Remove(storedPath)
		return nil, err
	}

	s.publishEvent(ctx, events.TypeFileUploaded, map[string]interface{}{
		"file_id":   record.Id,
		"user_id":   userId,
		"file_type": record.FileType,
		"rows":      record.RowCount,
		"columns":   record.ColumnCount,
	})

	return toFileResponse(record), nil
}

func (s *fileService) List(ctx context.Context, userId uuid.UUID) ([]*dto.FileUploadResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	files, err := uow.FileRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "uploaded_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.FileUploadResponse, len(files))
	for i, f := range files {
		result[i] = toFileResponse(f)
	}
	return result, nil
}

func (s *fileService) Delete(ctx context.Context, userId uuid.UUID, fileId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	record, err := uow.FileRepository().FindOne(ctx,
		specification.ByID{ID: fileId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if record == nil {
		return apperror.NotFound("file not found")
	}

	// History rows cascade with the file inside one transaction.
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.QueryHistoryRepository().DeleteAllByFileId(ctx, fileId); err != nil {
		return err
	}
	if err := uow.FileRepository().Delete(ctx, fileId); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	// Cached answers for this file are NOT purged: keys are digests of
	// (file_id, question) and cannot be enumerated, so stale entries are
	// left to TTL expiry.
	if _, statErr := os.Stat(record.FilePath); statErr == nil {
		if err := os.Remove(record.FilePath); err != nil {
			s.log.Warn("FileService", "Failed to remove stored file", map[string]interface{}{
				"path":  record.FilePath,
				"error": err.Error(),
			})
		}
	}

	s.publishEvent(ctx, events.TypeFileDeleted, map[string]interface{}{
		"file_id": fileId,
		"user_id": userId,
	})

	return nil
}

func (s *fileService) saveUpload(fileHeader *multipart.FileHeader, dst string) error {
	src, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}

func (s *fileService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	event := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if s.auditPublisher != nil {
		if err := s.auditPublisher.Publish(event); err != nil {
			s.log.Warn("FileService", "Failed to publish audit event", map[string]interface{}{
				"type":  eventType,
				"error": err.Error(),
			})
		}
	}
	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.log.Warn("FileService", "Failed to publish NATS event", map[string]interface{}{
				"type":  eventType,
				"error": err.Error(),
			})
		}
	}
}

func toFileResponse(f *entity.UploadedFile) *dto.FileUploadResponse {
	columns := f.Columns
	if columns == nil {
		columns = []string{}
	}
	return &dto.FileUploadResponse{
		Id:               f.Id,
		Filename:         f.Filename,
		OriginalFilename: f.OriginalFilename,
		FileType:         f.FileType,
		RowCount:         f.RowCount,
		ColumnCount:      f.ColumnCount,
		Columns:          columns,
		FileSizeKB:       f.FileSizeKB,
		UploadedAt:       f.UploadedAt,
	}
}
