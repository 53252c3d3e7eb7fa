package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"tabular-qa-be/internal/config"
	"tabular-qa-be/internal/dto"
	"tabular-qa-be/internal/entity"
	"tabular-qa-be/internal/pkg/apperror"
	"tabular-qa-be/internal/pkg/logger"
	"tabular-qa-be/internal/repository/specification"
	"tabular-qa-be/internal/repository/unitofwork"
	"tabular-qa-be/pkg/cache"
	"tabular-qa-be/pkg/events"
	"tabular-qa-be/pkg/llm"
	pktNats "tabular-qa-be/pkg/nats"
	"tabular-qa-be/pkg/tabular"

	"github.com/google/uuid"
)

// recentHistoryLimit caps the cross-file history listing.
const recentHistoryLimit = 50

const answerSystemPrompt = "You are a data analyst. Answer the user's question using only the table provided. Be concise and state the answer directly."

type IQueryService interface {
	Execute(ctx context.Context, userId uuid.UUID, req *dto.QueryRequest) (*dto.QueryResponse, error)
	History(ctx context.Context, userId uuid.UUID, fileId uuid.UUID) ([]*dto.QueryHistoryResponse, error)
	RecentHistory(ctx context.Context, userId uuid.UUID) ([]*dto.QueryHistoryResponse, error)
}

type queryService struct {
	uowFactory     unitofwork.RepositoryFactory
	answerCache    cache.AnswerCache
	llmProvider    llm.LLMProvider
	aiCfg          config.AIConfig
	answerTTL      time.Duration
	log            logger.ILogger
	auditPublisher IAuditPublisher
	eventPublisher *pktNats.Publisher
}

func NewQueryService(
	uowFactory unitofwork.RepositoryFactory,
	answerCache cache.AnswerCache,
	llmProvider llm.LLMProvider,
	aiCfg config.AIConfig,
	answerTTL time.Duration,
	log logger.ILogger,
	auditPublisher IAuditPublisher,
	eventPublisher *pktNats.Publisher,
) IQueryService {
	return &queryService{
		uowFactory:     uowFactory,
		answerCache:    answerCache,
		llmProvider:    llmProvider,
		aiCfg:          aiCfg,
		answerTTL:      answerTTL,
		log:            log,
		auditPublisher: auditPublisher,
		eventPublisher: eventPublisher,
	}
}

// Execute runs one question against one file: cache probe, engine call on a
// miss, best-effort cache fill, and exactly one history row - also on hits.
func (s *queryService) Execute(ctx context.Context, userId uuid.UUID, req *dto.QueryRequest) (*dto.QueryResponse, error) {
	model := req.Model
	if model == "" {
		model = s.aiCfg.DefaultModel
	}
	if !s.modelAllowed(model) {
		return nil, apperror.Validation(fmt.Sprintf("model must be one of: %s", strings.Join(s.aiCfg.AllowedModels, ", ")))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	file, err := uow.FileRepository().FindOne(ctx,
		specification.ByID{ID: req.FileId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, apperror.NotFound("file not found")
	}

	key := cache.DeriveKey(file.Id.String(), req.Question)
	start := time.Now()

	var answer string
	var cached bool

	cachedAnswer, err := s.answerCache.Get(ctx, key)
	if err != nil {
		// A broken cache backend is never a query failure.
		s.log.Warn("QueryService", "Answer cache unavailable, treating as miss", map[string]interface{}{
			"error": err.Error(),
		})
		cachedAnswer = nil
	}

	if cachedAnswer != nil {
		answer = cachedAnswer.Answer
		cached = true
	} else {
		answer, err = s.askEngine(ctx, file, req.Question, model)
		if err != nil {
			// Failed queries are not persisted to history; the question is
			// kept in the error log instead.
			s.log.Error("QueryService", "Upstream query failed", map[string]interface{}{
				"file_id":  file.Id,
				"user_id":  userId,
				"question": req.Question,
				"model":    model,
				"error":    err.Error(),
			})
			return nil, err
		}

		if cacheErr := s.answerCache.Set(ctx, key, &cache.CachedAnswer{Answer: answer}, s.answerTTL); cacheErr != nil {
			s.log.Warn("QueryService", "Failed to populate answer cache", map[string]interface{}{
				"error": cacheErr.Error(),
			})
		}
	}

	elapsedMs := roundTo2(float64(time.Since(start).Microseconds()) / 1000)

	record := &entity.QueryRecord{
		Id:             uuid.New(),
		FileId:         file.Id,
		UserId:         userId,
		Question:       req.Question,
		Answer:         answer,
		ModelUsed:      model,
		Cached:         cached,
		ResponseTimeMs: elapsedMs,
		CreatedAt:      time.Now(),
	}
	if err := uow.QueryHistoryRepository().Create(ctx, record); err != nil {
		return nil, err
	}

	s.publishExecuted(ctx, record)

	return &dto.QueryResponse{
		Answer:         answer,
		FileId:         file.Id,
		Question:       req.Question,
		ModelUsed:      model,
		Cached:         cached,
		ResponseTimeMs: elapsedMs,
	}, nil
}

func (s *queryService) History(ctx context.Context, userId uuid.UUID, fileId uuid.UUID) ([]*dto.QueryHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Foreign or unknown files both come back as not-found; existence of
	// other users' files is never revealed.
	file, err := uow.FileRepository().FindOne(ctx,
		specification.ByID{ID: fileId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, apperror.NotFound("file not found")
	}

	records, err := uow.QueryHistoryRepository().FindAll(ctx,
		specification.ByFileID{FileID: fileId},
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	return toHistoryResponses(records), nil
}

func (s *queryService) RecentHistory(ctx context.Context, userId uuid.UUID) ([]*dto.QueryHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	records, err := uow.QueryHistoryRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{N: recentHistoryLimit},
	)
	if err != nil {
		return nil, err
	}
	return toHistoryResponses(records), nil
}

func (s *queryService) modelAllowed(model string) bool {
	for _, m := range s.aiCfg.AllowedModels {
		if m == model {
			return true
		}
	}
	return false
}

// askEngine loads the table and hands it to the LLM provider under the
// configured timeout. Temperature 0 keeps repeat answers as stable as the
// provider allows.
func (s *queryService) askEngine(ctx context.Context, file *entity.UploadedFile, question, model string) (string, error) {
	table, err := tabular.Load(file.FilePath, file.FileType)
	if err != nil {
		return "", apperror.Upstream("failed to load tabular data", err)
	}

	timeout := time.Duration(s.aiCfg.QueryTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	history := []llm.Message{
		{Role: "system", Content: answerSystemPrompt},
		{Role: "user", Content: buildQuestionPrompt(table, question)},
	}

	answer, err := s.llmProvider.Chat(ctx, history, llm.WithModel(model), llm.WithTemperature(0))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", apperror.UpstreamTimeout("reasoning engine timed out", err)
		}
		return "", apperror.Upstream("reasoning engine request failed", err)
	}
	if answer == "" {
		answer = "Could not generate an answer."
	}
	return answer, nil
}

func (s *queryService) publishExecuted(ctx context.Context, record *entity.QueryRecord) {
	event := events.BaseEvent{
		Type: events.TypeQueryExecuted,
		Data: map[string]interface{}{
			"file_id":          record.FileId,
			"user_id":          record.UserId,
			"model":            record.ModelUsed,
			"cached":           record.Cached,
			"response_time_ms": record.ResponseTimeMs,
		},
		OccurredAt: time.Now(),
	}
	if s.auditPublisher != nil {
		if err := s.auditPublisher.Publish(event); err != nil {
			s.log.Warn("QueryService", "Failed to publish audit event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.log.Warn("QueryService", "Failed to publish NATS event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

func buildQuestionPrompt(table *tabular.Table, question string) string {
	return fmt.Sprintf("Here is the table:\n\n%s\nQuestion: %s", table.Markdown(), question)
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

func toHistoryResponses(records []*entity.QueryRecord) []*dto.QueryHistoryResponse {
	result := make([]*dto.QueryHistoryResponse, len(records))
	for i, q := range records {
		result[i] = &dto.QueryHistoryResponse{
			Id:             q.Id,
			FileId:         q.FileId,
			Question:       q.Question,
			Answer:         q.Answer,
			ModelUsed:      q.ModelUsed,
			Cached:         q.Cached,
			ResponseTimeMs: q.ResponseTimeMs,
			CreatedAt:      q.CreatedAt,
		}
	}
	return result
}
