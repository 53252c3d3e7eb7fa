package unitofwork

import (
	"context"

	"tabular-qa-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	FileRepository() contract.FileRepository
	QueryHistoryRepository() contract.QueryHistoryRepository
}
