package contract

import (
	"context"

	"tabular-qa-be/internal/entity"
	"tabular-qa-be/internal/repository/specification"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
}
