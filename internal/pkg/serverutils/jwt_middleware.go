package serverutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tabular-qa-be/internal/repository/specification"
	"tabular-qa-be/internal/repository/unitofwork"
)

// NewJwtMiddleware resolves the bearer token to an active user. The
// resolved user id lands in Locals("user_id"); per-resource ownership is
// still each service's job.
func NewJwtMiddleware(secret string, uowFactory unitofwork.RepositoryFactory) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Missing token"))
		}
		tokenStr := authHeader[7:]

		claims, err := ParseToken(secret, tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid token"))
		}

		if claims.TokenType != TokenTypeAccess {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid token"))
		}

		userId, err := uuid.Parse(claims.Subject)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid token"))
		}

		// The subject must still resolve to an active user; a token issued
		// before deactivation is worthless afterwards.
		uow := uowFactory.NewUnitOfWork(ctx.Context())
		user, err := uow.UserRepository().FindOne(ctx.Context(),
			specification.ByID{ID: userId},
			specification.ActiveOnly{},
		)
		if err != nil || user == nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Could not validate credentials"))
		}

		ctx.Locals("user_id", user.Id.String())
		return ctx.Next()
	}
}
