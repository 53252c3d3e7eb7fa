package controller

import (
	"tabular-qa-be/internal/dto"
	"tabular-qa-be/internal/pkg/apperror"
	"tabular-qa-be/internal/pkg/serverutils"
	"tabular-qa-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IQueryController interface {
	RegisterRoutes(r fiber.Router)
	Execute(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	RecentHistory(ctx *fiber.Ctx) error
}

type queryController struct {
	queryService  service.IQueryService
	jwtMiddleware fiber.Handler
}

func NewQueryController(queryService service.IQueryService, jwtMiddleware fiber.Handler) IQueryController {
	return &queryController{
		queryService:  queryService,
		jwtMiddleware: jwtMiddleware,
	}
}

func (c *queryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/query")
	h.Use(c.jwtMiddleware)
	h.Post("", c.Execute)
	h.Get("history", c.RecentHistory)
	h.Get("history/:fileId", c.History)
}

func (c *queryController) Execute(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.queryService.Execute(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success execute query", res))
}

func (c *queryController) History(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	fileId, err := uuid.Parse(ctx.Params("fileId"))
	if err != nil {
		return apperror.Validation("invalid file id")
	}

	res, err := c.queryService.History(ctx.Context(), userId, fileId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list query history", res))
}

func (c *queryController) RecentHistory(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.queryService.RecentHistory(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list recent queries", res))
}
