package controller

import (
	"ai-travelplanner-be/internal/dto"
	"ai-travelplanner-be/internal/pkg/serverutils"
	"ai-travelplanner-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPlannerController interface {
	RegisterRoutes(r fiber.Router)
	CreatePlan(ctx *fiber.Ctx) error
	ShowRun(ctx *fiber.Ctx) error
	ListRuns(ctx *fiber.Ctx) error
}

type plannerController struct {
	plannerService service.IPlannerService
}

func NewPlannerController(plannerService service.IPlannerService) IPlannerController {
	return &plannerController{
		plannerService: plannerService,
	}
}

func (c *plannerController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/planner/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("plan", c.CreatePlan)
	h.Get("runs", c.ListRuns)
	h.Get("runs/:id", c.ShowRun)
}

func (c *plannerController) CreatePlan(ctx *fiber.Ctx) error {
	var req dto.CreatePlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.plannerService.CreatePlan(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create plan", res))
}

func (c *plannerController) ShowRun(ctx *fiber.Ctx) error {
	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid run id")
	}

	res, err := c.plannerService.GetRun(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "plan run not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show plan run", res))
}

func (c *plannerController) ListRuns(ctx *fiber.Ctx) error {
	sessionId := ctx.Query("session_id")
	if sessionId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "session_id is required")
	}

	res, err := c.plannerService.GetRunsBySession(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list plan runs", res))
}
