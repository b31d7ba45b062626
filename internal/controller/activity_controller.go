package controller

import (
	"ai-travelplanner-be/internal/dto"
	"ai-travelplanner-be/internal/pkg/serverutils"
	"ai-travelplanner-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IActivityController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	ListByCity(ctx *fiber.Ctx) error
}

type activityController struct {
	activityService service.IActivityService
}

func NewActivityController(activityService service.IActivityService) IActivityController {
	return &activityController{
		activityService: activityService,
	}
}

func (c *activityController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/activity/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.ListByCity)
}

func (c *activityController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateActivityRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.activityService.CreateActivity(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create activity", res))
}

func (c *activityController) ListByCity(ctx *fiber.Ctx) error {
	city := ctx.Query("city")
	if city == "" {
		return fiber.NewError(fiber.StatusBadRequest, "city is required")
	}

	res, err := c.activityService.GetActivitiesByCity(ctx.Context(), city)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list activities", res))
}
