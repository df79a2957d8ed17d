package controller

import (
	"yt-refinery/internal/dto"
	"yt-refinery/internal/pkg/serverutils"
	"yt-refinery/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IClusterController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Index(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Synthesize(ctx *fiber.Ctx) error
}

type clusterController struct {
	clusterService service.IClusterService
}

func NewClusterController(clusterService service.IClusterService) IClusterController {
	return &clusterController{
		clusterService: clusterService,
	}
}

func (c *clusterController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/cluster/v1")
	h.Post("", c.Create)
	h.Get("", c.Index)
	h.Get(":sessionId", c.Show)
	h.Post(":sessionId/synthesize", c.Synthesize)
}

func (c *clusterController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateClusterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.clusterService.CreateCluster(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Cluster processing started", res))
}

func (c *clusterController) Index(ctx *fiber.Ctx) error {
	res, err := c.clusterService.GetAllClusters(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list clusters", res))
}

func (c *clusterController) Show(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("sessionId")

	res, err := c.clusterService.GetCluster(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show cluster", res))
}

func (c *clusterController) Synthesize(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("sessionId")

	var req dto.SynthesizeClusterRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
	}

	res, err := c.clusterService.SynthesizeCluster(ctx.Context(), sessionId, req.CleanTranscripts)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Cluster synthesis started", res))
}
