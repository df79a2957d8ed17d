package controller

import (
	"yt-refinery/internal/pkg/serverutils"
	"yt-refinery/pkg/report"

	"github.com/gofiber/fiber/v2"
)

type IReportController interface {
	RegisterRoutes(r fiber.Router)
	ClusterReport(ctx *fiber.Ctx) error
	VideoTranscript(ctx *fiber.Ctx) error
	VideoSummary(ctx *fiber.Ctx) error
}

type reportController struct {
	writer *report.Writer
}

func NewReportController(writer *report.Writer) IReportController {
	return &reportController{
		writer: writer,
	}
}

func (c *reportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/report/v1")
	h.Get("cluster/:sessionId", c.ClusterReport)
	h.Get("video/:videoId/transcript", c.VideoTranscript)
	h.Get("video/:videoId/summary", c.VideoSummary)
}

func (c *reportController) ClusterReport(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("sessionId")

	path, err := c.writer.FindClusterReport(sessionId)
	if err != nil {
		return serverutils.NewAppError(fiber.StatusNotFound, "Report not found")
	}

	return ctx.SendFile(path)
}

func (c *reportController) VideoTranscript(ctx *fiber.Ctx) error {
	return c.sendVideoArtifact(ctx, "transcript")
}

func (c *reportController) VideoSummary(ctx *fiber.Ctx) error {
	return c.sendVideoArtifact(ctx, "summary")
}

func (c *reportController) sendVideoArtifact(ctx *fiber.Ctx, kind string) error {
	videoId := ctx.Params("videoId")

	path, err := c.writer.FindLatestVideoArtifact(videoId, kind)
	if err != nil {
		return serverutils.NewAppError(fiber.StatusNotFound, "Artifact not found")
	}

	return ctx.SendFile(path)
}
