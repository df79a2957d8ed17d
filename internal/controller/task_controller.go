package controller

import (
	"errors"

	"yt-refinery/internal/pkg/serverutils"
	"yt-refinery/internal/repository/memory"
	"yt-refinery/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITaskController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
}

type taskController struct {
	taskService service.ITaskService
}

func NewTaskController(taskService service.ITaskService) ITaskController {
	return &taskController{
		taskService: taskService,
	}
}

func (c *taskController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/task/v1")
	h.Get(":taskId", c.Show)
}

func (c *taskController) Show(ctx *fiber.Ctx) error {
	taskId := ctx.Params("taskId")

	res, err := c.taskService.Status(taskId)
	if err != nil {
		if errors.Is(err, memory.ErrTaskNotFound) {
			return serverutils.NewAppError(fiber.StatusNotFound, "Task not found")
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show task", res))
}
