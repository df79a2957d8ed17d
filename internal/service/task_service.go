package service

import (
	"context"
	"encoding/json"

	"yt-refinery/internal/entity"
	"yt-refinery/internal/pkg/logger"
	"yt-refinery/internal/repository/memory"
	"yt-refinery/pkg/refinery/progress"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// RunFunc is one pipeline run executed under a task handle.
type RunFunc func(ctx context.Context, rep progress.Reporter) (*entity.TaskResult, error)

// ITaskService dispatches pipeline runs for asynchronous execution and
// answers status polls by task id.
type ITaskService interface {
	// Submit registers a pending task and starts the run in the
	// background. The returned id is pollable immediately.
	Submit(label string, run RunFunc) string

	// Status returns the latest known snapshot for a task. Terminal
	// snapshots are stable across repeated polls.
	Status(taskId string) (*entity.Task, error)

	// Consume mirrors the progress event stream into the task store.
	Consume(ctx context.Context) error
}

type taskService struct {
	repo   *memory.TaskRepository
	pubSub *gochannel.GoChannel
	log    logger.ILogger
}

func NewTaskService(repo *memory.TaskRepository, pubSub *gochannel.GoChannel, log logger.ILogger) ITaskService {
	return &taskService{
		repo:   repo,
		pubSub: pubSub,
		log:    log,
	}
}

func (s *taskService) Submit(label string, run RunFunc) string {
	taskId := uuid.NewString()
	s.repo.Create(taskId, label)

	go func() {
		// Runs outlive the submitting HTTP request.
		ctx := context.Background()
		s.repo.MarkRunning(taskId)

		rep := &boundReporter{taskId: taskId, inner: progress.NewPublisher(s.pubSub)}
		result, err := run(ctx, rep)
		if err != nil {
			s.log.Error("TaskService", "Task failed", map[string]interface{}{
				"task_id": taskId, "label": label, "error": err.Error(),
			})
			s.repo.Fail(taskId, err.Error())
			return
		}
		s.repo.Complete(taskId, result)
	}()

	return taskId
}

func (s *taskService) Status(taskId string) (*entity.Task, error) {
	return s.repo.Get(taskId)
}

// Consume subscribes to the pipeline progress topic and mirrors events into
// the task store. The orchestrator stays decoupled from task bookkeeping.
func (s *taskService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, progress.Topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(msg)
		}
	}()

	return nil
}

func (s *taskService) processMessage(msg *message.Message) {
	var event progress.Event
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		s.log.Warn("TaskService", "Dropping malformed progress event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	s.repo.UpdateProgress(event.TaskId, entity.Progress{
		Current: event.Current,
		Total:   event.Total,
		Label:   event.Label,
	})
	msg.Ack()
}

// boundReporter stamps the owning task id onto every event before it goes
// out onto the bus.
type boundReporter struct {
	taskId string
	inner  progress.Reporter
}

func (r *boundReporter) Report(event progress.Event) {
	event.TaskId = r.taskId
	r.inner.Report(event)
}
