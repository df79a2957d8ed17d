package memory

import (
	"errors"
	"sync"
	"time"

	"yt-refinery/internal/entity"

	"github.com/patrickmn/go-cache"
)

// ErrTaskNotFound is returned when a task id is unknown or has expired.
var ErrTaskNotFound = errors.New("task not found")

// TaskRepository tracks dispatched pipeline runs in memory. Handles live for
// 24 hours after their last update, which covers any sane polling client.
//
// Writes to a terminal task are ignored, so a completed handle reads the same
// on every poll. Progress writes with a stale counter are ignored too, which
// keeps Current monotonic regardless of event delivery order.
type TaskRepository struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{
		cache: cache.New(24*time.Hour, 10*time.Minute),
	}
}

// Create registers a pending task so it is discoverable before the run starts.
func (r *TaskRepository) Create(taskId, label string) *entity.Task {
	now := time.Now().UTC()
	task := &entity.Task{
		Id:        taskId,
		Label:     label,
		State:     entity.TaskStatePending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Set(taskId, task, cache.DefaultExpiration)
	return task
}

func (r *TaskRepository) Get(taskId string) (*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, err := r.lookup(taskId)
	if err != nil {
		return nil, err
	}
	snapshot := *task
	if task.Progress != nil {
		p := *task.Progress
		snapshot.Progress = &p
	}
	return &snapshot, nil
}

func (r *TaskRepository) MarkRunning(taskId string) {
	r.update(taskId, func(task *entity.Task) {
		if task.State == entity.TaskStatePending {
			task.State = entity.TaskStateRunning
		}
	})
}

func (r *TaskRepository) UpdateProgress(taskId string, progress entity.Progress) {
	r.update(taskId, func(task *entity.Task) {
		if task.Progress != nil && progress.Current < task.Progress.Current {
			return
		}
		task.Progress = &progress
	})
}

func (r *TaskRepository) Complete(taskId string, result *entity.TaskResult) {
	r.update(taskId, func(task *entity.Task) {
		task.State = entity.TaskStateSucceeded
		task.Result = result
	})
}

func (r *TaskRepository) Fail(taskId string, reason string) {
	r.update(taskId, func(task *entity.Task) {
		task.State = entity.TaskStateFailed
		task.Error = reason
	})
}

func (r *TaskRepository) update(taskId string, apply func(*entity.Task)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, err := r.lookup(taskId)
	if err != nil || task.State.Terminal() {
		return
	}
	apply(task)
	task.UpdatedAt = time.Now().UTC()
	r.cache.Set(taskId, task, cache.DefaultExpiration)
}

func (r *TaskRepository) lookup(taskId string) (*entity.Task, error) {
	x, found := r.cache.Get(taskId)
	if !found {
		return nil, ErrTaskNotFound
	}
	return x.(*entity.Task), nil
}
