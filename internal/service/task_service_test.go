package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"yt-refinery/internal/entity"
	"yt-refinery/internal/repository/memory"
	"yt-refinery/pkg/refinery/progress"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func newTestTaskService(t *testing.T) ITaskService {
	t.Helper()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	svc := NewTaskService(memory.NewTaskRepository(), pubSub, nopLogger{})
	require.NoError(t, svc.Consume(context.Background()))
	return svc
}

func pollUntilTerminal(t *testing.T, svc ITaskService, taskId string) *entity.Task {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatal("task never reached a terminal state")
		case <-time.After(10 * time.Millisecond):
		}
		task, err := svc.Status(taskId)
		require.NoError(t, err)
		if task.State.Terminal() {
			return task
		}
	}
}

func TestSubmitSuccess(t *testing.T) {
	svc := newTestTaskService(t)

	started := make(chan struct{})
	taskId := svc.Submit("cluster Topic A", func(_ context.Context, rep progress.Reporter) (*entity.TaskResult, error) {
		<-started
		rep.Report(progress.Event{Current: 1, Total: 2, Label: "Working"})
		rep.Report(progress.Event{Current: 2, Total: 2, Label: "Completed"})
		return &entity.TaskResult{SessionId: "s1", Status: "completed"}, nil
	})

	// Pollable before the run does anything.
	task, err := svc.Status(taskId)
	require.NoError(t, err)
	assert.False(t, task.State.Terminal())
	close(started)

	task = pollUntilTerminal(t, svc, taskId)
	assert.Equal(t, entity.TaskStateSucceeded, task.State)
	require.NotNil(t, task.Result)
	assert.Equal(t, "s1", task.Result.SessionId)
}

func TestSubmitFailure(t *testing.T) {
	svc := newTestTaskService(t)

	taskId := svc.Submit("video summary", func(context.Context, progress.Reporter) (*entity.TaskResult, error) {
		return nil, errors.New("summarize stage failed: model unavailable")
	})

	task := pollUntilTerminal(t, svc, taskId)
	assert.Equal(t, entity.TaskStateFailed, task.State)
	assert.Equal(t, "summarize stage failed: model unavailable", task.Error)
	assert.Nil(t, task.Result)
}

func TestProgressMirroredIntoTask(t *testing.T) {
	svc := newTestTaskService(t)

	done := make(chan struct{})
	taskId := svc.Submit("cluster X", func(_ context.Context, rep progress.Reporter) (*entity.TaskResult, error) {
		rep.Report(progress.Event{Current: 3, Total: 3, Label: "Synthesizing"})
		<-done
		return &entity.TaskResult{}, nil
	})

	// The event is mirrored while the run is still live; terminal handles
	// ignore late progress.
	assert.Eventually(t, func() bool {
		task, err := svc.Status(taskId)
		if err != nil || task.Progress == nil {
			return false
		}
		return task.Progress.Current == 3 && task.Progress.Total == 3
	}, 5*time.Second, 10*time.Millisecond)

	close(done)
	pollUntilTerminal(t, svc, taskId)
}

func TestStatusUnknownTask(t *testing.T) {
	svc := newTestTaskService(t)
	_, err := svc.Status("no-such-task")
	assert.ErrorIs(t, err, memory.ErrTaskNotFound)
}
