package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"yt-refinery/internal/dto"
	"yt-refinery/internal/entity"
	"yt-refinery/internal/pkg/serverutils"
	"yt-refinery/internal/repository/memory"
	"yt-refinery/pkg/refinery/pipeline"
	"yt-refinery/pkg/refinery/stage"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSource struct {
	transcripts map[string]string
}

func (s *fixedSource) ResolveVideoID(sourceURL string) (string, error) {
	const prefix = "https://yt/"
	if len(sourceURL) <= len(prefix) || sourceURL[:len(prefix)] != prefix {
		return "", fmt.Errorf("bad url %s", sourceURL)
	}
	return sourceURL[len(prefix):], nil
}

func (s *fixedSource) FetchTranscript(_ context.Context, videoID string) (string, error) {
	transcript, ok := s.transcripts[videoID]
	if !ok {
		return "", fmt.Errorf("no transcript for %s", videoID)
	}
	return transcript, nil
}

type fixedStages struct {
	failSynthesis bool
	holdSynthesis chan struct{} // when set, Synthesize blocks until closed
}

func (s *fixedStages) Clean(_ context.Context, transcript string) stage.Result {
	return stage.Ok("cleaned: " + transcript)
}

func (s *fixedStages) Summarize(_ context.Context, transcript, _ string) stage.Result {
	return stage.Ok("summary of " + transcript)
}

func (s *fixedStages) Synthesize(_ context.Context, _ string, docs []stage.Document) stage.Result {
	if s.holdSynthesis != nil {
		<-s.holdSynthesis
	}
	if s.failSynthesis {
		return stage.Fail("model unavailable")
	}
	return stage.Ok(fmt.Sprintf("report over %d documents", len(docs)))
}

func (s *fixedStages) ExtractKeywords(context.Context, string) []string { return nil }

func newClusterFixture(t *testing.T, source *fixedSource, stages *fixedStages) (IClusterService, ITaskService, *memory.ClusterRepository) {
	t.Helper()
	store := memory.NewClusterRepository()
	orch := pipeline.NewOrchestrator(store, source, stages, nil, nopLogger{})
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	tasks := NewTaskService(memory.NewTaskRepository(), pubSub, nopLogger{})
	require.NoError(t, tasks.Consume(context.Background()))
	svc := NewClusterService(orch, store, tasks, nil, nopLogger{})
	return svc, tasks, store
}

func waitTerminal(t *testing.T, tasks ITaskService, taskId string) *entity.Task {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatal("task never reached a terminal state")
		case <-time.After(10 * time.Millisecond):
		}
		task, err := tasks.Status(taskId)
		require.NoError(t, err)
		if task.State.Terminal() {
			return task
		}
	}
}

func TestCreateClusterRunsToCompletion(t *testing.T) {
	source := &fixedSource{transcripts: map[string]string{"v1": "one", "v2": "two"}}
	svc, tasks, store := newClusterFixture(t, source, &fixedStages{})

	res, err := svc.CreateCluster(context.Background(), &dto.CreateClusterRequest{
		Name: "Topic A",
		URLs: []string{"https://yt/v1", "https://yt/v2"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.TaskId)
	require.NotEmpty(t, res.SessionId)

	task := waitTerminal(t, tasks, res.TaskId)
	assert.Equal(t, entity.TaskStateSucceeded, task.State)
	require.NotNil(t, task.Result)
	assert.Equal(t, res.SessionId, task.Result.SessionId)
	assert.Equal(t, string(entity.ClusterStatusCompleted), task.Result.Status)
	assert.Equal(t, 2, task.Result.ProcessedCount)
	assert.NotEmpty(t, task.Result.Report)

	stored, err := store.Get(context.Background(), res.SessionId)
	require.NoError(t, err)
	assert.Equal(t, entity.ClusterStatusCompleted, stored.Status)
}

func TestCreateClusterFailureSurfacesOnTask(t *testing.T) {
	source := &fixedSource{transcripts: map[string]string{"v1": "one"}}
	svc, tasks, _ := newClusterFixture(t, source, &fixedStages{failSynthesis: true})

	res, err := svc.CreateCluster(context.Background(), &dto.CreateClusterRequest{
		Name: "Doomed",
		URLs: []string{"https://yt/v1"},
	})
	require.NoError(t, err)

	task := waitTerminal(t, tasks, res.TaskId)
	assert.Equal(t, entity.TaskStateFailed, task.State)
	assert.Contains(t, task.Error, "model unavailable")
}

func TestSynthesizeClusterUnknownSession(t *testing.T) {
	svc, _, _ := newClusterFixture(t, &fixedSource{}, &fixedStages{})

	_, err := svc.SynthesizeCluster(context.Background(), "no-such-session", false)
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestSynthesizeClusterResumesFailedSession(t *testing.T) {
	source := &fixedSource{transcripts: map[string]string{"v1": "one"}}
	svc, tasks, store := newClusterFixture(t, source, &fixedStages{})
	ctx := context.Background()

	cluster := entity.NewCluster("s1", "Recovered", []string{"https://yt/v1"})
	cluster.Transcripts["v1"] = "one"
	cluster.Status = entity.ClusterStatusFailed
	require.NoError(t, store.Save(ctx, cluster))

	res, err := svc.SynthesizeCluster(ctx, "s1", false)
	require.NoError(t, err)

	task := waitTerminal(t, tasks, res.TaskId)
	assert.Equal(t, entity.TaskStateSucceeded, task.State)

	stored, _ := store.Get(ctx, "s1")
	assert.Equal(t, entity.ClusterStatusCompleted, stored.Status)
}

func TestSynthesizeClusterRejectsLiveSession(t *testing.T) {
	source := &fixedSource{transcripts: map[string]string{}}
	stages := &fixedStages{holdSynthesis: make(chan struct{})}
	svc, tasks, store := newClusterFixture(t, source, stages)
	ctx := context.Background()

	cluster := entity.NewCluster("s1", "Busy", []string{"https://yt/v1"})
	cluster.Transcripts["v1"] = "one"
	cluster.Status = entity.ClusterStatusTranscriptsReady
	require.NoError(t, store.Save(ctx, cluster))

	res, err := svc.SynthesizeCluster(ctx, "s1", false)
	require.NoError(t, err)

	// Second submission while the first run holds the session.
	_, err = svc.SynthesizeCluster(ctx, "s1", false)
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Code)

	close(stages.holdSynthesis)
	task := waitTerminal(t, tasks, res.TaskId)
	assert.Equal(t, entity.TaskStateSucceeded, task.State)
}

func TestGetClusterNotFound(t *testing.T) {
	svc, _, _ := newClusterFixture(t, &fixedSource{}, &fixedStages{})

	_, err := svc.GetCluster(context.Background(), "missing")
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestGetAllClustersSummaries(t *testing.T) {
	svc, _, store := newClusterFixture(t, &fixedSource{}, &fixedStages{})
	ctx := context.Background()

	cluster := entity.NewCluster("s1", "Topic", []string{"u1", "u2"})
	cluster.Transcripts["v1"] = "one"
	require.NoError(t, store.Save(ctx, cluster))

	summaries, err := svc.GetAllClusters(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "s1", summaries[0].SessionId)
	assert.Equal(t, 2, summaries[0].VideoCount)
	assert.Equal(t, 1, summaries[0].Collected)
}
