package pipeline

import (
	"context"
	"testing"

	"yt-refinery/pkg/refinery/progress"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSingle(t *testing.T) {
	source := &stubSource{transcripts: map[string]string{"v1": "three word transcript"}}
	orch, _ := newTestOrchestrator(source, &stubStages{})
	rec := progress.NewRecorder()

	outcome, err := orch.RunSingle(context.Background(), SingleSpec{
		SourceURL: "https://yt/v1",
	}, rec)

	require.NoError(t, err)
	assert.Equal(t, "v1", outcome.VideoId)
	assert.Equal(t, "three word transcript", outcome.Transcript)
	assert.Equal(t, "summary of three word transcript", outcome.Summary)
	assert.False(t, outcome.Cleaned)
	assert.Equal(t, 3, outcome.WordCount)
	assert.Equal(t, len("three word transcript"), outcome.CharacterCount)
	assertMonotonic(t, rec.Events())
}

func TestRunSingleCleanFallsBack(t *testing.T) {
	source := &stubSource{transcripts: map[string]string{"v1": "raw"}}
	stages := &stubStages{cleanFailFor: map[string]bool{"raw": true}}
	orch, _ := newTestOrchestrator(source, stages)

	outcome, err := orch.RunSingle(context.Background(), SingleSpec{
		SourceURL:      "https://yt/v1",
		CleanRequested: true,
	}, progress.NewRecorder())

	require.NoError(t, err)
	assert.False(t, outcome.Cleaned)
	assert.Equal(t, "raw", outcome.Transcript)
}

func TestRunSingleCleanApplied(t *testing.T) {
	source := &stubSource{transcripts: map[string]string{"v1": "raw"}}
	orch, _ := newTestOrchestrator(source, &stubStages{})

	outcome, err := orch.RunSingle(context.Background(), SingleSpec{
		SourceURL:      "https://yt/v1",
		CleanRequested: true,
	}, progress.NewRecorder())

	require.NoError(t, err)
	assert.True(t, outcome.Cleaned)
	assert.Equal(t, "cleaned: raw", outcome.Transcript)
	assert.Equal(t, "summary of cleaned: raw", outcome.Summary)
}

func TestRunSingleInvalidURL(t *testing.T) {
	orch, _ := newTestOrchestrator(&stubSource{}, &stubStages{})

	_, err := orch.RunSingle(context.Background(), SingleSpec{
		SourceURL: "not-a-url",
	}, progress.NewRecorder())
	assert.Error(t, err)
}

func TestRunSingleFetchFailureIsFatal(t *testing.T) {
	source := &stubSource{transcripts: map[string]string{}}
	orch, _ := newTestOrchestrator(source, &stubStages{})

	_, err := orch.RunSingle(context.Background(), SingleSpec{
		SourceURL: "https://yt/v1",
	}, progress.NewRecorder())
	assert.Error(t, err)
}
