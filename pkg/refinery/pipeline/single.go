package pipeline

import (
	"context"
	"strings"

	"yt-refinery/pkg/refinery/progress"
)

// RunSingle processes one video end to end: fetch, optional clean, summary,
// artifacts. Unlike a cluster run there is no partial success — any stage
// failure fails the task.
func (o *Orchestrator) RunSingle(ctx context.Context, spec SingleSpec, rep progress.Reporter) (*SingleOutcome, error) {
	total := 3
	rep.Report(progress.Event{Current: 1, Total: total, Label: "Fetching transcript"})

	videoId, err := o.source.ResolveVideoID(spec.SourceURL)
	if err != nil {
		return nil, err
	}

	transcript, err := o.source.FetchTranscript(ctx, videoId)
	if err != nil {
		return nil, err
	}

	cleaned := false
	if spec.CleanRequested {
		rep.Report(progress.Event{Current: 2, Total: total, Label: "Cleaning transcript"})
		if result := o.stages.Clean(ctx, transcript); !result.Failed() {
			transcript = result.Content()
			cleaned = true
		} else {
			o.log.Warn("Pipeline", "Clean failed, keeping original transcript", map[string]interface{}{
				"video_id": videoId, "reason": result.Reason(),
			})
		}
	}

	rep.Report(progress.Event{Current: 2, Total: total, Label: "Generating summary"})
	result := o.stages.Summarize(ctx, transcript, "Video "+videoId)
	if result.Failed() {
		return nil, &StageError{Stage: "summarize", Reason: result.Reason()}
	}
	summary := result.Content()

	if o.artifacts != nil {
		if err := o.artifacts.WriteVideoArtifacts(videoId, transcript, summary, cleaned); err != nil {
			o.log.Warn("Pipeline", "Failed to write video artifacts", map[string]interface{}{
				"video_id": videoId, "error": err.Error(),
			})
		}
	}

	rep.Report(progress.Event{Current: total, Total: total, Label: "Completed"})
	return &SingleOutcome{
		VideoId:        videoId,
		Transcript:     transcript,
		Summary:        summary,
		Cleaned:        cleaned,
		WordCount:      len(strings.Fields(transcript)),
		CharacterCount: len(transcript),
	}, nil
}
