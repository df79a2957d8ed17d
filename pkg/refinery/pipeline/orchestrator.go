package pipeline

import (
	"context"
	"fmt"
	"sort"

	"yt-refinery/internal/entity"
	"yt-refinery/internal/pkg/logger"
	"yt-refinery/pkg/refinery/progress"
	"yt-refinery/pkg/refinery/stage"
	"yt-refinery/pkg/refinery/wikilink"
)

// Store is the durable cluster persistence the orchestrator writes through.
// Every Save must land before the run proceeds to the next step.
type Store interface {
	Save(ctx context.Context, cluster *entity.Cluster) error
	Get(ctx context.Context, sessionId string) (*entity.Cluster, error)
}

// Source resolves and fetches video transcripts.
type Source interface {
	ResolveVideoID(sourceURL string) (string, error)
	FetchTranscript(ctx context.Context, videoID string) (string, error)
}

// Stages is the enrichment surface the orchestrator drives.
type Stages interface {
	Clean(ctx context.Context, transcript string) stage.Result
	Summarize(ctx context.Context, transcript, title string) stage.Result
	Synthesize(ctx context.Context, topic string, docs []stage.Document) stage.Result
	ExtractKeywords(ctx context.Context, text string) []string
}

// ArtifactWriter persists output files. Artifact failures are logged, never
// fatal: the durable store, not the filesystem, is the source of truth.
type ArtifactWriter interface {
	WriteVideoArtifacts(videoId, transcript, summary string, cleaned bool) error
	WriteClusterReport(sessionId, name, report string, videoCount int) error
}

// StageError reports the stage that sank a run and why.
type StageError struct {
	Stage  string
	Reason string
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %s", e.Stage, e.Reason)
}

// ClusterSpec describes one cluster pipeline submission.
type ClusterSpec struct {
	SessionId      string
	Name           string
	SourceURLs     []string
	CleanRequested bool
}

// ClusterOutcome is the terminal result of a cluster run.
type ClusterOutcome struct {
	SessionId      string
	Status         entity.ClusterStatus
	ProcessedCount int
	TotalCount     int
	Report         string
}

// SingleSpec describes one single-video submission.
type SingleSpec struct {
	SourceURL      string
	CleanRequested bool
}

// SingleOutcome is the terminal result of a single-video run.
type SingleOutcome struct {
	VideoId        string
	Transcript     string
	Summary        string
	Cleaned        bool
	WordCount      int
	CharacterCount int
}

// Orchestrator drives clusters through fetch, optional clean, and synthesis.
// It persists the cluster after every mutation, so the stored status always
// names the last completed step and an interrupted run can be resumed at
// step granularity without redoing finished work.
type Orchestrator struct {
	store     Store
	source    Source
	stages    Stages
	artifacts ArtifactWriter
	log       logger.ILogger
}

func NewOrchestrator(store Store, source Source, stages Stages, artifacts ArtifactWriter, log logger.ILogger) *Orchestrator {
	return &Orchestrator{
		store:     store,
		source:    source,
		stages:    stages,
		artifacts: artifacts,
		log:       log,
	}
}

// RunCluster executes the full pipeline for a new cluster. The caller must
// not submit a second run for the same session id while this one is live.
func (o *Orchestrator) RunCluster(ctx context.Context, spec ClusterSpec, rep progress.Reporter) (*ClusterOutcome, error) {
	cluster := entity.NewCluster(spec.SessionId, spec.Name, spec.SourceURLs)
	if err := o.store.Save(ctx, cluster); err != nil {
		return nil, fmt.Errorf("persist initial state: %w", err)
	}
	return o.drive(ctx, cluster, spec.CleanRequested, rep)
}

// Resume re-enters the pipeline for an existing cluster at the step its
// persisted status names. Documents already collected are kept, not
// re-fetched. A failed cluster is given a fresh run over its surviving state.
func (o *Orchestrator) Resume(ctx context.Context, sessionId string, cleanRequested bool, rep progress.Reporter) (*ClusterOutcome, error) {
	cluster, err := o.store.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	if cluster.Status == entity.ClusterStatusFailed {
		// Operator re-submission: restart the run, keep collected documents.
		cluster.Status = entity.ClusterStatusProcessing
		cluster.Touch()
		if err := o.store.Save(ctx, cluster); err != nil {
			return nil, fmt.Errorf("persist resumed state: %w", err)
		}
	}

	return o.drive(ctx, cluster, cleanRequested, rep)
}

// drive advances a cluster from its current status to completion.
func (o *Orchestrator) drive(ctx context.Context, cluster *entity.Cluster, cleanRequested bool, rep progress.Reporter) (*ClusterOutcome, error) {
	// Progress counts are cumulative across stages so Current never
	// regresses within one task: fetch units, then clean units, then one
	// synthesis unit.
	total := len(cluster.SourceURLs) + 1
	if cleanRequested {
		total += len(cluster.SourceURLs)
	}

	if cluster.Status == entity.ClusterStatusProcessing {
		if err := o.fetchStage(ctx, cluster, total, rep); err != nil {
			return nil, err
		}
	}

	if cluster.Status == entity.ClusterStatusTranscriptsReady && cleanRequested {
		if err := o.cleanStage(ctx, cluster, total, rep); err != nil {
			return nil, err
		}
	}

	if cluster.Status == entity.ClusterStatusTranscriptsReady || cluster.Status == entity.ClusterStatusCleanedReady {
		if err := o.synthesisStage(ctx, cluster, total, rep); err != nil {
			return nil, err
		}
	}

	return &ClusterOutcome{
		SessionId:      cluster.SessionId,
		Status:         cluster.Status,
		ProcessedCount: len(cluster.Transcripts),
		TotalCount:     len(cluster.SourceURLs),
		Report:         cluster.Summary,
	}, nil
}

// fetchStage collects transcripts in input order. A single bad source is
// logged and skipped; only a storage failure aborts the run.
func (o *Orchestrator) fetchStage(ctx context.Context, cluster *entity.Cluster, total int, rep progress.Reporter) error {
	sources := len(cluster.SourceURLs)
	for i, sourceURL := range cluster.SourceURLs {
		label := fmt.Sprintf("Processing video %d/%d", i+1, sources)

		videoId, err := o.source.ResolveVideoID(sourceURL)
		if err != nil {
			o.log.Warn("Pipeline", "Skipping invalid source", map[string]interface{}{
				"session_id": cluster.SessionId, "url": sourceURL, "error": err.Error(),
			})
			rep.Report(progress.Event{Current: i + 1, Total: total, Label: label})
			continue
		}

		if _, exists := cluster.Transcripts[videoId]; exists {
			// Resumed run: already fetched, do not redo the work.
			rep.Report(progress.Event{Current: i + 1, Total: total, Label: label})
			continue
		}

		transcript, err := o.source.FetchTranscript(ctx, videoId)
		if err != nil {
			o.log.Warn("Pipeline", "Failed to fetch transcript", map[string]interface{}{
				"session_id": cluster.SessionId, "video_id": videoId, "error": err.Error(),
			})
			rep.Report(progress.Event{Current: i + 1, Total: total, Label: label})
			continue
		}

		cluster.Transcripts[videoId] = transcript
		cluster.Touch()
		if err := o.store.Save(ctx, cluster); err != nil {
			return fmt.Errorf("persist transcript %s: %w", videoId, err)
		}
		rep.Report(progress.Event{Current: i + 1, Total: total, Label: label})
	}

	cluster.Transition(entity.ClusterStatusTranscriptsReady)
	if err := o.store.Save(ctx, cluster); err != nil {
		return fmt.Errorf("persist transcripts_ready: %w", err)
	}
	return nil
}

// cleanStage rewrites each transcript through the clean stage. A failed
// clean keeps the original content, so no document is ever dropped.
func (o *Orchestrator) cleanStage(ctx context.Context, cluster *entity.Cluster, total int, rep progress.Reporter) error {
	videoIds := make([]string, 0, len(cluster.Transcripts))
	for videoId := range cluster.Transcripts {
		videoIds = append(videoIds, videoId)
	}
	sort.Strings(videoIds)

	base := len(cluster.SourceURLs)
	for i, videoId := range videoIds {
		label := fmt.Sprintf("Cleaning transcript %d/%d", i+1, len(videoIds))

		if _, exists := cluster.CleanedTranscripts[videoId]; !exists {
			result := o.stages.Clean(ctx, cluster.Transcripts[videoId])
			if result.Failed() {
				o.log.Warn("Pipeline", "Clean failed, keeping original transcript", map[string]interface{}{
					"session_id": cluster.SessionId, "video_id": videoId, "reason": result.Reason(),
				})
				cluster.CleanedTranscripts[videoId] = cluster.Transcripts[videoId]
			} else {
				cluster.CleanedTranscripts[videoId] = result.Content()
			}
			cluster.Touch()
			if err := o.store.Save(ctx, cluster); err != nil {
				return fmt.Errorf("persist cleaned transcript %s: %w", videoId, err)
			}
		}
		rep.Report(progress.Event{Current: base + i + 1, Total: total, Label: label})
	}

	cluster.Transition(entity.ClusterStatusCleanedReady)
	if err := o.store.Save(ctx, cluster); err != nil {
		return fmt.Errorf("persist cleaned_ready: %w", err)
	}
	return nil
}

// synthesisStage merges the effective document set into one report. This is
// the one stage whose failure is fatal: the cluster moves to failed with all
// collected documents intact.
func (o *Orchestrator) synthesisStage(ctx context.Context, cluster *entity.Cluster, total int, rep progress.Reporter) error {
	rep.Report(progress.Event{Current: total - 1, Total: total, Label: "Generating synthesis report"})

	effective := cluster.EffectiveTranscripts()
	if len(effective) == 0 {
		return o.failRun(ctx, cluster, &StageError{Stage: "synthesize", Reason: "no transcripts collected"})
	}

	docs := make([]stage.Document, 0, len(effective))
	for videoId, content := range effective {
		docs = append(docs, stage.Document{VideoId: videoId, Content: content})
	}

	result := o.stages.Synthesize(ctx, cluster.Name, docs)
	if result.Failed() {
		return o.failRun(ctx, cluster, &StageError{Stage: "synthesize", Reason: result.Reason()})
	}

	keywords := o.stages.ExtractKeywords(ctx, result.Content())
	report := wikilink.AddLinks(result.Content(), keywords)

	cluster.Summary = report
	cluster.Transition(entity.ClusterStatusCompleted)
	if err := o.store.Save(ctx, cluster); err != nil {
		return fmt.Errorf("persist completed state: %w", err)
	}

	if o.artifacts != nil {
		if err := o.artifacts.WriteClusterReport(cluster.SessionId, cluster.Name, report, len(cluster.Transcripts)); err != nil {
			o.log.Warn("Pipeline", "Failed to write cluster report artifact", map[string]interface{}{
				"session_id": cluster.SessionId, "error": err.Error(),
			})
		}
	}

	rep.Report(progress.Event{Current: total, Total: total, Label: "Completed"})
	return nil
}

// failRun records the failed status before surfacing the error so the stored
// state and the task result agree.
func (o *Orchestrator) failRun(ctx context.Context, cluster *entity.Cluster, cause error) error {
	cluster.Transition(entity.ClusterStatusFailed)
	if err := o.store.Save(ctx, cluster); err != nil {
		o.log.Error("Pipeline", "Failed to persist failed state", map[string]interface{}{
			"session_id": cluster.SessionId, "error": err.Error(),
		})
	}
	return cause
}
