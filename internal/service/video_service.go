package service

import (
	"context"

	"yt-refinery/internal/dto"
	"yt-refinery/internal/entity"
	"yt-refinery/internal/pkg/logger"
	"yt-refinery/pkg/events"
	pktNats "yt-refinery/pkg/nats"
	"yt-refinery/pkg/refinery/pipeline"
	"yt-refinery/pkg/refinery/progress"
)

type IVideoService interface {
	ProcessVideo(ctx context.Context, req *dto.ProcessVideoRequest) (*dto.SubmitResponse, error)
}

type videoService struct {
	orchestrator *pipeline.Orchestrator
	tasks        ITaskService
	eventsPub    *pktNats.Publisher
	log          logger.ILogger
}

func NewVideoService(
	orchestrator *pipeline.Orchestrator,
	tasks ITaskService,
	eventsPub *pktNats.Publisher,
	log logger.ILogger,
) IVideoService {
	return &videoService{
		orchestrator: orchestrator,
		tasks:        tasks,
		eventsPub:    eventsPub,
		log:          log,
	}
}

func (s *videoService) ProcessVideo(_ context.Context, req *dto.ProcessVideoRequest) (*dto.SubmitResponse, error) {
	spec := pipeline.SingleSpec{
		SourceURL:      req.URL,
		CleanRequested: req.CleanTranscript,
	}

	taskId := s.tasks.Submit("video summary", func(ctx context.Context, rep progress.Reporter) (*entity.TaskResult, error) {
		outcome, err := s.orchestrator.RunSingle(ctx, spec, rep)
		if err != nil {
			return nil, err
		}

		if pubErr := s.eventsPub.Publish(ctx, events.NewVideoProcessed(outcome.VideoId, outcome.WordCount)); pubErr != nil {
			s.log.Warn("VideoService", "Failed to publish video event", map[string]interface{}{
				"video_id": outcome.VideoId, "error": pubErr.Error(),
			})
		}

		return &entity.TaskResult{
			VideoId:        outcome.VideoId,
			Transcript:     outcome.Transcript,
			Summary:        outcome.Summary,
			WordCount:      outcome.WordCount,
			CharacterCount: outcome.CharacterCount,
		}, nil
	})

	return &dto.SubmitResponse{TaskId: taskId}, nil
}
