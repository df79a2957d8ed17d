package service

import (
	"context"
	"sync"

	"yt-refinery/internal/dto"
	"yt-refinery/internal/entity"
	"yt-refinery/internal/pkg/logger"
	"yt-refinery/internal/pkg/serverutils"
	"yt-refinery/internal/repository/contract"
	"yt-refinery/pkg/events"
	pktNats "yt-refinery/pkg/nats"
	"yt-refinery/pkg/refinery/pipeline"
	"yt-refinery/pkg/refinery/progress"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IClusterService interface {
	CreateCluster(ctx context.Context, req *dto.CreateClusterRequest) (*dto.SubmitResponse, error)
	SynthesizeCluster(ctx context.Context, sessionId string, cleanRequested bool) (*dto.SubmitResponse, error)
	GetAllClusters(ctx context.Context) ([]*dto.ClusterSummaryResponse, error)
	GetCluster(ctx context.Context, sessionId string) (*entity.Cluster, error)
}

type clusterService struct {
	orchestrator *pipeline.Orchestrator
	clusters     contract.ClusterRepository
	tasks        ITaskService
	eventsPub    *pktNats.Publisher
	log          logger.ILogger

	// At most one live run may own a session id. The store has no lock;
	// the submission path is the single chokepoint, so it enforces the
	// contract.
	inFlight sync.Map
}

func NewClusterService(
	orchestrator *pipeline.Orchestrator,
	clusters contract.ClusterRepository,
	tasks ITaskService,
	eventsPub *pktNats.Publisher,
	log logger.ILogger,
) IClusterService {
	return &clusterService{
		orchestrator: orchestrator,
		clusters:     clusters,
		tasks:        tasks,
		eventsPub:    eventsPub,
		log:          log,
	}
}

func (s *clusterService) CreateCluster(_ context.Context, req *dto.CreateClusterRequest) (*dto.SubmitResponse, error) {
	sessionId := uuid.NewString()
	spec := pipeline.ClusterSpec{
		SessionId:      sessionId,
		Name:           req.Name,
		SourceURLs:     req.URLs,
		CleanRequested: req.CleanTranscripts,
	}

	// A freshly minted session id can never collide with a live run.
	s.inFlight.Store(sessionId, struct{}{})
	taskId := s.submitRun(sessionId, req.Name, func(ctx context.Context, rep progress.Reporter) (*pipeline.ClusterOutcome, error) {
		return s.orchestrator.RunCluster(ctx, spec, rep)
	})

	return &dto.SubmitResponse{TaskId: taskId, SessionId: sessionId}, nil
}

// SynthesizeCluster re-submits an existing session. Work persisted by the
// previous run (transcripts, cleaned transcripts) is reused, not redone.
func (s *clusterService) SynthesizeCluster(ctx context.Context, sessionId string, cleanRequested bool) (*dto.SubmitResponse, error) {
	cluster, err := s.clusters.Get(ctx, sessionId)
	if err == contract.ErrClusterNotFound {
		return nil, serverutils.NewAppError(fiber.StatusNotFound, "cluster not found")
	}
	if err != nil {
		return nil, err
	}
	if _, live := s.inFlight.LoadOrStore(sessionId, struct{}{}); live {
		return nil, serverutils.NewAppError(fiber.StatusConflict, "a run is already in flight for this session")
	}

	taskId := s.submitRun(sessionId, cluster.Name, func(ctx context.Context, rep progress.Reporter) (*pipeline.ClusterOutcome, error) {
		return s.orchestrator.Resume(ctx, sessionId, cleanRequested, rep)
	})

	return &dto.SubmitResponse{TaskId: taskId, SessionId: sessionId}, nil
}

// submitRun dispatches a run whose inFlight slot the caller already holds;
// the slot is released when the run finishes.
func (s *clusterService) submitRun(sessionId, name string, run func(context.Context, progress.Reporter) (*pipeline.ClusterOutcome, error)) string {
	return s.tasks.Submit("cluster "+name, func(ctx context.Context, rep progress.Reporter) (*entity.TaskResult, error) {
		defer s.inFlight.Delete(sessionId)

		outcome, err := run(ctx, rep)
		if err != nil {
			if pubErr := s.eventsPub.Publish(ctx, events.NewClusterFailed(sessionId, name, err.Error())); pubErr != nil {
				s.log.Warn("ClusterService", "Failed to publish cluster event", map[string]interface{}{
					"session_id": sessionId, "error": pubErr.Error(),
				})
			}
			return nil, err
		}

		if pubErr := s.eventsPub.Publish(ctx, events.NewClusterCompleted(sessionId, name, outcome.ProcessedCount, outcome.TotalCount)); pubErr != nil {
			s.log.Warn("ClusterService", "Failed to publish cluster event", map[string]interface{}{
				"session_id": sessionId, "error": pubErr.Error(),
			})
		}

		return &entity.TaskResult{
			SessionId:      outcome.SessionId,
			Status:         string(outcome.Status),
			ProcessedCount: outcome.ProcessedCount,
			TotalCount:     outcome.TotalCount,
			Report:         outcome.Report,
		}, nil
	})
}

func (s *clusterService) GetAllClusters(ctx context.Context) ([]*dto.ClusterSummaryResponse, error) {
	clusters, err := s.clusters.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]*dto.ClusterSummaryResponse, 0, len(clusters))
	for _, cluster := range clusters {
		summaries = append(summaries, &dto.ClusterSummaryResponse{
			SessionId:  cluster.SessionId,
			Name:       cluster.Name,
			Status:     string(cluster.Status),
			VideoCount: len(cluster.SourceURLs),
			Collected:  len(cluster.Transcripts),
			CreatedAt:  cluster.CreatedAt,
			UpdatedAt:  cluster.UpdatedAt,
		})
	}
	return summaries, nil
}

func (s *clusterService) GetCluster(ctx context.Context, sessionId string) (*entity.Cluster, error) {
	cluster, err := s.clusters.Get(ctx, sessionId)
	if err == contract.ErrClusterNotFound {
		return nil, serverutils.NewAppError(fiber.StatusNotFound, "cluster not found")
	}
	return cluster, err
}
