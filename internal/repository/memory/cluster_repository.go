package memory

import (
	"context"
	"time"

	"yt-refinery/internal/entity"
	"yt-refinery/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// ClusterRepository is the in-process fallback store used when Redis is
// unreachable, and by tests. Same contract, same 7-day expiry, no durability
// across restarts.
type ClusterRepository struct {
	cache *cache.Cache
}

var _ contract.ClusterRepository = &ClusterRepository{}

func NewClusterRepository() *ClusterRepository {
	return &ClusterRepository{
		cache: cache.New(7*24*time.Hour, 1*time.Hour),
	}
}

func (r *ClusterRepository) Save(_ context.Context, cluster *entity.Cluster) error {
	// Store a snapshot so later mutations by the orchestrator are not
	// observable until the next Save.
	r.cache.Set(cluster.SessionId, cloneCluster(cluster), cache.DefaultExpiration)
	return nil
}

func (r *ClusterRepository) Get(_ context.Context, sessionId string) (*entity.Cluster, error) {
	x, found := r.cache.Get(sessionId)
	if !found {
		return nil, contract.ErrClusterNotFound
	}
	return cloneCluster(x.(*entity.Cluster)), nil
}

func (r *ClusterRepository) GetAll(_ context.Context) ([]*entity.Cluster, error) {
	items := r.cache.Items()
	clusters := make([]*entity.Cluster, 0, len(items))
	for _, item := range items {
		clusters = append(clusters, cloneCluster(item.Object.(*entity.Cluster)))
	}
	return clusters, nil
}

func cloneCluster(c *entity.Cluster) *entity.Cluster {
	clone := *c
	clone.SourceURLs = append([]string(nil), c.SourceURLs...)
	clone.Transcripts = cloneMap(c.Transcripts)
	clone.CleanedTranscripts = cloneMap(c.CleanedTranscripts)
	return &clone
}

func cloneMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
