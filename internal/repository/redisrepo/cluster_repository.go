package redisrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"yt-refinery/internal/entity"
	"yt-refinery/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const (
	clusterKeyPrefix = "cluster:"

	// Sliding TTL: refreshed on every Save, matching the original
	// refinery's SETEX-on-every-write behavior.
	clusterTTL = 7 * 24 * time.Hour
)

// ClusterRepository stores each cluster as one JSON value under
// "cluster:<sessionId>" with a 7-day sliding expiry.
type ClusterRepository struct {
	rdb *redis.Client
}

var _ contract.ClusterRepository = &ClusterRepository{}

func NewClusterRepository(rdb *redis.Client) *ClusterRepository {
	return &ClusterRepository{rdb: rdb}
}

func (r *ClusterRepository) Save(ctx context.Context, cluster *entity.Cluster) error {
	data, err := json.Marshal(cluster)
	if err != nil {
		return fmt.Errorf("marshal cluster %s: %w", cluster.SessionId, err)
	}

	// Single SET with expiry keeps the write atomic from a reader's view.
	if err := r.rdb.Set(ctx, clusterKeyPrefix+cluster.SessionId, data, clusterTTL).Err(); err != nil {
		return fmt.Errorf("save cluster %s: %w", cluster.SessionId, err)
	}
	return nil
}

func (r *ClusterRepository) Get(ctx context.Context, sessionId string) (*entity.Cluster, error) {
	data, err := r.rdb.Get(ctx, clusterKeyPrefix+sessionId).Bytes()
	if err == redis.Nil {
		return nil, contract.ErrClusterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get cluster %s: %w", sessionId, err)
	}

	var cluster entity.Cluster
	if err := json.Unmarshal(data, &cluster); err != nil {
		return nil, fmt.Errorf("unmarshal cluster %s: %w", sessionId, err)
	}
	return &cluster, nil
}

func (r *ClusterRepository) GetAll(ctx context.Context) ([]*entity.Cluster, error) {
	var clusters []*entity.Cluster

	iter := r.rdb.Scan(ctx, 0, clusterKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		sessionId := strings.TrimPrefix(iter.Val(), clusterKeyPrefix)
		cluster, err := r.Get(ctx, sessionId)
		if err == contract.ErrClusterNotFound {
			// Expired between SCAN and GET; tolerated.
			continue
		}
		if err != nil {
			return nil, err
		}
		clusters = append(clusters, cluster)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan clusters: %w", err)
	}
	return clusters, nil
}
