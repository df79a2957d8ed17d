package contract

import (
	"context"
	"errors"

	"yt-refinery/internal/entity"
)

// ErrClusterNotFound is returned when no cluster exists for a session id
// (including clusters that have expired out of the store).
var ErrClusterNotFound = errors.New("cluster not found")

// ClusterRepository persists cluster state keyed by session id. A Save is
// atomic: a concurrent Get observes either the previous or the new state,
// never a torn write. Entries expire seven days after the last Save.
type ClusterRepository interface {
	Save(ctx context.Context, cluster *entity.Cluster) error
	Get(ctx context.Context, sessionId string) (*entity.Cluster, error)
	// GetAll is best-effort: entries expiring concurrently are skipped.
	GetAll(ctx context.Context) ([]*entity.Cluster, error)
}
