package memory

import (
	"context"
	"testing"

	"yt-refinery/internal/entity"
	"yt-refinery/internal/repository/contract"

	"github.com/stretchr/testify/assert"
)

func TestClusterSaveAndGet(t *testing.T) {
	repo := NewClusterRepository()
	ctx := context.Background()

	cluster := entity.NewCluster("s1", "Topic A", []string{"u1", "u2"})
	cluster.Transcripts["v1"] = "transcript one"
	assert.NoError(t, repo.Save(ctx, cluster))

	got, err := repo.Get(ctx, "s1")
	assert.NoError(t, err)
	assert.Equal(t, "Topic A", got.Name)
	assert.Equal(t, "transcript one", got.Transcripts["v1"])
}

func TestClusterGetUnknown(t *testing.T) {
	repo := NewClusterRepository()
	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, contract.ErrClusterNotFound)
}

func TestClusterSnapshotIsolation(t *testing.T) {
	repo := NewClusterRepository()
	ctx := context.Background()

	cluster := entity.NewCluster("s1", "Topic A", []string{"u1"})
	repo.Save(ctx, cluster)

	// Mutating the saved pointer must not leak into the store.
	cluster.Transcripts["v1"] = "late write"
	got, _ := repo.Get(ctx, "s1")
	assert.Empty(t, got.Transcripts)

	// Mutating a read copy must not leak either.
	got.Name = "changed"
	again, _ := repo.Get(ctx, "s1")
	assert.Equal(t, "Topic A", again.Name)
}

func TestClusterGetAll(t *testing.T) {
	repo := NewClusterRepository()
	ctx := context.Background()

	repo.Save(ctx, entity.NewCluster("s1", "A", nil))
	repo.Save(ctx, entity.NewCluster("s2", "B", nil))

	all, err := repo.GetAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}
