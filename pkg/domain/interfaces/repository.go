package interfaces

import (
	"context"

	"github.com/secmon-lab/repotally/pkg/domain/model"
)

// StatsRepository persists per-repository activity counters.
type StatsRepository interface {
	// ApplyDelta ensures an aggregate exists for the delta's repository and
	// applies the increments atomically. All-zero deltas are a no-op.
	ApplyDelta(ctx context.Context, delta *model.ActivityDelta) error

	GetRepoStats(ctx context.Context, fullName string) (*model.RepoStats, error)
	ListRepoStats(ctx context.Context) ([]*model.RepoStats, error)
}
