package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/repotally/pkg/domain/model"
	"github.com/secmon-lab/repotally/pkg/repository"
)

type statsRepository struct {
	mu    sync.RWMutex
	stats map[string]*model.RepoStats
}

func (r *statsRepository) ApplyDelta(ctx context.Context, delta *model.ActivityDelta) error {
	if err := delta.Repo.Validate(); err != nil {
		return goerr.Wrap(repository.ErrInvalidInput, "invalid repository identity",
			goerr.V("fullName", delta.Repo.FullName),
		)
	}

	if delta.IsZero() {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	existing, ok := r.stats[delta.Repo.FullName]
	if !ok {
		r.stats[delta.Repo.FullName] = model.NewRepoStats(delta, now)
		return nil
	}

	existing.Apply(delta, now)
	return nil
}

func (r *statsRepository) GetRepoStats(ctx context.Context, fullName string) (*model.RepoStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats, ok := r.stats[fullName]
	if !ok {
		return nil, goerr.Wrap(repository.ErrNotFound, "repository stats not found",
			goerr.V("fullName", fullName),
		)
	}

	return copyStats(stats), nil
}

func (r *statsRepository) ListRepoStats(ctx context.Context) ([]*model.RepoStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var results []*model.RepoStats
	for _, stats := range r.stats {
		results = append(results, copyStats(stats))
	}

	return results, nil
}

func copyStats(stats *model.RepoStats) *model.RepoStats {
	if stats == nil {
		return nil
	}
	cpy := *stats
	return &cpy
}
