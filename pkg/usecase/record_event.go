package usecase

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/repotally/pkg/domain/model"
	"github.com/secmon-lab/repotally/pkg/domain/types"
	"github.com/secmon-lab/repotally/pkg/utils/logging"
)

// RecordEvent classifies a webhook event, extracts its counter delta and
// applies it to the repository aggregate. The returned category tells the
// caller whether the event counted toward anything; ignored and
// closed-without-merge events succeed without touching the store.
func (x *UseCase) RecordEvent(ctx context.Context, ev *model.Event) (types.ActivityCategory, error) {
	if err := ev.Repo.Validate(); err != nil {
		return types.CategoryIgnored, goerr.Wrap(types.ErrMalformedPayload, "event without repository identity",
			goerr.V("kind", ev.Kind),
		)
	}

	category := model.Classify(ev)
	delta := model.BuildDelta(category, ev)

	logging.From(ctx).Info("classified webhook event",
		slog.String("kind", ev.Kind),
		slog.String("action", ev.Action),
		slog.Any("category", category),
		slog.String("repo", ev.Repo.FullName),
	)

	if delta.IsZero() {
		return category, nil
	}

	repo := x.clients.StatsRepository()
	if repo == nil {
		return category, goerr.Wrap(types.ErrInvalidOption, "stats repository is not configured")
	}

	if err := repo.ApplyDelta(ctx, delta); err != nil {
		return category, goerr.Wrap(err, "failed to apply activity delta",
			goerr.V("repo", ev.Repo.FullName),
			goerr.V("category", category),
		)
	}

	return category, nil
}

func (x *UseCase) GetRepoStats(ctx context.Context, fullName string) (*model.RepoStats, error) {
	repo := x.clients.StatsRepository()
	if repo == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "stats repository is not configured")
	}
	return repo.GetRepoStats(ctx, fullName)
}

func (x *UseCase) ListRepoStats(ctx context.Context) ([]*model.RepoStats, error) {
	repo := x.clients.StatsRepository()
	if repo == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "stats repository is not configured")
	}
	return repo.ListRepoStats(ctx)
}
