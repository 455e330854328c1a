package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/repotally/pkg/domain/model"
	"github.com/secmon-lab/repotally/pkg/domain/types"
	"github.com/secmon-lab/repotally/pkg/infra"
	"github.com/secmon-lab/repotally/pkg/repository/memory"
	"github.com/secmon-lab/repotally/pkg/usecase"
)

func newTestUseCase() *usecase.UseCase {
	clients := infra.New(infra.WithStatsRepository(memory.New()))
	return usecase.New(clients)
}

func widgetsRepo() model.GitHubRepo {
	return model.GitHubRepo{
		Owner:    "acme",
		Name:     "widgets",
		FullName: "acme/widgets",
		ID:       42,
		URL:      "https://github.com/acme/widgets",
	}
}

func TestRecordEventPipeline(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase()

	t.Run("first push creates aggregate", func(t *testing.T) {
		category, err := uc.RecordEvent(ctx, &model.Event{
			Kind: "push",
			Repo: widgetsRepo(),
			Commits: []model.PushCommit{
				{SHA: "a1", Distinct: true},
				{SHA: "a2", Distinct: true},
				{SHA: "a3", Distinct: true},
			},
		})
		gt.NoError(t, err)
		gt.V(t, category).Equal(types.CategoryPush)

		stats, err := uc.GetRepoStats(ctx, "acme/widgets")
		gt.NoError(t, err)
		gt.V(t, stats.Commits).Equal(3)
		gt.V(t, stats.Pushes).Equal(1)
		gt.V(t, stats.IssuesOpened).Equal(0)
	})

	t.Run("second push increments with distinct filter", func(t *testing.T) {
		category, err := uc.RecordEvent(ctx, &model.Event{
			Kind: "push",
			Repo: widgetsRepo(),
			Commits: []model.PushCommit{
				{SHA: "b1", Distinct: true},
				{SHA: "a3", Distinct: false},
			},
		})
		gt.NoError(t, err)
		gt.V(t, category).Equal(types.CategoryPush)

		stats, err := uc.GetRepoStats(ctx, "acme/widgets")
		gt.NoError(t, err)
		gt.V(t, stats.Commits).Equal(4)
		gt.V(t, stats.Pushes).Equal(2)
	})

	t.Run("issue opened leaves push counters alone", func(t *testing.T) {
		category, err := uc.RecordEvent(ctx, &model.Event{
			Kind:   "issues",
			Action: "opened",
			Repo:   widgetsRepo(),
		})
		gt.NoError(t, err)
		gt.V(t, category).Equal(types.CategoryIssueOpened)

		stats, err := uc.GetRepoStats(ctx, "acme/widgets")
		gt.NoError(t, err)
		gt.V(t, stats.IssuesOpened).Equal(1)
		gt.V(t, stats.Commits).Equal(4)
		gt.V(t, stats.Pushes).Equal(2)
	})

	t.Run("pull request closed without merge changes nothing", func(t *testing.T) {
		category, err := uc.RecordEvent(ctx, &model.Event{
			Kind:   "pull_request",
			Action: "closed",
			Merged: false,
			Repo:   widgetsRepo(),
		})
		gt.NoError(t, err)
		gt.V(t, category).Equal(types.CategoryPullRequestClosedUnmerged)

		stats, err := uc.GetRepoStats(ctx, "acme/widgets")
		gt.NoError(t, err)
		gt.V(t, stats.PullRequestsOpened).Equal(0)
		gt.V(t, stats.PullRequestsMerged).Equal(0)
		gt.V(t, stats.Commits).Equal(4)
	})

	t.Run("merged pull request counts once", func(t *testing.T) {
		category, err := uc.RecordEvent(ctx, &model.Event{
			Kind:   "pull_request",
			Action: "closed",
			Merged: true,
			Repo:   widgetsRepo(),
		})
		gt.NoError(t, err)
		gt.V(t, category).Equal(types.CategoryPullRequestMerged)

		stats, err := uc.GetRepoStats(ctx, "acme/widgets")
		gt.NoError(t, err)
		gt.V(t, stats.PullRequestsMerged).Equal(1)
	})

	t.Run("ignored action does not create aggregate", func(t *testing.T) {
		other := widgetsRepo()
		other.Name = "gizmos"
		other.FullName = "acme/gizmos"

		category, err := uc.RecordEvent(ctx, &model.Event{
			Kind:   "issues",
			Action: "labeled",
			Repo:   other,
		})
		gt.NoError(t, err)
		gt.V(t, category).Equal(types.CategoryIgnored)

		_, err = uc.GetRepoStats(ctx, "acme/gizmos")
		gt.Error(t, err)
	})
}

func TestRecordEventMalformed(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase()

	_, err := uc.RecordEvent(ctx, &model.Event{Kind: "push"})
	gt.Error(t, err)
}

func TestRecordEventWithoutRepository(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(infra.New())

	_, err := uc.RecordEvent(ctx, &model.Event{
		Kind: "push",
		Repo: widgetsRepo(),
	})
	gt.Error(t, err)
}
