package memory_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/repotally/pkg/domain/model"
	"github.com/secmon-lab/repotally/pkg/repository/memory"
	"github.com/secmon-lab/repotally/pkg/repository/testhelper"
)

func TestMemoryStatsRepository(t *testing.T) {
	testhelper.TestAll(t, memory.New())
}

func TestReturnedStatsAreCopies(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	target := model.GitHubRepo{
		Owner:    "acme",
		Name:     "widgets",
		FullName: "acme/widgets",
		ID:       1,
		URL:      "https://github.com/acme/widgets",
	}
	gt.NoError(t, repo.ApplyDelta(ctx, &model.ActivityDelta{Repo: target, Pushes: 1, Commits: 2}))

	stats, err := repo.GetRepoStats(ctx, "acme/widgets")
	gt.NoError(t, err)

	// Mutating the returned value must not affect the stored aggregate
	stats.Commits = 1000
	stats.URL = "https://example.com/hacked"

	stored, err := repo.GetRepoStats(ctx, "acme/widgets")
	gt.NoError(t, err)
	gt.V(t, stored.Commits).Equal(2)
	gt.V(t, stored.URL).Equal("https://github.com/acme/widgets")
}

func TestInvalidIdentityRejected(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	err := repo.ApplyDelta(ctx, &model.ActivityDelta{
		Repo:   model.GitHubRepo{Owner: "acme"},
		Pushes: 1,
	})
	gt.Error(t, err)
}
