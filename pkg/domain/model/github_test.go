package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/repotally/pkg/domain/model"
)

func TestGitHubRepoValidate(t *testing.T) {
	t.Run("valid repo passes validation", func(t *testing.T) {
		repo := &model.GitHubRepo{
			Owner:    "acme",
			Name:     "widgets",
			FullName: "acme/widgets",
			ID:       123,
		}
		gt.NoError(t, repo.Validate())
	})

	t.Run("missing owner fails validation", func(t *testing.T) {
		repo := &model.GitHubRepo{
			Name:     "widgets",
			FullName: "acme/widgets",
		}
		gt.Error(t, repo.Validate())
	})

	t.Run("missing name fails validation", func(t *testing.T) {
		repo := &model.GitHubRepo{
			Owner:    "acme",
			FullName: "acme/widgets",
		}
		gt.Error(t, repo.Validate())
	})

	t.Run("missing full name fails validation", func(t *testing.T) {
		repo := &model.GitHubRepo{
			Owner: "acme",
			Name:  "widgets",
		}
		gt.Error(t, repo.Validate())
	})
}

func TestRepoStatsApply(t *testing.T) {
	repo := model.GitHubRepo{
		Owner:    "acme",
		Name:     "widgets",
		FullName: "acme/widgets",
		ID:       123,
		URL:      "https://github.com/acme/widgets",
	}

	created := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	stats := model.NewRepoStats(&model.ActivityDelta{Repo: repo, Commits: 3, Pushes: 1}, created)
	gt.V(t, stats.Commits).Equal(3)
	gt.V(t, stats.Pushes).Equal(1)
	gt.V(t, stats.FullName).Equal("acme/widgets")
	gt.V(t, stats.CreatedAt).Equal(created)

	updated := created.Add(time.Hour)
	stats.Apply(&model.ActivityDelta{Repo: repo, Commits: 1, Pushes: 1}, updated)
	gt.V(t, stats.Commits).Equal(4)
	gt.V(t, stats.Pushes).Equal(2)
	gt.V(t, stats.IssuesOpened).Equal(0)
	gt.V(t, stats.CreatedAt).Equal(created)
	gt.V(t, stats.UpdatedAt).Equal(updated)
}
