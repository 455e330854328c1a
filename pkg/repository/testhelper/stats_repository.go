package testhelper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/repotally/pkg/domain/interfaces"
	"github.com/secmon-lab/repotally/pkg/domain/model"
	"github.com/secmon-lab/repotally/pkg/repository"
)

// TestAll runs all test cases for StatsRepository
// This is the main entry point for testing any StatsRepository implementation
func TestAll(t *testing.T, repo interfaces.StatsRepository) {
	t.Run("FirstEventCreatesStats", func(t *testing.T) {
		TestFirstEventCreatesStats(t, repo)
	})
	t.Run("IncrementExisting", func(t *testing.T) {
		TestIncrementExisting(t, repo)
	})
	t.Run("IdentityPreserved", func(t *testing.T) {
		TestIdentityPreserved(t, repo)
	})
	t.Run("ZeroDeltaShortCircuit", func(t *testing.T) {
		TestZeroDeltaShortCircuit(t, repo)
	})
	t.Run("NotFound", func(t *testing.T) {
		TestNotFound(t, repo)
	})
	t.Run("ConcurrentIncrements", func(t *testing.T) {
		TestConcurrentIncrements(t, repo)
	})
}

// newTestRepo generates a unique repository identity so that suites can run
// against a shared Firestore project without interfering with each other.
func newTestRepo() model.GitHubRepo {
	owner := fmt.Sprintf("owner-%s", uuid.New().String()[:8])
	name := fmt.Sprintf("repo-%s", uuid.New().String()[:8])
	return model.GitHubRepo{
		Owner:    owner,
		Name:     name,
		FullName: owner + "/" + name,
		ID:       12345,
		URL:      fmt.Sprintf("https://github.com/%s/%s", owner, name),
	}
}

func TestFirstEventCreatesStats(t *testing.T, repo interfaces.StatsRepository) {
	ctx := context.Background()
	testRepo := newTestRepo()

	err := repo.ApplyDelta(ctx, &model.ActivityDelta{Repo: testRepo, Commits: 3, Pushes: 1})
	gt.NoError(t, err)

	stats, err := repo.GetRepoStats(ctx, testRepo.FullName)
	gt.NoError(t, err)
	gt.V(t, stats.Owner).Equal(testRepo.Owner)
	gt.V(t, stats.FullName).Equal(testRepo.FullName)
	gt.V(t, stats.Name).Equal(testRepo.Name)
	gt.V(t, stats.ID).Equal(testRepo.ID)
	gt.V(t, stats.URL).Equal(testRepo.URL)
	gt.V(t, stats.Commits).Equal(3)
	gt.V(t, stats.Pushes).Equal(1)
	gt.V(t, stats.IssuesOpened).Equal(0)
	gt.V(t, stats.IssuesClosed).Equal(0)
	gt.V(t, stats.PullRequestsOpened).Equal(0)
	gt.V(t, stats.PullRequestsMerged).Equal(0)
}

func TestIncrementExisting(t *testing.T, repo interfaces.StatsRepository) {
	ctx := context.Background()
	testRepo := newTestRepo()

	gt.NoError(t, repo.ApplyDelta(ctx, &model.ActivityDelta{Repo: testRepo, Commits: 3, Pushes: 1}))
	gt.NoError(t, repo.ApplyDelta(ctx, &model.ActivityDelta{Repo: testRepo, Commits: 1, Pushes: 1}))
	gt.NoError(t, repo.ApplyDelta(ctx, &model.ActivityDelta{Repo: testRepo, IssuesOpened: 1}))

	stats, err := repo.GetRepoStats(ctx, testRepo.FullName)
	gt.NoError(t, err)
	gt.V(t, stats.Commits).Equal(4)
	gt.V(t, stats.Pushes).Equal(2)
	gt.V(t, stats.IssuesOpened).Equal(1)
	gt.V(t, stats.IssuesClosed).Equal(0)
}

func TestIdentityPreserved(t *testing.T, repo interfaces.StatsRepository) {
	ctx := context.Background()
	testRepo := newTestRepo()

	gt.NoError(t, repo.ApplyDelta(ctx, &model.ActivityDelta{Repo: testRepo, Pushes: 1, Commits: 1}))

	// A later event that reports different identity fields for the same full
	// name must not overwrite what was first seen.
	altered := testRepo
	altered.URL = "https://example.com/moved"
	altered.ID = 99999
	gt.NoError(t, repo.ApplyDelta(ctx, &model.ActivityDelta{Repo: altered, IssuesClosed: 1}))

	stats, err := repo.GetRepoStats(ctx, testRepo.FullName)
	gt.NoError(t, err)
	gt.V(t, stats.URL).Equal(testRepo.URL)
	gt.V(t, stats.ID).Equal(testRepo.ID)
	gt.V(t, stats.Pushes).Equal(1)
	gt.V(t, stats.IssuesClosed).Equal(1)
}

func TestZeroDeltaShortCircuit(t *testing.T, repo interfaces.StatsRepository) {
	ctx := context.Background()
	testRepo := newTestRepo()

	// An all-zero delta must not create an aggregate
	gt.NoError(t, repo.ApplyDelta(ctx, &model.ActivityDelta{Repo: testRepo}))

	_, err := repo.GetRepoStats(ctx, testRepo.FullName)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestNotFound(t *testing.T, repo interfaces.StatsRepository) {
	ctx := context.Background()

	fullName := fmt.Sprintf("nonexistent-%s/repo-%s", uuid.New().String()[:8], uuid.New().String()[:8])
	_, err := repo.GetRepoStats(ctx, fullName)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestConcurrentIncrements(t *testing.T, repo interfaces.StatsRepository) {
	ctx := context.Background()
	testRepo := newTestRepo()

	// Create the aggregate first so every worker takes the increment path
	gt.NoError(t, repo.ApplyDelta(ctx, &model.ActivityDelta{Repo: testRepo, Pushes: 1, Commits: 1}))

	const workers = 20
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			errs[n] = repo.ApplyDelta(ctx, &model.ActivityDelta{Repo: testRepo, Pushes: 1, Commits: 2})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		gt.NoError(t, err)
	}

	stats, err := repo.GetRepoStats(ctx, testRepo.FullName)
	gt.NoError(t, err)
	gt.V(t, stats.Pushes).Equal(1 + workers)
	gt.V(t, stats.Commits).Equal(1 + workers*2)
}
