package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/repotally/pkg/domain/model"
	"github.com/secmon-lab/repotally/pkg/domain/types"
)

func testRepo() model.GitHubRepo {
	return model.GitHubRepo{
		Owner:    "acme",
		Name:     "widgets",
		FullName: "acme/widgets",
		ID:       12345,
		URL:      "https://github.com/acme/widgets",
	}
}

func TestBuildDeltaPush(t *testing.T) {
	t.Run("all commits distinct", func(t *testing.T) {
		ev := &model.Event{
			Kind: "push",
			Repo: testRepo(),
			Commits: []model.PushCommit{
				{SHA: "aaa", Distinct: true},
				{SHA: "bbb", Distinct: true},
				{SHA: "ccc", Distinct: true},
			},
		}
		delta := model.BuildDelta(types.CategoryPush, ev)
		gt.V(t, delta.Commits).Equal(3)
		gt.V(t, delta.Pushes).Equal(1)
		gt.V(t, delta.IssuesOpened).Equal(0)
		gt.V(t, delta.Repo.FullName).Equal("acme/widgets")
	})

	t.Run("non-distinct commits excluded", func(t *testing.T) {
		ev := &model.Event{
			Kind: "push",
			Repo: testRepo(),
			Commits: []model.PushCommit{
				{SHA: "aaa", Distinct: true},
				{SHA: "bbb", Distinct: false},
			},
		}
		delta := model.BuildDelta(types.CategoryPush, ev)
		gt.V(t, delta.Commits).Equal(1)
		gt.V(t, delta.Pushes).Equal(1)
	})

	t.Run("all commits non-distinct yields zero commits", func(t *testing.T) {
		ev := &model.Event{
			Kind: "push",
			Repo: testRepo(),
			Commits: []model.PushCommit{
				{SHA: "aaa", Distinct: false},
				{SHA: "bbb", Distinct: false},
			},
		}
		delta := model.BuildDelta(types.CategoryPush, ev)
		gt.V(t, delta.Commits).Equal(0)
		gt.V(t, delta.Pushes).Equal(1)
		gt.False(t, delta.IsZero())
	})

	t.Run("empty push still counts one push", func(t *testing.T) {
		ev := &model.Event{Kind: "push", Repo: testRepo()}
		delta := model.BuildDelta(types.CategoryPush, ev)
		gt.V(t, delta.Commits).Equal(0)
		gt.V(t, delta.Pushes).Equal(1)
	})
}

func TestBuildDeltaLifecycle(t *testing.T) {
	testCases := []struct {
		name     string
		category types.ActivityCategory
		check    func(t *testing.T, delta *model.ActivityDelta)
	}{
		{
			name:     "issue opened",
			category: types.CategoryIssueOpened,
			check: func(t *testing.T, delta *model.ActivityDelta) {
				gt.V(t, delta.IssuesOpened).Equal(1)
			},
		},
		{
			name:     "issue closed",
			category: types.CategoryIssueClosed,
			check: func(t *testing.T, delta *model.ActivityDelta) {
				gt.V(t, delta.IssuesClosed).Equal(1)
			},
		},
		{
			name:     "pull request opened",
			category: types.CategoryPullRequestOpened,
			check: func(t *testing.T, delta *model.ActivityDelta) {
				gt.V(t, delta.PullRequestsOpened).Equal(1)
			},
		},
		{
			name:     "pull request merged",
			category: types.CategoryPullRequestMerged,
			check: func(t *testing.T, delta *model.ActivityDelta) {
				gt.V(t, delta.PullRequestsMerged).Equal(1)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ev := &model.Event{Repo: testRepo()}
			delta := model.BuildDelta(tc.category, ev)
			tc.check(t, delta)

			// Exactly one counter is non-zero for lifecycle events
			var nonZero int
			for _, c := range delta.Counters() {
				if c.Value != 0 {
					nonZero++
				}
			}
			gt.V(t, nonZero).Equal(1)
		})
	}
}

func TestBuildDeltaZero(t *testing.T) {
	t.Run("closed without merge yields all-zero delta", func(t *testing.T) {
		ev := &model.Event{Kind: "pull_request", Action: "closed", Repo: testRepo()}
		delta := model.BuildDelta(types.CategoryPullRequestClosedUnmerged, ev)
		gt.True(t, delta.IsZero())
		gt.V(t, delta.Repo.FullName).Equal("acme/widgets")
	})

	t.Run("ignored yields all-zero delta", func(t *testing.T) {
		ev := &model.Event{Kind: "issues", Action: "reopened", Repo: testRepo()}
		delta := model.BuildDelta(types.CategoryIgnored, ev)
		gt.True(t, delta.IsZero())
	})
}

func TestCounters(t *testing.T) {
	delta := &model.ActivityDelta{Commits: 3, Pushes: 1}
	counters := delta.Counters()
	gt.V(t, len(counters)).Equal(6)
	gt.V(t, counters[0].Field).Equal("commits")
	gt.V(t, counters[0].Value).Equal(3)
	gt.V(t, counters[1].Field).Equal("pushes")
	gt.V(t, counters[1].Value).Equal(1)
}
