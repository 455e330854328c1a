package model

import "github.com/secmon-lab/repotally/pkg/domain/types"

// ActivityDelta is the set of counter increments computed from one event.
// At most one counter family is non-zero: push events carry commits/pushes,
// issue events carry issue counters, pull request events carry PR counters.
type ActivityDelta struct {
	Repo GitHubRepo

	Commits            int64
	Pushes             int64
	IssuesOpened       int64
	IssuesClosed       int64
	PullRequestsOpened int64
	PullRequestsMerged int64
}

// Counter is one named increment of a delta, using the persisted field name.
type Counter struct {
	Field string
	Value int64
}

// Counters returns the delta's increments in stable field order.
func (x *ActivityDelta) Counters() []Counter {
	return []Counter{
		{Field: "commits", Value: x.Commits},
		{Field: "pushes", Value: x.Pushes},
		{Field: "issues_opened", Value: x.IssuesOpened},
		{Field: "issues_closed", Value: x.IssuesClosed},
		{Field: "pull_requests_opened", Value: x.PullRequestsOpened},
		{Field: "pull_requests_merged", Value: x.PullRequestsMerged},
	}
}

func (x *ActivityDelta) IsZero() bool {
	for _, c := range x.Counters() {
		if c.Value != 0 {
			return false
		}
	}
	return true
}

// BuildDelta extracts the counter increments for a classified event. Ignored
// and closed-without-merge events yield an all-zero delta so the pipeline
// stays uniform; the store adapter short-circuits on those.
func BuildDelta(category types.ActivityCategory, ev *Event) *ActivityDelta {
	delta := &ActivityDelta{Repo: ev.Repo}

	switch category {
	case types.CategoryPush:
		delta.Pushes = 1
		delta.Commits = countDistinctCommits(ev.Commits)
	case types.CategoryIssueOpened:
		delta.IssuesOpened = 1
	case types.CategoryIssueClosed:
		delta.IssuesClosed = 1
	case types.CategoryPullRequestOpened:
		delta.PullRequestsOpened = 1
	case types.CategoryPullRequestMerged:
		delta.PullRequestsMerged = 1
	}

	return delta
}

// countDistinctCommits counts commits not already delivered by a prior push.
// Equivalent to total minus non-distinct, but cannot go negative even on an
// inconsistent payload.
func countDistinctCommits(commits []PushCommit) int64 {
	var n int64
	for _, c := range commits {
		if c.Distinct {
			n++
		}
	}
	return n
}
