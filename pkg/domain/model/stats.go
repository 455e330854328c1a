package model

import "time"

// RepoStats is the durable per-repository aggregate. One document exists per
// distinct repository full name; counters only ever increase and the record
// is never deleted.
type RepoStats struct {
	GitHubRepo

	Commits            int64 `firestore:"commits" json:"commits"`
	Pushes             int64 `firestore:"pushes" json:"pushes"`
	IssuesOpened       int64 `firestore:"issues_opened" json:"issues_opened"`
	IssuesClosed       int64 `firestore:"issues_closed" json:"issues_closed"`
	PullRequestsOpened int64 `firestore:"pull_requests_opened" json:"pull_requests_opened"`
	PullRequestsMerged int64 `firestore:"pull_requests_merged" json:"pull_requests_merged"`

	CreatedAt time.Time `firestore:"created_at" json:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at" json:"updated_at"`
}

// NewRepoStats builds the first-seen aggregate for a repository, using the
// delta's identity fields and increments as initial values.
func NewRepoStats(delta *ActivityDelta, now time.Time) *RepoStats {
	return &RepoStats{
		GitHubRepo:         delta.Repo,
		Commits:            delta.Commits,
		Pushes:             delta.Pushes,
		IssuesOpened:       delta.IssuesOpened,
		IssuesClosed:       delta.IssuesClosed,
		PullRequestsOpened: delta.PullRequestsOpened,
		PullRequestsMerged: delta.PullRequestsMerged,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// Apply adds the delta's counters to the aggregate. Identity fields are left
// untouched; first-seen identity wins.
func (x *RepoStats) Apply(delta *ActivityDelta, now time.Time) {
	x.Commits += delta.Commits
	x.Pushes += delta.Pushes
	x.IssuesOpened += delta.IssuesOpened
	x.IssuesClosed += delta.IssuesClosed
	x.PullRequestsOpened += delta.PullRequestsOpened
	x.PullRequestsMerged += delta.PullRequestsMerged
	x.UpdatedAt = now
}
