package types

import "log/slog"

type (
	GitHubWebhookSecret string
	GitHubToken         string
	ActivityCategory    string
)

// Activity categories produced by the event classifier. Every webhook event
// maps to exactly one of these; CategoryIgnored carries no counter delta.
const (
	CategoryPush                      ActivityCategory = "push_activity"
	CategoryIssueOpened               ActivityCategory = "issue_opened"
	CategoryIssueClosed               ActivityCategory = "issue_closed"
	CategoryPullRequestOpened         ActivityCategory = "pull_request_opened"
	CategoryPullRequestMerged         ActivityCategory = "pull_request_merged"
	CategoryPullRequestClosedUnmerged ActivityCategory = "pull_request_closed_unmerged"
	CategoryIgnored                   ActivityCategory = "ignored"
)

func (x GitHubWebhookSecret) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubWebhookSecret) String() string {
	return "***********"
}

func (x GitHubToken) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubToken) String() string {
	return "***********"
}
