package model

import "github.com/secmon-lab/repotally/pkg/domain/types"

// classifyRule maps an event kind plus an action predicate to a category.
// The table is data: adding a tracked event means adding a row, not wiring a
// handler into a router.
type classifyRule struct {
	kind     string
	match    func(action string) bool
	category func(ev *Event) types.ActivityCategory
}

func anyAction(string) bool { return true }

func actionIs(want string) func(string) bool {
	return func(action string) bool { return action == want }
}

func fixed(c types.ActivityCategory) func(*Event) types.ActivityCategory {
	return func(*Event) types.ActivityCategory { return c }
}

var classifyRules = []classifyRule{
	{kind: "push", match: anyAction, category: fixed(types.CategoryPush)},
	{kind: "issues", match: actionIs("opened"), category: fixed(types.CategoryIssueOpened)},
	{kind: "issues", match: actionIs("closed"), category: fixed(types.CategoryIssueClosed)},
	{kind: "pull_request", match: actionIs("opened"), category: fixed(types.CategoryPullRequestOpened)},
	{kind: "pull_request", match: actionIs("closed"), category: func(ev *Event) types.ActivityCategory {
		if ev.Merged {
			return types.CategoryPullRequestMerged
		}
		return types.CategoryPullRequestClosedUnmerged
	}},
}

// Classify maps an event to its activity category. Pure function of the
// event's kind, action and merged flag; events matching no rule are ignored.
func Classify(ev *Event) types.ActivityCategory {
	for _, rule := range classifyRules {
		if rule.kind == ev.Kind && rule.match(ev.Action) {
			return rule.category(ev)
		}
	}
	return types.CategoryIgnored
}
