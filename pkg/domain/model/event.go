package model

// Event is the canonical form of a webhook notification after the platform
// payload has been decoded. It carries only what classification and counter
// extraction need; the raw payload is not retained.
type Event struct {
	// Kind is the event type tag from the X-GitHub-Event header
	// (push, issues, pull_request, ...).
	Kind string

	// Action is the lifecycle action for stateful kinds (opened, closed,
	// reopened, ...). Push events have no action.
	Action string

	// Merged indicates whether a closed pull request was merged. Only
	// meaningful when Kind is pull_request and Action is closed.
	Merged bool

	Repo GitHubRepo

	// Commits lists the commits delivered with a push event.
	Commits []PushCommit
}

type PushCommit struct {
	SHA string

	// Distinct is false for commits already delivered by a prior push on the
	// same ref (force-push or rebase redelivery). Such commits must not be
	// counted again.
	Distinct bool
}
