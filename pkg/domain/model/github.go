package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/repotally/pkg/domain/types"
)

// GitHubRepo identifies the repository an event belongs to. FullName is the
// natural key of the stats collection; the remaining fields are recorded as
// seen on the first event and never overwritten afterwards.
type GitHubRepo struct {
	Owner    string `firestore:"repo_owner" json:"repo_owner"`
	FullName string `firestore:"repo_full_name" json:"repo_full_name"`
	Name     string `firestore:"repo_name" json:"repo_name"`
	ID       int64  `firestore:"repo_id" json:"repo_id"`
	URL      string `firestore:"repo_url" json:"repo_url"`
}

func (x *GitHubRepo) Validate() error {
	if x.Owner == "" {
		return goerr.Wrap(types.ErrValidationFailed, "owner is empty")
	}
	if x.Name == "" {
		return goerr.Wrap(types.ErrValidationFailed, "repo name is empty")
	}
	if x.FullName == "" {
		return goerr.Wrap(types.ErrValidationFailed, "repo full name is empty")
	}
	return nil
}
