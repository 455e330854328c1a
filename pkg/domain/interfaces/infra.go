package interfaces

import (
	"context"

	"github.com/secmon-lab/repotally/pkg/domain/model"
)

// GitHubClient is the outbound API client to the hosting platform. The
// aggregation pipeline never calls it; it is constructed at startup and held
// for operations that talk back to GitHub.
type GitHubClient interface {
	GetRepository(ctx context.Context, owner, name string) (*model.GitHubRepo, error)
}
