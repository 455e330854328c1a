package ghapi

import (
	"context"

	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/repotally/pkg/domain/interfaces"
	"github.com/secmon-lab/repotally/pkg/domain/model"
	"github.com/secmon-lab/repotally/pkg/domain/types"
	"golang.org/x/oauth2"
)

// Client talks to the GitHub REST API with a personal access token. The
// webhook pipeline does not call out to GitHub; this client exists for
// operations that do (e.g. verifying a repository is reachable).
type Client struct {
	gh *github.Client
}

var _ interfaces.GitHubClient = (*Client)(nil)

func New(token types.GitHubToken) (*Client, error) {
	if token == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "token is empty")
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: string(token)})
	httpClient := oauth2.NewClient(context.Background(), src)

	return &Client{
		gh: github.NewClient(httpClient),
	}, nil
}

func (x *Client) GetRepository(ctx context.Context, owner, name string) (*model.GitHubRepo, error) {
	repo, _, err := x.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get repository",
			goerr.V("owner", owner),
			goerr.V("name", name),
		)
	}

	return &model.GitHubRepo{
		Owner:    repo.GetOwner().GetLogin(),
		FullName: repo.GetFullName(),
		Name:     repo.GetName(),
		ID:       repo.GetID(),
		URL:      repo.GetHTMLURL(),
	}, nil
}
