package config

import (
	"log/slog"

	"github.com/secmon-lab/repotally/pkg/domain/types"
	"github.com/secmon-lab/repotally/pkg/infra/ghapi"
	"github.com/urfave/cli/v3"
)

type GitHub struct {
	token  types.GitHubToken         `masq:"secret"`
	secret types.GitHubWebhookSecret `masq:"secret"`
}

func (x *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub personal access token for repository lookups (optional)",
			Category:    "GitHub",
			Destination: (*string)(&x.token),
			Sources:     cli.EnvVars("REPOTALLY_GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-webhook-secret",
			Usage:       "GitHub webhook secret for signature verification",
			Category:    "GitHub",
			Destination: (*string)(&x.secret),
			Sources:     cli.EnvVars("REPOTALLY_GITHUB_WEBHOOK_SECRET"),
			Required:    true,
		},
	}
}

func (x GitHub) NewClient() (*ghapi.Client, error) {
	return ghapi.New(x.token)
}

func (x GitHub) HasToken() bool {
	return x.token != ""
}

func (x GitHub) Secret() types.GitHubWebhookSecret {
	return x.secret
}

func (x GitHub) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("token.len", len(x.token)),
		slog.Int("secret.len", len(x.secret)),
	)
}
