package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/secmon-lab/repotally/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func statsCommand() *cli.Command {
	var (
		repoFullName string
		firestoreCfg config.Firestore
	)
	statsFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "repo",
			Usage:       "Repository full name (owner/name); all repositories when omitted",
			Aliases:     []string{"r"},
			Sources:     cli.EnvVars("REPOTALLY_REPO"),
			Destination: &repoFullName,
		},
	}

	return &cli.Command{
		Name:  "stats",
		Usage: "Print collected repository activity counters as JSON",
		Flags: slice.Flatten(
			statsFlags,
			firestoreCfg.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			if !firestoreCfg.Enabled() {
				return goerr.New("firestore project ID is required for stats")
			}

			repo, err := firestoreCfg.NewRepository(ctx)
			if err != nil {
				return err
			}

			var out any
			if repoFullName != "" {
				stats, err := repo.GetRepoStats(ctx, repoFullName)
				if err != nil {
					return err
				}
				out = stats
			} else {
				list, err := repo.ListRepoStats(ctx)
				if err != nil {
					return err
				}
				out = list
			}

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(out); err != nil {
				return goerr.Wrap(err, "failed to encode stats")
			}

			return nil
		},
	}
}
