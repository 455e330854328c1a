package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/repotally/pkg/domain/interfaces"
	"github.com/secmon-lab/repotally/pkg/domain/model"
	"github.com/secmon-lab/repotally/pkg/domain/types"
	"github.com/secmon-lab/repotally/pkg/utils/errutil"
	"github.com/secmon-lab/repotally/pkg/utils/logging"
)

// handleGitHubWebhook runs the full pipeline for one delivery: signature
// verification, payload decoding, classification and counter update. Each
// stage maps to its own status code so the sender can tell a rejected
// delivery from a local fault.
func handleGitHubWebhook(uc interfaces.UseCase, secret types.GitHubWebhookSecret, w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payload, err := github.ValidatePayload(r, []byte(secret))
	if err != nil {
		logging.From(ctx).Warn("rejected webhook delivery",
			slog.String("remote_addr", r.RemoteAddr),
			slog.Any("error", err),
		)
		safeWrite(w, http.StatusUnauthorized, []byte(`{"error":"invalid signature"}`))
		return
	}

	kind := github.WebHookType(r)
	raw, err := github.ParseWebHook(kind, payload)
	if err != nil {
		logging.From(ctx).Warn("failed to parse webhook payload",
			slog.String("kind", kind),
			slog.Any("error", err),
		)
		safeWrite(w, http.StatusBadRequest, []byte(`{"error":"malformed payload"}`))
		return
	}

	ev, err := githubEventToModel(kind, raw)
	if err != nil {
		errutil.HandleError(ctx, "malformed webhook payload", err)
		safeWrite(w, http.StatusBadRequest, []byte(`{"error":"malformed payload"}`))
		return
	}
	if ev == nil {
		safeWrite(w, http.StatusOK, []byte(`{"status":"ok","category":"ignored"}`))
		return
	}

	category, err := uc.RecordEvent(ctx, ev)
	if err != nil {
		// A payload that decodes but lacks repository identity is the
		// sender's fault, not ours.
		if errors.Is(err, types.ErrMalformedPayload) {
			logging.From(ctx).Warn("rejected malformed webhook payload",
				slog.String("kind", kind),
				slog.Any("error", err),
			)
			safeWrite(w, http.StatusBadRequest, []byte(`{"error":"malformed payload"}`))
			return
		}

		errutil.HandleError(ctx, "fail to record webhook event", err)
		safeWrite(w, http.StatusInternalServerError, []byte(`{"error":"internal error"}`))
		return
	}

	safeWrite(w, http.StatusOK, []byte(fmt.Sprintf(`{"status":"ok","category":"%s"}`, category)))
}

// githubEventToModel reduces a decoded platform event to the canonical form
// the pipeline consumes. Event kinds the service does not track return
// (nil, nil); a tracked kind missing its repository section is a malformed
// payload.
func githubEventToModel(kind string, event interface{}) (*model.Event, error) {
	switch ev := event.(type) {
	case *github.PushEvent:
		repo := ev.GetRepo()
		if repo == nil {
			return nil, goerr.Wrap(types.ErrMalformedPayload, "push event without repository",
				goerr.V("kind", kind),
			)
		}

		commits := make([]model.PushCommit, 0, len(ev.Commits))
		for _, c := range ev.Commits {
			commits = append(commits, model.PushCommit{
				SHA:      c.GetID(),
				Distinct: c.GetDistinct(),
			})
		}

		return &model.Event{
			Kind: kind,
			Repo: model.GitHubRepo{
				Owner:    repo.GetOwner().GetLogin(),
				FullName: repo.GetFullName(),
				Name:     repo.GetName(),
				ID:       repo.GetID(),
				URL:      repo.GetHTMLURL(),
			},
			Commits: commits,
		}, nil

	case *github.IssuesEvent:
		repo := ev.GetRepo()
		if repo == nil {
			return nil, goerr.Wrap(types.ErrMalformedPayload, "issues event without repository",
				goerr.V("kind", kind),
				goerr.V("action", ev.GetAction()),
			)
		}

		return &model.Event{
			Kind:   kind,
			Action: ev.GetAction(),
			Repo:   repositoryToModel(repo),
		}, nil

	case *github.PullRequestEvent:
		repo := ev.GetRepo()
		if repo == nil {
			return nil, goerr.Wrap(types.ErrMalformedPayload, "pull request event without repository",
				goerr.V("kind", kind),
				goerr.V("action", ev.GetAction()),
			)
		}

		return &model.Event{
			Kind:   kind,
			Action: ev.GetAction(),
			Merged: ev.GetPullRequest().GetMerged(),
			Repo:   repositoryToModel(repo),
		}, nil

	default:
		logging.Default().Debug("untracked event kind", slog.String("kind", kind))
		return nil, nil
	}
}

func repositoryToModel(repo *github.Repository) model.GitHubRepo {
	return model.GitHubRepo{
		Owner:    repo.GetOwner().GetLogin(),
		FullName: repo.GetFullName(),
		Name:     repo.GetName(),
		ID:       repo.GetID(),
		URL:      repo.GetHTMLURL(),
	}
}

// Test helpers - exported for testing
func GithubEventToModelForTest(kind string, event interface{}) (*model.Event, error) {
	return githubEventToModel(kind, event)
}
