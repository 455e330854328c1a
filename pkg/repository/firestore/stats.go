package firestore

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/repotally/pkg/domain/model"
	"github.com/secmon-lab/repotally/pkg/repository"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const collectionStats = "repo_stats"

type statsRepository struct {
	client *firestore.Client
}

// ToFirestoreID converts owner and repo to a Firestore-safe document ID.
// Uses colon (:) as separator since GitHub owner names cannot contain colons.
func ToFirestoreID(owner, repo string) (string, error) {
	if owner == "" || repo == "" {
		return "", goerr.Wrap(repository.ErrInvalidInput, "owner or repo is empty",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
		)
	}

	if strings.Contains(owner, ":") || strings.Contains(repo, ":") {
		return "", goerr.Wrap(repository.ErrInvalidInput, "owner or repo contains invalid character ':'",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
		)
	}

	return owner + ":" + repo, nil
}

// ApplyDelta creates the aggregate on first sighting of a repository, or
// applies field-level atomic increments when the document already exists.
// Two concurrent first sightings race on Create; the loser observes
// AlreadyExists and falls through to the increment path, so the collision is
// never surfaced to the caller.
func (r *statsRepository) ApplyDelta(ctx context.Context, delta *model.ActivityDelta) error {
	if err := delta.Repo.Validate(); err != nil {
		return goerr.Wrap(repository.ErrInvalidInput, "invalid repository identity",
			goerr.V("fullName", delta.Repo.FullName),
		)
	}

	if delta.IsZero() {
		return nil
	}

	firestoreID, err := ToFirestoreID(delta.Repo.Owner, delta.Repo.Name)
	if err != nil {
		return err
	}

	docRef := r.client.Collection(collectionStats).Doc(firestoreID)

	now := time.Now().UTC()
	_, err = docRef.Create(ctx, model.NewRepoStats(delta, now))
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.AlreadyExists {
		return goerr.Wrap(err, "failed to create repository stats",
			goerr.V("fullName", delta.Repo.FullName),
		)
	}

	// Document exists (or we lost the first-insert race): increment the
	// non-zero counters in a single atomic update. Identity fields are not
	// touched; first-seen identity wins.
	updates := make([]firestore.Update, 0, 7)
	for _, c := range delta.Counters() {
		if c.Value == 0 {
			continue
		}
		updates = append(updates, firestore.Update{
			Path:  c.Field,
			Value: firestore.Increment(c.Value),
		})
	}
	updates = append(updates, firestore.Update{
		Path:  "updated_at",
		Value: firestore.ServerTimestamp,
	})

	if _, err := docRef.Update(ctx, updates); err != nil {
		return goerr.Wrap(err, "failed to increment repository stats",
			goerr.V("fullName", delta.Repo.FullName),
		)
	}

	return nil
}

func (r *statsRepository) GetRepoStats(ctx context.Context, fullName string) (*model.RepoStats, error) {
	parts := strings.Split(fullName, "/")
	if len(parts) != 2 {
		return nil, goerr.Wrap(repository.ErrInvalidInput, "invalid repository full name",
			goerr.V("fullName", fullName),
		)
	}

	firestoreID, err := ToFirestoreID(parts[0], parts[1])
	if err != nil {
		return nil, err
	}

	docRef := r.client.Collection(collectionStats).Doc(firestoreID)
	snap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(repository.ErrNotFound, "repository stats not found",
				goerr.V("fullName", fullName),
			)
		}
		return nil, goerr.Wrap(err, "failed to get repository stats",
			goerr.V("fullName", fullName),
		)
	}

	var stats model.RepoStats
	if err := snap.DataTo(&stats); err != nil {
		return nil, goerr.Wrap(err, "failed to decode repository stats",
			goerr.V("fullName", fullName),
		)
	}

	return &stats, nil
}

func (r *statsRepository) ListRepoStats(ctx context.Context) ([]*model.RepoStats, error) {
	iter := r.client.Collection(collectionStats).Documents(ctx)
	defer iter.Stop()

	var results []*model.RepoStats
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate repository stats")
		}

		var stats model.RepoStats
		if err := snap.DataTo(&stats); err != nil {
			return nil, goerr.Wrap(err, "failed to decode repository stats")
		}

		results = append(results, &stats)
	}

	return results, nil
}
