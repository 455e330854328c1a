package interfaces

import (
	"context"

	"github.com/secmon-lab/repotally/pkg/domain/model"
	"github.com/secmon-lab/repotally/pkg/domain/types"
)

type UseCase interface {
	RecordEvent(ctx context.Context, ev *model.Event) (types.ActivityCategory, error)
	GetRepoStats(ctx context.Context, fullName string) (*model.RepoStats, error)
	ListRepoStats(ctx context.Context) ([]*model.RepoStats, error)
}
