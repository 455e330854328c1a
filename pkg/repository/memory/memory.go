package memory

import (
	"github.com/secmon-lab/repotally/pkg/domain/interfaces"
	"github.com/secmon-lab/repotally/pkg/domain/model"
)

// New creates a new in-memory stats repository
func New() interfaces.StatsRepository {
	return &statsRepository{
		stats: make(map[string]*model.RepoStats),
	}
}
