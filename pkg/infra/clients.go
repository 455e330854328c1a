package infra

import (
	"github.com/secmon-lab/repotally/pkg/domain/interfaces"
)

type Clients struct {
	githubClient interfaces.GitHubClient
	statsRepo    interfaces.StatsRepository
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) GitHub() interfaces.GitHubClient {
	return x.githubClient
}
func (x *Clients) StatsRepository() interfaces.StatsRepository {
	return x.statsRepo
}

func WithGitHub(client interfaces.GitHubClient) Option {
	return func(x *Clients) {
		x.githubClient = client
	}
}

func WithStatsRepository(repo interfaces.StatsRepository) Option {
	return func(x *Clients) {
		x.statsRepo = repo
	}
}
