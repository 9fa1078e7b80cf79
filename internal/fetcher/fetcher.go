// Package fetcher retrieves GitHub users and repositories.
package fetcher

import (
	"context"

	"go.uber.org/fx"

	"github.com/statismics/backend/internal/app/appconfig"
	"github.com/statismics/backend/internal/model"
	"github.com/statismics/backend/internal/pkg/cache"
)

// Fetcher is the source of everything a lookup shows. List operations return
// the first page of at most pageSize entries.
type Fetcher interface {
	User(ctx context.Context, username string) (*model.UserProfile, error)
	Followers(ctx context.Context, login string, pageSize int) ([]model.Person, error)
	Following(ctx context.Context, login string, pageSize int) ([]model.Person, error)
	Repositories(ctx context.Context, login string, pageSize int) ([]model.RepositorySummary, error)

	Languages(ctx context.Context, owner, repo string) ([]model.LanguageBytes, error)
	// Participation and CommitActivity return ErrStatsNotReady when GitHub
	// is still computing the statistics.
	Participation(ctx context.Context, owner, repo string) (*model.Participation, error)
	CommitActivity(ctx context.Context, owner, repo string) ([]model.WeeklyCommitActivity, error)
}

func Module() fx.Option {
	return fx.Module("fetcher",
		fx.Provide(NewGitHub),
		fx.Provide(func(gh *GitHub, backend cache.Backend, conf *appconfig.Config) Fetcher {
			return NewCached(gh, backend, conf.CacheTTL)
		}),
	)
}
