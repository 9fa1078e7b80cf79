package fetcher

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/statismics/backend/internal/model"
	"github.com/statismics/backend/internal/pkg/cache"
)

// Cached memoizes the answers of another Fetcher. Errors are never cached.
type Cached struct {
	inner Fetcher

	users        *cache.Set
	people       *cache.Set
	repositories *cache.Set
	repoStats    *cache.Set
}

var _ Fetcher = (*Cached)(nil)

func NewCached(inner Fetcher, backend cache.Backend, ttl time.Duration) *Cached {
	return &Cached{
		inner:        inner,
		users:        cache.NewSet(backend, "statismics:users", ttl),
		people:       cache.NewSet(backend, "statismics:people", ttl),
		repositories: cache.NewSet(backend, "statismics:repositories", ttl),
		repoStats:    cache.NewSet(backend, "statismics:repostats", ttl),
	}
}

// GitHub logins and repository names are case insensitive.
func key(parts ...string) string {
	return strings.ToLower(strings.Join(parts, ":"))
}

func (c *Cached) User(ctx context.Context, username string) (*model.UserProfile, error) {
	return cache.GetSet(ctx, c.users, key(username), func(ctx context.Context) (*model.UserProfile, error) {
		return c.inner.User(ctx, username)
	})
}

func (c *Cached) Followers(ctx context.Context, login string, pageSize int) ([]model.Person, error) {
	return cache.GetSet(ctx, c.people, key("followers", login, strconv.Itoa(pageSize)), func(ctx context.Context) ([]model.Person, error) {
		return c.inner.Followers(ctx, login, pageSize)
	})
}

func (c *Cached) Following(ctx context.Context, login string, pageSize int) ([]model.Person, error) {
	return cache.GetSet(ctx, c.people, key("following", login, strconv.Itoa(pageSize)), func(ctx context.Context) ([]model.Person, error) {
		return c.inner.Following(ctx, login, pageSize)
	})
}

func (c *Cached) Repositories(ctx context.Context, login string, pageSize int) ([]model.RepositorySummary, error) {
	return cache.GetSet(ctx, c.repositories, key(login, strconv.Itoa(pageSize)), func(ctx context.Context) ([]model.RepositorySummary, error) {
		return c.inner.Repositories(ctx, login, pageSize)
	})
}

func (c *Cached) Languages(ctx context.Context, owner, repo string) ([]model.LanguageBytes, error) {
	return cache.GetSet(ctx, c.repoStats, key("languages", owner, repo), func(ctx context.Context) ([]model.LanguageBytes, error) {
		return c.inner.Languages(ctx, owner, repo)
	})
}

func (c *Cached) Participation(ctx context.Context, owner, repo string) (*model.Participation, error) {
	return cache.GetSet(ctx, c.repoStats, key("participation", owner, repo), func(ctx context.Context) (*model.Participation, error) {
		return c.inner.Participation(ctx, owner, repo)
	})
}

func (c *Cached) CommitActivity(ctx context.Context, owner, repo string) ([]model.WeeklyCommitActivity, error) {
	return cache.GetSet(ctx, c.repoStats, key("activity", owner, repo), func(ctx context.Context) ([]model.WeeklyCommitActivity, error) {
		return c.inner.CommitActivity(ctx, owner, repo)
	})
}
