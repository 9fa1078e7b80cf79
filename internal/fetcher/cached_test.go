package fetcher

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statismics/backend/internal/model"
	"github.com/statismics/backend/internal/pkg/cache"
)

type countingFetcher struct {
	calls map[string]int
	err   error
}

func (f *countingFetcher) hit(name string) error {
	f.calls[name]++
	return f.err
}

func (f *countingFetcher) User(_ context.Context, username string) (*model.UserProfile, error) {
	if err := f.hit("user"); err != nil {
		return nil, err
	}
	return &model.UserProfile{Login: username}, nil
}

func (f *countingFetcher) Followers(_ context.Context, login string, _ int) ([]model.Person, error) {
	return []model.Person{{Login: "follower-of-" + login}}, f.hit("followers")
}

func (f *countingFetcher) Following(_ context.Context, login string, _ int) ([]model.Person, error) {
	return []model.Person{{Login: "followed-by-" + login}}, f.hit("following")
}

func (f *countingFetcher) Repositories(_ context.Context, login string, _ int) ([]model.RepositorySummary, error) {
	return []model.RepositorySummary{{Name: "repo", Owner: login, Stars: 3}}, f.hit("repositories")
}

func (f *countingFetcher) Languages(context.Context, string, string) ([]model.LanguageBytes, error) {
	return []model.LanguageBytes{{Language: "Go", Bytes: 10}}, f.hit("languages")
}

func (f *countingFetcher) Participation(context.Context, string, string) (*model.Participation, error) {
	return &model.Participation{All: []int{1}}, f.hit("participation")
}

func (f *countingFetcher) CommitActivity(context.Context, string, string) ([]model.WeeklyCommitActivity, error) {
	return []model.WeeklyCommitActivity{{Total: 1}}, f.hit("activity")
}

func TestCachedMemoizes(t *testing.T) {
	ctx := context.Background()
	inner := &countingFetcher{calls: map[string]int{}}
	c := NewCached(inner, cache.NewMemory(), time.Minute)

	for i := 0; i < 2; i++ {
		user, err := c.User(ctx, "Octocat")
		require.NoError(t, err)
		assert.Equal(t, "Octocat", user.Login)

		_, err = c.User(ctx, "octocat")
		require.NoError(t, err)

		repos, err := c.Repositories(ctx, "octocat", 50)
		require.NoError(t, err)
		assert.Equal(t, 3, repos[0].Stars)

		followers, err := c.Followers(ctx, "octocat", 50)
		require.NoError(t, err)
		assert.Equal(t, "follower-of-octocat", followers[0].Login)

		following, err := c.Following(ctx, "octocat", 50)
		require.NoError(t, err)
		assert.Equal(t, "followed-by-octocat", following[0].Login)

		_, err = c.Languages(ctx, "octocat", "repo")
		require.NoError(t, err)
		p, err := c.Participation(ctx, "octocat", "repo")
		require.NoError(t, err)
		assert.Equal(t, []int{1}, p.All)
	}

	assert.Equal(t, map[string]int{
		"user":          1,
		"repositories":  1,
		"followers":     1,
		"following":     1,
		"languages":     1,
		"participation": 1,
	}, inner.calls)
}

func TestCachedDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	inner := &countingFetcher{calls: map[string]int{}, err: ErrUserNotFound}
	c := NewCached(inner, cache.NewMemory(), time.Minute)

	_, err := c.User(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)

	inner.err = nil
	user, err := c.User(ctx, "ghost")
	require.NoError(t, err)
	assert.Equal(t, "ghost", user.Login)
	assert.Equal(t, 2, inner.calls["user"])
}

func TestCachedStatsNotReadyPassesThrough(t *testing.T) {
	ctx := context.Background()
	inner := &countingFetcher{calls: map[string]int{}, err: errors.Wrap(ErrStatsNotReady, "repos.commit_activity")}
	c := NewCached(inner, cache.NewMemory(), time.Minute)

	_, err := c.CommitActivity(ctx, "octocat", "repo")
	assert.ErrorIs(t, err, ErrStatsNotReady)
	_, err = c.CommitActivity(ctx, "octocat", "repo")
	assert.ErrorIs(t, err, ErrStatsNotReady)
	assert.Equal(t, 2, inner.calls["activity"])
}
