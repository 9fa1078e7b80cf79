package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx/fxtest"

	"github.com/statismics/backend/internal/app/appconfig"
	"github.com/statismics/backend/internal/fetcher"
	"github.com/statismics/backend/internal/model"
	"github.com/statismics/backend/internal/store"
)

type fakeUser struct {
	profile   *model.UserProfile
	followers []model.Person
	following []model.Person
	repos     []model.RepositorySummary
	languages map[string][]model.LanguageBytes
	// statsPending lists repositories whose statistics are not computed yet
	statsPending map[string]bool
}

// fakeFetcher serves canned users. A user mapped in gates blocks in User
// until its channel is closed or the context is done.
type fakeFetcher struct {
	mu    sync.Mutex
	users map[string]*fakeUser
	gates map[string]chan struct{}
	errs  map[string]error
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		users: map[string]*fakeUser{},
		gates: map[string]chan struct{}{},
		errs:  map[string]error{},
	}
}

func (f *fakeFetcher) user(login string) *fakeUser {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[login]
}

func (f *fakeFetcher) User(ctx context.Context, username string) (*model.UserProfile, error) {
	f.mu.Lock()
	gate, gated := f.gates[username]
	err := f.errs[username]
	f.mu.Unlock()

	if gated {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	u := f.user(username)
	if u == nil {
		return nil, fetcher.ErrUserNotFound
	}
	return u.profile, nil
}

func (f *fakeFetcher) Followers(_ context.Context, login string, _ int) ([]model.Person, error) {
	return f.user(login).followers, nil
}

func (f *fakeFetcher) Following(_ context.Context, login string, _ int) ([]model.Person, error) {
	return f.user(login).following, nil
}

func (f *fakeFetcher) Repositories(_ context.Context, login string, _ int) ([]model.RepositorySummary, error) {
	return append([]model.RepositorySummary(nil), f.user(login).repos...), nil
}

func (f *fakeFetcher) Languages(_ context.Context, owner, repo string) ([]model.LanguageBytes, error) {
	return f.user(owner).languages[repo], nil
}

func (f *fakeFetcher) Participation(_ context.Context, owner, repo string) (*model.Participation, error) {
	if f.user(owner).statsPending[repo] {
		return nil, fetcher.ErrStatsNotReady
	}
	return &model.Participation{All: []int{1, 2}, Owner: []int{1, 0}}, nil
}

func (f *fakeFetcher) CommitActivity(_ context.Context, owner, repo string) ([]model.WeeklyCommitActivity, error) {
	if f.user(owner).statsPending[repo] {
		return nil, fetcher.ErrStatsNotReady
	}
	week := model.WeeklyCommitActivity{
		Week:  time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC),
		Total: 3,
		Days:  [model.DaysPerWeek]int{1, 2},
	}
	return []model.WeeklyCommitActivity{week}, nil
}

func octocat() *fakeUser {
	return &fakeUser{
		profile:   &model.UserProfile{Login: "octocat", PublicRepos: 2},
		followers: []model.Person{{Login: "alice"}},
		following: []model.Person{{Login: "bob"}},
		repos: []model.RepositorySummary{
			{Name: "A", Owner: "octocat", Forks: 2},
			{Name: "B", Owner: "octocat"},
		},
		languages: map[string][]model.LanguageBytes{
			"A": {{Language: "Go", Bytes: 100}},
			"B": {{Language: "Go", Bytes: 50}, {Language: "Rust", Bytes: 200}},
		},
		statsPending: map[string]bool{},
	}
}

func newTestLookup(t *testing.T, f fetcher.Fetcher) (*Lookup, *store.Store) {
	t.Helper()

	lc := fxtest.NewLifecycle(t)
	st := store.New()
	s := NewLookup(f, st, NewCharts(), trace.NewNoopTracerProvider(), &appconfig.Config{
		ConfigSpec: appconfig.ConfigSpec{
			PageSize:         50,
			FetchConcurrency: 2,
			LookupTimeout:    time.Minute,
		},
	}, lc)
	lc.RequireStart()
	t.Cleanup(lc.RequireStop)

	return s, st
}
