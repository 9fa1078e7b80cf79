package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statismics/backend/internal/app/appconfig"
	"github.com/statismics/backend/internal/model"
	"github.com/statismics/backend/internal/pkg/cache"
)

func setup(t *testing.T) (*GitHub, *http.ServeMux) {
	t.Helper()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := github.NewClient(nil)
	u, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	client.BaseURL = u

	return NewGitHub(client, &appconfig.Config{
		ConfigSpec: appconfig.ConfigSpec{
			StatsRetryAttempts: 3,
			StatsRetryDelay:    time.Millisecond,
		},
	}), mux
}

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}
}

func TestGitHubUser(t *testing.T) {
	gh, mux := setup(t)
	mux.HandleFunc("/users/octocat", respond(`{
		"login": "octocat",
		"name": "The Octocat",
		"location": "San Francisco",
		"avatar_url": "https://avatars.example/octocat",
		"html_url": "https://github.com/octocat",
		"followers": 20,
		"following": 9,
		"public_repos": 8
	}`))

	user, err := gh.User(context.Background(), "octocat")
	require.NoError(t, err)

	assert.Equal(t, "octocat", user.Login)
	assert.Equal(t, "The Octocat", user.DisplayName())
	assert.True(t, user.Location.Valid)
	assert.False(t, user.Bio.Valid)
	assert.Equal(t, "https://github.com/octocat", user.PageURL)
	assert.Equal(t, 20, user.Followers)
	assert.Equal(t, 9, user.Following)
	assert.Equal(t, 8, user.PublicRepos)
}

func TestGitHubUserEmptyFieldsSurviveCache(t *testing.T) {
	gh, mux := setup(t)
	mux.HandleFunc("/users/octocat", respond(`{
		"login": "octocat",
		"name": "",
		"bio": "",
		"location": "Berlin"
	}`))
	cached := NewCached(gh, cache.NewMemory(), time.Minute)

	fresh, err := cached.User(context.Background(), "octocat")
	require.NoError(t, err)
	assert.False(t, fresh.Name.Valid)
	assert.False(t, fresh.Bio.Valid)
	assert.Equal(t, "Berlin", fresh.Location.String)

	warm, err := cached.User(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, fresh, warm)
}

func TestGitHubUserNotFound(t *testing.T) {
	gh, mux := setup(t)
	mux.HandleFunc("/users/ghost", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	})

	_, err := gh.User(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGitHubHTTPError(t *testing.T) {
	gh, mux := setup(t)
	mux.HandleFunc("/users/octocat/followers", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"message": "Server Error"}`)
	})

	_, err := gh.Followers(context.Background(), "octocat", 50)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, "Server Error", httpErr.Message)
}

func TestGitHubFollowersFirstPage(t *testing.T) {
	gh, mux := setup(t)
	mux.HandleFunc("/users/octocat/followers", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "50", r.URL.Query().Get("per_page"))
		respond(`[
			{"login": "alice", "avatar_url": "a.png", "html_url": "https://github.com/alice"},
			{"login": "bob", "avatar_url": "b.png", "html_url": "https://github.com/bob"}
		]`)(w, r)
	})

	people, err := gh.Followers(context.Background(), "octocat", 50)
	require.NoError(t, err)
	assert.Equal(t, []model.Person{
		{Login: "alice", AvatarURL: "a.png", PageURL: "https://github.com/alice"},
		{Login: "bob", AvatarURL: "b.png", PageURL: "https://github.com/bob"},
	}, people)
}

func TestGitHubRepositories(t *testing.T) {
	gh, mux := setup(t)
	mux.HandleFunc("/users/octocat/repos", respond(`[{
		"name": "hello-world",
		"owner": {"login": "octocat"},
		"html_url": "https://github.com/octocat/hello-world",
		"size": 108,
		"forks_count": 9,
		"stargazers_count": 80,
		"watchers_count": 80,
		"open_issues_count": 2
	}]`))

	repos, err := gh.Repositories(context.Background(), "octocat", 50)
	require.NoError(t, err)
	assert.Equal(t, []model.RepositorySummary{{
		Name:       "hello-world",
		Owner:      "octocat",
		URL:        "https://github.com/octocat/hello-world",
		Size:       108,
		Forks:      9,
		Stars:      80,
		Watchers:   80,
		OpenIssues: 2,
	}}, repos)
}

func TestGitHubLanguagesSorted(t *testing.T) {
	gh, mux := setup(t)
	mux.HandleFunc("/repos/octocat/hello/languages", respond(`{"Shell": 20, "Go": 1000, "Awk": 20}`))

	langs, err := gh.Languages(context.Background(), "octocat", "hello")
	require.NoError(t, err)
	assert.Equal(t, []model.LanguageBytes{
		{Language: "Go", Bytes: 1000},
		{Language: "Awk", Bytes: 20},
		{Language: "Shell", Bytes: 20},
	}, langs)
}

func TestGitHubStatsRetryAccepted(t *testing.T) {
	gh, mux := setup(t)

	var calls atomic.Int32
	mux.HandleFunc("/repos/octocat/hello/stats/participation", func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusAccepted)
			fmt.Fprint(w, `{}`)
			return
		}
		respond(`{"all": [1, 2, 3], "owner": [0, 1, 0]}`)(w, r)
	})

	p, err := gh.Participation(context.Background(), "octocat", "hello")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, &model.Participation{All: []int{1, 2, 3}, Owner: []int{0, 1, 0}}, p)
}

func TestGitHubStatsNotReady(t *testing.T) {
	gh, mux := setup(t)

	var calls atomic.Int32
	mux.HandleFunc("/repos/octocat/hello/stats/commit_activity", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusAccepted)
		fmt.Fprint(w, `{}`)
	})

	_, err := gh.CommitActivity(context.Background(), "octocat", "hello")
	assert.ErrorIs(t, err, ErrStatsNotReady)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGitHubCommitActivity(t *testing.T) {
	gh, mux := setup(t)
	mux.HandleFunc("/repos/octocat/hello/stats/commit_activity", respond(`[
		{"days": [0, 3, 26, 20, 39, 1, 0], "total": 89, "week": 1336280400}
	]`))

	weeks, err := gh.CommitActivity(context.Background(), "octocat", "hello")
	require.NoError(t, err)
	require.Len(t, weeks, 1)
	assert.Equal(t, 89, weeks[0].Total)
	assert.Equal(t, [model.DaysPerWeek]int{0, 3, 26, 20, 39, 1, 0}, weeks[0].Days)
	assert.True(t, weeks[0].Week.Equal(time.Unix(1336280400, 0)))
	assert.Equal(t, time.UTC, weeks[0].Week.Location())
}
