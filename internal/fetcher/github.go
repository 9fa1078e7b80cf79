package fetcher

import (
	"context"
	"sort"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/go-github/v62/github"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gopkg.in/guregu/null.v3"

	"github.com/statismics/backend/internal/app/appconfig"
	"github.com/statismics/backend/internal/model"
	"github.com/statismics/backend/internal/pkg/observability"
)

// GitHub fetches from the GitHub REST API.
type GitHub struct {
	client *github.Client

	statsAttempts uint
	statsDelay    time.Duration
}

var _ Fetcher = (*GitHub)(nil)

func NewGitHub(client *github.Client, conf *appconfig.Config) *GitHub {
	return &GitHub{
		client:        client,
		statsAttempts: max(conf.StatsRetryAttempts, 1),
		statsDelay:    conf.StatsRetryDelay,
	}
}

func record(endpoint string, err error) {
	observability.GitHubRequests.WithLabelValues(endpoint, outcome(err)).Inc()
}

// optional treats an empty profile field like a missing one, so a profile
// reads the same fresh from GitHub and from the cache.
func optional(s string) null.String {
	return null.NewString(s, s != "")
}

func (g *GitHub) User(ctx context.Context, username string) (*model.UserProfile, error) {
	const endpoint = "users.get"
	user, _, err := g.client.Users.Get(ctx, username)
	if err != nil {
		err = classify(endpoint, err, true)
		record(endpoint, err)
		return nil, err
	}
	record(endpoint, nil)

	return &model.UserProfile{
		Login:       user.GetLogin(),
		Name:        optional(user.GetName()),
		Bio:         optional(user.GetBio()),
		Location:    optional(user.GetLocation()),
		AvatarURL:   user.GetAvatarURL(),
		PageURL:     user.GetHTMLURL(),
		Followers:   user.GetFollowers(),
		Following:   user.GetFollowing(),
		PublicRepos: user.GetPublicRepos(),
	}, nil
}

func (g *GitHub) Followers(ctx context.Context, login string, pageSize int) ([]model.Person, error) {
	const endpoint = "users.followers"
	users, _, err := g.client.Users.ListFollowers(ctx, login, &github.ListOptions{PerPage: pageSize})
	if err != nil {
		err = classify(endpoint, err, false)
		record(endpoint, err)
		return nil, err
	}
	record(endpoint, nil)
	return people(users), nil
}

func (g *GitHub) Following(ctx context.Context, login string, pageSize int) ([]model.Person, error) {
	const endpoint = "users.following"
	users, _, err := g.client.Users.ListFollowing(ctx, login, &github.ListOptions{PerPage: pageSize})
	if err != nil {
		err = classify(endpoint, err, false)
		record(endpoint, err)
		return nil, err
	}
	record(endpoint, nil)
	return people(users), nil
}

func people(users []*github.User) []model.Person {
	return lo.Map(users, func(u *github.User, _ int) model.Person {
		return model.Person{
			Login:     u.GetLogin(),
			AvatarURL: u.GetAvatarURL(),
			PageURL:   u.GetHTMLURL(),
		}
	})
}

func (g *GitHub) Repositories(ctx context.Context, login string, pageSize int) ([]model.RepositorySummary, error) {
	const endpoint = "repos.list"
	repos, _, err := g.client.Repositories.ListByUser(ctx, login, &github.RepositoryListByUserOptions{
		ListOptions: github.ListOptions{PerPage: pageSize},
	})
	if err != nil {
		err = classify(endpoint, err, false)
		record(endpoint, err)
		return nil, err
	}
	record(endpoint, nil)

	return lo.Map(repos, func(r *github.Repository, _ int) model.RepositorySummary {
		owner := r.GetOwner().GetLogin()
		if owner == "" {
			owner = login
		}
		return model.RepositorySummary{
			Name:       r.GetName(),
			Owner:      owner,
			URL:        r.GetHTMLURL(),
			Size:       r.GetSize(),
			Forks:      r.GetForksCount(),
			Stars:      r.GetStargazersCount(),
			Watchers:   r.GetWatchersCount(),
			OpenIssues: r.GetOpenIssuesCount(),
		}
	}), nil
}

// Languages lists the languages of a repository, most bytes first.
func (g *GitHub) Languages(ctx context.Context, owner, repo string) ([]model.LanguageBytes, error) {
	const endpoint = "repos.languages"
	languages, _, err := g.client.Repositories.ListLanguages(ctx, owner, repo)
	if err != nil {
		err = classify(endpoint, err, false)
		record(endpoint, err)
		return nil, err
	}
	record(endpoint, nil)

	result := make([]model.LanguageBytes, 0, len(languages))
	for lang, bytes := range languages {
		result = append(result, model.LanguageBytes{Language: lang, Bytes: int64(bytes)})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Bytes != result[j].Bytes {
			return result[i].Bytes > result[j].Bytes
		}
		return result[i].Language < result[j].Language
	})
	return result, nil
}

func (g *GitHub) Participation(ctx context.Context, owner, repo string) (*model.Participation, error) {
	p, err := stats(ctx, g, "repos.participation", func() (*github.RepositoryParticipation, *github.Response, error) {
		return g.client.Repositories.ListParticipation(ctx, owner, repo)
	})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return &model.Participation{All: []int{}, Owner: []int{}}, nil
	}
	return &model.Participation{
		All:   lo.Ternary(p.All != nil, p.All, []int{}),
		Owner: lo.Ternary(p.Owner != nil, p.Owner, []int{}),
	}, nil
}

func (g *GitHub) CommitActivity(ctx context.Context, owner, repo string) ([]model.WeeklyCommitActivity, error) {
	weeks, err := stats(ctx, g, "repos.commit_activity", func() ([]*github.WeeklyCommitActivity, *github.Response, error) {
		return g.client.Repositories.ListCommitActivity(ctx, owner, repo)
	})
	if err != nil {
		return nil, err
	}

	return lo.Map(weeks, func(w *github.WeeklyCommitActivity, _ int) model.WeeklyCommitActivity {
		activity := model.WeeklyCommitActivity{
			Week:  w.GetWeek().Time.UTC(),
			Total: w.GetTotal(),
		}
		copy(activity.Days[:], w.Days)
		return activity
	}), nil
}

// stats calls a statistics endpoint, retrying while GitHub answers with 202
// Accepted because it is still computing the statistics.
func stats[T any](ctx context.Context, g *GitHub, endpoint string, call func() (T, *github.Response, error)) (T, error) {
	var result T
	err := retry.Do(
		func() error {
			v, _, err := call()
			if err != nil {
				return err
			}
			result = v
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(g.statsAttempts),
		retry.Delay(g.statsDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isAccepted),
		retry.OnRetry(func(n uint, err error) {
			observability.StatsRetries.WithLabelValues(endpoint).Inc()
			log.Trace().
				Str("evt.name", "fetcher.stats.retry").
				Str("endpoint", endpoint).
				Uint("attempt", n+1).
				Msg("statistics not ready, retrying")
		}),
	)
	if err != nil {
		if isAccepted(err) {
			err = errors.Wrap(ErrStatsNotReady, endpoint)
		} else if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		} else {
			err = classify(endpoint, err, false)
		}
		record(endpoint, err)
		var zero T
		return zero, err
	}
	record(endpoint, nil)
	return result, nil
}

func isAccepted(err error) bool {
	var accepted *github.AcceptedError
	return errors.As(err, &accepted)
}
