package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"

	"github.com/statismics/backend/internal/aggregator"
	"github.com/statismics/backend/internal/app/appconfig"
	"github.com/statismics/backend/internal/fetcher"
	"github.com/statismics/backend/internal/model"
	"github.com/statismics/backend/internal/pkg/async"
	"github.com/statismics/backend/internal/pkg/observability"
	"github.com/statismics/backend/internal/store"
)

// Lookup loads a GitHub user and everything derived from it.
//
// Only one lookup is in flight at a time: submitting a lookup cancels the one
// before it, and results of a cancelled lookup are never published.
type Lookup struct {
	fetcher fetcher.Fetcher
	store   *store.Store
	charts  *Charts
	tracer  trace.Tracer

	pageSize    int
	concurrency int
	timeout     time.Duration
	now         func() time.Time

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	inflight   sync.WaitGroup
}

func NewLookup(f fetcher.Fetcher, st *store.Store, charts *Charts, tp trace.TracerProvider, conf *appconfig.Config, lc fx.Lifecycle) *Lookup {
	s := &Lookup{
		fetcher:     f,
		store:       st,
		charts:      charts,
		tracer:      tp.Tracer("service.lookup"),
		pageSize:    conf.PageSize,
		concurrency: conf.FetchConcurrency,
		timeout:     conf.LookupTimeout,
		now:         time.Now,
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			s.Stop()
			return nil
		},
	})
	return s
}

// Submit starts a lookup of username in the background and returns the
// loading snapshot it published. The loading snapshot keeps the data of the
// previous lookup on display until the new data arrives.
func (s *Lookup) Submit(username string) *model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	generation := s.generation

	var ctx context.Context
	if s.timeout > 0 {
		ctx, s.cancel = context.WithTimeout(context.Background(), s.timeout)
	} else {
		ctx, s.cancel = context.WithCancel(context.Background())
	}

	prior := s.store.Current()
	loading := prior.Clone()
	loading.Query = username
	loading.Status = model.StatusLoading
	loading.Loading = model.LoadingFlags(true)
	loading.Notice = nil
	loading.StartedAt = s.now()
	loading.UpdatedAt = time.Time{}
	published := s.store.Replace(loading)

	log.Info().
		Str("evt.name", "lookup.submitted").
		Str("username", username).
		Uint64("generation", generation).
		Msg("lookup submitted")

	s.inflight.Add(1)
	go s.background(ctx, s.cancel, generation, username, loading)

	return published
}

func (s *Lookup) background(ctx context.Context, cancel context.CancelFunc, generation uint64, username string, loading *model.Snapshot) {
	defer s.inflight.Done()
	defer cancel()

	start := time.Now()
	result, err := s.Run(ctx, username)

	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation || errors.Is(err, context.Canceled) {
		observability.LookupDuration.WithLabelValues("superseded").Observe(time.Since(start).Seconds())
		log.Debug().
			Str("evt.name", "lookup.superseded").
			Str("username", username).
			Uint64("generation", generation).
			Msg("discarding result of superseded lookup")
		return
	}
	s.cancel = nil

	if err != nil {
		observability.LookupDuration.WithLabelValues("failed").Observe(time.Since(start).Seconds())
		notice := NoticeFor(username, err)
		log.Warn().
			Err(err).
			Str("evt.name", "lookup.failed").
			Str("username", username).
			Str("notice", notice.Title).
			Msg("lookup failed")

		failed := loading.Clone()
		failed.Status = model.StatusFailed
		failed.Loading = model.LoadingFlags(false)
		failed.Notice = notice
		failed.UpdatedAt = time.Time{}
		s.store.Replace(failed)
		return
	}

	observability.LookupDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	log.Info().
		Str("evt.name", "lookup.completed").
		Str("username", username).
		Int("repositories", len(result.Repositories)).
		Dur("duration", time.Since(start)).
		Msg("lookup completed")

	result.StartedAt = loading.StartedAt
	s.store.Replace(result)
}

// Stop cancels the lookup in flight and waits for it to return.
func (s *Lookup) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generation++
	s.mu.Unlock()

	s.inflight.Wait()
}

// Run looks up username and returns the complete, unpublished snapshot. It
// fails as a whole: any error of the profile, the lists or the repositories
// is returned and nothing is aggregated.
func (s *Lookup) Run(ctx context.Context, username string) (_ *model.Snapshot, err error) {
	ctx, span := s.tracer.Start(ctx, "lookup", trace.WithAttributes(attribute.String("github.user", username)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	started := s.now()

	profile, err := s.fetcher.User(ctx, username)
	if err != nil {
		return nil, err
	}
	login := profile.Login

	var (
		followers, following []model.Person
		repos                []model.RepositorySummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		followers, err = s.fetcher.Followers(gctx, login, s.pageSize)
		return err
	})
	g.Go(func() (err error) {
		following, err = s.fetcher.Following(gctx, login, s.pageSize)
		return err
	})
	g.Go(func() (err error) {
		repos, err = s.fetcher.Repositories(gctx, login, s.pageSize)
		if err != nil {
			return err
		}
		repos, err = async.Map(gctx, repos, s.concurrency, s.enrich)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summaries := make([]*model.RepositorySummary, len(repos))
	for i := range repos {
		summaries[i] = &repos[i]
	}
	stats := aggregator.Aggregate(summaries)

	return &model.Snapshot{
		Query:        username,
		Status:       model.StatusReady,
		Loading:      model.LoadingFlags(false),
		Profile:      profile,
		Followers:    nonNil(followers),
		Following:    nonNil(following),
		Repositories: nonNil(repos),
		Statistics:   stats,
		Charts:       s.charts.Build(repos, stats, started),
		StartedAt:    started,
	}, nil
}

// enrich adds languages and commit statistics to repo. Statistics GitHub has
// not computed yet are left empty.
func (s *Lookup) enrich(ctx context.Context, repo model.RepositorySummary) (model.RepositorySummary, error) {
	ctx, span := s.tracer.Start(ctx, "lookup.repository", trace.WithAttributes(attribute.String("github.repo", repo.Owner+"/"+repo.Name)))
	defer span.End()

	languages, err := s.fetcher.Languages(ctx, repo.Owner, repo.Name)
	if err != nil {
		return repo, err
	}
	repo.Languages = languages

	participation, err := s.fetcher.Participation(ctx, repo.Owner, repo.Name)
	if err != nil && !errors.Is(err, fetcher.ErrStatsNotReady) {
		return repo, err
	}
	repo.Participation = participation

	activity, err := s.fetcher.CommitActivity(ctx, repo.Owner, repo.Name)
	if err != nil && !errors.Is(err, fetcher.ErrStatsNotReady) {
		return repo, err
	}
	repo.CommitActivity = activity

	return repo, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// NoticeFor is the notification shown for a failed lookup of username.
func NoticeFor(username string, err error) *model.Notice {
	var httpErr *fetcher.HTTPError
	switch {
	case errors.Is(err, fetcher.ErrUserNotFound):
		return &model.Notice{
			Class:   "warning",
			Title:   "User not found",
			Message: fmt.Sprintf("GitHub user %q does not exist", username),
		}
	case errors.As(err, &httpErr):
		return &model.Notice{
			Class:   "error",
			Title:   "Http Exception",
			Message: fmt.Sprintf("GitHub answered %d: %s", httpErr.StatusCode, httpErr.Message),
		}
	case errors.Is(err, context.DeadlineExceeded):
		return &model.Notice{
			Class:   "error",
			Title:   "User load error",
			Message: fmt.Sprintf("loading %s took too long", username),
		}
	default:
		return &model.Notice{
			Class:   "error",
			Title:   "User load error",
			Message: err.Error(),
		}
	}
}
