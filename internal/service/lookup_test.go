package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statismics/backend/internal/aggregator"
	"github.com/statismics/backend/internal/fetcher"
	"github.com/statismics/backend/internal/model"
)

// waitFor returns the first published snapshot matching cond.
func waitFor(t *testing.T, ch <-chan *model.Snapshot, cond func(*model.Snapshot) bool) *model.Snapshot {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case snap := <-ch:
			if cond(snap) {
				return snap
			}
		case <-timeout:
			t.Fatal("timed out waiting for snapshot")
			return nil
		}
	}
}

func settled(snap *model.Snapshot) bool {
	return snap.Status == model.StatusReady || snap.Status == model.StatusFailed
}

func TestLookupRun(t *testing.T) {
	f := newFakeFetcher()
	f.users["octocat"] = octocat()
	s, _ := newTestLookup(t, f)

	snap, err := s.Run(context.Background(), "octocat")
	require.NoError(t, err)

	assert.Equal(t, model.StatusReady, snap.Status)
	assert.Equal(t, "octocat", snap.Profile.Login)
	assert.Equal(t, []model.Person{{Login: "alice"}}, snap.Followers)
	assert.Equal(t, []model.Person{{Login: "bob"}}, snap.Following)
	require.Len(t, snap.Repositories, 2)
	assert.Equal(t, "A", snap.Repositories[0].Name)
	assert.Equal(t, "B", snap.Repositories[1].Name)
	for _, loading := range snap.Loading {
		assert.False(t, loading)
	}

	assert.Equal(t, map[string]int64{"Go": 150, "Rust": 200}, snap.Statistics.LanguageBytes.Map())
	assert.Equal(t, map[string]int64{"A": 2}, snap.Statistics.PerRepository[aggregator.Forks.Key].Map())
	assert.Equal(t, []int{2, 4}, snap.Statistics.WeeklyCommits.All[:2])

	for _, chart := range snap.Charts {
		assert.NoError(t, chart.Data.Validate(), "chart %s", chart.ID)
	}
	languages, ok := snap.Chart(ChartLanguages)
	require.True(t, ok)
	assert.Equal(t, []string{"Go", "Rust"}, languages.Data.Labels)
}

func TestLookupRunStatsNotReady(t *testing.T) {
	f := newFakeFetcher()
	u := octocat()
	u.statsPending["A"] = true
	f.users["octocat"] = u
	s, _ := newTestLookup(t, f)

	snap, err := s.Run(context.Background(), "octocat")
	require.NoError(t, err)

	assert.Nil(t, snap.Repositories[0].Participation)
	assert.Empty(t, snap.Repositories[0].CommitActivity)
	assert.NotNil(t, snap.Repositories[1].Participation)
	require.Len(t, snap.Statistics.CommitsPerRepo, 1)
	assert.Equal(t, "B", snap.Statistics.CommitsPerRepo[0].Label)
}

func TestLookupSubmitPublishes(t *testing.T) {
	f := newFakeFetcher()
	f.users["octocat"] = octocat()
	s, st := newTestLookup(t, f)

	ch := make(chan *model.Snapshot, 16)
	defer st.Subscribe(func(snap *model.Snapshot) { ch <- snap })()

	loading := s.Submit("octocat")
	assert.Equal(t, model.StatusLoading, loading.Status)
	assert.Equal(t, "octocat", loading.Query)
	for _, region := range model.Regions {
		assert.True(t, loading.Loading[region], "region %s", region)
	}

	ready := waitFor(t, ch, settled)
	assert.Equal(t, model.StatusReady, ready.Status)
	assert.Greater(t, ready.Version, loading.Version)
	assert.Equal(t, loading.StartedAt, ready.StartedAt)
	assert.Same(t, ready, st.Current())
}

func TestLookupFailureRestoresPriorData(t *testing.T) {
	f := newFakeFetcher()
	f.users["octocat"] = octocat()
	f.errs["flaky"] = &fetcher.HTTPError{Endpoint: "users.get", StatusCode: http.StatusBadGateway, Message: "Bad Gateway"}
	s, st := newTestLookup(t, f)

	ch := make(chan *model.Snapshot, 16)
	defer st.Subscribe(func(snap *model.Snapshot) { ch <- snap })()

	s.Submit("octocat")
	ready := waitFor(t, ch, settled)
	require.Equal(t, model.StatusReady, ready.Status)

	s.Submit("flaky")
	failed := waitFor(t, ch, settled)

	assert.Equal(t, model.StatusFailed, failed.Status)
	require.NotNil(t, failed.Notice)
	assert.Equal(t, "Http Exception", failed.Notice.Title)
	assert.Same(t, ready.Profile, failed.Profile)
	assert.Equal(t, ready.Repositories, failed.Repositories)
	assert.Equal(t, ready.Charts, failed.Charts)
	for _, loading := range failed.Loading {
		assert.False(t, loading)
	}
}

func TestLookupUserNotFound(t *testing.T) {
	s, st := newTestLookup(t, newFakeFetcher())

	ch := make(chan *model.Snapshot, 16)
	defer st.Subscribe(func(snap *model.Snapshot) { ch <- snap })()

	s.Submit("ghost")
	failed := waitFor(t, ch, settled)

	require.NotNil(t, failed.Notice)
	assert.Equal(t, "User not found", failed.Notice.Title)
	assert.Nil(t, failed.Profile)
	assert.Nil(t, failed.Statistics)
}

func TestLookupCancelsPrevious(t *testing.T) {
	f := newFakeFetcher()
	f.users["octocat"] = octocat()
	slow := octocat()
	slow.profile = &model.UserProfile{Login: "slowpoke"}
	f.users["slowpoke"] = slow
	f.gates["slowpoke"] = make(chan struct{})
	s, st := newTestLookup(t, f)

	ch := make(chan *model.Snapshot, 16)
	defer st.Subscribe(func(snap *model.Snapshot) { ch <- snap })()

	s.Submit("slowpoke")
	s.Submit("octocat")

	ready := waitFor(t, ch, settled)
	assert.Equal(t, "octocat", ready.Query)
	assert.Nil(t, ready.Notice)

	// the first lookup was cancelled and must neither publish nor toast
	close(f.gates["slowpoke"])
	s.Stop()
	select {
	case snap := <-ch:
		t.Fatalf("unexpected snapshot published for %s", snap.Query)
	default:
	}
	assert.Same(t, ready, st.Current())
}

func TestNoticeFor(t *testing.T) {
	assert.Equal(t, "User not found", NoticeFor("ghost", fetcher.ErrUserNotFound).Title)
	assert.Equal(t, "Http Exception", NoticeFor("x", errors.Wrap(&fetcher.HTTPError{StatusCode: 403}, "wrapped")).Title)
	assert.Equal(t, "User load error", NoticeFor("x", context.DeadlineExceeded).Title)
	assert.Equal(t, "User load error", NoticeFor("x", errors.New("connection reset")).Title)
}
