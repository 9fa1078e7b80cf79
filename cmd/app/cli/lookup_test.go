package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statismics/backend/internal/model"
)

func snapshot() *model.Snapshot {
	s := model.NewIdleSnapshot()
	s.Status = model.StatusReady
	s.Query = "octocat"
	s.Profile = &model.UserProfile{Login: "octocat"}
	s.Charts = []model.ChartDescriptor{
		{
			ID:    "languages",
			Title: "Languages",
			Kind:  model.ChartKindPie,
			Data: model.ChartData{
				Labels:   []string{"Go"},
				Datasets: []model.Dataset{{Data: model.Numbers{1}}},
			},
		},
		{
			ID:    "forks",
			Title: "Forks",
			Kind:  model.ChartKindPie,
			Data:  model.ChartData{Labels: []string{}, Datasets: []model.Dataset{{Data: model.Numbers{}}}},
		},
	}
	return s
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, writeJSON(dir, snapshot()))

	b, err := os.ReadFile(filepath.Join(dir, "octocat.json"))
	require.NoError(t, err)

	var got struct {
		Query  string `json:"query"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "octocat", got.Query)
	assert.Equal(t, "ready", got.Status)
}

func TestWriteSVGs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, writeSVGs(filepath.Join(dir, "charts"), snapshot()))

	for _, id := range []string{"languages", "forks"} {
		b, err := os.ReadFile(filepath.Join(dir, "charts", id+".svg"))
		require.NoError(t, err, id)
		assert.True(t, strings.Contains(string(b), "<svg"), id)
	}
}
