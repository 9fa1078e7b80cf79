package model

import "time"

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// Region is a part of the page that shows its own loading indicator.
type Region string

const (
	RegionProfile      Region = "profile"
	RegionFollowers    Region = "followers"
	RegionFollowing    Region = "following"
	RegionRepositories Region = "repositories"
	RegionCharts       Region = "charts"
)

var Regions = []Region{RegionProfile, RegionFollowers, RegionFollowing, RegionRepositories, RegionCharts}

// Notice is a transient notification shown to the user.
type Notice struct {
	Class   string `json:"class"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Snapshot is the result of the latest lookup as seen by the page.
type Snapshot struct {
	Version uint64 `json:"version"`
	Query   string `json:"query"`
	Status  Status `json:"status"`

	Loading map[Region]bool `json:"loading"`

	Profile      *UserProfile        `json:"profile"`
	Followers    []Person            `json:"followers"`
	Following    []Person            `json:"following"`
	Repositories []RepositorySummary `json:"repositories"`
	Statistics   *Statistics         `json:"statistics"`
	Charts       []ChartDescriptor   `json:"charts"`

	Notice *Notice `json:"notice,omitempty"`

	StartedAt time.Time `json:"startedAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewIdleSnapshot is the snapshot before any lookup happened.
func NewIdleSnapshot() *Snapshot {
	return &Snapshot{
		Status:       StatusIdle,
		Loading:      LoadingFlags(false),
		Followers:    []Person{},
		Following:    []Person{},
		Repositories: []RepositorySummary{},
		Charts:       []ChartDescriptor{},
	}
}

func LoadingFlags(loading bool) map[Region]bool {
	flags := make(map[Region]bool, len(Regions))
	for _, r := range Regions {
		flags[r] = loading
	}
	return flags
}

// Clone returns a shallow copy with its own loading flags, safe to modify at
// the top level without affecting the original.
func (s *Snapshot) Clone() *Snapshot {
	c := *s
	c.Loading = make(map[Region]bool, len(s.Loading))
	for k, v := range s.Loading {
		c.Loading[k] = v
	}
	return &c
}

// Chart returns the chart with the given id.
func (s *Snapshot) Chart(id string) (*ChartDescriptor, bool) {
	for i := range s.Charts {
		if s.Charts[i].ID == id {
			return &s.Charts[i], true
		}
	}
	return nil, false
}
