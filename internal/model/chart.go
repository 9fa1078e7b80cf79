package model

import (
	"time"

	"github.com/pkg/errors"
)

type ChartKind string

const (
	ChartKindPie        ChartKind = "pie"
	ChartKindLine       ChartKind = "line"
	ChartKindBar        ChartKind = "bar"
	ChartKindStackedBar ChartKind = "stackedBar"
	ChartKindScatter    ChartKind = "scatter"
)

// DateLayout is the layout of DatePoint.X.
const DateLayout = "2006-01-02"

// Series is the data of one dataset. It is one of Numbers, Points or DatePoints.
type Series interface {
	Len() int
	series()
}

// Numbers is a series whose n-th value belongs to the n-th chart label.
type Numbers []int64

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Points []Point

type DatePoint struct {
	X string `json:"x"`
	Y int64  `json:"y"`
}

// NewDatePoint keys y by the UTC calendar date of t.
func NewDatePoint(t time.Time, y int64) DatePoint {
	return DatePoint{X: t.UTC().Format(DateLayout), Y: y}
}

// Time parses X back into a time. Malformed dates yield the zero time.
func (p DatePoint) Time() time.Time {
	t, err := time.Parse(DateLayout, p.X)
	if err != nil {
		return time.Time{}
	}
	return t
}

type DatePoints []DatePoint

func (s Numbers) Len() int    { return len(s) }
func (s Points) Len() int     { return len(s) }
func (s DatePoints) Len() int { return len(s) }

func (Numbers) series()    {}
func (Points) series()     {}
func (DatePoints) series() {}

type Dataset struct {
	Label string `json:"label,omitempty"`
	Data  Series `json:"data"`
	// Stack groups datasets of a stacked bar chart.
	Stack string `json:"stack,omitempty"`
}

type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Validate checks that every Numbers dataset has one value per label.
func (d *ChartData) Validate() error {
	for i, ds := range d.Datasets {
		if ds.Data == nil {
			return errors.Errorf("dataset %d (%q) has no data", i, ds.Label)
		}
		if _, ok := ds.Data.(Numbers); ok && ds.Data.Len() != len(d.Labels) {
			return errors.Errorf("dataset %d (%q) has %d values for %d labels", i, ds.Label, ds.Data.Len(), len(d.Labels))
		}
	}
	return nil
}

// Empty reports whether no dataset carries any data point.
func (d *ChartData) Empty() bool {
	for _, ds := range d.Datasets {
		if ds.Data != nil && ds.Data.Len() > 0 {
			return false
		}
	}
	return true
}

// ChartDescriptor describes one chart independently of how it is drawn.
type ChartDescriptor struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Kind  ChartKind `json:"kind"`
	// Tab is the chart tab of the page the chart is shown on.
	Tab  string    `json:"tab"`
	Data ChartData `json:"data"`
}
