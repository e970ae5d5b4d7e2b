package analytics

import (
	"math/rand"

	"github.com/lueurxax/auto-news-dashboard/internal/core/domain"
	"github.com/lueurxax/auto-news-dashboard/internal/platform/textutil"
)

// Scatter layout. Each fixed category owns a cell of a three-column grid and
// its stories are jittered around the cell center.
const (
	scatterSeed         = 42
	scatterColumns      = 3
	scatterCellSize     = 30.0
	scatterJitter       = 10.0
	bubbleBaseSize      = 16
	bubbleSizePerSource = 7
	bubbleMaxSize       = 58
	hoverTitleLen       = 75
	hoverSummaryLen     = 160
	hoverSourceLimit    = 4
)

// Bubble is one story in the scatter plot.
type Bubble struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Size     int     `json:"size"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Sources  string  `json:"sources"`
	Summary  string  `json:"summary"`
}

// ScatterSeries groups the bubbles of one category.
type ScatterSeries struct {
	Category string   `json:"category"`
	Color    string   `json:"color"`
	Bubbles  []Bubble `json:"bubbles"`
}

// StoryCategories returns the fixed categories that have at least one story.
func StoryCategories(rep *domain.Report) []string {
	var out []string

	for _, name := range domain.CategoryNames {
		if len(rep.Category(name).Stories) > 0 {
			out = append(out, name)
		}
	}

	return out
}

// Scatter lays out one bubble per story for the selected fixed categories.
// The jitter comes from a fixed seed, so the same report always yields the
// same plot. Bubble size grows with the story count.
func Scatter(rep *domain.Report, selected []string) []ScatterSeries {
	want := make(map[string]bool, len(selected))
	for _, s := range selected {
		want[s] = true
	}

	//nolint:gosec // layout jitter, not security sensitive
	rng := rand.New(rand.NewSource(scatterSeed))

	var out []ScatterSeries

	for idx, name := range domain.CategoryNames {
		if !want[name] {
			continue
		}

		cat := rep.Category(name)
		if len(cat.Stories) == 0 {
			continue
		}

		series := ScatterSeries{Category: name, Color: domain.CategoryColor(name)}

		for i := range cat.Stories {
			story := &cat.Stories[i]
			count := StoryCount(story)

			series.Bubbles = append(series.Bubbles, Bubble{
				X:        float64(idx%scatterColumns)*scatterCellSize + jitter(rng),
				Y:        float64(idx/scatterColumns)*scatterCellSize + jitter(rng),
				Size:     min(bubbleBaseSize+bubbleSizePerSource*count, bubbleMaxSize),
				Title:    textutil.Truncate(StoryTitle(story), hoverTitleLen),
				Category: name,
				Count:    count,
				Sources:  StorySourcePreview(StorySources(story), hoverSourceLimit),
				Summary:  textutil.Truncate(StorySummary(story), hoverSummaryLen),
			})
		}

		out = append(out, series)
	}

	return out
}

func jitter(rng *rand.Rand) float64 {
	return rng.Float64()*2*scatterJitter - scatterJitter
}
