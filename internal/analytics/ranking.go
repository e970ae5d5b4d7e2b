package analytics

import (
	"sort"
	"time"

	"github.com/lueurxax/auto-news-dashboard/internal/core/domain"
	"github.com/lueurxax/auto-news-dashboard/internal/report"
)

// Selection sizes.
const (
	TickerSize         = 15
	TopStoriesPerGroup = 3
	TrendingSize       = 8
	NoStoriesAvailable = "No stories available"
)

// RankedStory is a story annotated for ranking and headline display.
type RankedStory struct {
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	URL       string    `json:"url,omitempty"`
	Score     float64   `json:"score"`
	Count     int       `json:"count"`
	Published time.Time `json:"published,omitzero"`
	HasDate   bool      `json:"-"`
}

// CategoryTopStories holds the best stories of one fixed category.
type CategoryTopStories struct {
	Category string        `json:"category"`
	Color    string        `json:"color"`
	Stories  []RankedStory `json:"stories"`
}

// RankStories returns every story ordered by importance score, then by the
// representative article's date, both descending. Stories without a date
// sort as the oldest; equal keys keep document order.
func RankStories(rep *domain.Report) []RankedStory {
	var rows []RankedStory

	report.EachStory(rep, func(category string, story *domain.Story) bool {
		rows = append(rows, rankStory(category, story))
		return true
	})

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}

		return rows[i].Published.After(rows[j].Published)
	})

	return rows
}

// Ticker returns the headlines for the scrolling ticker.
func Ticker(rep *domain.Report) []RankedStory {
	ranked := RankStories(rep)
	if len(ranked) > TickerSize {
		ranked = ranked[:TickerSize]
	}

	return ranked
}

// TopStories returns the highest-scoring stories of every fixed category.
// A category without stories gets one placeholder row without a link.
func TopStories(rep *domain.Report) []CategoryTopStories {
	out := make([]CategoryTopStories, 0, len(domain.CategoryNames))

	for _, name := range domain.CategoryNames {
		cat := rep.Category(name)

		rows := make([]RankedStory, 0, len(cat.Stories))
		for i := range cat.Stories {
			rows = append(rows, rankStory(name, &cat.Stories[i]))
		}

		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Score > rows[j].Score
		})

		if len(rows) > TopStoriesPerGroup {
			rows = rows[:TopStoriesPerGroup]
		}

		if len(rows) == 0 {
			rows = []RankedStory{{Category: name, Title: NoStoriesAvailable}}
		}

		out = append(out, CategoryTopStories{
			Category: name,
			Color:    domain.CategoryColor(name),
			Stories:  rows,
		})
	}

	return out
}

// Trending returns the stories covered by the most sources.
func Trending(rep *domain.Report) []RankedStory {
	var rows []RankedStory

	report.EachStory(rep, func(category string, story *domain.Story) bool {
		rows = append(rows, RankedStory{
			Category: category,
			Title:    StoryTitle(story),
			Count:    StoryCount(story),
		})

		return true
	})

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})

	if len(rows) > TrendingSize {
		rows = rows[:TrendingSize]
	}

	return rows
}

func rankStory(category string, story *domain.Story) RankedStory {
	row := RankedStory{
		Category: category,
		Title:    StoryTitle(story),
		URL:      StoryLink(story),
		Score:    ImportanceScore(story),
		Count:    StoryCount(story),
	}

	if a, ok := RepresentativeArticle(story); ok {
		row.Published, row.HasDate = articleDay(a)
	}

	return row
}
