package analytics

import (
	"sort"
	"time"

	"github.com/lueurxax/auto-news-dashboard/internal/core/domain"
	"github.com/lueurxax/auto-news-dashboard/internal/platform/textutil"
	"github.com/lueurxax/auto-news-dashboard/internal/report"
)

// FeedPageSize is the number of cards per feed page.
const FeedPageSize = 8

// FeedFilter narrows the feed. From and To are calendar days and only apply
// when both are set; Category "" or "All Categories" disables that filter.
type FeedFilter struct {
	From     time.Time
	To       time.Time
	Category string
}

// HasRange reports whether the date range filter is active.
func (f FeedFilter) HasRange() bool {
	return !f.From.IsZero() && !f.To.IsZero()
}

func (f FeedFilter) matchesCategory(name string) bool {
	return f.Category == "" || f.Category == domain.AllCategories || f.Category == name
}

// FeedRow is one card of the latest articles feed.
type FeedRow struct {
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Color     string    `json:"color"`
	Source    string    `json:"source"`
	URL       string    `json:"url"`
	Published time.Time `json:"published,omitzero"`
	HasDate   bool      `json:"-"`
}

// FeedRows builds one row per story, dated by its latest article. Undated
// stories are never removed by the date range. Rows are newest first with
// undated stories last; equal dates keep document order.
func FeedRows(rep *domain.Report, filter FeedFilter) []FeedRow {
	var rows []FeedRow

	report.EachStory(rep, func(category string, story *domain.Story) bool {
		if !filter.matchesCategory(category) {
			return true
		}

		row, ok := feedRow(category, story, filter)
		if ok {
			rows = append(rows, row)
		}

		return true
	})

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Published.After(rows[j].Published)
	})

	return rows
}

func feedRow(category string, story *domain.Story, filter FeedFilter) (FeedRow, bool) {
	var (
		article domain.Article
		latest  time.Time
		hasDate bool
	)

	if len(story.Articles) > 0 {
		article = story.Articles[0]
	}

	for _, a := range story.Articles {
		day, ok := articleDay(a)
		if !ok {
			continue
		}

		if !hasDate || day.After(latest) {
			latest, hasDate, article = day, true, a
		}
	}

	if hasDate && filter.HasRange() && (latest.Before(filter.From) || latest.After(filter.To)) {
		return FeedRow{}, false
	}

	title := textutil.CleanText(article.Title)
	if title == "" {
		title = StoryTitle(story)
	}

	return FeedRow{
		Title:     title,
		Category:  category,
		Color:     domain.CategoryColor(category),
		Source:    textutil.NormalizeSource(article.Source),
		URL:       textutil.MakeClickableURL(article.URL, title),
		Published: latest,
		HasDate:   hasDate,
	}, true
}

// FeedPager is the feed pagination state. The zero value is page 0.
type FeedPager struct {
	Page int `json:"page"`
}

// FeedPage is one rendered page of the feed.
type FeedPage struct {
	Rows       []FeedRow `json:"rows"`
	Page       int       `json:"page"`
	TotalPages int       `json:"total_pages"`
	TotalRows  int       `json:"total_rows"`
	HasPrev    bool      `json:"has_prev"`
	HasNext    bool      `json:"has_next"`
}

// TotalPages returns the page count for rows, never less than one.
func TotalPages(rows int) int {
	if rows <= 0 {
		return 1
	}

	return (rows + FeedPageSize - 1) / FeedPageSize
}

// Clamp moves the page index into range for the given row count.
func (p *FeedPager) Clamp(rows int) {
	p.Page = min(max(p.Page, 0), TotalPages(rows)-1)
}

// Prev moves one page back unless already on the first page.
func (p *FeedPager) Prev(rows int) {
	p.Clamp(rows)

	if p.Page > 0 {
		p.Page--
	}
}

// Next moves one page forward unless already on the last page.
func (p *FeedPager) Next(rows int) {
	p.Clamp(rows)

	if p.Page < TotalPages(rows)-1 {
		p.Page++
	}
}

// Reset returns to the first page.
func (p *FeedPager) Reset() {
	p.Page = 0
}

// Slice clamps the pager against rows and returns the current page.
func (p *FeedPager) Slice(rows []FeedRow) FeedPage {
	p.Clamp(len(rows))

	total := TotalPages(len(rows))
	start := min(p.Page*FeedPageSize, len(rows))
	end := min(start+FeedPageSize, len(rows))

	return FeedPage{
		Rows:       rows[start:end],
		Page:       p.Page,
		TotalPages: total,
		TotalRows:  len(rows),
		HasPrev:    p.Page > 0,
		HasNext:    p.Page < total-1,
	}
}
