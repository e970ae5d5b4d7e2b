package dashboard

import (
	"time"

	"github.com/lueurxax/auto-news-dashboard/internal/analytics"
	"github.com/lueurxax/auto-news-dashboard/internal/core/domain"
	"github.com/lueurxax/auto-news-dashboard/internal/report"
)

// PageData is everything the dashboard page and its JSON form render.
type PageData struct {
	Title       string                         `json:"title"`
	Username    string                         `json:"username"`
	GeneratedAt time.Time                      `json:"generated_at"`
	Metrics     analytics.Metrics              `json:"metrics"`
	Funnel      []analytics.FunnelStage        `json:"funnel"`
	Ticker      []analytics.RankedStory        `json:"ticker"`
	TopStories  []analytics.CategoryTopStories `json:"top_stories"`
	Feed        FeedView                       `json:"feed"`
	Trending    []analytics.RankedStory        `json:"trending"`
	Breakdown   []analytics.CategoryRow        `json:"category_breakdown"`
	Sources     []analytics.SourceCount        `json:"sources"`
	Pie         []analytics.CategoryRow        `json:"category_pie"`
	Scatter     ScatterView                    `json:"scatter"`
	Details     *analytics.CategoryDetails     `json:"details,omitempty"`
	ChartData   ChartData                      `json:"-"`
}

// FeedView is the feed page plus the filter controls.
type FeedView struct {
	analytics.FeedPage

	From       string   `json:"from,omitempty"`
	To         string   `json:"to,omitempty"`
	MinDate    string   `json:"min_date,omitempty"`
	MaxDate    string   `json:"max_date,omitempty"`
	Category   string   `json:"category"`
	Categories []string `json:"-"`
}

// ScatterView is the scatter plot and its category picker.
type ScatterView struct {
	Available []string                  `json:"available"`
	Selected  []string                  `json:"selected"`
	Series    []analytics.ScatterSeries `json:"series"`
}

// IsSelected reports whether a category is ticked in the picker.
func (s ScatterView) IsSelected(name string) bool {
	for _, n := range s.Selected {
		if n == name {
			return true
		}
	}

	return false
}

// ChartData feeds the inline chart renderers.
type ChartData struct {
	SourceLabels   []string                  `json:"sourceLabels"`
	SourceValues   []int                     `json:"sourceValues"`
	SourceColors   []string                  `json:"sourceColors"`
	CategoryLabels []string                  `json:"categoryLabels"`
	CategoryValues []int                     `json:"categoryValues"`
	CategoryColors []string                  `json:"categoryColors"`
	Scatter        []analytics.ScatterSeries `json:"scatter"`
}

const (
	sourceBarColor = "#2563eb"
	otherBarColor  = "#64748b"
)

// buildPage derives every dashboard view from the report and the session's view state.
// The pager in state is clamped against the current rows.
func buildPage(rep *domain.Report, state *ViewState, opts pageOptions) PageData {
	metrics := analytics.ComputeMetrics(rep)

	rows := analytics.FeedRows(rep, state.FeedFilter())
	feed := FeedView{
		FeedPage:   state.Pager.Slice(rows),
		From:       formatFilterDate(state.From),
		To:         formatFilterDate(state.To),
		Category:   state.Category,
		Categories: append([]string{domain.AllCategories}, domain.CategoryNames...),
	}

	if feed.Category == "" {
		feed.Category = domain.AllCategories
	}

	if minDate, maxDate, ok := report.DateBounds(rep); ok {
		feed.MinDate = formatFilterDate(minDate)
		feed.MaxDate = formatFilterDate(maxDate)
	}

	available := analytics.StoryCategories(rep)
	selected := state.ScatterSelection(available)

	page := PageData{
		Title:       opts.title,
		Username:    opts.username,
		GeneratedAt: opts.now,
		Metrics:     metrics,
		Funnel:      analytics.Funnel(metrics),
		Ticker:      analytics.Ticker(rep),
		TopStories:  analytics.TopStories(rep),
		Feed:        feed,
		Trending:    analytics.Trending(rep),
		Breakdown:   analytics.CategoryBreakdown(rep),
		Sources:     analytics.AggregateSources(rep, opts.sourcesTopN),
		Pie:         analytics.CategoryPie(rep),
		Scatter: ScatterView{
			Available: available,
			Selected:  selected,
			Series:    analytics.Scatter(rep, selected),
		},
	}

	if details, ok := analytics.DetailedStories(rep, state.DetailCategory); ok {
		page.Details = &details
	}

	page.ChartData = buildChartData(page)

	return page
}

type pageOptions struct {
	title       string
	username    string
	sourcesTopN int
	now         time.Time
}

func buildChartData(page PageData) ChartData {
	data := ChartData{Scatter: page.Scatter.Series}

	for i, s := range page.Sources {
		color := sourceBarColor
		if i == len(page.Sources)-1 && s.Source == analytics.OtherSource {
			color = otherBarColor
		}

		data.SourceLabels = append(data.SourceLabels, s.Source)
		data.SourceValues = append(data.SourceValues, s.Articles)
		data.SourceColors = append(data.SourceColors, color)
	}

	for _, row := range page.Pie {
		data.CategoryLabels = append(data.CategoryLabels, row.Name)
		data.CategoryValues = append(data.CategoryValues, row.TotalArticles)
		data.CategoryColors = append(data.CategoryColors, row.Color)
	}

	return data
}
