// Package analytics derives every dashboard view from a loaded report:
// headline metrics, the pipeline funnel, source and category rollups, story
// ranking, the paginated feed, scatter bubbles and per-category story details.
//
// All functions are pure. They never fail: missing or malformed fields were
// already defaulted at decode time and are resolved here by fallback rules.
package analytics

import (
	"github.com/lueurxax/auto-news-dashboard/internal/core/domain"
	"github.com/lueurxax/auto-news-dashboard/internal/platform/textutil"
	"github.com/lueurxax/auto-news-dashboard/internal/report"
)

// Metrics are the headline counters shown in the dashboard cards.
type Metrics struct {
	TotalArticles    int    `json:"total_articles"`
	AutoRelevant     int    `json:"auto_relevant"`
	ActiveCategories int    `json:"categories"`
	UniqueStories    int    `json:"unique_stories"`
	Sources          int    `json:"sources"`
	LastUpdated      string `json:"last_updated"`
}

// ComputeMetrics derives the headline counters. Pipeline counters fall back to
// the number of articles present in the document when absent.
func ComputeMetrics(rep *domain.Report) Metrics {
	articleCount := 0
	sources := make(map[string]struct{})

	report.EachArticle(rep, func(ref report.ArticleRef) bool {
		articleCount++
		sources[textutil.NormalizeSource(ref.Article.Source)] = struct{}{}

		return true
	})

	m := Metrics{
		TotalArticles: max(intOr(statsTotalInput(rep), articleCount), 0),
		AutoRelevant:  max(intOr(statsTotalAutomobile(rep), articleCount), 0),
		Sources:       len(sources),
	}

	for _, name := range domain.CategoryNames {
		cat := rep.Category(name)
		stories := intOr(cat.UniqueStories, len(cat.Stories))

		if cat.TotalArticles > 0 || stories > 0 {
			m.ActiveCategories++
		}

		m.UniqueStories += stories
	}

	if m.UniqueStories == 0 {
		for _, cat := range report.Categories(rep) {
			m.UniqueStories += len(cat.Stories)
		}
	}

	if rep != nil {
		m.LastUpdated = textutil.FormatRunAt(rep.RunAt)
	} else {
		m.LastUpdated = textutil.FormatRunAt("")
	}

	return m
}

// FunnelStage is one step of the pipeline funnel. Removed is the number of
// items dropped on the way into this stage, when the stage drops anything.
type FunnelStage struct {
	Label   string `json:"label"`
	Value   int    `json:"value"`
	Removed int    `json:"removed,omitempty"`
	Note    string `json:"note,omitempty"`
}

// Funnel returns the pipeline flow from sources down to the fixed categories.
func Funnel(m Metrics) []FunnelStage {
	irrelevant := max(m.TotalArticles-m.AutoRelevant, 0)
	duplicates := max(m.AutoRelevant-m.UniqueStories, 0)

	return []FunnelStage{
		{Label: "Sources", Value: m.Sources},
		{Label: "Total Articles", Value: m.TotalArticles},
		{Label: "Relevant Articles", Value: m.AutoRelevant, Removed: irrelevant, Note: "irrelevant"},
		{Label: "Stories", Value: m.UniqueStories, Removed: duplicates, Note: "duplicates"},
		{Label: "Categories", Value: len(domain.CategoryNames)},
	}
}

func statsTotalInput(rep *domain.Report) *int {
	if rep == nil {
		return nil
	}

	return rep.Stats.TotalInput
}

func statsTotalAutomobile(rep *domain.Report) *int {
	if rep == nil {
		return nil
	}

	return rep.Stats.TotalAutomobile
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}

	return *v
}
