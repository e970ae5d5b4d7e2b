package analytics

import (
	"sort"

	"github.com/lueurxax/auto-news-dashboard/internal/core/domain"
	"github.com/lueurxax/auto-news-dashboard/internal/platform/textutil"
	"github.com/lueurxax/auto-news-dashboard/internal/report"
)

// OtherSource is the bucket collecting sources outside the top slots and unknown sources.
const OtherSource = "Other"

// DefaultSourcesTopN is the number of rows in the source chart.
const DefaultSourcesTopN = 10

// SourceCount is one row of the source rollup.
type SourceCount struct {
	Source   string `json:"source"`
	Articles int    `json:"articles"`
}

// AggregateSources counts articles per normalized source. The busiest
// topN-1 sources are kept by name; everything else, plus "Unknown", is folded
// into a trailing "Other" row. At most topN rows are returned.
func AggregateSources(rep *domain.Report, topN int) []SourceCount {
	var rows []SourceCount

	index := make(map[string]int)

	report.EachArticle(rep, func(ref report.ArticleRef) bool {
		source := textutil.NormalizeSource(ref.Article.Source)

		if i, ok := index[source]; ok {
			rows[i].Articles++
		} else {
			index[source] = len(rows)
			rows = append(rows, SourceCount{Source: source, Articles: 1})
		}

		return true
	})

	if len(rows) == 0 {
		return nil
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Articles > rows[j].Articles
	})

	topSlots := max(topN-1, 1)
	if topSlots > len(rows) {
		topSlots = len(rows)
	}

	other := 0
	for _, r := range rows[topSlots:] {
		other += r.Articles
	}

	out := make([]SourceCount, 0, topSlots+1)

	for _, r := range rows[:topSlots] {
		if r.Source == textutil.UnknownSource {
			other += r.Articles
			continue
		}

		out = append(out, r)
	}

	if other > 0 {
		out = append(out, SourceCount{Source: OtherSource, Articles: other})
	}

	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}

	return out
}
