package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/auto-news-dashboard/internal/core/domain"
	"github.com/lueurxax/auto-news-dashboard/internal/report"
)

const metricsExample = `{
  "run_at": "2026-02-01T12:00:00Z",
  "stats": {"total_input": 10, "total_automobile": 7},
  "categories": {
    "Industry & Market Updates": {
      "stories": [
        {"representative_title": "Sales up", "sources": ["A", "B"],
         "articles": [{"title": "a1", "source": "A"}, {"title": "b1", "source": "B"}]},
        {"representative_title": "Plant opens", "sources": ["A"],
         "articles": [{"title": "a2", "source": "A"}]}
      ]
    },
    "Competitor Activity": {"stories": []},
    "External Events": {}
  }
}`

func decode(t *testing.T, doc string) *domain.Report {
	t.Helper()

	rep, err := report.Decode([]byte(doc))
	require.NoError(t, err)

	return rep
}

func TestComputeMetrics_Example(t *testing.T) {
	m := ComputeMetrics(decode(t, metricsExample))

	assert.Equal(t, 10, m.TotalArticles)
	assert.Equal(t, 7, m.AutoRelevant)
	assert.Equal(t, 2, m.UniqueStories)
	assert.Equal(t, 2, m.Sources)
	assert.Equal(t, 1, m.ActiveCategories)
	assert.Equal(t, "01 Feb 2026, 12:00", m.LastUpdated)
}

func TestComputeMetrics_Fallbacks(t *testing.T) {
	rep := decode(t, `{
	  "stats": {"total_input": "many", "total_automobile": -4},
	  "categories": {
	    "Side Notes": {"stories": [{"articles": [{"source": ""}, {"source": "X"}]}]}
	  }
	}`)

	m := ComputeMetrics(rep)

	assert.Equal(t, 2, m.TotalArticles, "non-integer total falls back to article count")
	assert.Equal(t, 0, m.AutoRelevant, "negative totals clamp to zero")
	assert.Equal(t, 0, m.ActiveCategories)
	assert.Equal(t, 1, m.UniqueStories, "falls back to stories in any category")
	assert.Equal(t, 2, m.Sources, "Unknown counts as a source")
	assert.Equal(t, "-", m.LastUpdated)
}

func TestComputeMetrics_NilReport(t *testing.T) {
	m := ComputeMetrics(nil)
	assert.Equal(t, Metrics{LastUpdated: "-"}, m)
}

func TestFunnel(t *testing.T) {
	stages := Funnel(Metrics{Sources: 5, TotalArticles: 10, AutoRelevant: 7, UniqueStories: 2})

	require.Len(t, stages, 5)
	assert.Equal(t, 5, stages[0].Value)
	assert.Equal(t, 3, stages[2].Removed)
	assert.Equal(t, 5, stages[3].Removed)
	assert.Equal(t, len(domain.CategoryNames), stages[4].Value)

	stages = Funnel(Metrics{TotalArticles: 2, AutoRelevant: 4, UniqueStories: 9})
	assert.Equal(t, 0, stages[2].Removed)
	assert.Equal(t, 0, stages[3].Removed)
}

func TestStoryCount_DerivedFromDistinctSources(t *testing.T) {
	story := &domain.Story{Sources: []string{"X", "X", "Y"}}
	assert.Equal(t, 2, StoryCount(story))

	story = &domain.Story{Sources: []string{"x", "X"}}
	assert.Equal(t, 2, StoryCount(story), "case-sensitive")

	assert.Equal(t, 1, StoryCount(&domain.Story{}), "never zero")
	assert.Equal(t, 5, StoryCount(&domain.Story{StoryCount: 5, Sources: []string{"A"}}))
}

func TestStorySources(t *testing.T) {
	story := &domain.Story{Sources: []string{"Reuters", " AP ", "", "Reuters"}}
	assert.Equal(t, []string{"AP", "Reuters", "Unknown"}, StorySources(story))

	story = &domain.Story{Articles: []domain.Article{{Source: "Zeta"}, {Source: "Alpha"}, {Source: "Zeta"}}}
	assert.Equal(t, []string{"Alpha", "Zeta"}, StorySources(story))
}

func TestStorySummary(t *testing.T) {
	assert.Equal(t, "Main", StorySummary(&domain.Story{Summary: " Main "}))
	assert.Equal(t, "second", StorySummary(&domain.Story{Articles: []domain.Article{
		{ContentPreview: "  "}, {ContentPreview: "second"},
	}}))
	assert.Equal(t, NoSummary, StorySummary(&domain.Story{}))
}

func TestRepresentativeArticle(t *testing.T) {
	rep := decode(t, `{"categories": {"X": {"stories": [
	  {"articles": [
	    {"title": "first", "published_at": "2024-01-01"},
	    {"title": "later", "published_at": "2024-01-03"},
	    {"title": "same day", "published_at": "2024-01-03T23:00:00Z"},
	    {"title": "bad", "published_at": "2024-13-40"}
	  ]},
	  {"articles": [
	    {"title": "undated"},
	    {"title": "flagged", "is_representative": true}
	  ]},
	  {"articles": [{"title": "a"}, {"title": "b"}]},
	  {"articles": []}
	]}}}`)

	stories := rep.Categories[0].Stories

	a, ok := RepresentativeArticle(&stories[0])
	require.True(t, ok)
	assert.Equal(t, "later", a.Title, "strictly later date wins, ties keep the earlier article")

	a, _ = RepresentativeArticle(&stories[1])
	assert.Equal(t, "flagged", a.Title)

	a, _ = RepresentativeArticle(&stories[2])
	assert.Equal(t, "a", a.Title)

	_, ok = RepresentativeArticle(&stories[3])
	assert.False(t, ok)
}

func TestImportanceScore(t *testing.T) {
	story := &domain.Story{
		StoryCount: 3,
		Articles: []domain.Article{
			{AutoScore: 0.5, CategoryConfidence: 0.25},
			{AutoScore: 1},
		},
	}

	assert.InDelta(t, 3+1+0.5+2, ImportanceScore(story), 1e-9)
}

func TestStoryLink(t *testing.T) {
	story := &domain.Story{
		RepresentativeTitle: "Fallback title",
		Articles: []domain.Article{
			{Title: "Rep", IsRepresentative: true},
			{URL: "https://example.com/x"},
		},
	}
	assert.Equal(t, "https://example.com/x", StoryLink(story))

	story = &domain.Story{RepresentativeTitle: "Only title"}
	assert.Equal(t, "https://www.google.com/search?q=Only+title", StoryLink(story))

	assert.Equal(t, "https://www.google.com/search?q=Untitled", StoryLink(&domain.Story{}))
}

func TestAggregateSources_OtherBucket(t *testing.T) {
	rep := decode(t, `{"categories": {"X": {"stories": [{"articles": [
	  {"source": "A"}, {"source": "A"}, {"source": "A"},
	  {"source": "B"}, {"source": "B"},
	  {"source": "C"}, {"source": "C"},
	  {"source": ""}, {"source": ""},
	  {"source": "D"},
	  {"source": "E"}
	]}]}}}`)

	rows := AggregateSources(rep, 3)

	require.Len(t, rows, 3)
	assert.Equal(t, SourceCount{Source: "A", Articles: 3}, rows[0])
	assert.Equal(t, SourceCount{Source: "B", Articles: 2}, rows[1])
	assert.Equal(t, SourceCount{Source: OtherSource, Articles: 6}, rows[2])

	total := 0
	for _, r := range rows {
		total += r.Articles
	}

	assert.Equal(t, 11, total)
}

func TestAggregateSources_UnknownInTopFolds(t *testing.T) {
	rep := decode(t, `{"categories": {"X": {"stories": [{"articles": [
	  {"source": ""}, {"source": ""}, {"source": "A"}
	]}]}}}`)

	rows := AggregateSources(rep, DefaultSourcesTopN)
	assert.Equal(t, []SourceCount{{Source: "A", Articles: 1}, {Source: OtherSource, Articles: 2}}, rows)

	assert.Empty(t, AggregateSources(decode(t, `{}`), DefaultSourcesTopN))
}

func TestCategoryTotalsAndRows(t *testing.T) {
	rep := decode(t, `{"categories": {
	  "Technology & Innovation": {"total_articles": 0, "stories": [
	    {"articles": [{}, {}]}, {"articles": [{}]}
	  ]},
	  "Competitor Activity": {"total_articles": 0, "unique_stories": 0},
	  "External Events": {"total_articles": 0, "unique_stories": 2}
	}}`)

	total, unique := CategoryTotals(rep.Category(domain.CategoryTechnology))
	assert.Equal(t, 3, total)
	assert.Equal(t, 2, unique)

	breakdown := CategoryBreakdown(rep)
	require.Len(t, breakdown, 2)
	assert.Equal(t, domain.CategoryTechnology, breakdown[0].Name)
	assert.Equal(t, domain.CategoryExternal, breakdown[1].Name)
	assert.Equal(t, "#6b7280", breakdown[1].Color)

	pie := CategoryPie(rep)
	require.Len(t, pie, 1)
	assert.Equal(t, 3, pie[0].TotalArticles)
}

func TestRankStories_OrderAndTicker(t *testing.T) {
	rep := decode(t, `{"categories": {
	  "Technology & Innovation": {"stories": [
	    {"representative_title": "low", "story_count": 1, "articles": [{"published_at": "2024-05-01"}]},
	    {"representative_title": "tie newer", "story_count": 2, "articles": [{"published_at": "2024-05-03"}]}
	  ]},
	  "Unlisted": {"stories": [
	    {"representative_title": "tie undated", "story_count": 2},
	    {"representative_title": "high", "story_count": 9}
	  ]}
	}}`)

	ranked := RankStories(rep)
	require.Len(t, ranked, 4)

	titles := make([]string, 0, len(ranked))
	for _, r := range ranked {
		titles = append(titles, r.Title)
	}

	assert.Equal(t, []string{"high", "tie newer", "tie undated", "low"}, titles)
	assert.Equal(t, "Unlisted", ranked[0].Category)
	assert.True(t, ranked[1].HasDate)
	assert.False(t, ranked[2].HasDate)

	assert.Len(t, Ticker(rep), 4)
}

func TestTicker_Capped(t *testing.T) {
	doc := `{"categories": {"X": {"stories": [`
	for i := 0; i < 20; i++ {
		if i > 0 {
			doc += ","
		}

		doc += `{"representative_title": "s"}`
	}

	doc += `]}}}`

	assert.Len(t, Ticker(decode(t, doc)), TickerSize)
}

func TestTopStories(t *testing.T) {
	rep := decode(t, `{"categories": {"Competitor Activity": {"stories": [
	  {"representative_title": "one", "story_count": 1},
	  {"representative_title": "four", "story_count": 4},
	  {"representative_title": "two", "story_count": 2},
	  {"representative_title": "four again", "story_count": 4}
	]}}}`)

	groups := TopStories(rep)
	require.Len(t, groups, len(domain.CategoryNames))

	comp := groups[2]
	require.Equal(t, domain.CategoryCompetitor, comp.Category)
	require.Len(t, comp.Stories, TopStoriesPerGroup)
	assert.Equal(t, "four", comp.Stories[0].Title)
	assert.Equal(t, "four again", comp.Stories[1].Title)
	assert.Equal(t, "two", comp.Stories[2].Title)

	empty := groups[0]
	require.Len(t, empty.Stories, 1)
	assert.Equal(t, NoStoriesAvailable, empty.Stories[0].Title)
	assert.Empty(t, empty.Stories[0].URL)
}

func TestTrending(t *testing.T) {
	rep := decode(t, `{"categories": {"X": {"stories": [
	  {"representative_title": "a", "story_count": 1},
	  {"representative_title": "b", "story_count": 3},
	  {"representative_title": "c", "story_count": 3}
	]}}}`)

	rows := Trending(rep)
	require.Len(t, rows, 3)
	assert.Equal(t, "b", rows[0].Title)
	assert.Equal(t, "c", rows[1].Title)
	assert.Equal(t, 3, rows[0].Count)
}

func TestScatter_DeterministicLayout(t *testing.T) {
	rep := decode(t, `{"categories": {
	  "Competitor Activity": {"stories": [
	    {"representative_title": "big", "story_count": 10, "sources": ["A", "B", "C", "D", "E", "F"]},
	    {"representative_title": "small", "sources": ["A"]}
	  ]},
	  "Industry & Market Updates": {"stories": []}
	}}`)

	selected := []string{domain.CategoryCompetitor, domain.CategoryIndustry}

	first := Scatter(rep, selected)
	second := Scatter(rep, selected)
	assert.Equal(t, first, second)

	require.Len(t, first, 1, "categories without stories have no series")

	series := first[0]
	assert.Equal(t, "#db2777", series.Color)
	require.Len(t, series.Bubbles, 2)

	big := series.Bubbles[0]
	assert.Equal(t, bubbleMaxSize, big.Size)
	assert.Equal(t, "A, B, C, D +2 more", big.Sources)
	assert.InDelta(t, 60, big.X, scatterJitter)
	assert.InDelta(t, 0, big.Y, scatterJitter)

	assert.Equal(t, bubbleBaseSize+bubbleSizePerSource, series.Bubbles[1].Size)

	assert.Empty(t, Scatter(rep, nil))
}

func TestDetailedStories(t *testing.T) {
	rep := decode(t, `{"categories": {
	  "Supply Chain & Logistics": {"stories": [
	    {"representative_title": "Port strike", "cluster_reason": "Same port",
	     "articles": [
	       {"title": "", "url": "relative", "source": "", "published_at": "2024-02-03T10:00:00Z"},
	       {"title": "Strike ends", "url": "https://example.com/s"}
	     ]}
	  ]},
	  "Regulatory & Policy Updates": {"stories": [{"representative_title": "Rule"}]}
	}}`)

	details, ok := DetailedStories(rep, "not a category")
	require.True(t, ok)
	assert.Equal(t, []string{domain.CategoryRegulatory, domain.CategorySupplyChain}, details.Available)
	assert.Equal(t, domain.CategoryRegulatory, details.Category)

	details, ok = DetailedStories(rep, domain.CategorySupplyChain)
	require.True(t, ok)
	require.Len(t, details.Stories, 1)

	story := details.Stories[0]
	assert.Equal(t, "Same port", story.ClusterReason)
	require.Len(t, story.Articles, 2)
	assert.Equal(t, "Untitled", story.Articles[0].Title)
	assert.Equal(t, "https://www.google.com/search?q=Untitled", story.Articles[0].URL)
	assert.Equal(t, "Unknown", story.Articles[0].Source)
	assert.Equal(t, "2024-02-03", story.Articles[0].Published)
	assert.Equal(t, "N/A", story.Articles[1].Published)

	_, ok = DetailedStories(decode(t, `{}`), "")
	assert.False(t, ok)
}
