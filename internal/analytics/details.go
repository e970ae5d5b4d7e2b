package analytics

import (
	"github.com/lueurxax/auto-news-dashboard/internal/core/domain"
	"github.com/lueurxax/auto-news-dashboard/internal/platform/textutil"
)

const (
	publishedPrefixLen = 10
	notAvailable       = "N/A"
)

// StoryDetail is one expandable story in the per-category browser.
type StoryDetail struct {
	Index         int             `json:"index"`
	Title         string          `json:"title"`
	Summary       string          `json:"summary"`
	Sources       []string        `json:"sources"`
	Count         int             `json:"count"`
	ClusterReason string          `json:"cluster_reason,omitempty"`
	Articles      []ArticleDetail `json:"articles"`
}

// ArticleDetail is one article line under a story.
type ArticleDetail struct {
	Index     int    `json:"index"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Source    string `json:"source"`
	Published string `json:"published"`
}

// CategoryDetails is the story browser for one category.
type CategoryDetails struct {
	Available     []string      `json:"available"`
	Category      string        `json:"category"`
	Color         string        `json:"color"`
	TotalArticles int           `json:"total_articles"`
	UniqueStories int           `json:"unique_stories"`
	Stories       []StoryDetail `json:"stories"`
}

// DetailedStories builds the story browser. The selected category must be
// one of the fixed categories with stories; anything else selects the first
// such category. It returns false when no fixed category has stories.
func DetailedStories(rep *domain.Report, category string) (CategoryDetails, bool) {
	available := StoryCategories(rep)
	if len(available) == 0 {
		return CategoryDetails{}, false
	}

	selected := available[0]

	for _, name := range available {
		if name == category {
			selected = name
			break
		}
	}

	cat := rep.Category(selected)
	total, unique := CategoryTotals(cat)

	details := CategoryDetails{
		Available:     available,
		Category:      selected,
		Color:         domain.CategoryColor(selected),
		TotalArticles: total,
		UniqueStories: unique,
		Stories:       make([]StoryDetail, 0, len(cat.Stories)),
	}

	for i := range cat.Stories {
		details.Stories = append(details.Stories, storyDetail(i+1, &cat.Stories[i]))
	}

	return details, true
}

func storyDetail(index int, story *domain.Story) StoryDetail {
	d := StoryDetail{
		Index:         index,
		Title:         StoryTitle(story),
		Summary:       StorySummary(story),
		Sources:       StorySources(story),
		Count:         StoryCount(story),
		ClusterReason: textutil.CleanText(story.ClusterReason),
		Articles:      make([]ArticleDetail, 0, len(story.Articles)),
	}

	for i, a := range story.Articles {
		title := textutil.CleanText(a.Title)
		if title == "" {
			title = UntitledStory
		}

		published := textutil.Truncate(textutil.CleanText(a.PublishedAt), publishedPrefixLen)
		if published == "" {
			published = notAvailable
		}

		d.Articles = append(d.Articles, ArticleDetail{
			Index:     i + 1,
			Title:     title,
			URL:       textutil.MakeClickableURL(a.URL, title),
			Source:    textutil.NormalizeSource(a.Source),
			Published: published,
		})
	}

	return d
}
