package analytics

import (
	"sort"

	"github.com/lueurxax/auto-news-dashboard/internal/core/domain"
	"github.com/lueurxax/auto-news-dashboard/internal/platform/textutil"
)

// Display fallbacks.
const (
	UntitledStory  = "Untitled"
	NoSummary      = "No summary available."
	importanceMult = 2.0
)

// StoryTitle returns the cleaned representative title, or "Untitled".
func StoryTitle(story *domain.Story) string {
	if t := textutil.CleanText(story.RepresentativeTitle); t != "" {
		return t
	}

	return UntitledStory
}

// RepresentativeArticle picks the article flagged as representative. Without
// a flag it picks the article with the strictly latest publish date, keeping
// the first article on ties or when no dates parse. ok is false for a story
// without articles.
func RepresentativeArticle(story *domain.Story) (domain.Article, bool) {
	if len(story.Articles) == 0 {
		return domain.Article{}, false
	}

	for _, a := range story.Articles {
		if a.IsRepresentative {
			return a, true
		}
	}

	best := story.Articles[0]
	bestDay, hasBest := articleDay(best)

	for _, a := range story.Articles[1:] {
		day, ok := articleDay(a)
		if ok && (!hasBest || day.After(bestDay)) {
			best, bestDay, hasBest = a, day, true
		}
	}

	return best, true
}

// StorySummary returns the cleaned summary, else the first non-empty article
// preview, else a fixed placeholder.
func StorySummary(story *domain.Story) string {
	if s := textutil.CleanText(story.Summary); s != "" {
		return s
	}

	for _, a := range story.Articles {
		if p := textutil.CleanText(a.ContentPreview); p != "" {
			return p
		}
	}

	return NoSummary
}

// StorySources returns the sorted distinct normalized sources of a story,
// taken from its sources list or, when that is empty, from its articles.
func StorySources(story *domain.Story) []string {
	raw := story.Sources

	if len(raw) == 0 {
		raw = make([]string, 0, len(story.Articles))
		for _, a := range story.Articles {
			raw = append(raw, a.Source)
		}
	}

	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))

	for _, s := range raw {
		name := textutil.NormalizeSource(s)
		if _, ok := seen[name]; ok {
			continue
		}

		seen[name] = struct{}{}
		out = append(out, name)
	}

	sort.Strings(out)

	return out
}

// StoryCount is the explicit story_count when positive, else the number of
// distinct sources with a minimum of one.
func StoryCount(story *domain.Story) int {
	if story.StoryCount > 0 {
		return story.StoryCount
	}

	return max(len(StorySources(story)), 1)
}

// ImportanceScore ranks stories: the story count plus twice the summed
// automotive scores and category confidences of its articles.
func ImportanceScore(story *domain.Story) float64 {
	score := float64(StoryCount(story))

	for _, a := range story.Articles {
		score += a.AutoScore * importanceMult
		score += a.CategoryConfidence * importanceMult
	}

	return score
}

// StoryLink returns a navigable link for a story: the representative
// article's URL, else the first article URL, else a search for the title.
func StoryLink(story *domain.Story) string {
	rep, _ := RepresentativeArticle(story)

	title := textutil.FirstNonEmpty(rep.Title, story.RepresentativeTitle)
	if title == "" {
		title = UntitledStory
	}

	url := rep.URL
	if url == "" {
		for _, a := range story.Articles {
			if a.URL != "" {
				url = a.URL
				break
			}
		}
	}

	return textutil.MakeClickableURL(url, title)
}

// StorySourcePreview joins up to limit sources, appending "+N more" for the rest.
func StorySourcePreview(sources []string, limit int) string {
	if len(sources) == 0 {
		return textutil.UnknownSource
	}

	if len(sources) <= limit {
		return joinComma(sources)
	}

	return joinComma(sources[:limit]) + " +" + itoa(len(sources)-limit) + " more"
}
