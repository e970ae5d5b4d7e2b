package report

import (
	"time"

	"github.com/lueurxax/auto-news-dashboard/internal/core/domain"
	"github.com/lueurxax/auto-news-dashboard/internal/platform/textutil"
)

// ArticleRef points at one article together with the story and category holding it.
type ArticleRef struct {
	Category string
	Story    *domain.Story
	Article  *domain.Article
}

// Categories returns the report's categories in document order.
func Categories(rep *domain.Report) []domain.Category {
	if rep == nil {
		return nil
	}

	return rep.Categories
}

// EachStory calls fn for every story in document order. Returning false stops the walk.
func EachStory(rep *domain.Report, fn func(category string, story *domain.Story) bool) {
	for ci := range Categories(rep) {
		cat := &rep.Categories[ci]

		for si := range cat.Stories {
			if !fn(cat.Name, &cat.Stories[si]) {
				return
			}
		}
	}
}

// EachArticle calls fn for every (category, story, article) triple in document
// order. Returning false stops the walk.
func EachArticle(rep *domain.Report, fn func(ref ArticleRef) bool) {
	EachStory(rep, func(category string, story *domain.Story) bool {
		for ai := range story.Articles {
			if !fn(ArticleRef{Category: category, Story: story, Article: &story.Articles[ai]}) {
				return false
			}
		}

		return true
	})
}

// ArticleCount returns the number of articles across all categories.
func ArticleCount(rep *domain.Report) int {
	n := 0

	EachArticle(rep, func(ArticleRef) bool {
		n++
		return true
	})

	return n
}

// DateBounds returns the earliest and latest publish dates, as calendar days,
// over all articles with a parsable date. ok is false when none parse.
func DateBounds(rep *domain.Report) (earliest, latest time.Time, ok bool) {
	EachArticle(rep, func(ref ArticleRef) bool {
		published, has := ref.Article.PublishedDate()
		if !has {
			return true
		}

		day := textutil.DateOf(published)

		if !ok || day.Before(earliest) {
			earliest = day
		}

		if !ok || day.After(latest) {
			latest = day
		}

		ok = true

		return true
	})

	return earliest, latest, ok
}
