package analytics

import (
	"github.com/lueurxax/auto-news-dashboard/internal/core/domain"
)

// CategoryRow summarizes one fixed category.
type CategoryRow struct {
	Name          string `json:"name"`
	Color         string `json:"color"`
	TotalArticles int    `json:"total_articles"`
	UniqueStories int    `json:"unique_stories"`
}

// CategoryTotals returns the article and story counts of a category. An
// explicit article total of zero falls back to the articles present in its
// stories; an absent story total falls back to the number of stories.
func CategoryTotals(cat domain.Category) (totalArticles, uniqueStories int) {
	totalArticles = cat.TotalArticles
	if totalArticles == 0 {
		for _, s := range cat.Stories {
			totalArticles += len(s.Articles)
		}
	}

	return totalArticles, intOr(cat.UniqueStories, len(cat.Stories))
}

// CategoryBreakdown lists the fixed categories in display order, skipping
// those with neither articles nor stories.
func CategoryBreakdown(rep *domain.Report) []CategoryRow {
	var rows []CategoryRow

	for _, name := range domain.CategoryNames {
		row := categoryRow(rep, name)
		if row.TotalArticles == 0 && row.UniqueStories == 0 {
			continue
		}

		rows = append(rows, row)
	}

	return rows
}

// CategoryPie lists the fixed categories that have at least one article.
func CategoryPie(rep *domain.Report) []CategoryRow {
	var rows []CategoryRow

	for _, name := range domain.CategoryNames {
		if row := categoryRow(rep, name); row.TotalArticles > 0 {
			rows = append(rows, row)
		}
	}

	return rows
}

func categoryRow(rep *domain.Report, name string) CategoryRow {
	total, stories := CategoryTotals(rep.Category(name))

	return CategoryRow{
		Name:          name,
		Color:         domain.CategoryColor(name),
		TotalArticles: total,
		UniqueStories: stories,
	}
}
