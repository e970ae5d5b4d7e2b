package report

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/lueurxax/auto-news-dashboard/internal/core/domain"
	"github.com/lueurxax/auto-news-dashboard/internal/core/errors"
	"github.com/lueurxax/auto-news-dashboard/internal/platform/textutil"
)

// JSON field names of the report document.
const (
	fieldRunAt           = "run_at"
	fieldStats           = "stats"
	fieldTotalInput      = "total_input"
	fieldTotalAutomobile = "total_automobile"
	fieldCategories      = "categories"

	fieldTotalArticles = "total_articles"
	fieldUniqueStories = "unique_stories"
	fieldStories       = "stories"

	fieldRepresentativeTitle = "representative_title"
	fieldSummary             = "summary"
	fieldSources             = "sources"
	fieldStoryCount          = "story_count"
	fieldClusterReason       = "cluster_reason"
	fieldArticles            = "articles"

	fieldTitle              = "title"
	fieldURL                = "url"
	fieldSource             = "source"
	fieldPublishedAt        = "published_at"
	fieldContentPreview     = "content_preview"
	fieldIsRepresentative   = "is_representative"
	fieldAutoScore          = "auto_score"
	fieldCategoryConfidence = "category_confidence"
)

// Decode parses a report document. Only structural problems fail: invalid
// JSON or a top-level value that is not an object. Every field is optional and
// wrong-typed values fall back to their zero value.
func Decode(data []byte) (*domain.Report, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("decode report: malformed json: %w", errors.ErrReportInvalid)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("decode report: top-level value is not an object: %w", errors.ErrReportInvalid)
	}

	rep := &domain.Report{
		RunAt: textutil.Text(root.Get(fieldRunAt)),
	}

	if stats := root.Get(fieldStats); stats.IsObject() {
		rep.Stats = domain.Stats{
			TotalInput:      textutil.OptionalInt(stats.Get(fieldTotalInput)),
			TotalAutomobile: textutil.OptionalInt(stats.Get(fieldTotalAutomobile)),
		}
	}

	if cats := root.Get(fieldCategories); cats.IsObject() {
		cats.ForEach(func(key, value gjson.Result) bool {
			rep.Categories = append(rep.Categories, decodeCategory(key.String(), value))
			return true
		})
	}

	return rep, nil
}

func decodeCategory(name string, v gjson.Result) domain.Category {
	cat := domain.Category{Name: name}
	if !v.IsObject() {
		return cat
	}

	cat.TotalArticles = textutil.SafeInt(v.Get(fieldTotalArticles), 0)
	cat.UniqueStories = textutil.OptionalInt(v.Get(fieldUniqueStories))

	for _, s := range objects(v.Get(fieldStories)) {
		cat.Stories = append(cat.Stories, decodeStory(s))
	}

	return cat
}

func decodeStory(v gjson.Result) domain.Story {
	story := domain.Story{
		RepresentativeTitle: textutil.Text(v.Get(fieldRepresentativeTitle)),
		Summary:             textutil.Text(v.Get(fieldSummary)),
		StoryCount:          textutil.SafeInt(v.Get(fieldStoryCount), 0),
		ClusterReason:       textutil.Text(v.Get(fieldClusterReason)),
	}

	if sources := v.Get(fieldSources); sources.IsArray() {
		for _, s := range sources.Array() {
			story.Sources = append(story.Sources, textutil.Text(s))
		}
	}

	for _, a := range objects(v.Get(fieldArticles)) {
		story.Articles = append(story.Articles, decodeArticle(a))
	}

	return story
}

func decodeArticle(v gjson.Result) domain.Article {
	art := domain.Article{
		Title:              textutil.Text(v.Get(fieldTitle)),
		URL:                textutil.Text(v.Get(fieldURL)),
		Source:             textutil.Text(v.Get(fieldSource)),
		PublishedAt:        textutil.Text(v.Get(fieldPublishedAt)),
		ContentPreview:     textutil.Text(v.Get(fieldContentPreview)),
		IsRepresentative:   textutil.Truthy(v.Get(fieldIsRepresentative)),
		AutoScore:          textutil.SafeFloat(v.Get(fieldAutoScore), 0),
		CategoryConfidence: textutil.SafeFloat(v.Get(fieldCategoryConfidence), 0),
	}

	if t, ok := textutil.ParseDateTime(art.PublishedAt); ok {
		art.Published = t
	}

	return art
}

// objects returns the object elements of an array value, skipping anything else.
func objects(v gjson.Result) []gjson.Result {
	if !v.IsArray() {
		return nil
	}

	var out []gjson.Result

	for _, item := range v.Array() {
		if item.IsObject() {
			out = append(out, item)
		}
	}

	return out
}
