package domain

import "time"

// Report is the precomputed news-aggregation document rendered by the dashboard.
// It is produced by an upstream clustering pipeline and is read-only here.
type Report struct {
	RunAt      string
	Stats      Stats
	Categories []Category // in document order
}

// Stats holds the pipeline-level counters. Nil means the counter was absent
// or not an integer, so callers fall back to counting articles.
type Stats struct {
	TotalInput      *int
	TotalAutomobile *int
}

// Category groups the stories the pipeline assigned to one category.
type Category struct {
	Name          string
	TotalArticles int
	UniqueStories *int // nil when absent; callers fall back to len(Stories)
	Stories       []Story
}

// Story is a cluster of articles covering the same event.
type Story struct {
	RepresentativeTitle string
	Summary             string
	Sources             []string
	StoryCount          int
	ClusterReason       string
	Articles            []Article
}

// Article is a single source article inside a story.
type Article struct {
	Title              string
	URL                string
	Source             string
	PublishedAt        string    // raw value as found in the document
	Published          time.Time // zero when PublishedAt is missing or unparseable
	ContentPreview     string
	IsRepresentative   bool
	AutoScore          float64
	CategoryConfidence float64
}

// PublishedDate returns the parsed publish time and whether one exists.
func (a Article) PublishedDate() (time.Time, bool) {
	return a.Published, !a.Published.IsZero()
}

// Category returns the named category, or an empty one when the report has none.
func (r *Report) Category(name string) Category {
	if r == nil {
		return Category{Name: name}
	}

	for _, c := range r.Categories {
		if c.Name == name {
			return c
		}
	}

	return Category{Name: name}
}
