package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/auto-news-dashboard/internal/core/domain"
	"github.com/lueurxax/auto-news-dashboard/internal/core/errors"
)

const testFixture = "testdata/results.json"

func readFixture(t *testing.T) []byte {
	t.Helper()

	data, err := os.ReadFile(testFixture)
	require.NoError(t, err)

	return data
}

func writeReport(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func newTestLoader(envPath, workDir, appDir string) *Loader {
	logger := zerolog.Nop()
	return NewLoader(envPath, &logger).WithDirs(workDir, appDir)
}

func TestDecode_Fixture(t *testing.T) {
	rep, err := Decode(readFixture(t))
	require.NoError(t, err)

	require.Equal(t, "2026-01-15T08:30:00Z", rep.RunAt)
	require.NotNil(t, rep.Stats.TotalInput)
	require.Equal(t, 10, *rep.Stats.TotalInput)
	require.NotNil(t, rep.Stats.TotalAutomobile)
	require.Equal(t, 7, *rep.Stats.TotalAutomobile)

	names := make([]string, 0, len(rep.Categories))
	for _, c := range rep.Categories {
		names = append(names, c.Name)
	}

	require.Equal(t, []string{
		domain.CategoryTechnology,
		domain.CategoryCompetitor,
		"Weekend Reading",
		domain.CategoryExternal,
	}, names, "categories keep document order")

	tech := rep.Category(domain.CategoryTechnology)
	require.Len(t, tech.Stories, 2)
	require.Equal(t, 3, tech.TotalArticles)
	require.NotNil(t, tech.UniqueStories)
	require.Equal(t, 2, *tech.UniqueStories)

	first := tech.Stories[0]
	require.Equal(t, []string{"Reuters", "Bloomberg"}, first.Sources)
	require.Len(t, first.Articles, 2)
	require.True(t, first.Articles[1].IsRepresentative)
	require.InDelta(t, 0.9, first.Articles[0].AutoScore, 1e-9)

	published, ok := first.Articles[1].PublishedDate()
	require.True(t, ok)
	require.Equal(t, time.Date(2026, 1, 13, 9, 0, 0, 0, time.UTC), published)

	_, ok = tech.Stories[1].Articles[0].PublishedDate()
	require.False(t, ok, "invalid date is absent, not an error")

	comp := rep.Category(domain.CategoryCompetitor)
	require.Equal(t, 2, comp.TotalArticles, "numeric strings are coerced")
	require.Nil(t, comp.UniqueStories)
	require.Len(t, comp.Stories, 1, "non-object stories are skipped")
	require.Equal(t, 4, comp.Stories[0].StoryCount)
	require.Len(t, comp.Stories[0].Articles, 1, "non-object articles are skipped")

	ext := rep.Category(domain.CategoryExternal)
	require.Empty(t, ext.Stories)

	missing := rep.Category(domain.CategoryCorporate)
	require.Equal(t, domain.CategoryCorporate, missing.Name)
	require.Empty(t, missing.Stories)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "malformed", data: `{"run_at": `},
		{name: "array root", data: `[1, 2, 3]`},
		{name: "string root", data: `"hello"`},
		{name: "empty", data: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			require.Error(t, err)
			require.True(t, errors.Is(err, errors.ErrReportInvalid))
		})
	}
}

func TestDecode_WrongTypedFieldsDefault(t *testing.T) {
	rep, err := Decode([]byte(`{"run_at": 5, "stats": [], "categories": []}`))
	require.NoError(t, err)

	require.Equal(t, "5", rep.RunAt)
	require.Nil(t, rep.Stats.TotalInput)
	require.Empty(t, rep.Categories)
}

func TestLoader_Precedence(t *testing.T) {
	envDir := t.TempDir()
	workDir := t.TempDir()
	appDir := t.TempDir()

	envPath := writeReport(t, envDir, `{"run_at": "env"}`)
	writeReport(t, workDir, `{"run_at": "work"}`)
	writeReport(t, appDir, `{"run_at": "app"}`)

	ctx := context.Background()

	rep, err := newTestLoader(envPath, workDir, appDir).Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "env", rep.RunAt)

	rep, err = newTestLoader(filepath.Join(envDir, "missing.json"), workDir, appDir).Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "work", rep.RunAt, "missing override falls through")

	rep, err = newTestLoader("", "", appDir).Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "app", rep.RunAt)
}

func TestLoader_InvalidOverrideIsTerminal(t *testing.T) {
	envPath := writeReport(t, t.TempDir(), `not json`)
	workDir := t.TempDir()
	writeReport(t, workDir, `{"run_at": "work"}`)

	loader := newTestLoader(envPath, workDir, "")
	require.Equal(t, envPath, loader.Path())

	_, err := loader.Load(context.Background())
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrReportInvalid))
}

func TestLoader_NotFound(t *testing.T) {
	loader := newTestLoader("", t.TempDir(), t.TempDir())
	require.Empty(t, loader.Path())

	_, err := loader.Load(context.Background())
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrReportNotFound))
}

func TestLoader_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestLoader("", t.TempDir(), "").Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestEachArticleAndBounds(t *testing.T) {
	rep, err := Decode(readFixture(t))
	require.NoError(t, err)

	var categories []string

	EachArticle(rep, func(ref ArticleRef) bool {
		categories = append(categories, ref.Category)
		return true
	})

	require.Equal(t, []string{
		domain.CategoryTechnology,
		domain.CategoryTechnology,
		domain.CategoryTechnology,
		domain.CategoryCompetitor,
		"Weekend Reading",
	}, categories)
	require.Equal(t, 5, ArticleCount(rep))

	earliest, latest, ok := DateBounds(rep)
	require.True(t, ok)
	require.Equal(t, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), earliest)
	require.Equal(t, time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC), latest)
}

func TestDateBounds_NoDates(t *testing.T) {
	rep, err := Decode([]byte(`{"categories": {"X": {"stories": [{"articles": [{"title": "a"}]}]}}}`))
	require.NoError(t, err)

	_, _, ok := DateBounds(rep)
	require.False(t, ok)

	_, _, ok = DateBounds(nil)
	require.False(t, ok)
}

func TestEachArticle_StopsEarly(t *testing.T) {
	rep, err := Decode(readFixture(t))
	require.NoError(t, err)

	seen := 0

	EachArticle(rep, func(ArticleRef) bool {
		seen++
		return seen < 2
	})

	require.Equal(t, 2, seen)
}
