package analytics

import (
	"strconv"
	"strings"
	"time"

	"github.com/lueurxax/auto-news-dashboard/internal/core/domain"
	"github.com/lueurxax/auto-news-dashboard/internal/platform/textutil"
)

func articleDay(a domain.Article) (time.Time, bool) {
	t, ok := a.PublishedDate()
	if !ok {
		return time.Time{}, false
	}

	return textutil.DateOf(t), true
}

func joinComma(items []string) string {
	return strings.Join(items, ", ")
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
