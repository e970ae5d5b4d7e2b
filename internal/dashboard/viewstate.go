package dashboard

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/lueurxax/auto-news-dashboard/internal/analytics"
	"github.com/lueurxax/auto-news-dashboard/internal/core/domain"
	"github.com/lueurxax/auto-news-dashboard/internal/platform/textutil"
)

// Feed actions accepted by POST /feed.
const (
	actionPrev  = "prev"
	actionNext  = "next"
	actionApply = "apply"
	actionReset = "reset"
)

const filterDateLayout = "2006-01-02"

// ViewState is the per-session state of the interactive widgets.
type ViewState struct {
	Pager          analytics.FeedPager
	From           time.Time
	To             time.Time
	Category       string
	Scatter        []string
	ScatterSet     bool
	DetailCategory string
}

func (v ViewState) clone() ViewState {
	if v.Scatter != nil {
		v.Scatter = append([]string(nil), v.Scatter...)
	}

	return v
}

// FeedFilter returns the analytics filter for the current state.
func (v ViewState) FeedFilter() analytics.FeedFilter {
	return analytics.FeedFilter{
		From:     v.From,
		To:       v.To,
		Category: v.Category,
	}
}

// ScatterSelection returns the selected scatter categories, defaulting to
// every available category until the user picks explicitly.
func (v ViewState) ScatterSelection(available []string) []string {
	if !v.ScatterSet {
		return available
	}

	return v.Scatter
}

// FeedForm is the submitted feed filter form.
type FeedForm struct {
	Action   string
	From     string
	To       string
	Category string
}

// ApplyFeed updates the feed state. The page index is kept across filter
// changes and clamped against rows, the number of rows under the filter in
// effect once the action is applied. Reset clears the filters and returns to
// the first page.
func (v *ViewState) ApplyFeed(form FeedForm, rows func(analytics.FeedFilter) int) error {
	switch form.Action {
	case actionPrev:
		v.Pager.Prev(rows(v.FeedFilter()))
	case actionNext:
		v.Pager.Next(rows(v.FeedFilter()))
	case actionReset:
		v.From, v.To, v.Category = time.Time{}, time.Time{}, ""
		v.Pager.Reset()
	case actionApply, "":
		from, to, err := parseRange(form.From, form.To)
		if err != nil {
			return err
		}

		v.From, v.To = from, to
		v.Category = normalizeCategory(form.Category)
	default:
		return errUnknownAction
	}

	v.Pager.Clamp(rows(v.FeedFilter()))

	return nil
}

// ApplyView updates the scatter selection and the story browser category.
// Unknown categories are dropped.
func (v *ViewState) ApplyView(scatter []string, scatterSubmitted bool, detail string) {
	if scatterSubmitted {
		v.Scatter = v.Scatter[:0:0]

		for _, name := range scatter {
			name = strings.TrimSpace(name)
			if domain.IsKnownCategory(name) {
				v.Scatter = append(v.Scatter, name)
			}
		}

		v.ScatterSet = true
	}

	if detail = strings.TrimSpace(detail); detail != "" {
		v.DetailCategory = detail
	}
}

// parseRange parses the feed date filter. Both bounds must be given for the
// range to apply; reversed bounds are swapped.
func parseRange(fromText, toText string) (time.Time, time.Time, error) {
	fromText, toText = strings.TrimSpace(fromText), strings.TrimSpace(toText)
	if fromText == "" || toText == "" {
		return time.Time{}, time.Time{}, nil
	}

	from, err := parseFilterDate(fromText)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	to, err := parseFilterDate(toText)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if to.Before(from) {
		from, to = to, from
	}

	return from, to, nil
}

func parseFilterDate(value string) (time.Time, error) {
	if t, ok := textutil.ParseDate(value); ok {
		return t, nil
	}

	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}, errInvalidDate
	}

	return textutil.DateOf(t), nil
}

func normalizeCategory(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || name == domain.AllCategories {
		return ""
	}

	return name
}

func formatFilterDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(filterDateLayout)
}
