package dashboard

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lueurxax/auto-news-dashboard/internal/core/domain"
	"github.com/lueurxax/auto-news-dashboard/internal/platform/textutil"
)

// Template names.
const (
	tmplIndex  = "index.html"
	tmplLogin  = "login.html"
	tmplNoData = "nodata.html"
	tmplError  = "error.html"
)

const (
	fmtCardDate    = "02 Jan 2006"
	fmtTickerClock = "January 02, 2006 • 03:04 PM"
	unknownDate    = "Unknown date"
)

// funnelColors shade the pipeline stages from dark to light.
var funnelColors = []string{
	"linear-gradient(135deg, #1e3a8a, #1d4ed8)",
	"linear-gradient(135deg, #1d4ed8, #2563eb)",
	"linear-gradient(135deg, #2563eb, #3b82f6)",
	"linear-gradient(135deg, #3b82f6, #60a5fa)",
}

//go:embed templates/*.html
var templateFS embed.FS

var countPrinter = message.NewPrinter(language.English)

var templateFuncs = template.FuncMap{
	"formatCount": func(n int) string {
		return countPrinter.Sprintf("%d", n)
	},
	"formatCardDate": func(t time.Time) string {
		if t.IsZero() {
			return unknownDate
		}
		return t.Format(fmtCardDate)
	},
	"formatClock": func(t time.Time) string {
		return t.Format(fmtTickerClock)
	},
	"truncate": func(s string, maxRunes int) string {
		return textutil.TruncateEllipsis(s, maxRunes)
	},
	"cut": func(s string, maxRunes int) string {
		return textutil.Truncate(s, maxRunes)
	},
	"funnelColor": func(i int) template.CSS {
		//nolint:gosec // fixed palette
		return template.CSS(funnelColors[i%len(funnelColors)])
	},
	"inc": func(n int) int {
		return n + 1
	},
	"categoryColor": domain.CategoryColor,
	"join":          strings.Join,
	"json": func(v any) (template.JS, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("marshal chart data: %w", err)
		}

		//nolint:gosec // json.Marshal escapes <, > and & for script contexts
		return template.JS(b), nil
	},
}

// Renderer renders the dashboard HTML templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded dashboard templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("dashboard").
		Funcs(templateFuncs).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse dashboard templates: %w", err)
	}

	return &Renderer{tmpl: tmpl}, nil
}

// Render renders a named template.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	if err := r.tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("execute template %s: %w", name, err)
	}

	return nil
}

// LoginData is rendered by the login form.
type LoginData struct {
	Title    string
	Username string
	Error    string
}

// NoDataData is rendered when no report can be loaded.
type NoDataData struct {
	Title   string
	Message string
}

// ErrorData is rendered by the error page.
type ErrorData struct {
	Title   string
	Code    int
	Message string
}
