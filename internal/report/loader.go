// Package report loads the precomputed news-aggregation report from disk and
// exposes read-only traversals over it.
//
// The document is produced by an external clustering pipeline. It is re-read
// on every render pass, so the loader keeps no cache and holds no locks.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/lueurxax/auto-news-dashboard/internal/core/domain"
	"github.com/lueurxax/auto-news-dashboard/internal/core/errors"
	"github.com/lueurxax/auto-news-dashboard/internal/platform/textutil"
)

// DefaultFileName is the report file looked up in the working and executable directories.
const DefaultFileName = "results.json"

const logFieldPath = "path"

// Loader resolves the report path and decodes the file found there.
type Loader struct {
	envPath string
	workDir string
	appDir  string
	logger  *zerolog.Logger
}

// NewLoader creates a loader. envPath is the configured override and may be empty.
func NewLoader(envPath string, logger *zerolog.Logger) *Loader {
	l := &Loader{
		envPath: textutil.CleanText(envPath),
		logger:  logger,
	}

	if wd, err := os.Getwd(); err == nil {
		l.workDir = wd
	}

	if exe, err := os.Executable(); err == nil {
		l.appDir = filepath.Dir(exe)
	}

	return l
}

// WithDirs overrides the working and executable directories used for the
// default candidates. Empty values disable that candidate.
func (l *Loader) WithDirs(workDir, appDir string) *Loader {
	l.workDir = workDir
	l.appDir = appDir

	return l
}

// Path returns the file that Load would read, or "" when no candidate exists.
// An existing override path is used exclusively; a missing one falls through
// to the defaults.
func (l *Loader) Path() string {
	for _, candidate := range l.candidates() {
		if fileExists(candidate) {
			return candidate
		}
	}

	return ""
}

// Load reads and decodes the report. It returns errors.ErrReportNotFound when
// no candidate exists and errors.ErrReportInvalid when the chosen file cannot
// be read or decoded.
func (l *Loader) Load(ctx context.Context) (*domain.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load report: %w", err)
	}

	path := l.Path()
	if path == "" {
		reportLoadsTotal.WithLabelValues(loadResultNotFound).Inc()
		return nil, fmt.Errorf("load report: no %s found: %w", DefaultFileName, errors.ErrReportNotFound)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		reportLoadsTotal.WithLabelValues(loadResultInvalid).Inc()
		l.logger.Warn().Err(err).Str(logFieldPath, path).Msg("failed to read report")

		return nil, fmt.Errorf("load report %s: %v: %w", path, err, errors.ErrReportInvalid)
	}

	rep, err := Decode(data)
	if err != nil {
		reportLoadsTotal.WithLabelValues(loadResultInvalid).Inc()
		l.logger.Warn().Err(err).Str(logFieldPath, path).Msg("failed to decode report")

		return nil, fmt.Errorf("load report %s: %w", path, err)
	}

	reportLoadsTotal.WithLabelValues(loadResultOK).Inc()
	reportArticlesGauge.Set(float64(ArticleCount(rep)))

	l.logger.Debug().Str(logFieldPath, path).Int("categories", len(rep.Categories)).Msg("report loaded")

	return rep, nil
}

func (l *Loader) candidates() []string {
	if l.envPath != "" && fileExists(l.envPath) {
		return []string{l.envPath}
	}

	var out []string

	if l.workDir != "" {
		out = append(out, filepath.Join(l.workDir, DefaultFileName))
	}

	if l.appDir != "" {
		out = append(out, filepath.Join(l.appDir, DefaultFileName))
	}

	return out
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	return !info.IsDir()
}
