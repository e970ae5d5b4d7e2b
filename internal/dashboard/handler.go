// Package dashboard serves the login-gated analytics dashboard over HTTP.
//
// The handler re-reads the report on every page render and keeps only the
// session store and the login rate limiters in memory. Every route answers
// with HTML for browsers and JSON for API clients.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lueurxax/auto-news-dashboard/internal/analytics"
	"github.com/lueurxax/auto-news-dashboard/internal/core/domain"
	"github.com/lueurxax/auto-news-dashboard/internal/core/errors"
	"github.com/lueurxax/auto-news-dashboard/internal/platform/config"
)

const (
	sessionCookieName = "dashboard_session"
	sessionCookiePath = "/"
	maxBodyBytes      = 1 << 16

	// Route path constants.
	pathIndex  = "/"
	pathLogin  = "/login"
	pathLogout = "/logout"
	pathFeed   = "/feed"
	pathView   = "/view"

	// Route labels for metrics and logs.
	routeIndex    = "index"
	routeLogin    = "login"
	routeLogout   = "logout"
	routeFeed     = "feed"
	routeView     = "view"
	routeNotFound = "not_found"

	// Form field names.
	formUsername  = "username"
	formPassword  = "password"
	formAction    = "action"
	formFrom      = "from"
	formTo        = "to"
	formCategory  = "category"
	formScatter   = "scatter"
	formScatterOn = "scatter_submitted"
	formDetail    = "detail"

	// Error title constants.
	errTitleNotFound       = "Not Found"
	errTitleMethodNotAllow = "Method Not Allowed"
	errTitleBadRequest     = "Bad Request"
	errTitleUnauthorized   = "Unauthorized"
	errTitleTooManyReqs    = "Too Many Requests"

	// Error message constants.
	errMsgLoginRequired      = "Login required."
	errMsgInvalidCredentials = "Invalid credentials"
	errMsgNoData             = "No data available. Place a results.json next to the service or set RESULTS_JSON_PATH."
	errMsgRateLimited        = "Too many login attempts. Please wait before trying again."

	// Content type constants.
	contentTypeHeader = "Content-Type"
	contentTypeHTML   = "text/html; charset=utf-8"
	contentTypeJSON   = "application/json; charset=utf-8"

	// Log field names.
	logFieldRoute    = "route"
	logFieldRemoteIP = "remote_ip"
	logFieldStatus   = "status"
)

// Static errors for err113 compliance.
var (
	errUnknownAction = fmt.Errorf("unknown feed action: %w", errors.ErrInvalidInput)
	errInvalidDate   = fmt.Errorf("invalid date: %w", errors.ErrInvalidInput)
)

// ReportSource loads the current report.
type ReportSource interface {
	Load(ctx context.Context) (*domain.Report, error)
}

// Handler serves the dashboard, its login gate and its JSON API.
type Handler struct {
	cfg         *config.Config
	source      ReportSource
	credentials Credentials
	sessions    *SessionStore
	tokens      *TokenService
	limiter     *loginLimiter
	renderer    *Renderer
	logger      *zerolog.Logger
	now         func() time.Time
}

// NewHandler creates a dashboard handler.
func NewHandler(cfg *config.Config, source ReportSource, logger *zerolog.Logger) (*Handler, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	return &Handler{
		cfg:    cfg,
		source: source,
		credentials: Credentials{
			Username: cfg.Auth.Username,
			Password: cfg.Auth.Password,
		},
		sessions: NewSessionStore(cfg.Auth.SessionTTL),
		tokens:   NewTokenService(cfg.Auth.SessionSecret),
		limiter:  newLoginLimiter(cfg.Auth.LoginRatePerMin, cfg.Auth.LoginRateBurst),
		renderer: renderer,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// ServeHTTP routes requests to dashboard endpoints.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	w.Header().Set("X-Robots-Tag", "noindex, nofollow")
	w.Header().Set("Referrer-Policy", "no-referrer")
	w.Header().Set("Cache-Control", "private, no-store")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	route, status := h.dispatch(w, r)

	h.recordMetrics(route, status, start)
}

// dispatch handles route matching and dispatches to the appropriate handler.
func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request) (route string, status int) {
	switch strings.TrimSuffix(r.URL.Path, "/") {
	case "":
		return routeIndex, h.handleIndex(w, r)
	case pathLogin:
		return routeLogin, h.handleLogin(w, r)
	case pathLogout:
		return routeLogout, h.handleLogout(w, r)
	case pathFeed:
		return routeFeed, h.handleFeed(w, r)
	case pathView:
		return routeView, h.handleView(w, r)
	default:
		return routeNotFound, h.writeError(w, r, http.StatusNotFound, errTitleNotFound, "Unknown dashboard endpoint.")
	}
}

// Sweep drops expired sessions and idle login limiters.
func (h *Handler) Sweep(_ context.Context) {
	sessions := h.sessions.Prune()
	limiters := h.limiter.prune()

	activeSessions.Set(float64(h.sessions.Len()))

	if sessions > 0 || limiters > 0 {
		h.logger.Debug().Int("sessions", sessions).Int("limiters", limiters).Msg("swept idle state")
	}
}

// recordMetrics records request metrics.
func (h *Handler) recordMetrics(route string, status int, start time.Time) {
	latencyHistogram.WithLabelValues(route).Observe(time.Since(start).Seconds())
	requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) int {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return h.writeError(w, r, http.StatusMethodNotAllowed, errTitleMethodNotAllow, "Use GET to view the dashboard.")
	}

	sess, ok := h.currentSession(r)
	if !ok {
		return h.loginRequired(w, r)
	}

	rep, err := h.source.Load(r.Context())
	if err != nil {
		return h.writeNoData(w, r, err)
	}

	state := sess.View
	page := buildPage(rep, &state, pageOptions{
		title:       h.cfg.Report.Title,
		username:    sess.Username,
		sourcesTopN: h.cfg.Report.SourcesTopN,
		now:         h.now(),
	})

	// Persist the clamped pager unless a concurrent request changed the filter.
	if err := h.sessions.UpdateView(sess.ID, func(v *ViewState) {
		if v.FeedFilter() == state.FeedFilter() {
			v.Pager.Clamp(page.Feed.TotalRows)
		}
	}); err != nil {
		return h.loginRequired(w, r)
	}

	if !wantsHTML(r) {
		return h.writeJSON(w, http.StatusOK, page)
	}

	w.Header().Set(contentTypeHeader, contentTypeHTML)
	w.WriteHeader(http.StatusOK)

	if err := h.renderer.Render(w, tmplIndex, page); err != nil {
		// Can't render error page since we already started writing
		h.logger.Error().Err(err).Str(logFieldRoute, routeIndex).Msg("failed to render dashboard")
	}

	return http.StatusOK
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) int {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if _, ok := h.currentSession(r); ok {
			http.Redirect(w, r, pathIndex, http.StatusSeeOther)
			return http.StatusSeeOther
		}

		return h.renderLogin(w, r, http.StatusOK, "", "")
	case http.MethodPost:
		return h.submitLogin(w, r)
	default:
		return h.writeError(w, r, http.StatusMethodNotAllowed, errTitleMethodNotAllow, "Use GET or POST to login.")
	}
}

func (h *Handler) submitLogin(w http.ResponseWriter, r *http.Request) int {
	clientIP := remoteIP(r, h.cfg.Auth.TrustProxyHeaders)

	if !h.limiter.allow(clientIP) {
		loginAttemptsTotal.WithLabelValues(loginResultLimited).Inc()
		h.logger.Warn().Err(errors.ErrRateLimited).Str(logFieldRemoteIP, clientIP).Msg("login rejected")

		return h.writeError(w, r, http.StatusTooManyRequests, errTitleTooManyReqs, errMsgRateLimited)
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return h.writeError(w, r, http.StatusBadRequest, errTitleBadRequest, "Invalid form.")
	}

	username := r.PostForm.Get(formUsername)

	if err := h.credentials.Check(username, r.PostForm.Get(formPassword)); err != nil {
		loginAttemptsTotal.WithLabelValues(loginResultInvalid).Inc()
		h.logger.Info().Str(logFieldRemoteIP, clientIP).Msg("invalid login attempt")

		if !wantsHTML(r) {
			return h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": errMsgInvalidCredentials})
		}

		return h.renderLogin(w, r, http.StatusUnauthorized, username, errMsgInvalidCredentials)
	}

	sess := h.sessions.Create(h.credentials.Username)
	h.setSessionCookie(w, h.tokens.Generate(sess.ID, sess.ExpiresAt), sess.ExpiresAt)

	loginAttemptsTotal.WithLabelValues(loginResultOK).Inc()
	h.logger.Info().Str(logFieldRemoteIP, clientIP).Msg("dashboard login")

	if !wantsHTML(r) {
		return h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}

	http.Redirect(w, r, pathIndex, http.StatusSeeOther)

	return http.StatusSeeOther
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) int {
	if r.Method != http.MethodPost {
		return h.writeError(w, r, http.StatusMethodNotAllowed, errTitleMethodNotAllow, "Use POST to logout.")
	}

	if sess, ok := h.currentSession(r); ok {
		h.sessions.Delete(sess.ID)
	}

	h.clearSessionCookie(w)

	if !wantsHTML(r) {
		return h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}

	http.Redirect(w, r, pathLogin, http.StatusSeeOther)

	return http.StatusSeeOther
}

func (h *Handler) handleFeed(w http.ResponseWriter, r *http.Request) int {
	sess, status, ok := h.authorizeForm(w, r)
	if !ok {
		return status
	}

	form := FeedForm{
		Action:   strings.ToLower(strings.TrimSpace(r.PostForm.Get(formAction))),
		From:     r.PostForm.Get(formFrom),
		To:       r.PostForm.Get(formTo),
		Category: r.PostForm.Get(formCategory),
	}

	rep, err := h.source.Load(r.Context())
	if err != nil {
		return h.writeNoData(w, r, err)
	}

	rowCount := func(f analytics.FeedFilter) int {
		return len(analytics.FeedRows(rep, f))
	}

	var applyErr error

	if err := h.sessions.UpdateView(sess.ID, func(v *ViewState) {
		applyErr = v.ApplyFeed(form, rowCount)
	}); err != nil {
		return h.loginRequired(w, r)
	}

	if applyErr != nil {
		return h.writeError(w, r, http.StatusBadRequest, errTitleBadRequest, applyErr.Error())
	}

	return h.afterUpdate(w, r, sess.ID)
}

func (h *Handler) handleView(w http.ResponseWriter, r *http.Request) int {
	sess, status, ok := h.authorizeForm(w, r)
	if !ok {
		return status
	}

	_, scatterSubmitted := r.PostForm[formScatterOn]
	if _, ok := r.PostForm[formScatter]; ok {
		scatterSubmitted = true
	}

	if err := h.sessions.UpdateView(sess.ID, func(v *ViewState) {
		v.ApplyView(r.PostForm[formScatter], scatterSubmitted, r.PostForm.Get(formDetail))
	}); err != nil {
		return h.loginRequired(w, r)
	}

	return h.afterUpdate(w, r, sess.ID)
}

// authorizeForm checks method and session and parses the posted form.
func (h *Handler) authorizeForm(w http.ResponseWriter, r *http.Request) (Session, int, bool) {
	if r.Method != http.MethodPost {
		return Session{}, h.writeError(w, r, http.StatusMethodNotAllowed, errTitleMethodNotAllow, "Use POST."), false
	}

	sess, ok := h.currentSession(r)
	if !ok {
		return Session{}, h.loginRequired(w, r), false
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return Session{}, h.writeError(w, r, http.StatusBadRequest, errTitleBadRequest, "Invalid form."), false
	}

	return sess, 0, true
}

// afterUpdate redirects browsers back to the dashboard and answers API
// clients with the updated view state.
func (h *Handler) afterUpdate(w http.ResponseWriter, r *http.Request, id uuid.UUID) int {
	if wantsHTML(r) {
		http.Redirect(w, r, pathIndex, http.StatusSeeOther)
		return http.StatusSeeOther
	}

	sess, err := h.sessions.Get(id)
	if err != nil {
		return h.loginRequired(w, r)
	}

	return h.writeJSON(w, http.StatusOK, viewStateResponse(sess.View))
}

// ViewStateResponse is the JSON form of a session's view state.
type ViewStateResponse struct {
	Page           int      `json:"page"`
	From           string   `json:"from,omitempty"`
	To             string   `json:"to,omitempty"`
	Category       string   `json:"category"`
	Scatter        []string `json:"scatter,omitempty"`
	DetailCategory string   `json:"detail_category,omitempty"`
}

func viewStateResponse(v ViewState) ViewStateResponse {
	category := v.Category
	if category == "" {
		category = domain.AllCategories
	}

	return ViewStateResponse{
		Page:           v.Pager.Page,
		From:           formatFilterDate(v.From),
		To:             formatFilterDate(v.To),
		Category:       category,
		Scatter:        v.Scatter,
		DetailCategory: v.DetailCategory,
	}
}

// currentSession resolves the session cookie to a live session.
func (h *Handler) currentSession(r *http.Request) (Session, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return Session{}, false
	}

	payload, err := h.tokens.Verify(cookie.Value)
	if err != nil {
		h.logger.Debug().Err(err).Msg("rejected session token")
		return Session{}, false
	}

	sess, err := h.sessions.Get(payload.SessionID)
	if err != nil {
		h.logger.Debug().Err(err).Msg("session lookup failed")
		return Session{}, false
	}

	return sess, true
}

func (h *Handler) loginRequired(w http.ResponseWriter, r *http.Request) int {
	if wantsHTML(r) {
		http.Redirect(w, r, pathLogin, http.StatusSeeOther)
		return http.StatusSeeOther
	}

	return h.writeError(w, r, http.StatusUnauthorized, errTitleUnauthorized, errMsgLoginRequired)
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     sessionCookiePath,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.cfg.Auth.CookieSecure,
		Expires:  expires,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     sessionCookiePath,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.cfg.Auth.CookieSecure,
		MaxAge:   -1,
	})
}

func (h *Handler) renderLogin(w http.ResponseWriter, r *http.Request, status int, username, message string) int {
	if !wantsHTML(r) {
		if message == "" {
			return h.writeError(w, r, http.StatusUnauthorized, errTitleUnauthorized, errMsgLoginRequired)
		}

		return h.writeJSON(w, status, map[string]string{"error": message})
	}

	w.Header().Set(contentTypeHeader, contentTypeHTML)
	w.WriteHeader(status)

	if err := h.renderer.Render(w, tmplLogin, LoginData{
		Title:    h.cfg.Report.Title,
		Username: username,
		Error:    message,
	}); err != nil {
		h.logger.Error().Err(err).Msg("failed to render login page")
	}

	return status
}

func (h *Handler) writeNoData(w http.ResponseWriter, r *http.Request, err error) int {
	switch {
	case errors.Is(err, errors.ErrReportNotFound):
		h.logger.Warn().Err(err).Msg("report not found")
	case errors.Is(err, errors.ErrReportInvalid):
		h.logger.Error().Err(err).Msg("report invalid")
	default:
		h.logger.Error().Err(err).Msg("report load failed")
	}

	status := http.StatusServiceUnavailable

	if !wantsHTML(r) {
		return h.writeJSON(w, status, map[string]string{"error": errMsgNoData})
	}

	w.Header().Set(contentTypeHeader, contentTypeHTML)
	w.WriteHeader(status)

	if err := h.renderer.Render(w, tmplNoData, NoDataData{
		Title:   h.cfg.Report.Title,
		Message: errMsgNoData,
	}); err != nil {
		h.logger.Error().Err(err).Msg("failed to render no-data page")
	}

	return status
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) int {
	w.Header().Set(contentTypeHeader, contentTypeJSON)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Int(logFieldStatus, status).Msg("failed to encode response")
	}

	return status
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, title, message string) int {
	if wantsHTML(r) {
		w.Header().Set(contentTypeHeader, contentTypeHTML)
		w.WriteHeader(status)

		if err := h.renderer.Render(w, tmplError, ErrorData{
			Title:   title,
			Code:    status,
			Message: message,
		}); err != nil {
			h.logger.Error().Err(err).Msg("failed to render error page")
		}

		return status
	}

	return h.writeJSON(w, status, map[string]string{"error": message})
}

// wantsHTML picks the response format: an explicit format parameter wins,
// then the Accept header.
func wantsHTML(r *http.Request) bool {
	switch strings.ToLower(r.URL.Query().Get("format")) {
	case "json":
		return false
	case "html":
		return true
	}

	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
