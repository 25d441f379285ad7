package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"helpcenter/internal/app"
	"helpcenter/internal/domain"
	kbSvc "helpcenter/internal/domain/services/kb"
	"helpcenter/internal/httputil"
	"helpcenter/internal/service/richtext"
)

// APIHandler serves the JSON read API. Visibility follows the admin mode of
// the controller.
type APIHandler struct {
	ctrl     *app.Controller
	svc      app.Services
	exporter *richtext.MarkdownExporter
	logger   *slog.Logger
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(ctrl *app.Controller, svc app.Services, exporter *richtext.MarkdownExporter, logger *slog.Logger) *APIHandler {
	return &APIHandler{
		ctrl:     ctrl,
		svc:      svc,
		exporter: exporter,
		logger:   logger,
	}
}

func (h *APIHandler) isAdmin() bool {
	return h.ctrl.State().IsAdmin
}

func (h *APIHandler) requireAdmin() error {
	if !h.isAdmin() {
		return fmt.Errorf("%w: admin mode required", domain.ErrForbidden)
	}
	return nil
}

// HealthCheck reports liveness
// GET /health
func (h *APIHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"loading": h.ctrl.State().IsLoading,
	})
}

// ListArticles returns the visible articles matching q
// GET /api/articles?q=
func (h *APIHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := h.svc.Articles.SearchArticles(r.Context(), &kbSvc.SearchArticlesRequest{
		Query:            r.URL.Query().Get("q"),
		IncludeScheduled: h.isAdmin(),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, articles)
}

// GetArticle returns one article. Scheduled articles are hidden from viewers.
// GET /api/articles/{id}
func (h *APIHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	article, err := h.svc.Articles.GetArticle(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if !h.isAdmin() && !h.svc.Schedule.IsPublished(article) {
		handleError(w, r, fmt.Errorf("%w: article %s", domain.ErrNotFound, id))
		return
	}
	httputil.RespondJSON(w, http.StatusOK, article)
}

// ListUpdates returns the changelog feed newest first
// GET /api/updates
func (h *APIHandler) ListUpdates(w http.ResponseWriter, r *http.Request) {
	updates, err := h.svc.Updates.ListUpdates(r.Context(), h.isAdmin())
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, updates)
}

// ListScheduled returns articles waiting for their publish date
// GET /api/scheduled
func (h *APIHandler) ListScheduled(w http.ResponseWriter, r *http.Request) {
	if err := h.requireAdmin(); err != nil {
		handleError(w, r, err)
		return
	}
	articles, err := h.svc.Schedule.ListScheduled(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, articles)
}

// ListTrash returns the trash in the order items were trashed
// GET /api/trash
func (h *APIHandler) ListTrash(w http.ResponseWriter, r *http.Request) {
	if err := h.requireAdmin(); err != nil {
		handleError(w, r, err)
		return
	}
	items, err := h.svc.Trash.ListTrash(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, items)
}

// GetAnalytics returns per-article feedback rows
// GET /api/analytics
func (h *APIHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	if err := h.requireAdmin(); err != nil {
		handleError(w, r, err)
		return
	}
	stats, err := h.svc.Analytics.ArticleStats(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, stats)
}

// GetVocabulary returns the category and tag term sets
// GET /api/vocabulary
func (h *APIHandler) GetVocabulary(w http.ResponseWriter, r *http.Request) {
	vocab, err := h.svc.Vocabulary.Vocabulary(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, vocab)
}

// GetState returns the derived screen model
// GET /api/state
func (h *APIHandler) GetState(w http.ResponseWriter, r *http.Request) {
	screen, err := h.ctrl.Screen(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, screen)
}

// FeedbackRequest is a helpful/unhelpful vote
type FeedbackRequest struct {
	Helpful bool `json:"helpful"`
}

// RecordFeedback records a vote and returns the reply to show
// POST /api/articles/{id}/feedback
func (h *APIHandler) RecordFeedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	notice, err := h.ctrl.Feedback(r.Context(), r.PathValue("id"), req.Helpful)
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"notice": notice})
}

// LikeUpdate adds a like to a feed entry
// POST /api/updates/{id}/like
func (h *APIHandler) LikeUpdate(w http.ResponseWriter, r *http.Request) {
	update, err := h.ctrl.LikeUpdate(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, update)
}

// ExportMarkdown downloads an article as Markdown
// GET /articles/{id}/export.md
func (h *APIHandler) ExportMarkdown(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	article, err := h.svc.Articles.GetArticle(r.Context(), id)
	if err == nil && !h.isAdmin() && !h.svc.Schedule.IsPublished(article) {
		err = fmt.Errorf("%w: article %s", domain.ErrNotFound, id)
	}
	if err != nil {
		handleError(w, r, err)
		return
	}

	markdown, err := h.exporter.Export(article.Title, article.Content)
	if err != nil {
		handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="article-%s.md"`, article.ID))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(markdown))
}
