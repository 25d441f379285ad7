package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"helpcenter/internal/app"
	"helpcenter/internal/auth"
	"helpcenter/internal/domain"
	"helpcenter/internal/httputil"
	"helpcenter/internal/service/richtext/converter"
)

//go:embed templates/*.html
var templateFiles embed.FS

// fontSizes are the size steps offered by the toolbar.
var fontSizes = []int{1, 2, 3, 4, 5, 6, 7}

// PageHandler serves the HTML surface: one page rendering the current view
// and a form post per intent.
type PageHandler struct {
	ctrl       *app.Controller
	verifier   auth.AdminVerifier
	flashes    *FlashStore
	converters *converter.ConverterRegistry
	tmpl       *template.Template
	logger     *slog.Logger
}

// NewPageHandler parses the embedded templates. A nil verifier leaves the
// admin toggle open.
func NewPageHandler(
	ctrl *app.Controller,
	verifier auth.AdminVerifier,
	flashes *FlashStore,
	converters *converter.ConverterRegistry,
	logger *slog.Logger,
) (*PageHandler, error) {
	tmpl, err := template.New("pages").Funcs(templateFuncs).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &PageHandler{
		ctrl:       ctrl,
		verifier:   verifier,
		flashes:    flashes,
		converters: converters,
		tmpl:       tmpl,
		logger:     logger,
	}, nil
}

var templateFuncs = template.FuncMap{
	"content":  trustedContent,
	"datetime": datetimeValue,
	"when":     displayTime,
	"odd":      isOdd,
	"inc":      inc,
	"has":      slices.Contains[[]string, string],
}

// trustedContent marks stored markup as safe. Stored content is renderer
// output built from sanitised input.
func trustedContent(markup string) template.HTML {
	return template.HTML(markup)
}

func datetimeValue(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(time.Local).Format(datetimeLayout)
}

func displayTime(t time.Time) string {
	return t.In(time.Local).Format("02.01.2006 15:04")
}

func isOdd(i int) bool { return i%2 == 1 }

func inc(i int) int { return i + 1 }

type pageData struct {
	*app.Screen
	Flashes     []string
	AdminGate   bool
	FontSizes   []int
	ImportTypes string
}

type dialogData struct {
	*pendingDialog
}

type errorData struct {
	Status  int
	Message string
}

// render executes a template into a buffer first so a failure never leaves
// a half-written page.
func (h *PageHandler) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("template failed", "template", name, "error", err)
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (h *PageHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			"path", r.URL.Path,
			"request_id", httputil.GetRequestID(r),
			"error", err,
		)
	}
	h.render(w, status, "error", errorData{Status: status, Message: errorDetail(status, err)})
}

// done finishes a form post: it asks a pending dialog, reports an error or
// redirects back to the page.
func (h *PageHandler) done(w http.ResponseWriter, r *http.Request, dlg *formDialogs, err error) {
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	if dlg != nil && dlg.pending != nil {
		h.render(w, http.StatusOK, "dialog", dialogData{pendingDialog: dlg.pending})
		return
	}
	httputil.Redirect(w, r, "/")
}

func (h *PageHandler) notify(w http.ResponseWriter, r *http.Request, notice string) {
	if err := h.flashes.Add(w, r, notice); err != nil {
		h.logger.Warn("failed to store notice", "error", err)
	}
}

// Index renders the current view.
// GET /
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	screen, err := h.ctrl.Screen(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, http.StatusOK, "index", pageData{
		Screen:      screen,
		Flashes:     h.flashes.Pop(w, r),
		AdminGate:   h.verifier != nil,
		FontSizes:   fontSizes,
		ImportTypes: strings.Join(h.converters.SupportedExtensions(), ","),
	})
}

// ShowView navigates to a view.
// POST /view
func (h *PageHandler) ShowView(w http.ResponseWriter, r *http.Request) {
	h.done(w, r, nil, h.ctrl.ShowView(r.Context(), app.View(r.FormValue("view"))))
}

// Search sets the search query.
// POST /search
func (h *PageHandler) Search(w http.ResponseWriter, r *http.Request) {
	h.ctrl.SetQuery(strings.TrimSpace(r.FormValue("q")))
	httputil.Redirect(w, r, "/")
}

// ToggleCategory expands or collapses a sidebar category.
// POST /categories/toggle
func (h *PageHandler) ToggleCategory(w http.ResponseWriter, r *http.Request) {
	h.ctrl.ToggleCategory(r.FormValue("name"))
	httputil.Redirect(w, r, "/")
}

// SetAdmin switches admin mode. Switching on needs a valid admin token when
// the gate is configured.
// POST /admin
func (h *PageHandler) SetAdmin(w http.ResponseWriter, r *http.Request) {
	on := httputil.FormBool(r, "on")
	if on && h.verifier != nil {
		claims, err := h.verifier.VerifyToken(r.FormValue("token"))
		if err != nil {
			h.renderError(w, r, err)
			return
		}
		h.logger.Info("admin token accepted", "subject", claims.Subject)
	}
	h.ctrl.SetAdmin(on)
	httputil.Redirect(w, r, "/")
}

// OpenArticle shows an article.
// POST /articles/{id}/open
func (h *PageHandler) OpenArticle(w http.ResponseWriter, r *http.Request) {
	h.done(w, r, nil, h.ctrl.OpenArticle(r.Context(), r.PathValue("id")))
}

// NewArticle opens the editor on a blank article.
// POST /articles/new
func (h *PageHandler) NewArticle(w http.ResponseWriter, r *http.Request) {
	h.done(w, r, nil, h.ctrl.NewArticle(r.Context()))
}

// EditArticle opens the editor on an existing article.
// POST /articles/{id}/edit
func (h *PageHandler) EditArticle(w http.ResponseWriter, r *http.Request) {
	h.done(w, r, nil, h.ctrl.EditArticle(r.Context(), r.PathValue("id")))
}

// ArticleEditor handles every button of the article editor. The form is
// stored into the draft first, then op is applied.
// POST /editor/article
func (h *PageHandler) ArticleEditor(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		h.renderError(w, r, err)
		return
	}

	op := r.PostFormValue("op")
	if op == "cancel" {
		h.ctrl.Cancel()
		httputil.Redirect(w, r, "/")
		return
	}

	form, err := parseArticleForm(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	if err := h.ctrl.SyncArticleDraft(form); err != nil {
		h.renderError(w, r, err)
		return
	}

	ctx := r.Context()
	dlg := newFormDialogs(r)

	if cmd, ok, err := editorCommand(r, op); ok {
		if err == nil {
			err = h.ctrl.ArticleCommand(ctx, dlg, cmd)
		}
		h.done(w, r, dlg, err)
		return
	}

	if tag, found := strings.CutPrefix(op, "tag:"); found {
		h.done(w, r, nil, h.ctrl.ToggleDraftTag(tag))
		return
	}

	switch op {
	case "save":
		_, err = h.ctrl.SaveArticle(ctx)
	case "import":
		err = h.importFile(r)
	case "add_topic":
		err = h.ctrl.OpenModal(app.ModalAddTopic)
	case "add_tag":
		err = h.ctrl.OpenModal(app.ModalAddTag)
	case "", "sync":
	default:
		err = fmt.Errorf("%w: unknown editor action %q", domain.ErrValidation, op)
	}
	h.done(w, r, nil, err)
}

func (h *PageHandler) importFile(r *http.Request) error {
	header, data, err := readUpload(r, "import_file", maxImportSize)
	if err != nil {
		return err
	}
	return h.ctrl.ImportIntoDraft(r.Context(), header.Filename, data)
}

// Modal handles the add-topic/add-tag dialog.
// POST /editor/modal
func (h *PageHandler) Modal(w http.ResponseWriter, r *http.Request) {
	var err error
	switch r.FormValue("op") {
	case "submit":
		err = h.ctrl.SubmitModal(r.Context(), r.FormValue("name"))
	default:
		h.ctrl.CloseModal()
	}
	h.done(w, r, nil, err)
}

// NewUpdate opens the update editor.
// POST /updates/new
func (h *PageHandler) NewUpdate(w http.ResponseWriter, r *http.Request) {
	h.done(w, r, nil, h.ctrl.NewUpdate())
}

// UpdateEditor handles every button of the update editor.
// POST /editor/update
func (h *PageHandler) UpdateEditor(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		h.renderError(w, r, err)
		return
	}

	op := r.PostFormValue("op")
	if op == "cancel" {
		h.ctrl.Cancel()
		httputil.Redirect(w, r, "/")
		return
	}

	if err := h.ctrl.SyncUpdateDraft(parseUpdateForm(r)); err != nil {
		h.renderError(w, r, err)
		return
	}

	ctx := r.Context()
	dlg := newFormDialogs(r)

	if cmd, ok, err := editorCommand(r, op); ok {
		if err == nil {
			err = h.ctrl.UpdateCommand(ctx, dlg, cmd)
		}
		h.done(w, r, dlg, err)
		return
	}

	var err error
	switch op {
	case "save":
		_, err = h.ctrl.SaveUpdate(ctx)
	case "", "sync":
	default:
		err = fmt.Errorf("%w: unknown editor action %q", domain.ErrValidation, op)
	}
	h.done(w, r, nil, err)
}

// LikeUpdate adds a like to a feed entry.
// POST /updates/{id}/like
func (h *PageHandler) LikeUpdate(w http.ResponseWriter, r *http.Request) {
	_, err := h.ctrl.LikeUpdate(r.Context(), r.PathValue("id"))
	h.done(w, r, nil, err)
}

// TrashUpdate moves a feed entry to the trash after confirmation.
// POST /updates/{id}/trash
func (h *PageHandler) TrashUpdate(w http.ResponseWriter, r *http.Request) {
	dlg := newFormDialogs(r)
	_, err := h.ctrl.TrashUpdate(r.Context(), dlg, r.PathValue("id"))
	h.done(w, r, dlg, err)
}

// TrashArticle moves an article to the trash after confirmation.
// POST /articles/{id}/trash
func (h *PageHandler) TrashArticle(w http.ResponseWriter, r *http.Request) {
	dlg := newFormDialogs(r)
	_, err := h.ctrl.TrashArticle(r.Context(), dlg, r.PathValue("id"))
	h.done(w, r, dlg, err)
}

// PublishNow publishes a scheduled article.
// POST /articles/{id}/publish
func (h *PageHandler) PublishNow(w http.ResponseWriter, r *http.Request) {
	notice, err := h.ctrl.PublishNow(r.Context(), r.PathValue("id"))
	if err == nil {
		h.notify(w, r, notice)
	}
	h.done(w, r, nil, err)
}

// Feedback records a helpful/unhelpful vote.
// POST /articles/{id}/feedback
func (h *PageHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	notice, err := h.ctrl.Feedback(r.Context(), r.PathValue("id"), httputil.FormBool(r, "helpful"))
	if err == nil {
		h.notify(w, r, notice)
	}
	h.done(w, r, nil, err)
}

// Versions shows an article's version history.
// POST /articles/{id}/versions
func (h *PageHandler) Versions(w http.ResponseWriter, r *http.Request) {
	h.done(w, r, nil, h.ctrl.OpenVersionHistory(r.Context(), r.PathValue("id")))
}

// RestoreVersion makes a prior version current.
// POST /articles/{id}/versions/{index}/restore
func (h *PageHandler) RestoreVersion(w http.ResponseWriter, r *http.Request) {
	index, err := httputil.PathInt(r, "index")
	if err == nil {
		_, err = h.ctrl.RestoreVersion(r.Context(), r.PathValue("id"), index)
	}
	h.done(w, r, nil, err)
}

// RestoreTrash puts a trash entry back.
// POST /trash/{index}/restore
func (h *PageHandler) RestoreTrash(w http.ResponseWriter, r *http.Request) {
	index, err := httputil.PathInt(r, "index")
	if err == nil {
		_, err = h.ctrl.RestoreTrash(r.Context(), index)
	}
	h.done(w, r, nil, err)
}

// PurgeTrash permanently deletes a trash entry after confirmation.
// POST /trash/{index}/purge
func (h *PageHandler) PurgeTrash(w http.ResponseWriter, r *http.Request) {
	index, err := httputil.PathInt(r, "index")
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	dlg := newFormDialogs(r)
	_, err = h.ctrl.PurgeTrash(r.Context(), dlg, index)
	h.done(w, r, dlg, err)
}
