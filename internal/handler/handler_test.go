package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpcenter/internal/app"
	"helpcenter/internal/auth"
	rtModel "helpcenter/internal/domain/models/richtext"
	kbSvc "helpcenter/internal/domain/services/kb"
	"helpcenter/internal/repository/memory"
	"helpcenter/internal/seed"
	kbService "helpcenter/internal/service/kb"
	"helpcenter/internal/service/richtext"
	"helpcenter/internal/service/richtext/converter"
)

const testAdminSecret = "test-admin-secret"

type testServer struct {
	mux  *http.ServeMux
	ctrl *app.Controller
}

// newTestServer wires the handlers over the default seed data. A non-empty
// secret turns on the admin gate.
func newTestServer(t *testing.T, secret string) *testServer {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	cfg := &memory.RepositoryConfig{Store: memory.NewStore(), Logger: logger}
	articleRepo := memory.NewArticleRepository(cfg)
	updateRepo := memory.NewUpdateRepository(cfg)
	trashRepo := memory.NewTrashRepository(cfg)
	vocabRepo := memory.NewVocabularyRepository(cfg)
	txManager := memory.NewTransactionManager(cfg.Store)
	analyzer := richtext.NewContentAnalyzer()
	parser := richtext.NewParser()
	clock := kbSvc.ClockFunc(time.Now)
	converters := converter.NewConverterRegistry()

	svc := app.Services{
		Articles:   kbService.NewArticleService(articleRepo, clock, analyzer, logger),
		Updates:    kbService.NewUpdateService(updateRepo, clock, logger),
		Trash:      kbService.NewTrashService(articleRepo, updateRepo, trashRepo, txManager, clock, logger),
		Schedule:   kbService.NewScheduleService(articleRepo, clock),
		Versions:   kbService.NewVersionService(articleRepo, txManager, logger),
		Vocabulary: kbService.NewVocabularyService(vocabRepo, logger),
		Analytics:  kbService.NewAnalyticsService(articleRepo, clock, analyzer, logger),
		Converters: converters,
		Parser:     parser,
	}

	data, err := seed.Default()
	require.NoError(t, err)
	loader := seed.NewLoader(articleRepo, updateRepo, vocabRepo, txManager, parser, kbService.FormatRussianDate, logger)

	ctrl := app.NewController(svc, data.Emojis, logger)
	ctrl.LoadAfter(context.Background(), 0, func(ctx context.Context) error {
		return loader.Load(ctx, data, clock.Now())
	})
	t.Cleanup(ctrl.Close)

	select {
	case <-ctrl.Loaded():
	case <-time.After(5 * time.Second):
		t.Fatal("seed data never loaded")
	}

	var verifier auth.AdminVerifier
	if secret != "" {
		verifier, err = auth.NewHMACVerifier(secret, logger)
		require.NoError(t, err)
	}

	pages, err := NewPageHandler(ctrl, verifier, NewFlashStore("flash-secret-0123456789abcdef", false), converters, logger)
	require.NoError(t, err)
	api := NewAPIHandler(ctrl, svc, richtext.NewMarkdownExporter(), logger)

	mux := http.NewServeMux()
	RegisterRoutes(mux, pages, api)
	return &testServer{mux: mux, ctrl: ctrl}
}

func (s *testServer) get(t *testing.T, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) post(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) admin(t *testing.T) {
	t.Helper()
	s.ctrl.SetAdmin(true)
}

func TestIndexRendersFeed(t *testing.T) {
	s := newTestServer(t, "")

	rec := s.get(t, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "История обновлений")
	assert.Contains(t, body, "Начисления в проектах")
	assert.Contains(t, body, "Включить Админ")
	assert.NotContains(t, body, "Корзина (")
}

func TestSetAdmin(t *testing.T) {
	t.Run("open gate", func(t *testing.T) {
		s := newTestServer(t, "")

		rec := s.post(t, "/admin", url.Values{"on": {"true"}})

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.True(t, s.ctrl.State().IsAdmin)
		assert.Contains(t, s.get(t, "/").Body.String(), "🛡️ Админ: ВКЛ")
	})

	t.Run("gate rejects missing token", func(t *testing.T) {
		s := newTestServer(t, testAdminSecret)

		rec := s.post(t, "/admin", url.Values{"on": {"true"}})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, s.ctrl.State().IsAdmin)
	})

	t.Run("gate accepts signed token", func(t *testing.T) {
		s := newTestServer(t, testAdminSecret)
		token, err := auth.SignAdminToken(testAdminSecret, "ops", time.Hour)
		require.NoError(t, err)

		rec := s.post(t, "/admin", url.Values{"on": {"true"}, "token": {token}})

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.True(t, s.ctrl.State().IsAdmin)

		s.post(t, "/admin", url.Values{"on": {"false"}})
		assert.False(t, s.ctrl.State().IsAdmin)
	})
}

func TestTrashArticleAsksForConfirmation(t *testing.T) {
	s := newTestServer(t, "")
	s.admin(t)

	rec := s.post(t, "/articles/1/trash", url.Values{})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, app.ConfirmTrashArticle)
	assert.Contains(t, body, `action="/articles/1/trash"`)
	assert.Contains(t, body, `name="confirm"`)
	assert.Equal(t, http.StatusOK, s.get(t, "/api/articles/1").Code)

	rec = s.post(t, "/articles/1/trash", url.Values{"confirm": {"no"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, http.StatusOK, s.get(t, "/api/articles/1").Code)

	rec = s.post(t, "/articles/1/trash", url.Values{"confirm": {"yes"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, http.StatusNotFound, s.get(t, "/api/articles/1").Code)

	rec = s.get(t, "/api/trash")
	require.Equal(t, http.StatusOK, rec.Code)
	var items []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "article", items[0]["kind"])
}

func TestVideoPromptReplaysEditorForm(t *testing.T) {
	s := newTestServer(t, "")
	s.admin(t)
	require.Equal(t, http.StatusSeeOther, s.post(t, "/articles/new", url.Values{}).Code)

	form := url.Values{
		"op":       {"video"},
		"title":    {"Видео-инструкция"},
		"category": {"API"},
		"content":  {"<p>Текст</p>"},
	}
	rec := s.post(t, "/editor/article", form)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, app.PromptVideoURL)
	assert.Contains(t, body, `name="prompt_answer"`)
	assert.Contains(t, body, `value="Видео-инструкция"`)

	form.Set("prompt", "ok")
	form.Set("prompt_answer", "https://www.youtube.com/embed/abc")
	rec = s.post(t, "/editor/article", form)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	draft := s.ctrl.State().ArticleDraft
	require.NotNil(t, draft)
	assert.Equal(t, "Видео-инструкция", draft.Title)
	assert.True(t, slices.ContainsFunc(draft.Doc.Blocks, func(b rtModel.Block) bool {
		return b.Kind == rtModel.BlockVideo && b.Src == "https://www.youtube.com/embed/abc"
	}))
}

func TestArticleEditorSave(t *testing.T) {
	s := newTestServer(t, "")
	s.admin(t)
	require.Equal(t, http.StatusSeeOther, s.post(t, "/articles/new", url.Values{}).Code)

	rec := s.post(t, "/editor/article", url.Values{
		"op":       {"save"},
		"title":    {"Импорт товаров"},
		"category": {"Настройки"},
		"tags":     {"Сетка"},
		"content":  {"<p>Загрузите файл <script>alert(1)</script></p>"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = s.get(t, "/api/articles?q="+url.QueryEscape("импорт"))
	require.Equal(t, http.StatusOK, rec.Code)
	var articles []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &articles))
	require.Len(t, articles, 1)
	assert.Equal(t, "Импорт товаров", articles[0]["title"])
	assert.NotContains(t, articles[0]["content"], "script")
	assert.Equal(t, app.ViewArticle, s.ctrl.State().View)
}

func TestEditorRejectsUnknownOp(t *testing.T) {
	s := newTestServer(t, "")
	s.admin(t)
	require.Equal(t, http.StatusSeeOther, s.post(t, "/articles/new", url.Values{}).Code)

	rec := s.post(t, "/editor/article", url.Values{"op": {"explode"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown editor action")
}

func TestAdminOnlyAPIIsForbidden(t *testing.T) {
	s := newTestServer(t, "")

	for _, path := range []string{"/api/trash", "/api/scheduled", "/api/analytics"} {
		t.Run(path, func(t *testing.T) {
			rec := s.get(t, path)

			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
			var problem map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
			assert.EqualValues(t, http.StatusForbidden, problem["status"])
		})
	}
}

func TestScheduledArticleHiddenFromViewers(t *testing.T) {
	s := newTestServer(t, "")

	assert.Equal(t, http.StatusNotFound, s.get(t, "/api/articles/2").Code)
	assert.Equal(t, http.StatusNotFound, s.get(t, "/articles/2/export.md").Code)

	s.admin(t)
	assert.Equal(t, http.StatusOK, s.get(t, "/api/articles/2").Code)
}

func TestExportMarkdown(t *testing.T) {
	s := newTestServer(t, "")

	rec := s.get(t, "/articles/1/export.md")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/markdown; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "article-1.md")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "# Как создать шахматку\n"))
	assert.Contains(t, rec.Body.String(), "Генерировать")
}

func TestPublishNowShowsNotice(t *testing.T) {
	s := newTestServer(t, "")
	s.admin(t)

	rec := s.post(t, "/articles/2/publish", url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	page := s.get(t, "/", cookies...)
	assert.Contains(t, page.Body.String(), app.NoticePublished)

	s.ctrl.SetAdmin(false)
	assert.Equal(t, http.StatusOK, s.get(t, "/api/articles/2").Code)
}

func TestFeedbackAPI(t *testing.T) {
	s := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodPost, "/api/articles/1/feedback", strings.NewReader(`{"helpful":false}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, app.NoticeUnhelpful, resp["notice"])

	s.admin(t)
	rec = s.get(t, "/api/analytics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"unhelpful_count":4`)
}

func TestFeedbackOnScheduledArticleIsNotFound(t *testing.T) {
	s := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodPost, "/api/articles/2/feedback", strings.NewReader(`{"helpful":true}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.post(t, "/articles/2/feedback", url.Values{"helpful": {"false"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLikeUpdateAPI(t *testing.T) {
	s := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodPost, "/api/updates/u1/like", nil)
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var update map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &update))
	assert.EqualValues(t, 155, update["likes"])
}

func TestAdminViewsRender(t *testing.T) {
	s := newTestServer(t, "")
	s.admin(t)

	tests := []struct {
		view app.View
		want string
	}{
		{app.ViewScheduled, "Работа с вебхуками"},
		{app.ViewTrash, "Корзина пуста"},
		{app.ViewAnalytics, "Статья"},
	}
	for _, tt := range tests {
		t.Run(string(tt.view), func(t *testing.T) {
			rec := s.post(t, "/view", url.Values{"view": {string(tt.view)}})
			require.Equal(t, http.StatusSeeOther, rec.Code)

			page := s.get(t, "/")
			require.Equal(t, http.StatusOK, page.Code)
			assert.Contains(t, page.Body.String(), tt.want)
		})
	}
}

func TestEditorRenders(t *testing.T) {
	s := newTestServer(t, "")
	s.admin(t)
	require.Equal(t, http.StatusSeeOther, s.post(t, "/articles/1/edit", url.Values{}).Code)

	page := s.get(t, "/")

	require.Equal(t, http.StatusOK, page.Code)
	body := page.Body.String()
	assert.Contains(t, body, "Редактировать статью")
	assert.Contains(t, body, `value="Как создать шахматку"`)
	assert.Contains(t, body, `contenteditable="true"`)
	assert.Contains(t, body, "Создание шахматки")
}
