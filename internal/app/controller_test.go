package app

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpcenter/internal/domain"
	"helpcenter/internal/domain/models/kb"
	rtModel "helpcenter/internal/domain/models/richtext"
	"helpcenter/internal/service/richtext"
)

func TestController_StartsLoading(t *testing.T) {
	ctrl := NewController(Services{}, nil, slog.New(slog.DiscardHandler))
	ctrl.LoadAfter(context.Background(), time.Hour, func(context.Context) error {
		t.Error("load ran after Close")
		return nil
	})

	sc, err := ctrl.Screen(context.Background())
	require.NoError(t, err)
	assert.True(t, sc.State.IsLoading)
	assert.Empty(t, sc.Articles)

	ctrl.Close()
	<-ctrl.Loaded()
	assert.True(t, ctrl.State().IsLoading)
}

func TestController_InitialLoad(t *testing.T) {
	env := newTestEnv(t)

	sc := env.screen(t)
	assert.False(t, sc.State.IsLoading)
	assert.Equal(t, ViewUpdates, sc.State.View)
	assert.Equal(t, []string{"1"}, articleIDs(sc.Articles), "the scheduled seed article is hidden")
	assert.Equal(t, []string{"Заполнение каталога"}, sidebarNames(sc.Sidebar))
	require.Len(t, sc.Updates, 2)
	assert.Equal(t, "u1", sc.Updates[0].ID)
	assert.Len(t, sc.Emojis, 8)
	assert.Equal(t, richtext.Glyphs, sc.Glyphs)
	assert.Zero(t, sc.TrashCount, "viewers get no admin lists")
}

func TestController_AdminOnlyIntents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	dlg := &scriptedDialogs{confirm: true}

	tests := []struct {
		name   string
		intent func() error
	}{
		{"show trash", func() error { return env.ctrl.ShowView(ctx, ViewTrash) }},
		{"new article", func() error { return env.ctrl.NewArticle(ctx) }},
		{"edit article", func() error { return env.ctrl.EditArticle(ctx, "1") }},
		{"new update", func() error { return env.ctrl.NewUpdate() }},
		{"trash article", func() error {
			_, err := env.ctrl.TrashArticle(ctx, dlg, "1")
			return err
		}},
		{"publish now", func() error {
			_, err := env.ctrl.PublishNow(ctx, "2")
			return err
		}},
		{"restore trash", func() error {
			_, err := env.ctrl.RestoreTrash(ctx, 0)
			return err
		}},
		{"restore version", func() error {
			_, err := env.ctrl.RestoreVersion(ctx, "1", 0)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.intent()
			assert.True(t, errors.Is(err, domain.ErrForbidden), "got %v", err)
		})
	}
	assert.Empty(t, dlg.asked, "nothing is confirmed without admin mode")
}

func TestController_ShowView(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.ctrl.ShowView(ctx, View("home"))
	assert.True(t, errors.Is(err, domain.ErrValidation))

	err = env.ctrl.ShowView(ctx, ViewArticle)
	assert.True(t, errors.Is(err, domain.ErrValidation), "no article selected")

	env.ctrl.SetAdmin(true)
	require.NoError(t, env.ctrl.ShowView(ctx, ViewEditor))
	st := env.ctrl.State()
	assert.Equal(t, ViewEditor, st.View)
	require.NotNil(t, st.ArticleDraft, "the editor opens a blank draft")
	assert.Equal(t, "Заполнение каталога", st.ArticleDraft.Category)
	assert.Equal(t, []string{}, st.ArticleDraft.Tags)

	env.ctrl.Cancel()
	assert.Equal(t, ViewUpdates, env.ctrl.State().View)
}

func TestController_ScheduledArticleScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.ctrl.SetAdmin(true)
	require.NoError(t, env.ctrl.NewArticle(ctx))
	require.NoError(t, env.ctrl.SyncArticleDraft(ArticleForm{
		Title:       "Тарифы",
		Category:    "API",
		Tags:        []string{"Биллинг"},
		PublishedAt: env.clock.Now().Add(48 * time.Hour),
		Content:     "<p>Скоро новые тарифы</p>",
	}))
	a, err := env.ctrl.SaveArticle(ctx)
	require.NoError(t, err)

	st := env.ctrl.State()
	assert.Equal(t, ViewArticle, st.View)
	assert.Equal(t, a.ID, st.SelectedID)
	assert.Nil(t, st.ArticleDraft)

	sc := env.screen(t)
	require.NotNil(t, sc.Selected)
	assert.True(t, sc.Selected.Pending)
	assert.Contains(t, articleIDs(sc.Articles), a.ID)
	assert.Equal(t, 2, sc.ScheduledCount)
	assert.True(t, slices.ContainsFunc(sc.Scheduled, func(s kb.Article) bool { return s.ID == a.ID }))

	// as a viewer the article is gone everywhere
	env.ctrl.SetAdmin(false)
	sc = env.screen(t)
	assert.NotContains(t, articleIDs(sc.Articles), a.ID)
	assert.NotContains(t, sidebarNames(sc.Sidebar), "API")
	assert.Nil(t, sc.Selected)
	err = env.ctrl.OpenArticle(ctx, a.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	env.ctrl.SetAdmin(true)
	notice, err := env.ctrl.PublishNow(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, NoticePublished, notice)

	env.ctrl.SetAdmin(false)
	env.ctrl.SetQuery("НОВЫЕ ТАРИФЫ")
	sc = env.screen(t)
	assert.Equal(t, []string{a.ID}, articleIDs(sc.Articles))
	assert.Equal(t, []string{"API"}, sidebarNames(sc.Sidebar))
	require.NoError(t, env.ctrl.OpenArticle(ctx, a.ID))
}

func TestController_ClockPublishesScheduledArticle(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, []string{"1"}, articleIDs(env.screen(t).Articles))

	env.clock.Advance(25 * time.Hour)
	sc := env.screen(t)
	assert.Equal(t, []string{"1", "2"}, articleIDs(sc.Articles))
	assert.Equal(t, []string{"Заполнение каталога", "API"}, sidebarNames(sc.Sidebar))
}

func TestController_AddTopicScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.ctrl.SetAdmin(true)
	require.NoError(t, env.ctrl.NewArticle(ctx))
	require.NoError(t, env.ctrl.OpenModal(ModalAddTopic))
	require.NoError(t, env.ctrl.SubmitModal(ctx, "  Billing  "))

	st := env.ctrl.State()
	assert.Equal(t, ModalNone, st.Modal)
	assert.Equal(t, "Billing", st.ArticleDraft.Category)

	sc := env.screen(t)
	assert.Equal(t, "Billing", sc.Vocabulary.Categories[len(sc.Vocabulary.Categories)-1])

	// still offered for the next article
	env.ctrl.Cancel()
	require.NoError(t, env.ctrl.NewArticle(ctx))
	sc = env.screen(t)
	assert.Contains(t, sc.Vocabulary.Categories, "Billing")
	assert.Equal(t, "Заполнение каталога", sc.State.ArticleDraft.Category)

	// adding it again does not duplicate it
	require.NoError(t, env.ctrl.OpenModal(ModalAddTopic))
	require.NoError(t, env.ctrl.SubmitModal(ctx, "Billing"))
	sc = env.screen(t)
	assert.Len(t, sc.Vocabulary.Categories, 4)
}

func TestController_AddTag(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.ctrl.SetAdmin(true)
	require.NoError(t, env.ctrl.NewArticle(ctx))
	require.NoError(t, env.ctrl.OpenModal(ModalAddTag))

	require.NoError(t, env.ctrl.SubmitModal(ctx, "   "))
	assert.Equal(t, ModalAddTag, env.ctrl.State().Modal, "a blank name keeps the dialog open")

	require.NoError(t, env.ctrl.SubmitModal(ctx, "Интеграции"))
	require.NoError(t, env.ctrl.ToggleDraftTag("Webhooks"))
	assert.Equal(t, []string{"Интеграции", "Webhooks"}, env.ctrl.State().ArticleDraft.Tags)

	require.NoError(t, env.ctrl.ToggleDraftTag("Интеграции"))
	assert.Equal(t, []string{"Webhooks"}, env.ctrl.State().ArticleDraft.Tags)

	err := env.ctrl.OpenModal(Modal("rename"))
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestController_EditSaveAndRestoreVersion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.ctrl.SetAdmin(true)

	original, err := env.svc.Articles.GetArticle(ctx, "1")
	require.NoError(t, err)

	require.NoError(t, env.ctrl.EditArticle(ctx, "1"))
	draft := env.ctrl.State().ArticleDraft
	require.NotNil(t, draft)
	assert.Equal(t, original.Title, draft.Title)
	assert.Equal(t, original.Tags, draft.Tags)

	require.NoError(t, env.ctrl.SyncArticleDraft(ArticleForm{
		Title:    draft.Title,
		Subtitle: draft.Subtitle,
		Category: draft.Category,
		Content:  "<p>Новая версия</p>",
	}))
	saved, err := env.ctrl.SaveArticle(ctx)
	require.NoError(t, err)
	assert.Equal(t, "<p>Новая версия</p>", saved.Content)
	assert.Equal(t, []string{original.Content}, saved.Versions)
	assert.Equal(t, original.HelpfulCount, saved.HelpfulCount)
	assert.Equal(t, original.PublishedAt, saved.PublishedAt, "an unset date keeps the draft date")

	require.NoError(t, env.ctrl.OpenVersionHistory(ctx, "1"))
	sc := env.screen(t)
	assert.Equal(t, ViewVersionHistory, sc.State.View)
	assert.Equal(t, []string{original.Content}, sc.Versions)

	restored, err := env.ctrl.RestoreVersion(ctx, "1", 0)
	require.NoError(t, err)
	assert.Equal(t, original.Content, restored.Content)
	assert.Equal(t, []string{original.Content, "<p>Новая версия</p>"}, restored.Versions)
	assert.Equal(t, ViewArticle, env.ctrl.State().View)

	_, err = env.ctrl.RestoreVersion(ctx, "1", 5)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestController_EditorCommands(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.ctrl.SetAdmin(true)
	require.NoError(t, env.ctrl.NewArticle(ctx))

	cancelled := &scriptedDialogs{ok: false}
	require.NoError(t, env.ctrl.ArticleCommand(ctx, cancelled, richtext.Command{Kind: richtext.CommandVideo}))
	assert.Equal(t, []string{PromptVideoURL}, cancelled.asked)
	assert.True(t, env.ctrl.State().ArticleDraft.Doc.IsEmpty(), "a cancelled prompt changes nothing")

	empty := &scriptedDialogs{ok: true, answer: "  "}
	require.NoError(t, env.ctrl.ArticleCommand(ctx, empty, richtext.Command{Kind: richtext.CommandVideo}))
	assert.True(t, env.ctrl.State().ArticleDraft.Doc.IsEmpty())

	answered := &scriptedDialogs{ok: true, answer: "https://www.youtube.com/embed/abc"}
	require.NoError(t, env.ctrl.ArticleCommand(ctx, answered, richtext.Command{Kind: richtext.CommandVideo}))
	doc := env.ctrl.State().ArticleDraft.Doc
	assert.True(t, slices.ContainsFunc(doc.Blocks, func(b rtModel.Block) bool {
		return b.Kind == rtModel.BlockVideo && b.Src == "https://www.youtube.com/embed/abc"
	}))

	require.NoError(t, env.ctrl.ArticleCommand(ctx, &scriptedDialogs{}, richtext.Command{Kind: richtext.CommandGlyph, Value: "₽"}))
	sc := env.screen(t)
	assert.Contains(t, sc.ArticleDraftHTML, "youtube.com/embed/abc")
	assert.Contains(t, sc.ArticleDraftHTML, "₽")

	err := env.ctrl.ArticleCommand(ctx, &scriptedDialogs{}, richtext.Command{Kind: richtext.CommandSize, Value: "9"})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestController_ImportIntoDraft(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.ctrl.SetAdmin(true)
	require.NoError(t, env.ctrl.NewArticle(ctx))

	require.NoError(t, env.ctrl.ImportIntoDraft(ctx, "notes.txt", []byte("Первый абзац\n\nВторой абзац")))
	doc := env.ctrl.State().ArticleDraft.Doc
	require.Len(t, doc.Blocks, 2)
	assert.Equal(t, "Второй абзац", doc.Blocks[1].Text())

	require.NoError(t, env.ctrl.ImportIntoDraft(ctx, "more.html", []byte("<p>Третий</p><script>alert(1)</script>")))
	doc = env.ctrl.State().ArticleDraft.Doc
	require.Len(t, doc.Blocks, 3)
	assert.Equal(t, "Третий", doc.Blocks[2].Text())

	err := env.ctrl.ImportIntoDraft(ctx, "slides.pdf", []byte("%PDF"))
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestController_TrashFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.ctrl.SetAdmin(true)
	require.NoError(t, env.ctrl.OpenArticle(ctx, "1"))

	declined := &scriptedDialogs{confirm: false}
	moved, err := env.ctrl.TrashArticle(ctx, declined, "1")
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, []string{ConfirmTrashArticle}, declined.asked)
	assert.Equal(t, "1", env.ctrl.State().SelectedID, "declining changes nothing")

	before, err := env.svc.Articles.GetArticle(ctx, "1")
	require.NoError(t, err)

	moved, err = env.ctrl.TrashArticle(ctx, &scriptedDialogs{confirm: true}, "1")
	require.NoError(t, err)
	assert.True(t, moved)
	st := env.ctrl.State()
	assert.Empty(t, st.SelectedID)
	assert.Equal(t, ViewUpdates, st.View)

	sc := env.screen(t)
	assert.Equal(t, []string{"2"}, articleIDs(sc.Articles))
	require.Equal(t, 1, sc.TrashCount)
	assert.Equal(t, kb.TrashKindArticle, sc.Trash[0].Kind)

	_, err = env.ctrl.RestoreTrash(ctx, 0)
	require.NoError(t, err)
	after, err := env.svc.Articles.GetArticle(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, []string{"2", "1"}, articleIDs(env.screen(t).Articles), "restored articles go last")

	moved, err = env.ctrl.TrashUpdate(ctx, &scriptedDialogs{confirm: true}, "u1")
	require.NoError(t, err)
	assert.True(t, moved)

	purgeDeclined := &scriptedDialogs{confirm: false}
	moved, err = env.ctrl.PurgeTrash(ctx, purgeDeclined, 0)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, []string{ConfirmPurge}, purgeDeclined.asked)
	assert.Equal(t, 1, env.screen(t).TrashCount)

	moved, err = env.ctrl.PurgeTrash(ctx, &scriptedDialogs{confirm: true}, 0)
	require.NoError(t, err)
	assert.True(t, moved)
	sc = env.screen(t)
	assert.Zero(t, sc.TrashCount)
	require.Len(t, sc.Updates, 1)
	assert.Equal(t, "u2", sc.Updates[0].ID)

	_, err = env.ctrl.RestoreTrash(ctx, 0)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestController_UpdateEditor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.ctrl.SetAdmin(true)

	require.NoError(t, env.ctrl.NewUpdate())
	st := env.ctrl.State()
	assert.Equal(t, ViewUpdateEditor, st.View)
	assert.Equal(t, "✨", st.UpdateDraft.Emoji)
	assert.Equal(t, kb.UpdateTypeFeature, st.UpdateDraft.Type)

	require.NoError(t, env.ctrl.SyncUpdateDraft(UpdateForm{
		Title:   "Тёмная тема",
		Emoji:   "🎨",
		Type:    kb.UpdateTypeImprovement,
		Content: "<p>Готово</p>",
	}))
	require.NoError(t, env.ctrl.UpdateCommand(ctx, &scriptedDialogs{}, richtext.Command{Kind: richtext.CommandGlyph, Value: "→"}))

	u, err := env.ctrl.SaveUpdate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "4 сентября 2025", u.Date)
	assert.Equal(t, "<p>Готово→</p>", u.Description)
	assert.Equal(t, kb.UpdateTypeImprovement, u.Type)
	assert.Equal(t, ViewUpdates, env.ctrl.State().View)

	sc := env.screen(t)
	require.Len(t, sc.Updates, 3)
	assert.Equal(t, u.ID, sc.Updates[0].ID)

	env.ctrl.SetAdmin(false)
	liked, err := env.ctrl.LikeUpdate(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, 338, liked.Likes)
}

func TestController_FeedbackAndAnalytics(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	notice, err := env.ctrl.Feedback(ctx, "1", true)
	require.NoError(t, err)
	assert.Equal(t, NoticeHelpful, notice)

	notice, err = env.ctrl.Feedback(ctx, "1", false)
	require.NoError(t, err)
	assert.Equal(t, NoticeUnhelpful, notice)

	env.ctrl.SetAdmin(true)
	require.NoError(t, env.ctrl.ShowView(ctx, ViewAnalytics))
	sc := env.screen(t)
	require.Len(t, sc.Analytics, 2)
	assert.Equal(t, "1", sc.Analytics[0].ID)
	assert.Equal(t, 26, sc.Analytics[0].HelpfulCount)
	assert.Equal(t, 4, sc.Analytics[0].UnhelpfulCount)
}

func TestController_FeedbackOnScheduledArticle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.ctrl.Feedback(ctx, "2", true)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	article, err := env.svc.Articles.GetArticle(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, 42, article.HelpfulCount)

	env.ctrl.SetAdmin(true)
	_, err = env.ctrl.Feedback(ctx, "2", true)
	require.NoError(t, err)
	article, err = env.svc.Articles.GetArticle(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, 43, article.HelpfulCount)

	_, err = env.ctrl.Feedback(ctx, "missing", true)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestController_SidebarToggle(t *testing.T) {
	env := newTestEnv(t)

	env.ctrl.ToggleCategory("Заполнение каталога")
	sc := env.screen(t)
	require.Len(t, sc.Sidebar, 1)
	assert.True(t, sc.Sidebar[0].Open)

	env.ctrl.ToggleCategory("Заполнение каталога")
	assert.False(t, env.screen(t).Sidebar[0].Open)
}
