package seed

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpcenter/internal/domain"
	"helpcenter/internal/domain/models/kb"
	"helpcenter/internal/repository/memory"
	"helpcenter/internal/service/richtext"
)

func TestDefault(t *testing.T) {
	f, err := Default()
	require.NoError(t, err)

	assert.Equal(t, []string{"Заполнение каталога", "API", "Настройки"}, f.Categories)
	assert.Len(t, f.Tags, 6)
	assert.Len(t, f.Emojis, 12)
	assert.Equal(t, "✨", f.Emojis[0])

	require.Len(t, f.Articles, 2)
	assert.Equal(t, "Как создать шахматку", f.Articles[0].Title)
	assert.Equal(t, time.Duration(0), f.Articles[0].PublishOffset)
	assert.Equal(t, 24*time.Hour, f.Articles[1].PublishOffset)
	assert.Equal(t, 42, f.Articles[1].HelpfulCount)

	require.Len(t, f.Updates, 2)
	assert.Equal(t, kb.UpdateTypeFeature, f.Updates[0].Type)
	assert.Equal(t, kb.UpdateTypeImprovement, f.Updates[1].Type)
	assert.Equal(t, "4 сентября 2025", f.Updates[0].Date)
	assert.Contains(t, f.Updates[0].Description, "(P&amp;L)")
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "articles: [unclosed"},
		{"no emojis", "categories: [a]\n"},
		{"duplicate article ids", "emojis: [x]\narticles:\n  - {id: '1', title: a}\n  - {id: '1', title: b}\n"},
		{"missing title", "emojis: [x]\narticles:\n  - {id: '1'}\n"},
		{"unknown update type", "emojis: [x]\nupdates:\n  - {id: u, title: t, type: breaking}\n"},
		{"bad offset", "emojis: [x]\narticles:\n  - {id: '1', title: a, publish_offset: soon}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("emojis: [🚀]\nupdates:\n  - {id: u9, title: Релиз, type: fix, publish_offset: -48h}\n"), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	require.Len(t, f.Updates, 1)
	assert.Equal(t, -48*time.Hour, f.Updates[0].PublishOffset)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	f, err = Load("")
	require.NoError(t, err)
	assert.Len(t, f.Articles, 2)
}

func TestBuild(t *testing.T) {
	f, err := Parse([]byte("emojis: [x]\narticles:\n  - {id: '1', title: a}\nupdates:\n  - {id: u, title: t, type: fix, publish_offset: 1h}\n"))
	require.NoError(t, err)
	now := time.Date(2025, time.July, 9, 10, 0, 0, 0, time.UTC)

	articles, updates := f.Build(now, func(t time.Time) string { return t.Format(time.DateOnly) })

	require.Len(t, articles, 1)
	assert.Equal(t, now, articles[0].PublishedAt)
	assert.Equal(t, []string{}, articles[0].Tags)
	assert.Equal(t, []string{}, articles[0].Versions)

	require.Len(t, updates, 1)
	assert.Equal(t, now.Add(time.Hour), updates[0].PublishedAt)
	assert.Equal(t, "2025-07-09", updates[0].Date)
}

func TestLoader_Load(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)
	cfg := &memory.RepositoryConfig{Store: memory.NewStore(), Logger: logger}
	articleRepo := memory.NewArticleRepository(cfg)
	updateRepo := memory.NewUpdateRepository(cfg)
	vocabRepo := memory.NewVocabularyRepository(cfg)
	loader := NewLoader(articleRepo, updateRepo, vocabRepo, memory.NewTransactionManager(cfg.Store),
		richtext.NewParser(), func(time.Time) string { return "today" }, logger)

	f, err := Default()
	require.NoError(t, err)
	now := time.Now()
	require.NoError(t, loader.Load(ctx, f, now))

	articles, err := articleRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, `<h2>Создание шахматки</h2><p>Нажмите <strong>&#34;Генерировать&#34;</strong>.</p>`, articles[0].Content)
	assert.True(t, articles[0].IsPublishedAt(now))
	assert.False(t, articles[1].IsPublishedAt(now))

	updates, err := updateRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, updates, 2)
	assert.Equal(t, "u1", updates[0].ID, "file order is feed order")
	assert.Equal(t, "u2", updates[1].ID)

	categories, err := vocabRepo.List(ctx, kb.VocabularyCategories)
	require.NoError(t, err)
	assert.Equal(t, f.Categories, categories)

	err = loader.Load(ctx, f, now)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	articles, err = articleRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, articles, 2, "a failed load is rolled back")
}
