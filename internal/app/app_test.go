package app

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"helpcenter/internal/repository/memory"
	"helpcenter/internal/seed"
	kbService "helpcenter/internal/service/kb"
	"helpcenter/internal/service/richtext"
	"helpcenter/internal/service/richtext/converter"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// scriptedDialogs answers every dialog from fixed values and records what
// was asked.
type scriptedDialogs struct {
	confirm bool
	answer  string
	ok      bool
	asked   []string
}

func (d *scriptedDialogs) Confirm(_ context.Context, message string) bool {
	d.asked = append(d.asked, message)
	return d.confirm
}

func (d *scriptedDialogs) Prompt(_ context.Context, message string) (string, bool) {
	d.asked = append(d.asked, message)
	return d.answer, d.ok
}

type testEnv struct {
	clock *fakeClock
	svc   Services
	ctrl  *Controller
}

// newTestEnv builds a controller over the default seed data, already loaded.
func newTestEnv(t *testing.T) *testEnv {
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
	clock := &fakeClock{now: time.Date(2025, time.September, 4, 12, 0, 0, 0, time.UTC)}

	svc := Services{
		Articles:   kbService.NewArticleService(articleRepo, clock, analyzer, logger),
		Updates:    kbService.NewUpdateService(updateRepo, clock, logger),
		Trash:      kbService.NewTrashService(articleRepo, updateRepo, trashRepo, txManager, clock, logger),
		Schedule:   kbService.NewScheduleService(articleRepo, clock),
		Versions:   kbService.NewVersionService(articleRepo, txManager, logger),
		Vocabulary: kbService.NewVocabularyService(vocabRepo, logger),
		Analytics:  kbService.NewAnalyticsService(articleRepo, clock, analyzer, logger),
		Converters: converter.NewConverterRegistry(),
		Parser:     parser,
	}

	data, err := seed.Default()
	require.NoError(t, err)
	loader := seed.NewLoader(articleRepo, updateRepo, vocabRepo, txManager, parser, kbService.FormatRussianDate, logger)

	ctrl := NewController(svc, data.Emojis, logger)
	ctrl.LoadAfter(context.Background(), 0, func(ctx context.Context) error {
		return loader.Load(ctx, data, clock.Now())
	})
	t.Cleanup(ctrl.Close)

	select {
	case <-ctrl.Loaded():
	case <-time.After(5 * time.Second):
		t.Fatal("seed data never loaded")
	}

	return &testEnv{clock: clock, svc: svc, ctrl: ctrl}
}

func (e *testEnv) screen(t *testing.T) *Screen {
	t.Helper()
	sc, err := e.ctrl.Screen(context.Background())
	require.NoError(t, err)
	return sc
}

func articleIDs(items []ArticleItem) []string {
	ids := make([]string, len(items))
	for i, a := range items {
		ids[i] = a.ID
	}
	return ids
}

func sidebarNames(groups []SidebarCategory) []string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}
	return names
}
