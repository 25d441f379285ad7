package app

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"helpcenter/internal/domain"
	kbSvc "helpcenter/internal/domain/services/kb"
	"helpcenter/internal/service/richtext"
	"helpcenter/internal/service/richtext/converter"
)

// Services are the collaborators the controller drives.
type Services struct {
	Articles   kbSvc.ArticleService
	Updates    kbSvc.UpdateService
	Trash      kbSvc.TrashService
	Schedule   kbSvc.ScheduleService
	Versions   kbSvc.VersionService
	Vocabulary kbSvc.VocabularyService
	Analytics  kbSvc.AnalyticsService
	Converters *converter.ConverterRegistry
	Parser     *richtext.Parser
}

// Controller owns the application state and applies intents to it. Intents
// are serialised, so one controller can back concurrent requests.
type Controller struct {
	mu     sync.Mutex
	state  State
	svc    Services
	emojis []string
	logger *slog.Logger

	loadTimer *time.Timer
	loaded    chan struct{}
}

// NewController starts in the loading state. emojis is the palette offered by
// the update editor.
func NewController(svc Services, emojis []string, logger *slog.Logger) *Controller {
	return &Controller{
		state:  InitialState(),
		svc:    svc,
		emojis: slices.Clone(emojis),
		logger: logger,
		loaded: make(chan struct{}),
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Emojis returns the full palette.
func (c *Controller) Emojis() []string {
	return slices.Clone(c.emojis)
}

// dispatch applies a. Callers hold c.mu.
func (c *Controller) dispatch(a Action) {
	prev := c.state.View
	c.state = Reduce(c.state, a)
	if c.state.View != prev {
		c.logger.Debug("view changed", "from", prev, "to", c.state.View)
	}
}

func (c *Controller) requireAdmin() error {
	if !c.state.IsAdmin {
		return fmt.Errorf("%w: admin mode required", domain.ErrForbidden)
	}
	return nil
}

// LoadAfter runs load after delay and leaves the loading state when it
// returns. A failed load is logged and the controller still leaves loading.
// It must be called at most once.
func (c *Controller) LoadAfter(ctx context.Context, delay time.Duration, load func(context.Context) error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.loadTimer = time.AfterFunc(delay, func() {
		defer close(c.loaded)

		if err := load(ctx); err != nil {
			c.logger.Error("initial data load failed", "error", err)
		}

		c.mu.Lock()
		c.dispatch(LoadingDone{})
		c.mu.Unlock()
	})
}

// Loaded is closed once the delayed load has finished.
func (c *Controller) Loaded() <-chan struct{} {
	return c.loaded
}

// Close cancels a pending load.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loadTimer != nil && c.loadTimer.Stop() {
		close(c.loaded)
		c.logger.Info("pending data load cancelled")
	}
}

// ShowView navigates to v. The editors open a fresh draft when none is open.
func (c *Controller) ShowView(ctx context.Context, v View) error {
	if !v.IsValid() {
		return fmt.Errorf("%w: unknown view %q", domain.ErrValidation, v)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if v.AdminOnly() {
		if err := c.requireAdmin(); err != nil {
			return err
		}
	}

	switch v {
	case ViewEditor:
		if c.state.ArticleDraft == nil {
			return c.newArticle(ctx)
		}
	case ViewUpdateEditor:
		if c.state.UpdateDraft == nil {
			return c.newUpdate()
		}
	case ViewArticle, ViewVersionHistory:
		if c.state.SelectedID == "" {
			return fmt.Errorf("%w: no article selected", domain.ErrValidation)
		}
	}

	c.dispatch(ShowView{View: v})
	return nil
}

// OpenArticle selects an article. Scheduled articles are hidden from viewers.
func (c *Controller) OpenArticle(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	article, err := c.svc.Articles.GetArticle(ctx, id)
	if err != nil {
		return err
	}
	if !c.state.IsAdmin && !c.svc.Schedule.IsPublished(article) {
		return fmt.Errorf("%w: article %s", domain.ErrNotFound, id)
	}

	c.dispatch(SelectArticle{ID: id})
	return nil
}

// OpenVersionHistory selects an article and shows its prior versions.
func (c *Controller) OpenVersionHistory(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireAdmin(); err != nil {
		return err
	}
	if _, err := c.svc.Articles.GetArticle(ctx, id); err != nil {
		return err
	}

	c.dispatch(SelectArticle{ID: id})
	c.dispatch(ShowView{View: ViewVersionHistory})
	return nil
}

func (c *Controller) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dispatch(SetQuery{Query: query})
}

func (c *Controller) ToggleCategory(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dispatch(ToggleCategory{Name: name})
}

// SetAdmin switches admin mode. Callers check the admin token first.
// Leaving admin mode drops open drafts.
func (c *Controller) SetAdmin(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.IsAdmin != on {
		c.logger.Info("admin mode changed", "admin", on)
	}
	c.dispatch(SetAdmin{On: on})
}

// Cancel closes the open editor and returns to the feed.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dispatch(CancelDraft{})
}
