package app

import (
	"context"
	"errors"
	"slices"
	"time"

	"helpcenter/internal/config"
	"helpcenter/internal/domain"
	"helpcenter/internal/domain/models/kb"
	kbSvc "helpcenter/internal/domain/services/kb"
	"helpcenter/internal/service/richtext"
)

// ArticleItem is an article as listed, with its scheduling marker.
type ArticleItem struct {
	kb.Article
	Pending bool `json:"pending"` // not yet published, only shown to admins
}

// SidebarCategory is one expandable sidebar group.
type SidebarCategory struct {
	Name     string        `json:"name"`
	Open     bool          `json:"open"`
	Articles []ArticleItem `json:"articles"`
}

// Screen is everything a view renders.
type Screen struct {
	State State     `json:"state"`
	Now   time.Time `json:"now"`

	Articles []ArticleItem     `json:"articles"` // search applied
	Sidebar  []SidebarCategory `json:"sidebar"`
	Updates  []kb.UpdateEntry  `json:"updates"`

	Selected *ArticleItem `json:"selected,omitempty"`
	Versions []string     `json:"versions,omitempty"`

	Scheduled []kb.Article      `json:"scheduled,omitempty"`
	Trash     []kb.TrashItem    `json:"trash,omitempty"`
	Analytics []kb.ArticleStats `json:"analytics,omitempty"`

	ScheduledCount int `json:"scheduled_count"`
	TrashCount     int `json:"trash_count"`

	Vocabulary  kb.Vocabulary   `json:"vocabulary"`
	Emojis      []string        `json:"emojis"` // update editor palette
	Glyphs      []string        `json:"glyphs"`
	UpdateTypes []kb.UpdateType `json:"update_types"`

	// Editable region markup of the open drafts
	ArticleDraftHTML string `json:"article_draft_html,omitempty"`
	UpdateDraftHTML  string `json:"update_draft_html,omitempty"`
}

// Screen derives the render model from the state and the store.
func (c *Controller) Screen(ctx context.Context) (*Screen, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := c.state.Clone()
	sc := &Screen{
		State:       st,
		Glyphs:      slices.Clone(richtext.Glyphs),
		UpdateTypes: slices.Clone(kb.UpdateTypes),
		Emojis:      slices.Clone(c.emojis[:min(len(c.emojis), config.EditorEmojiCount)]),
	}
	if st.IsLoading {
		return sc, nil
	}
	sc.Now = c.svc.Schedule.Now()

	articles, err := c.svc.Articles.SearchArticles(ctx, &kbSvc.SearchArticlesRequest{
		Query:            st.Query,
		IncludeScheduled: st.IsAdmin,
	})
	if err != nil {
		return nil, err
	}
	sc.Articles = make([]ArticleItem, len(articles))
	for i := range articles {
		sc.Articles[i] = ArticleItem{
			Article: articles[i],
			Pending: !c.svc.Schedule.IsPublished(&articles[i]),
		}
	}
	sc.Sidebar = buildSidebar(sc.Articles, st.OpenCategories)

	if sc.Updates, err = c.svc.Updates.ListUpdates(ctx, st.IsAdmin); err != nil {
		return nil, err
	}

	vocab, err := c.svc.Vocabulary.Vocabulary(ctx)
	if err != nil {
		return nil, err
	}
	sc.Vocabulary = *vocab

	if err := c.fillSelected(ctx, sc); err != nil {
		return nil, err
	}

	if st.IsAdmin {
		if err := c.fillAdmin(ctx, sc); err != nil {
			return nil, err
		}
	}

	if d := st.ArticleDraft; d != nil {
		sc.ArticleDraftHTML = richtext.Render(d.Doc)
	}
	if d := st.UpdateDraft; d != nil {
		sc.UpdateDraftHTML = richtext.Render(d.Doc)
	}
	return sc, nil
}

// fillSelected resolves the selected article. A selection that is gone or
// hidden from the current mode renders as nothing selected.
func (c *Controller) fillSelected(ctx context.Context, sc *Screen) error {
	if sc.State.SelectedID == "" {
		return nil
	}
	article, err := c.svc.Articles.GetArticle(ctx, sc.State.SelectedID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	pending := !c.svc.Schedule.IsPublished(article)
	if pending && !sc.State.IsAdmin {
		return nil
	}

	sc.Selected = &ArticleItem{Article: *article, Pending: pending}
	if sc.State.IsAdmin {
		sc.Versions = slices.Clone(article.Versions)
	}
	return nil
}

func (c *Controller) fillAdmin(ctx context.Context, sc *Screen) error {
	var err error
	if sc.Scheduled, err = c.svc.Schedule.ListScheduled(ctx); err != nil {
		return err
	}
	if sc.Trash, err = c.svc.Trash.ListTrash(ctx); err != nil {
		return err
	}
	sc.ScheduledCount = len(sc.Scheduled)
	sc.TrashCount = len(sc.Trash)

	if sc.State.View == ViewAnalytics {
		if sc.Analytics, err = c.svc.Analytics.ArticleStats(ctx); err != nil {
			return err
		}
	}
	return nil
}

// buildSidebar groups the visible articles by category, categories in order
// of first appearance.
func buildSidebar(articles []ArticleItem, open map[string]bool) []SidebarCategory {
	groups := make(map[string]*SidebarCategory)
	var order []string

	// First pass: one group per distinct category
	for _, a := range articles {
		if _, exists := groups[a.Category]; !exists {
			groups[a.Category] = &SidebarCategory{
				Name:     a.Category,
				Articles: []ArticleItem{},
			}
			order = append(order, a.Category)
		}
	}

	// Second pass: attach articles to their group
	for _, a := range articles {
		groups[a.Category].Articles = append(groups[a.Category].Articles, a)
	}

	// Third pass: expand state, in sidebar order
	sidebar := make([]SidebarCategory, 0, len(order))
	for _, name := range order {
		g := groups[name]
		g.Open = open[name]
		sidebar = append(sidebar, *g)
	}
	return sidebar
}
