// Package app is the view/navigation controller: one application state, pure
// transitions over it and the intents that drive the services.
package app

import (
	"maps"
	"slices"
	"time"

	"helpcenter/internal/domain/models/kb"
	rtModel "helpcenter/internal/domain/models/richtext"
)

// View names a screen.
type View string

const (
	ViewUpdates        View = "updates"
	ViewArticle        View = "article"
	ViewEditor         View = "editor"
	ViewUpdateEditor   View = "update_editor"
	ViewTrash          View = "trash"
	ViewAnalytics      View = "analytics"
	ViewScheduled      View = "scheduled"
	ViewVersionHistory View = "version_history"
)

// Views lists every view.
var Views = []View{
	ViewUpdates, ViewArticle, ViewEditor, ViewUpdateEditor,
	ViewTrash, ViewAnalytics, ViewScheduled, ViewVersionHistory,
}

func (v View) IsValid() bool {
	return slices.Contains(Views, v)
}

// AdminOnly reports whether the view needs admin mode.
func (v View) AdminOnly() bool {
	switch v {
	case ViewEditor, ViewUpdateEditor, ViewTrash, ViewAnalytics, ViewScheduled, ViewVersionHistory:
		return true
	}
	return false
}

// Modal is the dialog open over the article editor.
type Modal string

const (
	ModalNone     Modal = ""
	ModalAddTopic Modal = "add_topic"
	ModalAddTag   Modal = "add_tag"
)

// ArticleDraft is an article editor session. ID is empty for a new article.
type ArticleDraft struct {
	ID          string           `json:"id,omitempty"`
	Title       string           `json:"title"`
	Subtitle    string           `json:"subtitle"`
	Category    string           `json:"category"`
	Tags        []string         `json:"tags"`
	PublishedAt time.Time        `json:"published_at"`
	Doc         rtModel.Document `json:"doc"`
	Selection   rtModel.Range    `json:"selection"`
}

func (d *ArticleDraft) clone() *ArticleDraft {
	if d == nil {
		return nil
	}
	c := *d
	c.Tags = slices.Clone(d.Tags)
	c.Doc = d.Doc.Clone()
	return &c
}

// UpdateDraft is an update editor session.
type UpdateDraft struct {
	Title     string           `json:"title"`
	Emoji     string           `json:"emoji"`
	Type      kb.UpdateType    `json:"type"`
	Doc       rtModel.Document `json:"doc"`
	Selection rtModel.Range    `json:"selection"`
}

func (d *UpdateDraft) clone() *UpdateDraft {
	if d == nil {
		return nil
	}
	c := *d
	c.Doc = d.Doc.Clone()
	return &c
}

// State is everything the screen is derived from besides the store.
type State struct {
	View           View            `json:"view"`
	IsAdmin        bool            `json:"is_admin"`
	IsLoading      bool            `json:"is_loading"`
	Query          string          `json:"query"`
	SelectedID     string          `json:"selected_id,omitempty"`
	OpenCategories map[string]bool `json:"open_categories"`
	Modal          Modal           `json:"modal,omitempty"`
	ArticleDraft   *ArticleDraft   `json:"article_draft,omitempty"`
	UpdateDraft    *UpdateDraft    `json:"update_draft,omitempty"`
}

// InitialState is the state before the first data load.
func InitialState() State {
	return State{
		View:           ViewUpdates,
		IsLoading:      true,
		OpenCategories: map[string]bool{},
	}
}

// Clone deep-copies s.
func (s State) Clone() State {
	s.OpenCategories = maps.Clone(s.OpenCategories)
	if s.OpenCategories == nil {
		s.OpenCategories = map[string]bool{}
	}
	s.ArticleDraft = s.ArticleDraft.clone()
	s.UpdateDraft = s.UpdateDraft.clone()
	return s
}
