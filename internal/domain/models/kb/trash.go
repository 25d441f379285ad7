package kb

import (
	"time"
)

// TrashKind discriminates what a TrashItem holds and where it restores to.
type TrashKind string

const (
	TrashKindArticle TrashKind = "article"
	TrashKindUpdate  TrashKind = "update"
)

// TrashItem is a soft-deleted article or update. Exactly one of Article and
// Update is set, matching Kind.
type TrashItem struct {
	Kind      TrashKind    `json:"kind"`
	Article   *Article     `json:"article,omitempty"`
	Update    *UpdateEntry `json:"update,omitempty"`
	TrashedAt time.Time    `json:"trashed_at"`
}

func NewArticleTrashItem(a Article, at time.Time) TrashItem {
	a = a.Clone()
	return TrashItem{Kind: TrashKindArticle, Article: &a, TrashedAt: at}
}

func NewUpdateTrashItem(u UpdateEntry, at time.Time) TrashItem {
	return TrashItem{Kind: TrashKindUpdate, Update: &u, TrashedAt: at}
}

// Title is what the trash view lists.
func (t TrashItem) Title() string {
	switch t.Kind {
	case TrashKindArticle:
		if t.Article != nil {
			return t.Article.Title
		}
	case TrashKindUpdate:
		if t.Update != nil {
			return t.Update.Title
		}
	}
	return ""
}

// KindLabel is the human-readable type shown next to the title.
func (t TrashItem) KindLabel() string {
	if t.Kind == TrashKindUpdate {
		return "Обновление"
	}
	return "Статья"
}

// Clone deep-copies the held record.
func (t TrashItem) Clone() TrashItem {
	if t.Article != nil {
		a := t.Article.Clone()
		t.Article = &a
	}
	if t.Update != nil {
		u := *t.Update
		t.Update = &u
	}
	return t
}
