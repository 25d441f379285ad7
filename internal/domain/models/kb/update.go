package kb

import (
	"time"
)

// UpdateType categorises a changelog entry.
type UpdateType string

const (
	UpdateTypeFeature     UpdateType = "feature"
	UpdateTypeImprovement UpdateType = "improvement"
	UpdateTypeFix         UpdateType = "fix"
)

// UpdateTypes lists the types in display order.
var UpdateTypes = []UpdateType{UpdateTypeFeature, UpdateTypeImprovement, UpdateTypeFix}

var updateTypeLabels = map[UpdateType]string{
	UpdateTypeFeature:     "Новый функционал",
	UpdateTypeImprovement: "Улучшения",
	UpdateTypeFix:         "Исправлено",
}

var updateTypeColors = map[UpdateType]string{
	UpdateTypeFeature:     "#4CAF50",
	UpdateTypeImprovement: "#69C",
	UpdateTypeFix:         "#FF9800",
}

// Label is the badge text shown in the feed.
func (t UpdateType) Label() string {
	return updateTypeLabels[t]
}

// Color is the badge background colour.
func (t UpdateType) Color() string {
	return updateTypeColors[t]
}

func (t UpdateType) IsValid() bool {
	_, ok := updateTypeLabels[t]
	return ok
}

// ParseUpdateType accepts either the key ("fix") or the display label ("Исправлено").
func ParseUpdateType(s string) (UpdateType, bool) {
	if t := UpdateType(s); t.IsValid() {
		return t, true
	}
	for t, label := range updateTypeLabels {
		if label == s {
			return t, true
		}
	}
	return "", false
}

// UpdateEntry is a changelog item.
type UpdateEntry struct {
	ID          string     `json:"id" yaml:"id"`
	Date        string     `json:"date" yaml:"date"` // Display date, e.g. "4 сентября 2025"
	PublishedAt time.Time  `json:"published_at" yaml:"published_at"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Emoji       string     `json:"emoji" yaml:"emoji"`
	Type        UpdateType `json:"type" yaml:"type"`
	Likes       int        `json:"likes" yaml:"likes"`
}

func (u *UpdateEntry) IsPublishedAt(now time.Time) bool {
	return !u.PublishedAt.After(now)
}
