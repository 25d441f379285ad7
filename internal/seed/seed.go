// Package seed holds the initial content of the help center and loads it
// into the store.
package seed

import (
	"embed"
	"fmt"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"helpcenter/internal/domain/models/kb"
)

//go:embed data/*.yaml
var dataFiles embed.FS

// File is the YAML layout of a seed file.
type File struct {
	Categories []string  `yaml:"categories"`
	Tags       []string  `yaml:"tags"`
	Emojis     []string  `yaml:"emojis"`
	Articles   []Article `yaml:"articles"`
	Updates    []Update  `yaml:"updates"`
}

type Article struct {
	ID             string        `yaml:"id"`
	Title          string        `yaml:"title"`
	Subtitle       string        `yaml:"subtitle,omitempty"`
	Category       string        `yaml:"category"`
	Content        string        `yaml:"content"`
	Tags           []string      `yaml:"tags,omitempty"`
	PublishOffset  time.Duration `yaml:"publish_offset"`
	HelpfulCount   int           `yaml:"helpful_count"`
	UnhelpfulCount int           `yaml:"unhelpful_count"`
}

type Update struct {
	ID            string        `yaml:"id"`
	Title         string        `yaml:"title"`
	Date          string        `yaml:"date,omitempty"` // Defaults to the load date
	Emoji         string        `yaml:"emoji"`
	Type          kb.UpdateType `yaml:"type"`
	Likes         int           `yaml:"likes"`
	Description   string        `yaml:"description"`
	PublishOffset time.Duration `yaml:"publish_offset"`
}

// Default returns the embedded seed data.
func Default() (*File, error) {
	data, err := dataFiles.ReadFile("data/default.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded seed: %w", err)
	}
	return Parse(data)
}

// LoadFile reads a seed file from disk, e.g. one written by cmd/seed.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	return Parse(data)
}

// Load returns the file at path, or the embedded data when path is empty.
func Load(path string) (*File, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// Parse decodes and validates seed YAML.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seed: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}
	return &f, nil
}

func (f *File) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Categories, validation.Each(validation.Required)),
		validation.Field(&f.Tags, validation.Each(validation.Required)),
		validation.Field(&f.Emojis, validation.Required, validation.Each(validation.Required)),
		validation.Field(&f.Articles, validation.By(uniqueIDs(func(i int) string { return f.Articles[i].ID }, len(f.Articles)))),
		validation.Field(&f.Updates, validation.By(uniqueIDs(func(i int) string { return f.Updates[i].ID }, len(f.Updates)))),
	)
}

func (a Article) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.ID, validation.Required),
		validation.Field(&a.Title, validation.Required),
	)
}

func (u Update) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.ID, validation.Required),
		validation.Field(&u.Title, validation.Required),
		validation.Field(&u.Type, validation.By(func(value interface{}) error {
			if t, _ := value.(kb.UpdateType); !t.IsValid() {
				return validation.NewError("validation_update_type", "must be feature, improvement or fix")
			}
			return nil
		})),
	)
}

func uniqueIDs(id func(int) string, n int) validation.RuleFunc {
	return func(interface{}) error {
		seen := make(map[string]bool, n)
		for i := range n {
			if seen[id(i)] {
				return validation.NewError("validation_duplicate_id", "duplicate id "+id(i))
			}
			seen[id(i)] = true
		}
		return nil
	}
}

// Build turns the file into records whose publish times are relative to now.
// formatDate fills update dates the file leaves empty.
func (f *File) Build(now time.Time, formatDate func(time.Time) string) ([]kb.Article, []kb.UpdateEntry) {
	articles := make([]kb.Article, 0, len(f.Articles))
	for _, a := range f.Articles {
		tags := a.Tags
		if tags == nil {
			tags = []string{}
		}
		articles = append(articles, kb.Article{
			ID:             a.ID,
			Title:          a.Title,
			Subtitle:       a.Subtitle,
			Category:       a.Category,
			Content:        a.Content,
			PublishedAt:    now.Add(a.PublishOffset),
			Tags:           tags,
			Versions:       []string{},
			HelpfulCount:   a.HelpfulCount,
			UnhelpfulCount: a.UnhelpfulCount,
		})
	}

	updates := make([]kb.UpdateEntry, 0, len(f.Updates))
	for _, u := range f.Updates {
		publishedAt := now.Add(u.PublishOffset)
		date := u.Date
		if date == "" {
			date = formatDate(publishedAt)
		}
		updates = append(updates, kb.UpdateEntry{
			ID:          u.ID,
			Date:        date,
			PublishedAt: publishedAt,
			Title:       u.Title,
			Description: u.Description,
			Emoji:       u.Emoji,
			Type:        u.Type,
			Likes:       u.Likes,
		})
	}
	return articles, updates
}
