package richtext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpcenter/internal/domain/models/richtext"
)

func TestMarkdownExporter_Export(t *testing.T) {
	e := NewMarkdownExporter()

	got, err := e.Export("Работа с вебхуками", `<h2>Вебхуки</h2><p>Настройте <strong>URL</strong> в кабинете.</p>`)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "# Работа с вебхуками\n\n## Вебхуки"), "got %q", got)
	assert.Contains(t, got, "Настройте **URL** в кабинете.")
}

func TestMarkdownExporter_VideoBecomesLink(t *testing.T) {
	markup := Render(richtext.Document{Blocks: []richtext.Block{
		richtext.Paragraph("Смотрите:"),
		{Kind: richtext.BlockVideo, Src: "https://www.youtube.com/embed/abc123"},
	}})

	got, err := NewMarkdownExporter().Export("", markup)
	require.NoError(t, err)

	assert.Contains(t, got, "[Видео](https://www.youtube.com/embed/abc123)")
	assert.NotContains(t, got, "iframe")
	assert.False(t, strings.HasPrefix(got, "#"))
}
