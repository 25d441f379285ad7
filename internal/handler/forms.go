package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"helpcenter/internal/app"
	"helpcenter/internal/config"
	"helpcenter/internal/domain"
	"helpcenter/internal/domain/models/kb"
	rtModel "helpcenter/internal/domain/models/richtext"
	"helpcenter/internal/service/richtext"
)

// datetimeLayout is the value format of <input type="datetime-local">.
const datetimeLayout = "2006-01-02T15:04"

// maxImportSize caps a file imported into the article editor.
const maxImportSize = config.MaxContentSize

// parseForm reads url-encoded and multipart posts alike.
func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadSize)

	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(config.MaxImageSize)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return fmt.Errorf("%w: failed to parse form: %v", domain.ErrValidation, err)
	}
	return nil
}

// parseSelection reads the caret the editor script posts. Missing fields put
// the caret at the end of the document.
func parseSelection(r *http.Request) *rtModel.Range {
	names := [4]string{"sel_start_block", "sel_start_offset", "sel_end_block", "sel_end_offset"}
	var v [4]int
	for i, name := range names {
		n, err := strconv.Atoi(r.PostFormValue(name))
		if err != nil {
			return nil
		}
		v[i] = n
	}
	sel := rtModel.NewRange(
		rtModel.Position{Block: v[0], Offset: v[1]},
		rtModel.Position{Block: v[2], Offset: v[3]},
	)
	return &sel
}

func parseArticleForm(r *http.Request) (app.ArticleForm, error) {
	form := app.ArticleForm{
		Title:     strings.TrimSpace(r.PostFormValue("title")),
		Subtitle:  strings.TrimSpace(r.PostFormValue("subtitle")),
		Category:  r.PostFormValue("category"),
		Tags:      r.PostForm["tags"],
		Content:   r.PostFormValue("content"),
		Selection: parseSelection(r),
	}
	if form.Tags == nil {
		form.Tags = []string{}
	}

	if raw := r.PostFormValue("published_at"); raw != "" {
		t, err := time.ParseInLocation(datetimeLayout, raw, time.Local)
		if err != nil {
			return form, fmt.Errorf("%w: publish date %q", domain.ErrValidation, raw)
		}
		form.PublishedAt = t
	}
	return form, nil
}

func parseUpdateForm(r *http.Request) app.UpdateForm {
	return app.UpdateForm{
		Title:     strings.TrimSpace(r.PostFormValue("title")),
		Emoji:     r.PostFormValue("emoji"),
		Type:      kb.UpdateType(r.PostFormValue("type")),
		Content:   r.PostFormValue("content"),
		Selection: parseSelection(r),
	}
}

// readUpload returns the bytes of a posted file field.
func readUpload(r *http.Request, field string, limit int64) (*multipart.FileHeader, []byte, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: no file in %q", domain.ErrValidation, field)
	}
	defer file.Close()

	if header.Size > limit {
		return nil, nil, fmt.Errorf("%w: %s is larger than %d bytes", domain.ErrValidation, header.Filename, limit)
	}
	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, nil, fmt.Errorf("%w: %s is larger than %d bytes", domain.ErrValidation, header.Filename, limit)
	}
	return header, data, nil
}

// editorCommand maps a toolbar button to an editor command. ok is false for
// ops that are not toolbar commands. Glyph buttons post "glyph:<text>".
func editorCommand(r *http.Request, op string) (richtext.Command, bool, error) {
	if glyph, found := strings.CutPrefix(op, "glyph:"); found {
		return richtext.Command{Kind: richtext.CommandGlyph, Value: glyph}, true, nil
	}

	switch op {
	case "bold":
		return richtext.Command{Kind: richtext.CommandBold}, true, nil
	case "italic":
		return richtext.Command{Kind: richtext.CommandItalic}, true, nil
	case "list":
		return richtext.Command{Kind: richtext.CommandList}, true, nil
	case "size":
		return richtext.Command{Kind: richtext.CommandSize, Value: r.PostFormValue("size")}, true, nil
	case "color":
		return richtext.Command{Kind: richtext.CommandColor, Value: r.PostFormValue("color")}, true, nil
	case "video":
		return richtext.Command{Kind: richtext.CommandVideo, Value: strings.TrimSpace(r.PostFormValue("video_url"))}, true, nil
	case "image":
		_, data, err := readUpload(r, "image", config.MaxImageSize)
		if err != nil {
			return richtext.Command{}, true, err
		}
		return richtext.Command{Kind: richtext.CommandImage, Data: data}, true, nil
	}
	return richtext.Command{}, false, nil
}
