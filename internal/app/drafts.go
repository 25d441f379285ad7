package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"helpcenter/internal/domain"
	"helpcenter/internal/domain/models/kb"
	rtModel "helpcenter/internal/domain/models/richtext"
	kbSvc "helpcenter/internal/domain/services/kb"
	kbService "helpcenter/internal/service/kb"
	"helpcenter/internal/service/richtext"
)

// ArticleForm is the article editor as the user last left it. Content is the
// editable region's markup; a nil Selection puts the caret at the end.
type ArticleForm struct {
	Title       string
	Subtitle    string
	Category    string
	Tags        []string
	PublishedAt time.Time
	Content     string
	Selection   *rtModel.Range
}

// UpdateForm is the update editor as the user last left it.
type UpdateForm struct {
	Title     string
	Emoji     string
	Type      kb.UpdateType
	Content   string
	Selection *rtModel.Range
}

// NewArticle opens the editor on a blank article in the first category,
// published now.
func (c *Controller) NewArticle(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireAdmin(); err != nil {
		return err
	}
	return c.newArticle(ctx)
}

func (c *Controller) newArticle(ctx context.Context) error {
	vocab, err := c.svc.Vocabulary.Vocabulary(ctx)
	if err != nil {
		return err
	}

	draft := ArticleDraft{
		Tags:        []string{},
		PublishedAt: c.svc.Schedule.Now(),
	}
	if len(vocab.Categories) > 0 {
		draft.Category = vocab.Categories[0]
	}
	c.dispatch(BeginArticleDraft{Draft: draft})
	return nil
}

// EditArticle opens the editor on an existing article.
func (c *Controller) EditArticle(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireAdmin(); err != nil {
		return err
	}

	article, err := c.svc.Articles.GetArticle(ctx, id)
	if err != nil {
		return err
	}
	doc, err := c.svc.Parser.Parse(article.Content)
	if err != nil {
		return err
	}

	c.dispatch(BeginArticleDraft{Draft: ArticleDraft{
		ID:          article.ID,
		Title:       article.Title,
		Subtitle:    article.Subtitle,
		Category:    article.Category,
		Tags:        article.Tags,
		PublishedAt: article.PublishedAt,
		Doc:         *doc,
		Selection:   rtModel.Caret(doc.End()),
	}})
	return nil
}

func (c *Controller) articleDraft() (*ArticleDraft, error) {
	if err := c.requireAdmin(); err != nil {
		return nil, err
	}
	if c.state.ArticleDraft == nil {
		return nil, fmt.Errorf("%w: no article is being edited", domain.ErrValidation)
	}
	return c.state.ArticleDraft.clone(), nil
}

func (c *Controller) updateDraft() (*UpdateDraft, error) {
	if err := c.requireAdmin(); err != nil {
		return nil, err
	}
	if c.state.UpdateDraft == nil {
		return nil, fmt.Errorf("%w: no update is being edited", domain.ErrValidation)
	}
	return c.state.UpdateDraft.clone(), nil
}

// parseRegion reads the editable region back into a document.
func (c *Controller) parseRegion(markup string, sel *rtModel.Range) (rtModel.Document, rtModel.Range, error) {
	doc, err := c.svc.Parser.Parse(markup)
	if err != nil {
		return rtModel.Document{}, rtModel.Range{}, err
	}
	if sel == nil {
		return *doc, rtModel.Caret(doc.End()), nil
	}
	return *doc, doc.ClampRange(*sel), nil
}

// SyncArticleDraft stores the editor form into the draft.
func (c *Controller) SyncArticleDraft(form ArticleForm) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.syncArticleDraft(form)
}

func (c *Controller) syncArticleDraft(form ArticleForm) error {
	draft, err := c.articleDraft()
	if err != nil {
		return err
	}

	doc, sel, err := c.parseRegion(form.Content, form.Selection)
	if err != nil {
		return err
	}

	draft.Title = form.Title
	draft.Subtitle = form.Subtitle
	draft.Category = form.Category
	if form.Tags != nil {
		draft.Tags = form.Tags
	}
	if !form.PublishedAt.IsZero() {
		draft.PublishedAt = form.PublishedAt
	}
	draft.Doc = doc
	draft.Selection = sel

	c.dispatch(SetArticleDraft{Draft: *draft})
	return nil
}

// promptVideo fills in a missing video URL. ok is false when the user
// cancelled or left the answer empty.
func promptVideo(ctx context.Context, dlg Dialogs, cmd *richtext.Command) bool {
	if cmd.Kind != richtext.CommandVideo || cmd.Value != "" {
		return true
	}
	answer, ok := dlg.Prompt(ctx, PromptVideoURL)
	answer = strings.TrimSpace(answer)
	if !ok || answer == "" {
		return false
	}
	cmd.Value = answer
	return true
}

// ArticleCommand applies a toolbar command to the article draft.
func (c *Controller) ArticleCommand(ctx context.Context, dlg Dialogs, cmd richtext.Command) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	draft, err := c.articleDraft()
	if err != nil {
		return err
	}
	if !promptVideo(ctx, dlg, &cmd) {
		return nil
	}

	editor := richtext.NewEditor(draft.Doc)
	editor.Select(draft.Selection)
	if err := editor.Execute(cmd); err != nil {
		return err
	}

	draft.Doc = editor.Doc
	draft.Selection = editor.Selection
	c.dispatch(SetArticleDraft{Draft: *draft})
	return nil
}

// ImportIntoDraft converts an uploaded file and appends it to the article
// draft.
func (c *Controller) ImportIntoDraft(ctx context.Context, filename string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	draft, err := c.articleDraft()
	if err != nil {
		return err
	}

	imported, err := c.svc.Converters.Convert(ctx, filename, data)
	if err != nil {
		return err
	}

	if draft.Doc.IsEmpty() {
		draft.Doc = *imported
	} else {
		draft.Doc.Blocks = append(draft.Doc.Blocks, imported.Blocks...)
	}
	draft.Selection = rtModel.Caret(draft.Doc.End())

	c.logger.Info("file imported into draft",
		"filename", filename,
		"blocks", len(imported.Blocks),
	)
	c.dispatch(SetArticleDraft{Draft: *draft})
	return nil
}

// SaveArticle stores the draft and shows the saved article.
func (c *Controller) SaveArticle(ctx context.Context) (*kb.Article, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	draft, err := c.articleDraft()
	if err != nil {
		return nil, err
	}

	article, err := c.svc.Articles.SaveArticle(ctx, &kbSvc.SaveArticleRequest{
		ID:          draft.ID,
		Title:       draft.Title,
		Subtitle:    draft.Subtitle,
		Category:    draft.Category,
		Content:     richtext.Render(draft.Doc),
		Tags:        draft.Tags,
		PublishedAt: draft.PublishedAt,
	})
	if err != nil {
		return nil, err
	}

	c.dispatch(ArticleSaved{ID: article.ID})
	return article, nil
}

// OpenModal shows the add-topic or add-tag dialog over the article editor.
func (c *Controller) OpenModal(m Modal) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m != ModalAddTopic && m != ModalAddTag {
		return fmt.Errorf("%w: unknown modal %q", domain.ErrValidation, m)
	}
	if _, err := c.articleDraft(); err != nil {
		return err
	}
	c.dispatch(OpenModal{Modal: m})
	return nil
}

func (c *Controller) CloseModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dispatch(CloseModal{})
}

// SubmitModal adds name to the vocabulary behind the open modal and
// preselects it in the draft. A blank name keeps the modal open.
func (c *Controller) SubmitModal(ctx context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.articleDraft(); err != nil {
		return err
	}

	var kind kb.VocabularyKind
	switch c.state.Modal {
	case ModalAddTopic:
		kind = kb.VocabularyCategories
	case ModalAddTag:
		kind = kb.VocabularyTags
	default:
		return fmt.Errorf("%w: no dialog is open", domain.ErrValidation)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	term, err := c.svc.Vocabulary.AddTerm(ctx, kind, name)
	if err != nil {
		return err
	}
	c.dispatch(SelectDraftTerm{Kind: kind, Term: term})
	return nil
}

// ToggleDraftTag attaches or detaches a tag on the article draft.
func (c *Controller) ToggleDraftTag(tag string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.articleDraft(); err != nil {
		return err
	}
	c.dispatch(ToggleDraftTag{Tag: tag})
	return nil
}

// NewUpdate opens the update editor.
func (c *Controller) NewUpdate() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireAdmin(); err != nil {
		return err
	}
	return c.newUpdate()
}

func (c *Controller) newUpdate() error {
	c.dispatch(BeginUpdateDraft{Draft: UpdateDraft{
		Emoji: kbService.DefaultEmoji,
		Type:  kbService.DefaultUpdateType,
	}})
	return nil
}

// SyncUpdateDraft stores the update editor form into the draft.
func (c *Controller) SyncUpdateDraft(form UpdateForm) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	draft, err := c.updateDraft()
	if err != nil {
		return err
	}

	doc, sel, err := c.parseRegion(form.Content, form.Selection)
	if err != nil {
		return err
	}

	draft.Title = form.Title
	if form.Emoji != "" {
		draft.Emoji = form.Emoji
	}
	if form.Type != "" {
		draft.Type = form.Type
	}
	draft.Doc = doc
	draft.Selection = sel

	c.dispatch(SetUpdateDraft{Draft: *draft})
	return nil
}

// UpdateCommand applies a toolbar command to the update draft.
func (c *Controller) UpdateCommand(ctx context.Context, dlg Dialogs, cmd richtext.Command) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	draft, err := c.updateDraft()
	if err != nil {
		return err
	}
	if !promptVideo(ctx, dlg, &cmd) {
		return nil
	}

	editor := richtext.NewEditor(draft.Doc)
	editor.Select(draft.Selection)
	if err := editor.Execute(cmd); err != nil {
		return err
	}

	draft.Doc = editor.Doc
	draft.Selection = editor.Selection
	c.dispatch(SetUpdateDraft{Draft: *draft})
	return nil
}

// SaveUpdate publishes the draft at the top of the feed.
func (c *Controller) SaveUpdate(ctx context.Context) (*kb.UpdateEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	draft, err := c.updateDraft()
	if err != nil {
		return nil, err
	}

	update, err := c.svc.Updates.CreateUpdate(ctx, &kbSvc.CreateUpdateRequest{
		Title:       draft.Title,
		Description: richtext.Render(draft.Doc),
		Emoji:       draft.Emoji,
		Type:        draft.Type,
	})
	if err != nil {
		return nil, err
	}

	c.dispatch(UpdateSaved{})
	return update, nil
}
