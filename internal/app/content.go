package app

import (
	"context"
	"fmt"

	"helpcenter/internal/domain"
	"helpcenter/internal/domain/models/kb"
)

// TrashArticle moves an article to the trash after confirmation. It reports
// whether anything was moved.
func (c *Controller) TrashArticle(ctx context.Context, dlg Dialogs, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireAdmin(); err != nil {
		return false, err
	}
	if !dlg.Confirm(ctx, ConfirmTrashArticle) {
		return false, nil
	}

	if _, err := c.svc.Trash.TrashArticle(ctx, id); err != nil {
		return false, err
	}
	c.dispatch(ArticleTrashed{ID: id})
	return true, nil
}

// TrashUpdate moves a feed entry to the trash after confirmation.
func (c *Controller) TrashUpdate(ctx context.Context, dlg Dialogs, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireAdmin(); err != nil {
		return false, err
	}
	if !dlg.Confirm(ctx, ConfirmTrashUpdate) {
		return false, nil
	}

	if _, err := c.svc.Trash.TrashUpdate(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Controller) RestoreTrash(ctx context.Context, index int) (*kb.TrashItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireAdmin(); err != nil {
		return nil, err
	}
	return c.svc.Trash.Restore(ctx, index)
}

// PurgeTrash permanently deletes a trash entry after confirmation.
func (c *Controller) PurgeTrash(ctx context.Context, dlg Dialogs, index int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireAdmin(); err != nil {
		return false, err
	}
	if !dlg.Confirm(ctx, ConfirmPurge) {
		return false, nil
	}

	if _, err := c.svc.Trash.Purge(ctx, index); err != nil {
		return false, err
	}
	return true, nil
}

// PublishNow publishes a scheduled article and returns the notice to show.
func (c *Controller) PublishNow(ctx context.Context, id string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireAdmin(); err != nil {
		return "", err
	}
	if _, err := c.svc.Articles.PublishNow(ctx, id); err != nil {
		return "", err
	}
	return NoticePublished, nil
}

// RestoreVersion makes version index current and shows the article.
func (c *Controller) RestoreVersion(ctx context.Context, id string, index int) (*kb.Article, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireAdmin(); err != nil {
		return nil, err
	}

	article, err := c.svc.Versions.RestoreVersion(ctx, id, index)
	if err != nil {
		return nil, err
	}
	c.dispatch(SelectArticle{ID: article.ID})
	return article, nil
}

// Feedback records a helpful or unhelpful vote and returns the reply.
func (c *Controller) Feedback(ctx context.Context, id string, helpful bool) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	article, err := c.svc.Articles.GetArticle(ctx, id)
	if err != nil {
		return "", err
	}
	if !c.state.IsAdmin && !c.svc.Schedule.IsPublished(article) {
		return "", fmt.Errorf("%w: article %s", domain.ErrNotFound, id)
	}

	if _, err := c.svc.Articles.RecordFeedback(ctx, id, helpful); err != nil {
		return "", err
	}
	if helpful {
		return NoticeHelpful, nil
	}
	return NoticeUnhelpful, nil
}

func (c *Controller) LikeUpdate(ctx context.Context, id string) (*kb.UpdateEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.svc.Updates.LikeUpdate(ctx, id)
}
