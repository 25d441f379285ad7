package app

import "context"

// Dialogs asks the user blocking questions.
type Dialogs interface {
	// Confirm returns true when the user agrees.
	Confirm(ctx context.Context, message string) bool

	// Prompt returns the answer, or ok=false when the user cancels.
	Prompt(ctx context.Context, message string) (answer string, ok bool)
}

// Dialog and notice texts.
const (
	ConfirmTrashArticle = "Переместить статью в корзину?"
	ConfirmTrashUpdate  = "Переместить это обновление в корзину?"
	ConfirmPurge        = "Удалить навсегда? Это действие нельзя отменить."
	PromptVideoURL      = "Введите ссылку на видео (например, YouTube embed URL):"

	NoticePublished = "Статья опубликована!"
	NoticeHelpful   = "Спасибо за отзыв!"
	NoticeUnhelpful = "Что мы можем улучшить?"
)
