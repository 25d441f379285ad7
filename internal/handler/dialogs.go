package handler

import (
	"context"
	"net/http"
	"net/url"
)

// Form fields carrying dialog answers.
const (
	fieldConfirm      = "confirm"       // "yes" or "no"
	fieldPrompt       = "prompt"        // "ok" or "cancel"
	fieldPromptAnswer = "prompt_answer" // text typed into the prompt
)

// pendingDialog is a question the user has not answered yet.
type pendingDialog struct {
	Prompt  bool
	Message string
	Action  string
	Fields  url.Values // replayed with the answer
}

// formDialogs answers dialogs from the posted form. An unanswered dialog is
// recorded so the handler can ask it and replay the post.
type formDialogs struct {
	r       *http.Request
	pending *pendingDialog
}

func newFormDialogs(r *http.Request) *formDialogs {
	return &formDialogs{r: r}
}

func (d *formDialogs) Confirm(_ context.Context, message string) bool {
	switch d.r.PostFormValue(fieldConfirm) {
	case "yes":
		return true
	case "no":
		return false
	}
	d.ask(false, message)
	return false
}

func (d *formDialogs) Prompt(_ context.Context, message string) (string, bool) {
	switch d.r.PostFormValue(fieldPrompt) {
	case "ok":
		return d.r.PostFormValue(fieldPromptAnswer), true
	case "cancel":
		return "", false
	}
	d.ask(true, message)
	return "", false
}

func (d *formDialogs) ask(prompt bool, message string) {
	fields := url.Values{}
	for k, v := range d.r.PostForm {
		switch k {
		case fieldConfirm, fieldPrompt, fieldPromptAnswer:
			continue
		}
		fields[k] = v
	}
	d.pending = &pendingDialog{
		Prompt:  prompt,
		Message: message,
		Action:  d.r.URL.Path,
		Fields:  fields,
	}
}
