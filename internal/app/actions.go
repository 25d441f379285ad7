package app

import (
	"slices"

	"helpcenter/internal/domain/models/kb"
)

// Action is a state transition. The set is closed: only this package
// defines actions.
type Action interface {
	isAction()
}

type ShowView struct{ View View }

type SelectArticle struct{ ID string }

type ToggleCategory struct{ Name string }

type SetQuery struct{ Query string }

type SetAdmin struct{ On bool }

type OpenModal struct{ Modal Modal }

type CloseModal struct{}

type ToggleDraftTag struct{ Tag string }

// BeginArticleDraft opens the article editor on Draft.
type BeginArticleDraft struct{ Draft ArticleDraft }

// SetArticleDraft replaces the open article draft.
type SetArticleDraft struct{ Draft ArticleDraft }

type BeginUpdateDraft struct{ Draft UpdateDraft }

type SetUpdateDraft struct{ Draft UpdateDraft }

// SelectDraftTerm preselects a vocabulary term in the article draft and
// closes the modal.
type SelectDraftTerm struct {
	Kind kb.VocabularyKind
	Term string
}

type ArticleSaved struct{ ID string }

type UpdateSaved struct{}

type ArticleTrashed struct{ ID string }

type CancelDraft struct{}

type LoadingDone struct{}

func (ShowView) isAction() {}
func (SelectArticle) isAction() {}
func (ToggleCategory) isAction() {}
func (SetQuery) isAction() {}
func (SetAdmin) isAction() {}
func (OpenModal) isAction() {}
func (CloseModal) isAction() {}
func (ToggleDraftTag) isAction() {}
func (BeginArticleDraft) isAction() {}
func (SetArticleDraft) isAction() {}
func (BeginUpdateDraft) isAction() {}
func (SetUpdateDraft) isAction() {}
func (SelectDraftTerm) isAction() {}
func (ArticleSaved) isAction() {}
func (UpdateSaved) isAction() {}
func (ArticleTrashed) isAction() {}
func (CancelDraft) isAction() {}
func (LoadingDone) isAction() {}

// Reduce returns the state after a. s is not modified.
func Reduce(s State, a Action) State {
	s = s.Clone()

	switch a := a.(type) {
	case ShowView:
		s.View = a.View
		s.Modal = ModalNone

	case SelectArticle:
		s.SelectedID = a.ID
		s.View = ViewArticle
		s.Modal = ModalNone

	case ToggleCategory:
		s.OpenCategories[a.Name] = !s.OpenCategories[a.Name]

	case SetQuery:
		s.Query = a.Query

	case SetAdmin:
		s.IsAdmin = a.On
		if !a.On {
			s.Modal = ModalNone
			s.ArticleDraft = nil
			s.UpdateDraft = nil
			if s.View.AdminOnly() {
				s.View = ViewUpdates
			}
		}

	case OpenModal:
		if s.ArticleDraft != nil {
			s.Modal = a.Modal
		}

	case CloseModal:
		s.Modal = ModalNone

	case ToggleDraftTag:
		if d := s.ArticleDraft; d != nil {
			if i := slices.Index(d.Tags, a.Tag); i >= 0 {
				d.Tags = slices.Delete(d.Tags, i, i+1)
			} else {
				d.Tags = append(d.Tags, a.Tag)
			}
		}

	case BeginArticleDraft:
		s.ArticleDraft = a.Draft.clone()
		s.UpdateDraft = nil
		s.Modal = ModalNone
		s.View = ViewEditor

	case SetArticleDraft:
		if s.ArticleDraft != nil {
			s.ArticleDraft = a.Draft.clone()
		}

	case BeginUpdateDraft:
		s.UpdateDraft = a.Draft.clone()
		s.ArticleDraft = nil
		s.Modal = ModalNone
		s.View = ViewUpdateEditor

	case SetUpdateDraft:
		if s.UpdateDraft != nil {
			s.UpdateDraft = a.Draft.clone()
		}

	case SelectDraftTerm:
		if d := s.ArticleDraft; d != nil {
			switch a.Kind {
			case kb.VocabularyCategories:
				d.Category = a.Term
			case kb.VocabularyTags:
				if !slices.Contains(d.Tags, a.Term) {
					d.Tags = append(d.Tags, a.Term)
				}
			}
		}
		s.Modal = ModalNone

	case ArticleSaved:
		s.ArticleDraft = nil
		s.Modal = ModalNone
		s.SelectedID = a.ID
		s.View = ViewArticle

	case UpdateSaved:
		s.UpdateDraft = nil
		s.View = ViewUpdates

	case ArticleTrashed:
		if s.SelectedID == a.ID {
			s.SelectedID = ""
			s.View = ViewUpdates
		}
		if s.ArticleDraft != nil && s.ArticleDraft.ID == a.ID {
			s.ArticleDraft = nil
			s.Modal = ModalNone
			s.View = ViewUpdates
		}

	case CancelDraft:
		s.ArticleDraft = nil
		s.UpdateDraft = nil
		s.Modal = ModalNone
		s.View = ViewUpdates

	case LoadingDone:
		s.IsLoading = false
	}

	return s
}
