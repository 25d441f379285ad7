package kb

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"helpcenter/internal/config"
	"helpcenter/internal/domain/models/kb"
	kbSvc "helpcenter/internal/domain/services/kb"
)

// validateSaveArticle checks limits only. Every form the editor can submit
// within them is accepted.
func validateSaveArticle(req *kbSvc.SaveArticleRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.RuneLength(0, config.MaxTitleLength)),
		validation.Field(&req.Subtitle, validation.RuneLength(0, config.MaxSubtitleLength)),
		validation.Field(&req.Category, validation.RuneLength(0, config.MaxTermLength)),
		validation.Field(&req.Content, validation.Length(0, config.MaxContentSize)),
		validation.Field(&req.Tags, validation.Each(validation.RuneLength(0, config.MaxTermLength))),
	)
}

func validateCreateUpdate(req *kbSvc.CreateUpdateRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.RuneLength(0, config.MaxTitleLength)),
		validation.Field(&req.Description, validation.Length(0, config.MaxContentSize)),
		validation.Field(&req.Emoji, validation.RuneLength(0, 8)),
		validation.Field(&req.Type, validation.By(func(value interface{}) error {
			if t, _ := value.(kb.UpdateType); !t.IsValid() {
				return validation.NewError("validation_update_type", "must be feature, improvement or fix")
			}
			return nil
		})),
	)
}

// normalizeTags trims tags and drops blanks and duplicates, keeping order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
