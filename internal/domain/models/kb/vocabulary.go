package kb

// VocabularyKind names one of the two growable term sets.
type VocabularyKind string

const (
	VocabularyCategories VocabularyKind = "category"
	VocabularyTags       VocabularyKind = "tag"
)

func (k VocabularyKind) IsValid() bool {
	return k == VocabularyCategories || k == VocabularyTags
}

// Vocabulary is a snapshot of both term sets in insertion order.
type Vocabulary struct {
	Categories []string `json:"categories" yaml:"categories"`
	Tags       []string `json:"tags" yaml:"tags"`
}
