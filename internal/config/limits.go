package config

const (
	// MaxTitleLength is the maximum length for article and update titles.
	MaxTitleLength = 255

	// MaxSubtitleLength is the maximum length for article subtitles.
	MaxSubtitleLength = 500

	// MaxTermLength is the maximum length for a category or tag name.
	MaxTermLength = 64

	// MaxContentSize caps the rendered markup of a single article or update (bytes).
	// Data URI images count towards it.
	MaxContentSize = 20 << 20

	// MaxImageSize caps a single uploaded image before base64 encoding.
	MaxImageSize = 5 << 20

	// MaxUploadSize caps a whole multipart editor post.
	MaxUploadSize = MaxContentSize + MaxImageSize

	// EditorEmojiCount is how many palette emojis the update editor offers.
	EditorEmojiCount = 8

	// DefaultLogMaxFiles is how many log files SetupLogFile keeps.
	DefaultLogMaxFiles = 10
)
