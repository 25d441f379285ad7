package richtext

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"helpcenter/internal/config"
	"helpcenter/internal/domain"
	"helpcenter/internal/domain/models/richtext"
)

// imageTypes are the formats that survive sanitisation as data URIs.
var imageTypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp"}

// ImageBlock embeds uploaded image bytes as a self-contained data URI.
// The type is sniffed from the content, not taken from the upload.
func ImageBlock(data []byte) (richtext.Block, error) {
	if len(data) == 0 {
		return richtext.Block{}, fmt.Errorf("%w: empty image", domain.ErrValidation)
	}
	if len(data) > config.MaxImageSize {
		return richtext.Block{}, fmt.Errorf("%w: image exceeds %d bytes", domain.ErrValidation, config.MaxImageSize)
	}

	mt := mimetype.Detect(data)
	supported := false
	for _, t := range imageTypes {
		if mt.Is(t) {
			supported = true
			break
		}
	}
	if !supported {
		return richtext.Block{}, fmt.Errorf("%w: unsupported image type %s", domain.ErrValidation, mt.String())
	}

	src := "data:" + mt.String() + ";base64," + base64.StdEncoding.EncodeToString(data)
	return richtext.Block{Kind: richtext.BlockImage, Src: src}, nil
}

// VideoBlock builds a responsive embed for an http(s) URL.
func VideoBlock(rawURL string) (richtext.Block, error) {
	rawURL = strings.TrimSpace(rawURL)
	if err := validation.Validate(rawURL, validation.Required, is.URL); err != nil {
		return richtext.Block{}, fmt.Errorf("%w: video url %v", domain.ErrValidation, err)
	}
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return richtext.Block{}, fmt.Errorf("%w: video url must be http or https", domain.ErrValidation)
	}
	return richtext.Block{Kind: richtext.BlockVideo, Src: u.String()}, nil
}
