package generation

import (
	"fmt"
	"mime"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/phrazzld/scry-cardgen/internal/domain"
)

// DefaultImageMIMEType is used when an image's type is neither declared nor
// recognizable from its bytes.
const DefaultImageMIMEType = "image/jpeg"

// Mode tags the kind of input a request carries.
type Mode int

const (
	// ModeText means the request carries pasted text.
	ModeText Mode = iota + 1

	// ModeImage means the request carries an image that needs OCR first.
	ModeImage
)

// String returns the mode name used in logs.
func (m Mode) String() string {
	switch m {
	case ModeText:
		return "text"
	case ModeImage:
		return "image"
	default:
		return "unknown"
	}
}

// Input is a normalized request: exactly one of Text or Image is set,
// according to Mode.
type Input struct {
	Mode     Mode
	Text     string
	Image    []byte
	MIMEType string
}

// Normalize decides which input mode applies to req. An image wins over text
// when both are present. maxTextLength bounds text mode in runes; zero or
// less disables the bound. Normalize has no side effects.
func Normalize(req domain.GenerationRequest, maxTextLength int) (Input, error) {
	if req.HasImage() {
		return Input{
			Mode:     ModeImage,
			Image:    req.Image,
			MIMEType: ResolveImageMIMEType(req.ImageMIMEType, req.Image),
		}, nil
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return Input{}, ErrInvalidInput
	}
	if maxTextLength > 0 && utf8.RuneCountInString(text) > maxTextLength {
		return Input{}, fmt.Errorf("%w: text exceeds %d characters", ErrInvalidInput, maxTextLength)
	}

	return Input{Mode: ModeText, Text: text}, nil
}

// ResolveImageMIMEType returns declared when it names an image type,
// otherwise the type sniffed from data, otherwise DefaultImageMIMEType.
func ResolveImageMIMEType(declared string, data []byte) string {
	if mediaType, _, err := mime.ParseMediaType(declared); err == nil && isImageType(mediaType) {
		return mediaType
	}

	if len(data) > 0 {
		if detected := mimetype.Detect(data); detected != nil && isImageType(detected.String()) {
			return detected.String()
		}
	}

	return DefaultImageMIMEType
}

func isImageType(mediaType string) bool {
	return strings.HasPrefix(strings.ToLower(mediaType), "image/")
}
