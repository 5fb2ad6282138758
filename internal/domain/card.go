package domain

// GeneratedCard is one front/back flashcard pair. Both sides are free text;
// this package enforces no length or uniqueness constraints.
type GeneratedCard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// GenerationResult is the outcome of a successful generation run.
type GenerationResult struct {
	Cards []GeneratedCard `json:"cards"`
}

// IsEmpty reports whether the result holds no cards. A nil result is empty.
func (r *GenerationResult) IsEmpty() bool {
	return r == nil || len(r.Cards) == 0
}

// GenerationRequest carries the raw input of a single generation request.
// At least one of Text or Image must be present; see generation.Normalize.
type GenerationRequest struct {
	Text string

	Image []byte

	// ImageMIMEType is the type declared by the client, possibly empty.
	ImageMIMEType string

	// LanguagePreference is an Accept-Language style value, possibly empty.
	LanguagePreference string

	// HelperPrompt holds optional extra instructions from the user.
	HelperPrompt string
}

// HasImage reports whether the request carries image bytes.
func (r GenerationRequest) HasImage() bool {
	return len(r.Image) > 0
}
