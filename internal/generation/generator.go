package generation

import (
	"context"

	"github.com/phrazzld/scry-cardgen/internal/domain"
)

// TextExtractor pulls plain text out of an image with a vision-capable model.
type TextExtractor interface {
	// ExtractText makes a single round trip to the vision model and returns
	// its text, trimmed. Transport failures wrap ErrUpstreamUnavailable and an
	// empty result wraps ErrOCREmptyResult.
	ExtractText(ctx context.Context, image []byte, mimeType string) (string, error)
}

// SynthesisRequest is the input to a CardSynthesizer.
type SynthesisRequest struct {
	// SourceText is the non-empty text to turn into cards.
	SourceText string

	// LocaleInstruction is appended to the system prompt when non-empty.
	LocaleInstruction string

	// HelperPrompt carries optional user instructions such as
	// "focus on definitions only".
	HelperPrompt string
}

// CardSynthesizer defines the interface for generating flashcards from text.
// This interface serves as a boundary between the application core and
// external AI/LLM services, following the hexagonal architecture pattern.
type CardSynthesizer interface {
	// SynthesizeCards asks a text-generation model for schema-constrained
	// cards. The returned result has not been through the Gate yet and may
	// hold zero cards. Failures wrap ErrGenerationFailed.
	SynthesizeCards(ctx context.Context, req SynthesisRequest) (*domain.GenerationResult, error)
}
