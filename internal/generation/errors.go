package generation

import "errors"

// Pipeline outcome errors. Every failure returned by Pipeline wraps exactly
// one of these.
var (
	// ErrInvalidInput is returned when a request has neither usable text nor an image.
	ErrInvalidInput = errors.New("please provide text or an image")

	// ErrOCREmptyResult is returned when text extraction produced only whitespace.
	ErrOCREmptyResult = errors.New("no text could be extracted from the image")

	// ErrUpstreamUnavailable is returned when the vision model could not be reached.
	ErrUpstreamUnavailable = errors.New("text extraction service unavailable")

	// ErrGenerationFailed is returned when card generation fails for any general reason
	ErrGenerationFailed = errors.New("failed to generate cards from text")

	// ErrNoCardsGenerated is returned when the model produced an empty card set.
	ErrNoCardsGenerated = errors.New("no cards could be generated, try different content")
)

// Detail errors, wrapped alongside an outcome error to describe the cause.
var (
	// ErrInvalidResponse is returned when the LLM response cannot be parsed or is malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for temporary errors that might resolve on retry
	ErrTransientFailure = errors.New("transient error calling language model")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
