package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/scry-cardgen/internal/api/shared"
	"github.com/phrazzld/scry-cardgen/internal/domain"
	"github.com/phrazzld/scry-cardgen/internal/generation"
)

// Client-facing messages. They never include upstream error details.
const (
	msgInvalidInput        = "Please provide text or an image"
	msgTextTooLong         = "Text is too long"
	msgMissingImage        = "Please provide an image"
	msgUploadTooLarge      = "Upload is too large"
	msgInvalidRequest      = "Invalid request format"
	msgOCREmptyResult      = "No text could be extracted from the image"
	msgNoCardsGenerated    = "No cards could be generated. Try different content."
	msgUpstreamUnavailable = "Text extraction service is unavailable"
	msgGenerationFailed    = "Failed to generate cards"
	msgInvalidImportFormat = "JSON format not recognized. Use {front, back} or {word, definition, example}"
	msgNoValidCards        = "No valid cards found (missing front/back or word/definition)"
	msgUnexpected          = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes.
// Caller errors are 400, content errors 422 and provider failures 500.
func MapErrorToStatusCode(err error) int {
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.As(err, &maxBytesErr),
		errors.Is(err, generation.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, domain.ErrNoValidCards),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, shared.ErrEmptyBody):
		return http.StatusBadRequest

	case errors.Is(err, generation.ErrOCREmptyResult),
		errors.Is(err, generation.ErrNoCardsGenerated):
		return http.StatusUnprocessableEntity

	case errors.Is(err, generation.ErrUpstreamUnavailable),
		errors.Is(err, generation.ErrGenerationFailed):
		return http.StatusInternalServerError

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgUnexpected
	}

	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.As(err, &maxBytesErr):
		return msgUploadTooLarge

	case errors.Is(err, generation.ErrInvalidInput):
		if strings.Contains(err.Error(), "exceeds") {
			return msgTextTooLong
		}
		return msgInvalidInput

	case errors.Is(err, generation.ErrOCREmptyResult):
		return msgOCREmptyResult

	case errors.Is(err, generation.ErrNoCardsGenerated):
		return msgNoCardsGenerated

	case errors.Is(err, generation.ErrUpstreamUnavailable):
		return msgUpstreamUnavailable

	case errors.Is(err, generation.ErrGenerationFailed):
		return msgGenerationFailed

	case errors.Is(err, domain.ErrInvalidFormat):
		return msgInvalidImportFormat

	case errors.Is(err, domain.ErrNoValidCards):
		return msgNoValidCards

	case errors.Is(err, domain.ErrValidation), errors.Is(err, shared.ErrEmptyBody):
		return msgInvalidRequest

	default:
		return msgUnexpected
	}
}

// HandleAPIError writes the error envelope for err. defaultMsg replaces the
// generic message for errors the taxonomy does not know.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if message == msgUnexpected && defaultMsg != "" {
		message = defaultMsg
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError turns validator errors into a short message that
// names the first failing field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
