package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/scry-cardgen/internal/api/shared"
	"github.com/phrazzld/scry-cardgen/internal/domain"
	"github.com/phrazzld/scry-cardgen/internal/platform/logger"
)

// GenerationService runs the card generation pipeline.
// *generation.Pipeline satisfies it.
type GenerationService interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error)
	ExtractText(ctx context.Context, image []byte, mimeType string) (string, error)
}

// GenerationHandler handles the AI generation endpoints.
type GenerationHandler struct {
	service        GenerationService
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewGenerationHandler creates a GenerationHandler. Request bodies larger
// than maxUploadBytes are rejected.
func NewGenerationHandler(service GenerationService, maxUploadBytes int64, logger *slog.Logger) *GenerationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GenerationHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// GenerateCards handles POST /api/ai/generate requests
func (h *GenerationHandler) GenerateCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if err := shared.ParseMultipart(w, r, h.maxUploadBytes); err != nil {
		log.Debug("failed to parse generation request", "error", err)
		HandleAPIError(w, r, requestError(err), msgInvalidRequest)
		return
	}

	image, mimeType, err := shared.FormFile(r, fieldImage)
	if err != nil {
		HandleAPIError(w, r, requestError(err), msgInvalidRequest)
		return
	}

	req := domain.GenerationRequest{
		Text:               r.FormValue(fieldText),
		Image:              image,
		ImageMIMEType:      mimeType,
		LanguagePreference: r.Header.Get("Accept-Language"),
		HelperPrompt:       r.FormValue(fieldHelperPrompt),
	}

	result, err := h.service.Generate(r.Context(), req)
	if err != nil {
		HandleAPIError(w, r, err, msgGenerationFailed)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CardsResponse{Cards: result.Cards})
}

// ExtractText handles POST /api/ai/ocr requests
func (h *GenerationHandler) ExtractText(w http.ResponseWriter, r *http.Request) {
	if err := shared.ParseMultipart(w, r, h.maxUploadBytes); err != nil {
		HandleAPIError(w, r, requestError(err), msgInvalidRequest)
		return
	}

	image, mimeType, err := shared.FormFile(r, fieldImage)
	if err != nil {
		HandleAPIError(w, r, requestError(err), msgInvalidRequest)
		return
	}
	if len(image) == 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgMissingImage)
		return
	}

	text, err := h.service.ExtractText(r.Context(), image, mimeType)
	if err != nil {
		HandleAPIError(w, r, err, msgUpstreamUnavailable)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TextResponse{Text: text})
}

// requestError classifies a failure to read the request itself as a caller
// error, keeping a body-size violation recognizable.
func requestError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return err
	}
	return errors.Join(domain.ErrValidation, err)
}
