package api

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"

	"github.com/phrazzld/scry-cardgen/internal/api/shared"
	"github.com/phrazzld/scry-cardgen/internal/domain"
	"github.com/phrazzld/scry-cardgen/internal/platform/logger"
)

// ImportHandler converts uploaded card JSON into cards.
type ImportHandler struct {
	maxBodyBytes int64
	logger       *slog.Logger
}

// NewImportHandler creates an ImportHandler.
func NewImportHandler(maxBodyBytes int64, logger *slog.Logger) *ImportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImportHandler{maxBodyBytes: maxBodyBytes, logger: logger}
}

// ImportCards handles POST /api/cards/import requests
func (h *ImportHandler) ImportCards(w http.ResponseWriter, r *http.Request) {
	shared.LimitBody(w, r, h.maxBodyBytes)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		HandleAPIError(w, r, requestError(err), msgInvalidRequest)
		return
	}

	data := bytes.TrimSpace(body)
	if len(data) > 0 && data[0] == '{' {
		var req ImportCardsRequest
		r.Body = io.NopCloser(bytes.NewReader(data))
		if err := shared.DecodeJSON(r, &req); err != nil {
			HandleAPIError(w, r, requestError(err), msgInvalidRequest)
			return
		}
		if err := shared.ValidateRequest(&req); err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
			return
		}
		data = req.Data
	}

	cards, err := domain.DecodeCardImport(data)
	if err != nil {
		HandleAPIError(w, r, err, msgInvalidImportFormat)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		InfoContext(r.Context(), "cards imported", "card_count", len(cards))

	shared.RespondWithJSON(w, r, http.StatusOK, CardsResponse{Cards: cards})
}
