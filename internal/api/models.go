package api

import (
	"encoding/json"

	"github.com/phrazzld/scry-cardgen/internal/domain"
)

// Multipart field names accepted by the generation endpoints.
const (
	fieldText         = "text"
	fieldImage        = "image"
	fieldHelperPrompt = "helperPrompt"
)

// CardsResponse is the body of a successful generation or import.
type CardsResponse struct {
	Cards []domain.GeneratedCard `json:"cards"`
}

// TextResponse is the body of a successful text extraction.
type TextResponse struct {
	Text string `json:"text"`
}

// ImportCardsRequest wraps the JSON array to import. Clients may also send
// the bare array as the whole body.
type ImportCardsRequest struct {
	Data json.RawMessage `json:"data" validate:"required"`
}
