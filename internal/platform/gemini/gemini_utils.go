package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/scry-cardgen/internal/domain"
	"github.com/phrazzld/scry-cardgen/internal/generation"
	"google.golang.org/genai"
)

// modelsAPI is the subset of *genai.Models used by this package.
type modelsAPI interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

var _ modelsAPI = (*genai.Models)(nil)

// blockedReason returns a non-empty reason when the response was withheld
// by the safety filters.
func blockedReason(resp *genai.GenerateContentResponse) string {
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" &&
		resp.PromptFeedback.BlockReason != genai.BlockedReasonUnspecified {
		return string(resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0] != nil &&
		resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return string(genai.FinishReasonSafety)
	}
	return ""
}

// parseCardSet converts the model's JSON text into a generation result.
//
// Every card must carry both the front and back keys. Blank values are kept;
// the response schema already forbids missing keys, so a missing one means
// the output is malformed.
func parseCardSet(ctx context.Context, logger *slog.Logger, text string) (*domain.GenerationResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty response text", generation.ErrInvalidResponse)
	}

	var parsed cardSetResponse
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", generation.ErrInvalidResponse, err)
	}
	if parsed.Cards == nil {
		return nil, fmt.Errorf("%w: response has no cards field", generation.ErrInvalidResponse)
	}

	cards := make([]domain.GeneratedCard, 0, len(*parsed.Cards))
	for i, c := range *parsed.Cards {
		if c.Front == nil {
			return nil, fmt.Errorf("%w: card %d missing front side", generation.ErrInvalidResponse, i)
		}
		if c.Back == nil {
			return nil, fmt.Errorf("%w: card %d missing back side", generation.ErrInvalidResponse, i)
		}
		cards = append(cards, domain.GeneratedCard{Front: *c.Front, Back: *c.Back})
	}

	logger.DebugContext(ctx, "Parsed Gemini API response", "card_count", len(cards))

	return &domain.GenerationResult{Cards: cards}, nil
}
