package generation

import "github.com/phrazzld/scry-cardgen/internal/domain"

// Gate is the final admission check of a run. An empty card set is a
// failure, never an empty success. Non-empty results pass through unchanged,
// including cards with blank sides.
func Gate(result *domain.GenerationResult) (*domain.GenerationResult, error) {
	if result.IsEmpty() {
		return nil, ErrNoCardsGenerated
	}
	return result, nil
}
