package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/scry-cardgen/internal/domain"
	"github.com/phrazzld/scry-cardgen/internal/generation"
)

// MockTextExtractor implements generation.TextExtractor for testing
type MockTextExtractor struct {
	// ExtractTextFn allows test cases to mock the ExtractText behavior
	ExtractTextFn func(ctx context.Context, image []byte, mimeType string) (string, error)

	// Default response values
	Text string
	Err  error

	// Call tracking for verification
	ExtractTextCalls struct {
		mu sync.Mutex

		// Count tracks how many times ExtractText was called
		Count int

		// MIMETypes contains all MIME types passed to ExtractText calls
		MIMETypes []string

		// Images contains all images passed to ExtractText calls
		Images [][]byte
	}
}

// ExtractText implements the generation.TextExtractor interface
func (m *MockTextExtractor) ExtractText(ctx context.Context, image []byte, mimeType string) (string, error) {
	m.ExtractTextCalls.mu.Lock()
	m.ExtractTextCalls.Count++
	m.ExtractTextCalls.MIMETypes = append(m.ExtractTextCalls.MIMETypes, mimeType)
	m.ExtractTextCalls.Images = append(m.ExtractTextCalls.Images, image)
	m.ExtractTextCalls.mu.Unlock()

	if m.ExtractTextFn != nil {
		return m.ExtractTextFn(ctx, image, mimeType)
	}
	return m.Text, m.Err
}

// CallCount returns the number of ExtractText calls so far.
func (m *MockTextExtractor) CallCount() int {
	m.ExtractTextCalls.mu.Lock()
	defer m.ExtractTextCalls.mu.Unlock()
	return m.ExtractTextCalls.Count
}

// NewMockTextExtractorWithText creates a MockTextExtractor that returns text
func NewMockTextExtractorWithText(text string) *MockTextExtractor {
	return &MockTextExtractor{Text: text}
}

// NewMockTextExtractorWithError creates a MockTextExtractor that returns err
func NewMockTextExtractorWithError(err error) *MockTextExtractor {
	return &MockTextExtractor{Err: err}
}

// MockCardSynthesizer implements generation.CardSynthesizer for testing
type MockCardSynthesizer struct {
	// SynthesizeCardsFn allows test cases to mock the SynthesizeCards behavior
	SynthesizeCardsFn func(ctx context.Context, req generation.SynthesisRequest) (*domain.GenerationResult, error)

	// Default response values
	Result *domain.GenerationResult
	Err    error

	// Call tracking for verification
	SynthesizeCardsCalls struct {
		mu sync.Mutex

		// Count tracks how many times SynthesizeCards was called
		Count int

		// Requests contains all requests passed to SynthesizeCards calls
		Requests []generation.SynthesisRequest
	}
}

// SynthesizeCards implements the generation.CardSynthesizer interface
func (m *MockCardSynthesizer) SynthesizeCards(
	ctx context.Context,
	req generation.SynthesisRequest,
) (*domain.GenerationResult, error) {
	m.SynthesizeCardsCalls.mu.Lock()
	m.SynthesizeCardsCalls.Count++
	m.SynthesizeCardsCalls.Requests = append(m.SynthesizeCardsCalls.Requests, req)
	m.SynthesizeCardsCalls.mu.Unlock()

	if m.SynthesizeCardsFn != nil {
		return m.SynthesizeCardsFn(ctx, req)
	}
	return m.Result, m.Err
}

// CallCount returns the number of SynthesizeCards calls so far.
func (m *MockCardSynthesizer) CallCount() int {
	m.SynthesizeCardsCalls.mu.Lock()
	defer m.SynthesizeCardsCalls.mu.Unlock()
	return m.SynthesizeCardsCalls.Count
}

// LastRequest returns the most recent request, or the zero value when
// SynthesizeCards has not been called.
func (m *MockCardSynthesizer) LastRequest() generation.SynthesisRequest {
	m.SynthesizeCardsCalls.mu.Lock()
	defer m.SynthesizeCardsCalls.mu.Unlock()
	if len(m.SynthesizeCardsCalls.Requests) == 0 {
		return generation.SynthesisRequest{}
	}
	return m.SynthesizeCardsCalls.Requests[len(m.SynthesizeCardsCalls.Requests)-1]
}

// NewMockCardSynthesizerWithCards creates a MockCardSynthesizer that returns cards
func NewMockCardSynthesizerWithCards(cards ...domain.GeneratedCard) *MockCardSynthesizer {
	return &MockCardSynthesizer{Result: &domain.GenerationResult{Cards: cards}}
}

// NewMockCardSynthesizerWithError creates a MockCardSynthesizer that returns err
func NewMockCardSynthesizerWithError(err error) *MockCardSynthesizer {
	return &MockCardSynthesizer{Err: err}
}

// NewMockCardSynthesizerWithDefaultCards creates a MockCardSynthesizer with sample cards
func NewMockCardSynthesizerWithDefaultCards() *MockCardSynthesizer {
	return NewMockCardSynthesizerWithCards(
		domain.GeneratedCard{Front: "What is the capital of France?", Back: "Paris"},
		domain.GeneratedCard{Front: "photosynthesis", Back: "The process plants use to turn light into chemical energy."},
		domain.GeneratedCard{Front: "What does CPU stand for?", Back: "Central Processing Unit"},
	)
}
