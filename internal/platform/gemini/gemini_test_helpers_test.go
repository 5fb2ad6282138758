package gemini

import (
	"context"
	"sync"

	"google.golang.org/genai"
)

// generateCall records the arguments of one GenerateContent call.
type generateCall struct {
	Model    string
	Contents []*genai.Content
	Config   *genai.GenerateContentConfig
}

type generateResult struct {
	resp *genai.GenerateContentResponse
	err  error
}

// fakeModels implements modelsAPI. Results are consumed in order; the last
// one repeats once the queue is exhausted.
type fakeModels struct {
	mu      sync.Mutex
	results []generateResult
	calls   []generateCall
}

func newFakeModels(results ...generateResult) *fakeModels {
	return &fakeModels{results: results}
}

func (f *fakeModels) GenerateContent(
	_ context.Context,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, generateCall{Model: model, Contents: contents, Config: config})

	idx := len(f.calls) - 1
	if idx >= len(f.results) {
		idx = len(f.results) - 1
	}
	r := f.results[idx]
	return r.resp, r.err
}

func (f *fakeModels) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeModels) lastCall() generateCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func textResponse(text string) generateResult {
	return generateResult{resp: &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      genai.NewContentFromText(text, genai.RoleModel),
			FinishReason: genai.FinishReasonStop,
		}},
	}}
}

func errorResult(err error) generateResult {
	return generateResult{err: err}
}
