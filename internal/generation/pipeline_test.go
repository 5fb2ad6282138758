package generation_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/phrazzld/scry-cardgen/internal/domain"
	"github.com/phrazzld/scry-cardgen/internal/generation"
	"github.com/phrazzld/scry-cardgen/internal/locale"
	"github.com/phrazzld/scry-cardgen/internal/mocks"
	"github.com/phrazzld/scry-cardgen/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPipeline(
	t *testing.T,
	extractor *mocks.MockTextExtractor,
	synthesizer *mocks.MockCardSynthesizer,
) (*generation.Pipeline, *logger.TestLogBuffer) {
	t.Helper()
	l, buf := logger.NewTestLogger()
	p, err := generation.NewPipeline(extractor, synthesizer, generation.PipelineConfig{MaxTextLength: 100}, l)
	require.NoError(t, err)
	return p, buf
}

func TestNewPipelineValidation(t *testing.T) {
	l, _ := logger.NewTestLogger()

	_, err := generation.NewPipeline(nil, &mocks.MockCardSynthesizer{}, generation.PipelineConfig{}, l)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = generation.NewPipeline(&mocks.MockTextExtractor{}, nil, generation.PipelineConfig{}, l)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = generation.NewPipeline(&mocks.MockTextExtractor{}, &mocks.MockCardSynthesizer{}, generation.PipelineConfig{}, nil)
	assert.Error(t, err)
}

func TestGenerateTextMode(t *testing.T) {
	extractor := &mocks.MockTextExtractor{}
	synthesizer := mocks.NewMockCardSynthesizerWithDefaultCards()
	p, _ := newPipeline(t, extractor, synthesizer)

	result, err := p.Generate(context.Background(), domain.GenerationRequest{
		Text:               "  Photosynthesis converts light into chemical energy.  ",
		LanguagePreference: "ja-JP,ja;q=0.9",
		HelperPrompt:       "focus on definitions only",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Cards)
	assert.LessOrEqual(t, len(result.Cards), 20)
	for _, c := range result.Cards {
		assert.NotEmpty(t, c.Front)
		assert.NotEmpty(t, c.Back)
	}

	assert.Equal(t, 0, extractor.CallCount())
	assert.Equal(t, 1, synthesizer.CallCount())
	req := synthesizer.LastRequest()
	assert.Equal(t, "Photosynthesis converts light into chemical energy.", req.SourceText)
	assert.Equal(t, locale.InstructionJapanese, req.LocaleInstruction)
	assert.Equal(t, "focus on definitions only", req.HelperPrompt)
}

func TestGenerateImageMode(t *testing.T) {
	extractor := mocks.NewMockTextExtractorWithText("  cell - the basic unit of life\n")
	synthesizer := mocks.NewMockCardSynthesizerWithDefaultCards()
	p, _ := newPipeline(t, extractor, synthesizer)

	result, err := p.Generate(context.Background(), domain.GenerationRequest{
		Text:          "this text is ignored",
		Image:         []byte{0xff, 0xd8, 0xff},
		ImageMIMEType: "image/png",
	})
	require.NoError(t, err)
	assert.Len(t, result.Cards, 3)

	assert.Equal(t, 1, extractor.CallCount())
	assert.Equal(t, []string{"image/png"}, extractor.ExtractTextCalls.MIMETypes)
	assert.Equal(t, "cell - the basic unit of life", synthesizer.LastRequest().SourceText)
	assert.Empty(t, synthesizer.LastRequest().LocaleInstruction)
}

func TestGenerateWhitespaceOCRSkipsSynthesis(t *testing.T) {
	extractor := mocks.NewMockTextExtractorWithText("   \n\t ")
	synthesizer := mocks.NewMockCardSynthesizerWithDefaultCards()
	p, _ := newPipeline(t, extractor, synthesizer)

	_, err := p.Generate(context.Background(), domain.GenerationRequest{Image: []byte{1, 2, 3}})
	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrOCREmptyResult)
	assert.Equal(t, 1, extractor.CallCount())
	assert.Equal(t, 0, synthesizer.CallCount())

	var stageErr *generation.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, generation.StageOCRExtracting, stageErr.Stage)
}

func TestGenerateEmptyRequest(t *testing.T) {
	extractor := &mocks.MockTextExtractor{}
	synthesizer := mocks.NewMockCardSynthesizerWithDefaultCards()
	p, _ := newPipeline(t, extractor, synthesizer)

	for _, req := range []domain.GenerationRequest{
		{},
		{Text: "   "},
		{Text: strings.Repeat("x", 101)},
	} {
		_, err := p.Generate(context.Background(), req)
		assert.ErrorIs(t, err, generation.ErrInvalidInput)

		var stageErr *generation.StageError
		require.ErrorAs(t, err, &stageErr)
		assert.Equal(t, generation.StageNormalizing, stageErr.Stage)
	}

	assert.Equal(t, 0, extractor.CallCount())
	assert.Equal(t, 0, synthesizer.CallCount())
}

func TestGenerateErrorMapping(t *testing.T) {
	upstream := errors.New("connection refused")

	tests := []struct {
		name        string
		extractor   *mocks.MockTextExtractor
		synthesizer *mocks.MockCardSynthesizer
		req         domain.GenerationRequest
		want        error
		wantCause   error
		wantStage   generation.Stage
	}{
		{
			name:        "extractor transport failure",
			extractor:   mocks.NewMockTextExtractorWithError(upstream),
			synthesizer: mocks.NewMockCardSynthesizerWithDefaultCards(),
			req:         domain.GenerationRequest{Image: []byte{1}},
			want:        generation.ErrUpstreamUnavailable,
			wantCause:   upstream,
			wantStage:   generation.StageOCRExtracting,
		},
		{
			name:        "extractor reports empty result",
			extractor:   mocks.NewMockTextExtractorWithError(generation.ErrOCREmptyResult),
			synthesizer: mocks.NewMockCardSynthesizerWithDefaultCards(),
			req:         domain.GenerationRequest{Image: []byte{1}},
			want:        generation.ErrOCREmptyResult,
			wantStage:   generation.StageOCRExtracting,
		},
		{
			name:        "synthesizer failure is wrapped",
			extractor:   &mocks.MockTextExtractor{},
			synthesizer: mocks.NewMockCardSynthesizerWithError(upstream),
			req:         domain.GenerationRequest{Text: "notes"},
			want:        generation.ErrGenerationFailed,
			wantCause:   upstream,
			wantStage:   generation.StageSynthesizing,
		},
		{
			name:      "synthesizer taxonomy error kept",
			extractor: &mocks.MockTextExtractor{},
			synthesizer: mocks.NewMockCardSynthesizerWithError(
				fmt.Errorf("%w: %w", generation.ErrGenerationFailed, generation.ErrContentBlocked)),
			req:       domain.GenerationRequest{Text: "notes"},
			want:      generation.ErrGenerationFailed,
			wantCause: generation.ErrContentBlocked,
			wantStage: generation.StageSynthesizing,
		},
		{
			name:        "empty card set",
			extractor:   &mocks.MockTextExtractor{},
			synthesizer: mocks.NewMockCardSynthesizerWithCards(),
			req:         domain.GenerationRequest{Text: "notes"},
			want:        generation.ErrNoCardsGenerated,
			wantStage:   generation.StageGating,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newPipeline(t, tt.extractor, tt.synthesizer)

			result, err := p.Generate(context.Background(), tt.req)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.want)
			if tt.wantCause != nil {
				assert.ErrorIs(t, err, tt.wantCause)
			}

			var stageErr *generation.StageError
			require.ErrorAs(t, err, &stageErr)
			assert.Equal(t, tt.wantStage, stageErr.Stage)
		})
	}
}

func TestGenerateLogsStages(t *testing.T) {
	p, buf := newPipeline(t, &mocks.MockTextExtractor{}, mocks.NewMockCardSynthesizerWithDefaultCards())

	_, err := p.Generate(context.Background(), domain.GenerationRequest{Text: "notes"})
	require.NoError(t, err)

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)

	var stages []string
	var id string
	for _, e := range entries {
		if id == "" {
			id, _ = e["generation_id"].(string)
		}
		assert.Equal(t, id, e["generation_id"])
		if to, ok := e["to"].(string); ok {
			stages = append(stages, to)
		}
	}
	assert.NotEmpty(t, id)
	assert.Equal(t, []string{"normalizing", "synthesizing", "gating", "done"}, stages)
}

func TestExtractText(t *testing.T) {
	t.Run("returns trimmed text", func(t *testing.T) {
		extractor := mocks.NewMockTextExtractorWithText("\n hello world \n")
		synthesizer := &mocks.MockCardSynthesizer{}
		p, _ := newPipeline(t, extractor, synthesizer)

		text, err := p.ExtractText(context.Background(), []byte{1, 2, 3}, "")
		require.NoError(t, err)
		assert.Equal(t, "hello world", text)
		assert.Equal(t, []string{generation.DefaultImageMIMEType}, extractor.ExtractTextCalls.MIMETypes)
		assert.Equal(t, 0, synthesizer.CallCount())
	})

	t.Run("missing image", func(t *testing.T) {
		extractor := &mocks.MockTextExtractor{}
		p, _ := newPipeline(t, extractor, &mocks.MockCardSynthesizer{})

		_, err := p.ExtractText(context.Background(), nil, "image/png")
		assert.ErrorIs(t, err, generation.ErrInvalidInput)
		assert.Equal(t, 0, extractor.CallCount())
	})

	t.Run("blank text", func(t *testing.T) {
		p, _ := newPipeline(t, mocks.NewMockTextExtractorWithText(" "), &mocks.MockCardSynthesizer{})

		_, err := p.ExtractText(context.Background(), []byte{1}, "image/png")
		assert.ErrorIs(t, err, generation.ErrOCREmptyResult)
	})
}

func TestStageErrorMessage(t *testing.T) {
	err := &generation.StageError{Stage: generation.StageGating, Err: generation.ErrNoCardsGenerated}
	assert.Equal(t, "generation failed during gating: "+generation.ErrNoCardsGenerated.Error(), err.Error())
	assert.ErrorIs(t, err, generation.ErrNoCardsGenerated)
}
