package gemini

import (
	"context"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
	"google.golang.org/genai"
)

const (
	defaultRetryDelay = 2 * time.Second
	jitterPercent     = 50
)

// retryPolicy calls the models API, retrying transient failures with
// exponential backoff and jitter.
type retryPolicy struct {
	maxRetries uint64
	baseDelay  time.Duration
}

func newRetryPolicy(maxRetries, delaySeconds int) retryPolicy {
	p := retryPolicy{baseDelay: time.Duration(delaySeconds) * time.Second}
	if maxRetries > 0 {
		p.maxRetries = uint64(maxRetries)
	}
	if p.baseDelay <= 0 {
		p.baseDelay = defaultRetryDelay
	}
	return p
}

func (p retryPolicy) backoff() retry.Backoff {
	b := retry.NewExponential(p.baseDelay)
	b = retry.WithJitterPercent(jitterPercent, b)
	return retry.WithMaxRetries(p.maxRetries, b)
}

// generate makes up to maxRetries+1 calls. The error of the last attempt is
// returned unwrapped.
func (p retryPolicy) generate(
	ctx context.Context,
	logger *slog.Logger,
	models modelsAPI,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	attempt := 0
	return retry.DoValue(ctx, p.backoff(), func(ctx context.Context) (*genai.GenerateContentResponse, error) {
		attempt++
		logger.DebugContext(ctx, "Making Gemini API call",
			"model", model,
			"attempt", attempt,
			"max_attempts", p.maxRetries+1)

		resp, err := models.GenerateContent(ctx, model, contents, config)
		if err != nil {
			if isTransient(err) && uint64(attempt) <= p.maxRetries {
				logger.WarnContext(ctx, "Transient Gemini API error, retrying",
					"attempt", attempt,
					"error", err)
				return nil, retry.RetryableError(err)
			}
			return nil, err
		}
		return resp, nil
	})
}
