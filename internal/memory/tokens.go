package memory

import (
	"math"

	"github.com/wayfarer-ai/wayfarer/pkg/api"
)

const (
	// defaultCharsPerToken is the fallback ratio when no tokenizer is available.
	// 3.5 chars/token is a reasonable average for English chat text.
	defaultCharsPerToken = 3.5

	// roleOverheadTokens approximates the per-message template overhead
	// (role tags, separators) added by chat templates.
	roleOverheadTokens = 4
)

// TokenEstimator estimates token counts from character length. The summary
// tracker uses it to decide when the transcript exceeds its budget; exact
// counts are not required.
type TokenEstimator struct {
	charsPerToken float64
}

// NewTokenEstimator creates an estimator with the default ratio.
func NewTokenEstimator() *TokenEstimator {
	return &TokenEstimator{charsPerToken: defaultCharsPerToken}
}

// Estimate returns the estimated token count for text.
func (e *TokenEstimator) Estimate(text string) int {
	if text == "" {
		return 0
	}
	return int(math.Ceil(float64(len(text)) / e.charsPerToken))
}

// EstimateMessages returns the estimated token count for a message list,
// including per-message role overhead.
func (e *TokenEstimator) EstimateMessages(msgs []api.Message) int {
	total := 0
	for _, m := range msgs {
		total += roleOverheadTokens + e.Estimate(m.Content)
	}
	return total
}
