package metrics

import (
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter estimates prompt sizes for a model. Until the model encoding
// is loaded, or when it cannot be, it falls back to a rune/word heuristic.
type TokenCounter struct {
	model string
	enc   atomic.Pointer[tiktoken.Tiktoken]
}

// NewTokenCounter returns a heuristic counter for model. Call Load to switch
// it to the model's BPE encoding.
func NewTokenCounter(model string) *TokenCounter {
	return &TokenCounter{model: model}
}

// Load resolves the BPE encoding. tiktoken-go may fetch the ranks file over
// the network unless TIKTOKEN_CACHE_DIR holds a copy, so callers run it off
// the startup path.
func (c *TokenCounter) Load() error {
	enc, err := tiktoken.EncodingForModel(c.model)
	if err != nil {
		return err
	}
	c.enc.Store(enc)
	return nil
}

// Count returns the number of tokens in text.
func (c *TokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	if c == nil {
		return estimateTokens(text)
	}
	enc := c.enc.Load()
	if enc == nil {
		return estimateTokens(text)
	}
	return len(enc.Encode(text, nil, nil))
}

// estimateTokens over-estimates: ~1 token per 2 runes, never below word count.
func estimateTokens(text string) int {
	runes := utf8.RuneCountInString(text)
	words := len(strings.Fields(text))
	byRunes := (runes + 1) / 2
	if byRunes < words {
		return words
	}
	return byRunes
}
