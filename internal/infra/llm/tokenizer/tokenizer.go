package tokenizer

import (
	"github.com/pkoukk/tiktoken-go"
)

const fallbackEncoding = "cl100k_base"

// Counter estimates token counts for a model's encoding. Used to size
// prompts before they hit the API and to fill usage metrics when the API
// omits them.
type Counter struct {
	encoding *tiktoken.Tiktoken
}

// NewCounter resolves the encoding for the given model, falling back to the
// common base encoding for unknown model names.
func NewCounter(model string) *Counter {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return &Counter{}
		}
	}
	return &Counter{encoding: enc}
}

// Count returns the estimated token count for text. A missing encoding
// degrades to a rough character heuristic rather than failing.
func (c *Counter) Count(text string) int {
	if c.encoding == nil {
		return len(text) / 4
	}
	return len(c.encoding.Encode(text, nil, nil))
}
