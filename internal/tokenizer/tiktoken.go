package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

const (
	// EncodingCL100kBase is the encoding used by GPT-4 and GPT-3.5-turbo.
	EncodingCL100kBase = "cl100k_base"
	// EncodingP50kBase is the encoding used by GPT-3 and Codex.
	EncodingP50kBase = "p50k_base"
	// EncodingR50kBase is the encoding used by older GPT-3 models.
	EncodingR50kBase = "r50k_base"
)

// TikToken wraps the pkoukk/tiktoken-go library behind the Tokenizer
// interface, so the pretrained OpenAI encodings can be used side by side
// with models trained by this package.
type TikToken struct {
	encoding *tiktoken.Tiktoken
	name     string
}

// NewTikToken creates a TikToken tokenizer with the named encoding
// (EncodingCL100kBase, EncodingP50kBase, EncodingR50kBase).
func NewTikToken(encodingName string) (*TikToken, error) {
	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("failed to load tiktoken encoding %q: %w", encodingName, err)
	}

	return &TikToken{
		encoding: encoding,
		name:     encodingName,
	}, nil
}

// Encode converts text to token IDs.
func (t *TikToken) Encode(text string) ([]int32, error) {
	ids := make([]int32, 0, len(text)/4)
	for _, tok := range t.encoding.Encode(text, nil, nil) {
		ids = append(ids, int32(tok)) //nolint:gosec // G115: OpenAI vocab ids fit in int32.
	}
	return ids, nil
}

// Decode converts token IDs back to text.
func (t *TikToken) Decode(tokens []int32) (string, error) {
	ids := make([]int, len(tokens))
	for i, tok := range tokens {
		ids[i] = int(tok)
	}
	return t.encoding.Decode(ids), nil
}

// VocabSize returns the total vocabulary size.
//
// The underlying encoding keeps its vocab private, so the sizes of the
// known encodings are pinned here.
func (t *TikToken) VocabSize() int {
	switch t.name {
	case EncodingCL100kBase:
		return 100256
	case EncodingP50kBase, EncodingR50kBase:
		return 50257
	default:
		return 100000 // conservative fallback for unknown encodings
	}
}

// Name returns the encoding name.
func (t *TikToken) Name() string {
	return t.name
}
