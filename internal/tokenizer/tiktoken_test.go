package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTikToken_InvalidEncoding(t *testing.T) {
	tok, err := NewTikToken("invalid_encoding_xyz")
	assert.Error(t, err)
	assert.Nil(t, tok)
}

func TestTikToken_Roundtrip(t *testing.T) {
	tok, err := NewTikToken(EncodingCL100kBase)
	if err != nil {
		// tiktoken-go fetches encoding data on first use.
		t.Skipf("cl100k_base unavailable (likely offline): %v", err)
	}

	assert.Equal(t, 100256, tok.VocabSize())
	assert.Equal(t, EncodingCL100kBase, tok.Name())

	tests := []struct {
		name string
		text string
	}{
		{name: "simple text", text: "Hello, world!"},
		{name: "empty text", text: ""},
		{name: "arabic text", text: "مرحبا بالعالم"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := tok.Encode(tt.text)
			require.NoError(t, err)

			decoded, err := tok.Decode(ids)
			require.NoError(t, err)
			assert.Equal(t, tt.text, decoded)
		})
	}
}
