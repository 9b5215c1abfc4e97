package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenTokenizer_FlagValidation(t *testing.T) {
	tests := []struct {
		name      string
		modelPath string
		encoding  string
		wantErr   string
	}{
		{
			name:      "model and encoding together",
			modelPath: "model.harf",
			encoding:  "cl100k_base",
			wantErr:   "mutually exclusive",
		},
		{
			name:    "neither model nor encoding",
			wantErr: "required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := openTokenizer(tt.modelPath, tt.encoding)
			assert.Nil(t, tok)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResolvePattern(t *testing.T) {
	gpt2, err := resolvePattern("gpt2")
	require.NoError(t, err)
	assert.NotEmpty(t, gpt2)

	gpt4, err := resolvePattern("gpt4")
	require.NoError(t, err)
	assert.NotEqual(t, gpt2, gpt4)

	_, err = resolvePattern("nope")
	assert.Error(t, err)
}
