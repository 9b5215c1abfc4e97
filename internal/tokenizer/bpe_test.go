package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModel_Validation(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		merges  []MergeRule
		wantErr error
	}{
		{
			name:    "empty merge table",
			pattern: PatternGPT4,
			merges:  nil,
		},
		{
			name:    "valid chain",
			pattern: PatternGPT4,
			merges: []MergeRule{
				{Pair: Pair{97, 98}, New: 256},
				{Pair: Pair{256, 99}, New: 257},
			},
		},
		{
			name:    "ids not consecutive",
			pattern: PatternGPT4,
			merges: []MergeRule{
				{Pair: Pair{97, 98}, New: 256},
				{Pair: Pair{99, 100}, New: 258},
			},
			wantErr: ErrMergeNotConsecutive,
		},
		{
			name:    "first id not 256",
			pattern: PatternGPT4,
			merges: []MergeRule{
				{Pair: Pair{97, 98}, New: 257},
			},
			wantErr: ErrMergeNotConsecutive,
		},
		{
			name:    "forward reference",
			pattern: PatternGPT4,
			merges: []MergeRule{
				{Pair: Pair{257, 97}, New: 256},
			},
			wantErr: ErrOrphanMerge,
		},
		{
			name:    "negative id in pair",
			pattern: PatternGPT4,
			merges: []MergeRule{
				{Pair: Pair{-1, 97}, New: 256},
			},
			wantErr: ErrOrphanMerge,
		},
		{
			name:    "bad pattern",
			pattern: "(",
			wantErr: ErrInvalidPattern,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := NewModel(tt.pattern, tt.merges)
			if tt.wantErr != nil {
				assert.Nil(t, model)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, 256+len(tt.merges), model.VocabSize())
		})
	}
}

func TestModel_VocabDerivation(t *testing.T) {
	model, err := NewModel(PatternGPT4, []MergeRule{
		{Pair: Pair{97, 98}, New: 256},  // "ab"
		{Pair: Pair{256, 99}, New: 257}, // "abc"
	})
	require.NoError(t, err)

	ab, err := model.TokenBytes(256)
	require.NoError(t, err)
	assert.Equal(t, []byte("ab"), ab)

	abc, err := model.TokenBytes(257)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), abc)

	_, err = model.TokenBytes(258)
	assert.ErrorIs(t, err, ErrTokenOutOfRange)

	assert.Len(t, model.Tokens(), 258)
	assert.Equal(t, "Model(vocabSize=258, merges=2)", model.String())
}

func TestModel_EncodeEmpty(t *testing.T) {
	model, err := NewModel(PatternGPT4, nil)
	require.NoError(t, err)

	ids, err := model.Encode("")
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.NotNil(t, ids)
}

func TestModel_DecodeEmpty(t *testing.T) {
	model, err := NewModel(PatternGPT4, nil)
	require.NoError(t, err)

	text, err := model.Decode(nil)
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestModel_DecodeOutOfRange(t *testing.T) {
	model, err := NewModel(PatternGPT4, nil)
	require.NoError(t, err)

	tests := []struct {
		name   string
		tokens []int32
	}{
		{name: "above vocab", tokens: []int32{104, 105, 256}},
		{name: "negative", tokens: []int32{-1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.Decode(tt.tokens)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrTokenOutOfRange)

			var decodeErr *DecodeError
			require.ErrorAs(t, err, &decodeErr)
			assert.Equal(t, tt.tokens[len(tt.tokens)-1], decodeErr.Token)
		})
	}
}

func TestModel_DecodeInvalidUTF8(t *testing.T) {
	// 0xC8 starts a two-byte UTF-8 sequence that never completes.
	strict, err := NewModel(PatternGPT4, nil)
	require.NoError(t, err)

	_, err = strict.Decode([]int32{0xC8})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidUTF8)

	lenient, err := NewModel(PatternGPT4, nil, ReplaceInvalidUTF8())
	require.NoError(t, err)

	text, err := lenient.Decode([]int32{0xC8})
	require.NoError(t, err)
	assert.Equal(t, "�", text)
}

func TestModel_RoundTripUntrained(t *testing.T) {
	// A merge-free model is pure byte round-tripping; any valid UTF-8
	// text must survive it.
	model, err := NewModel(PatternGPT4, nil)
	require.NoError(t, err)

	texts := []string{
		"hello world",
		"مَرْحَبًا بِكَ فِي الْعَالَمِ",
		"بِسْمِ اللَّهِ الرَّحْمَٰنِ الرَّحِيمِ",
		"Hello مَرْحَبًا World عَالَم",
		"emoji 🙂 café\nnewline",
	}

	for _, text := range texts {
		ids, err := model.Encode(text)
		require.NoError(t, err)

		decoded, err := model.Decode(ids)
		require.NoError(t, err)
		assert.Equal(t, text, decoded)
	}
}

func TestMergePair(t *testing.T) {
	tests := []struct {
		name  string
		ids   []int32
		pair  Pair
		newID int32
		want  []int32
	}{
		{
			name:  "single occurrence",
			ids:   []int32{1, 2, 3},
			pair:  Pair{1, 2},
			newID: 256,
			want:  []int32{256, 3},
		},
		{
			name:  "overlapping run consumes left to right",
			ids:   []int32{97, 97, 97},
			pair:  Pair{97, 97},
			newID: 256,
			want:  []int32{256, 97},
		},
		{
			name:  "two full matches in a run of four",
			ids:   []int32{97, 97, 97, 97},
			pair:  Pair{97, 97},
			newID: 256,
			want:  []int32{256, 256},
		},
		{
			name:  "no occurrence",
			ids:   []int32{1, 2, 3},
			pair:  Pair{2, 1},
			newID: 256,
			want:  []int32{1, 2, 3},
		},
		{
			name:  "trailing symbol kept",
			ids:   []int32{5, 1, 2, 9},
			pair:  Pair{1, 2},
			newID: 300,
			want:  []int32{5, 300, 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mergePair(tt.ids, tt.pair, tt.newID))
		})
	}
}

func TestBytesToSymbols(t *testing.T) {
	assert.Equal(t, []int32{104, 105}, bytesToSymbols("hi"))
	assert.Empty(t, bytesToSymbols(""))

	// Multi-byte runes become one symbol per byte.
	sym := bytesToSymbols("م")
	assert.Equal(t, []int32{0xD9, 0x85}, sym)
}
