package tokenizer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Pair is an adjacent (left, right) symbol pair. The zero-valued fields
// make Pair comparable, so it can key maps directly.
type Pair struct {
	Left  int32
	Right int32
}

// MergeRule records one learned merge: the adjacent pair and the id it
// merges into. Rule order is the training order and is semantically
// significant during encoding.
type MergeRule struct {
	Pair Pair
	New  int32
}

// Model is a frozen BPE tokenizer: a segmentation pattern, the ordered
// merge table, and the vocabulary derived from them.
//
// Invariants maintained:
//   - vocab[id] is the exact byte sequence for token id.
//   - vocab[0..255] are the 256 single raw bytes, never remapped.
//   - merges[i].New == 256+i, and both sides of merges[i] reference ids
//     below 256+i, so every token is reachable from the base bytes.
//   - VocabSize() == 256 + len(merges).
//
// A Model is immutable after construction and safe for concurrent
// Encode/Decode calls.
type Model struct {
	pattern        string
	seg            *Segmenter
	merges         []MergeRule
	vocab          [][]byte
	replaceInvalid bool
}

// ModelOption configures optional Model behavior.
type ModelOption func(*Model)

// ReplaceInvalidUTF8 makes Decode substitute U+FFFD for byte sequences
// that are not valid UTF-8 instead of failing. The default is strict
// failure.
func ReplaceInvalidUTF8() ModelOption {
	return func(m *Model) {
		m.replaceInvalid = true
	}
}

// NewModel builds a Model from a split pattern and an ordered merge
// table. It validates that merge ids are consecutive from 256 and that
// no rule references an id that does not exist yet (no orphan tokens),
// then derives the vocabulary.
func NewModel(pattern string, merges []MergeRule, opts ...ModelOption) (*Model, error) {
	seg, err := NewSegmenter(pattern)
	if err != nil {
		return nil, err
	}

	vocab := make([][]byte, 256, 256+len(merges))
	for i := range vocab {
		vocab[i] = []byte{byte(i)}
	}

	for i, r := range merges {
		want := int32(256 + i)
		if r.New != want {
			return nil, fmt.Errorf("%w: merge %d has id %d, want %d", ErrMergeNotConsecutive, i, r.New, want)
		}
		if r.Pair.Left < 0 || r.Pair.Left >= want || r.Pair.Right < 0 || r.Pair.Right >= want {
			return nil, fmt.Errorf("%w: merge %d references (%d, %d)", ErrOrphanMerge, i, r.Pair.Left, r.Pair.Right)
		}

		left, right := vocab[r.Pair.Left], vocab[r.Pair.Right]
		merged := make([]byte, 0, len(left)+len(right))
		merged = append(merged, left...)
		merged = append(merged, right...)
		vocab = append(vocab, merged)
	}

	m := &Model{
		pattern: pattern,
		seg:     seg,
		merges:  append([]MergeRule(nil), merges...),
		vocab:   vocab,
	}
	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// Pattern returns the split pattern the model was trained with.
func (m *Model) Pattern() string {
	return m.pattern
}

// Merges returns a copy of the ordered merge table.
func (m *Model) Merges() []MergeRule {
	return append([]MergeRule(nil), m.merges...)
}

// VocabSize returns the total vocabulary size, including the 256 raw
// byte tokens.
func (m *Model) VocabSize() int {
	return len(m.vocab)
}

// TokenBytes returns the exact byte sequence for a token id.
func (m *Model) TokenBytes(id int32) ([]byte, error) {
	if id < 0 || int(id) >= len(m.vocab) {
		return nil, &DecodeError{Token: id, Index: -1, Err: ErrTokenOutOfRange}
	}
	return append([]byte(nil), m.vocab[id]...), nil
}

// Tokens renders every vocabulary entry as text, dropping byte sequences
// that are not valid UTF-8 on their own (merge-created tokens may end
// mid-codepoint).
func (m *Model) Tokens() []string {
	out := make([]string, len(m.vocab))
	for id, b := range m.vocab {
		out[id] = strings.ToValidUTF8(string(b), "")
	}
	return out
}

// String implements fmt.Stringer.
func (m *Model) String() string {
	return fmt.Sprintf("Model(vocabSize=%d, merges=%d)", len(m.vocab), len(m.merges))
}

// Encode converts text to token ids.
//
// The text is segmented into chunks, each chunk becomes its UTF-8 byte
// symbols, and every merge rule is applied to every chunk in training
// order. Applying rules in training order, not by encode-time frequency,
// is what keeps Encode a pure function of (text, model) that agrees with
// how the model was trained.
func (m *Model) Encode(text string) ([]int32, error) {
	ids := []int32{}
	if text == "" {
		return ids, nil
	}

	chunks, err := m.seg.Split(text)
	if err != nil {
		return nil, err
	}

	for _, chunk := range chunks {
		sym := bytesToSymbols(chunk)
		for _, rule := range m.merges {
			if len(sym) < 2 {
				break
			}
			sym = mergePair(sym, rule.Pair, rule.New)
		}
		ids = append(ids, sym...)
	}

	return ids, nil
}

// Decode converts token ids back to text by concatenating each token's
// byte sequence. An id outside the vocabulary fails with ErrTokenOutOfRange.
// Bytes that do not form valid UTF-8 fail with ErrInvalidUTF8 unless the
// model was built with ReplaceInvalidUTF8.
func (m *Model) Decode(tokens []int32) (string, error) {
	var buf []byte
	for i, id := range tokens {
		if id < 0 || int(id) >= len(m.vocab) {
			return "", &DecodeError{Token: id, Index: i, Err: ErrTokenOutOfRange}
		}
		buf = append(buf, m.vocab[id]...)
	}

	if !utf8.Valid(buf) {
		if !m.replaceInvalid {
			return "", &DecodeError{Token: -1, Index: -1, Err: ErrInvalidUTF8}
		}
		return strings.ToValidUTF8(string(buf), "�"), nil
	}

	return string(buf), nil
}

// bytesToSymbols seeds a chunk's symbol sequence from its UTF-8 bytes,
// one symbol per byte.
func bytesToSymbols(chunk string) []int32 {
	ids := make([]int32, len(chunk))
	for i := 0; i < len(chunk); i++ {
		ids[i] = int32(chunk[i])
	}
	return ids
}

// mergePair rewrites ids, replacing every occurrence of pair with newID.
// The scan is left to right and non-overlapping: both symbols of a match
// are consumed before scanning continues. Training's rewrite step and
// Encode's rule application share this exact scan; if they ever
// diverged, encoding would no longer match the trained model.
func mergePair(ids []int32, pair Pair, newID int32) []int32 {
	out := make([]int32, 0, len(ids))
	for i := 0; i < len(ids); {
		if i+1 < len(ids) && ids[i] == pair.Left && ids[i+1] == pair.Right {
			out = append(out, newID)
			i += 2
		} else {
			out = append(out, ids[i])
			i++
		}
	}
	return out
}
