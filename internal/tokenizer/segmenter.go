package tokenizer

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

// Preset split patterns. Both isolate contractions, letter runs, short
// digit runs, punctuation runs and whitespace into their own chunks, and
// both extend the letter alternatives to (?:\p{L}\p{Mn}*)+ so a base
// letter always carries its trailing non-spacing combining marks (Arabic
// tashkil) in the same chunk.
//
// regexp2 (.NET syntax) has no possessive quantifiers, so PatternGPT4
// approximates the original possessive groups with atomic groups (?>...).
const (
	// PatternGPT2 follows the GPT-2 lexical rules: lowercase
	// contractions, optional leading space on letter/digit/punctuation
	// runs, and a lookahead that keeps trailing whitespace separate
	// from the chunk that follows it.
	PatternGPT2 = `'(?:[sdmt]|ll|ve|re)| ?(?:\p{L}\p{Mn}*)+| ?\p{N}{1,3}| ?[^\s\p{L}\p{N}]+|\s+(?!\S)|\s+`

	// PatternGPT4 follows the cl100k_base lexical rules:
	// case-insensitive contractions, an optional non-letter prefix on
	// word chunks, digit runs capped at three, and newline-aware
	// whitespace handling.
	PatternGPT4 = `'(?i:[sdmt]|ll|ve|re)|(?>[^\r\n\p{L}\p{N}]?)(?:\p{L}\p{Mn}*)+|\p{N}{1,3}| ?(?>[^\s\p{L}\p{N}]+)[\r\n]*|\s*[\r\n]|\s+(?!\S)|\s+`
)

// Segmenter splits raw text into the ordered chunks that BPE merges
// operate within. Merges never cross a chunk boundary, so the pattern
// decides what can ever become a single token.
//
// A Segmenter is immutable after construction and safe for concurrent
// use.
type Segmenter struct {
	pattern string
	re      *regexp2.Regexp
}

// NewSegmenter compiles pattern into a Segmenter.
//
// The pattern is a regexp2 (.NET-style) expression; PatternGPT2 and
// PatternGPT4 are the built-in presets. A pattern that does not compile
// is a configuration error, not a transient one.
func NewSegmenter(pattern string) (*Segmenter, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
	}

	return &Segmenter{
		pattern: pattern,
		re:      re,
	}, nil
}

// Pattern returns the source pattern this Segmenter was built from.
func (s *Segmenter) Pattern() string {
	return s.pattern
}

// Split returns the chunks of text in original order. Concatenating the
// chunks reproduces text exactly: every preset alternative set covers
// every possible byte, so nothing is dropped or reordered.
func (s *Segmenter) Split(text string) ([]string, error) {
	var chunks []string

	m, err := s.re.FindStringMatch(text)
	if err != nil {
		return nil, fmt.Errorf("split text: %w", err)
	}
	for m != nil {
		chunks = append(chunks, m.String())
		m, err = s.re.FindNextMatch(m)
		if err != nil {
			return nil, fmt.Errorf("split text: %w", err)
		}
	}

	return chunks, nil
}
