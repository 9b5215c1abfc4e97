package tokenizer

// Tokenizer is the core interface for text tokenization.
//
// Both trained BPE models and the TikToken reference encodings implement
// this interface.
type Tokenizer interface {
	// Encode converts text to token IDs.
	Encode(text string) ([]int32, error)

	// Decode converts token IDs back to text.
	Decode(tokens []int32) (string, error)

	// VocabSize returns the total vocabulary size.
	VocabSize() int
}
