// Package tokenizer implements byte-level Byte Pair Encoding.
//
// The package covers the full tokenizer lifecycle:
//   - Segmenter: regex pre-tokenization that fixes the chunk boundaries
//     merges may never cross (GPT-2/GPT-4 style patterns, extended so
//     Arabic combining marks stay attached to their base letter)
//   - Train: the BPE training loop (pair statistics + iterative merging)
//   - Model: a frozen merge table with Encode/Decode
//   - TikToken: reference OpenAI encodings behind the same interface
//
// Example usage:
//
//	model, err := tokenizer.Train(corpus, tokenizer.TrainConfig{
//	    VocabSize: 1024,
//	    Pattern:   tokenizer.PatternGPT4,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ids, err := model.Encode("مَرْحَبًا بِالْعَالَمِ")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	text, err := model.Decode(ids)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Token ids 0..255 are the raw bytes; every id above 255 was created by a
// merge. A Model is immutable after construction and safe for concurrent
// Encode/Decode calls.
package tokenizer
