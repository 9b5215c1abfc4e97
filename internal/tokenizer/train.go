package tokenizer

import "fmt"

// TrainConfig controls a BPE training run.
type TrainConfig struct {
	// VocabSize is the target vocabulary size, counting the 256 raw
	// byte tokens. Must be at least 256.
	VocabSize int

	// NumMerges is an alternative target: learn exactly this many
	// merges, for a final vocabulary of 256+NumMerges. Ignored when
	// VocabSize is set.
	NumMerges int

	// Pattern is the split pattern; defaults to PatternGPT4.
	Pattern string

	// Progress, when non-nil, is invoked synchronously after every
	// completed merge. It is a pure observer: the trainer never stores
	// it and training results do not depend on it.
	Progress ProgressFunc
}

// DefaultTrainConfig returns a TrainConfig with sensible defaults.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		VocabSize: 512,
		Pattern:   PatternGPT4,
	}
}

// ProgressEvent describes one completed merge during training.
type ProgressEvent struct {
	MergeIndex   int   // zero-based index of this merge
	Pair         Pair  // the pair that was merged
	NewSymbol    int32 // id assigned to the merged pair
	Count        int   // occurrences of the pair when it was selected
	VocabSize    int   // vocabulary size after this merge
	TotalSymbols int   // symbols remaining across all chunks
}

// ProgressFunc observes training progress.
type ProgressFunc func(ProgressEvent)

// Train learns a BPE model from text.
//
// Each pass recomputes pair statistics from the freshly rewritten chunks,
// selects the globally most frequent pair (ties broken by the smallest
// (Left, Right) pair), assigns it the next id and rewrites every chunk.
// Total cost is O(merges x total symbols).
//
// Training stops when the target vocabulary size is reached, or early
// when no pair occurs at least twice; stopping early is not an error.
func Train(text string, cfg TrainConfig) (*Model, error) {
	target := cfg.VocabSize
	if target == 0 {
		if cfg.NumMerges <= 0 {
			return nil, ErrNoTrainTarget
		}
		target = 256 + cfg.NumMerges
	}
	if target < 256 {
		return nil, fmt.Errorf("%w: got %d", ErrVocabSizeTooSmall, target)
	}

	pattern := cfg.Pattern
	if pattern == "" {
		pattern = PatternGPT4
	}
	seg, err := NewSegmenter(pattern)
	if err != nil {
		return nil, err
	}

	parts, err := seg.Split(text)
	if err != nil {
		return nil, err
	}

	chunks := make([][]int32, 0, len(parts))
	totalSymbols := 0
	for _, p := range parts {
		chunks = append(chunks, bytesToSymbols(p))
		totalSymbols += len(p)
	}

	merges := make([]MergeRule, 0, target-256)
	for len(merges) < target-256 {
		stats := countPairs(chunks)
		pair, count := maxPair(stats)
		if count < 2 {
			break // nothing left worth merging
		}

		newID := int32(256 + len(merges))
		for i, ids := range chunks {
			rewritten := mergePair(ids, pair, newID)
			// countPairs counts overlapping occurrences, so the pair
			// count overstates the rewrites in runs like "aaa"; only
			// the length drop reflects symbols actually removed.
			totalSymbols -= len(ids) - len(rewritten)
			chunks[i] = rewritten
		}
		merges = append(merges, MergeRule{Pair: pair, New: newID})

		if cfg.Progress != nil {
			cfg.Progress(ProgressEvent{
				MergeIndex:   len(merges) - 1,
				Pair:         pair,
				NewSymbol:    newID,
				Count:        count,
				VocabSize:    256 + len(merges),
				TotalSymbols: totalSymbols,
			})
		}
	}

	return NewModel(pattern, merges)
}
