// Package tokenizer provides byte-level BPE tokenization for Harf.
//
// This package wraps the internal implementation and provides a clean
// public API for training tokenizers, encoding/decoding text, and
// persisting trained models.
//
// Example usage:
//
//	import "github.com/harflab/harf/tokenizer"
//
//	// Train a model
//	model, err := tokenizer.Train(corpus, tokenizer.TrainConfig{
//	    VocabSize: 1024,
//	    Pattern:   tokenizer.PatternGPT4,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Encode text
//	ids, err := model.Encode("مَرْحَبًا بِالْعَالَمِ")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Decode tokens
//	text, err := model.Decode(ids)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Persist and reload
//	if err := tokenizer.SaveModel("model.harf", model); err != nil {
//	    log.Fatal(err)
//	}
//	model, err = tokenizer.LoadModel("model.harf")
package tokenizer

import (
	"io"

	"github.com/harflab/harf/internal/modelstore"
	"github.com/harflab/harf/internal/tokenizer"
)

// Tokenizer is the core interface for text tokenization.
type Tokenizer = tokenizer.Tokenizer

// Model is a frozen, trained BPE tokenizer. It is immutable and safe
// for concurrent Encode/Decode calls.
type Model = tokenizer.Model

// Pair is an adjacent (left, right) symbol pair.
type Pair = tokenizer.Pair

// MergeRule records one learned merge in training order.
type MergeRule = tokenizer.MergeRule

// Segmenter splits raw text into the chunks merges operate within.
type Segmenter = tokenizer.Segmenter

// TrainConfig controls a BPE training run.
type TrainConfig = tokenizer.TrainConfig

// ProgressEvent describes one completed merge during training.
type ProgressEvent = tokenizer.ProgressEvent

// ProgressFunc observes training progress.
type ProgressFunc = tokenizer.ProgressFunc

// ModelOption configures optional Model behavior.
type ModelOption = tokenizer.ModelOption

// TikToken exposes the pretrained OpenAI encodings behind the Tokenizer
// interface.
type TikToken = tokenizer.TikToken

// Preset split patterns.
const (
	PatternGPT2 = tokenizer.PatternGPT2
	PatternGPT4 = tokenizer.PatternGPT4
)

// Pretrained OpenAI encoding names for NewTikToken.
const (
	EncodingCL100kBase = tokenizer.EncodingCL100kBase
	EncodingP50kBase   = tokenizer.EncodingP50kBase
	EncodingR50kBase   = tokenizer.EncodingR50kBase
)

// Common errors.
var (
	ErrInvalidPattern    = tokenizer.ErrInvalidPattern
	ErrVocabSizeTooSmall = tokenizer.ErrVocabSizeTooSmall
	ErrTokenOutOfRange   = tokenizer.ErrTokenOutOfRange
	ErrInvalidUTF8       = tokenizer.ErrInvalidUTF8
)

// Train learns a BPE model from text. Training is deterministic: the
// same text and config always produce the same merge table.
func Train(text string, cfg TrainConfig) (*Model, error) {
	return tokenizer.Train(text, cfg)
}

// DefaultTrainConfig returns a TrainConfig with sensible defaults.
func DefaultTrainConfig() TrainConfig {
	return tokenizer.DefaultTrainConfig()
}

// NewModel builds a Model directly from a split pattern and an ordered
// merge table, e.g. one produced by a different implementation.
func NewModel(pattern string, merges []MergeRule, opts ...ModelOption) (*Model, error) {
	return tokenizer.NewModel(pattern, merges, opts...)
}

// ReplaceInvalidUTF8 makes Decode substitute U+FFFD for invalid byte
// sequences instead of failing. The default is strict failure.
func ReplaceInvalidUTF8() ModelOption {
	return tokenizer.ReplaceInvalidUTF8()
}

// NewSegmenter compiles a split pattern. PatternGPT2 and PatternGPT4
// are the built-in presets; custom regexp2 patterns are accepted.
func NewSegmenter(pattern string) (*Segmenter, error) {
	return tokenizer.NewSegmenter(pattern)
}

// NewTikToken creates a tokenizer backed by a pretrained OpenAI
// encoding (EncodingCL100kBase, EncodingP50kBase, EncodingR50kBase).
func NewTikToken(encodingName string) (*TikToken, error) {
	return tokenizer.NewTikToken(encodingName)
}

// WriteModel serializes a model to w in .harf format.
func WriteModel(w io.Writer, model *Model) error {
	return modelstore.Write(w, model)
}

// ReadModel deserializes a model from r.
func ReadModel(r io.Reader, opts ...ModelOption) (*Model, error) {
	return modelstore.Read(r, opts...)
}

// SaveModel writes a model to a .harf file at path.
func SaveModel(path string, model *Model) error {
	return modelstore.Save(path, model)
}

// LoadModel reads a model from a .harf file at path.
func LoadModel(path string, opts ...ModelOption) (*Model, error) {
	return modelstore.Load(path, opts...)
}
