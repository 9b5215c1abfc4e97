package modelstore

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/harflab/harf/internal/tokenizer"
)

// Read deserializes a model from r, validating magic bytes, format
// version, header sanity, merge-table bounds and the checksum when one
// is present. Any malformed or truncated input fails; nothing is
// repaired or retried.
func Read(r io.Reader, opts ...tokenizer.ModelOption) (*tokenizer.Model, error) {
	hash := sha256.New()
	tee := io.TeeReader(r, hash)

	fixed := make([]byte, FixedHeaderSize)
	if _, err := io.ReadFull(tee, fixed); err != nil {
		return nil, fmt.Errorf("%w: fixed header: %v", ErrTruncated, err)
	}

	if string(fixed[:4]) != MagicBytes {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidMagic, fixed[:4])
	}
	version := binary.LittleEndian.Uint32(fixed[4:8])
	if version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	flags := binary.LittleEndian.Uint32(fixed[8:12])
	headerLen := binary.LittleEndian.Uint32(fixed[12:16])
	if headerLen > MaxHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrHeaderTooLarge, headerLen)
	}

	headerJSON := make([]byte, headerLen)
	if _, err := io.ReadFull(tee, headerJSON); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrTruncated, err)
	}
	var header Header
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptHeader, err)
	}
	if header.MergeCount < 0 || header.MergeCount > MaxMerges {
		return nil, fmt.Errorf("%w: %d", ErrTooManyMerges, header.MergeCount)
	}

	payload := make([]byte, header.MergeCount*8)
	if _, err := io.ReadFull(tee, payload); err != nil {
		return nil, fmt.Errorf("%w: merge table: %v", ErrTruncated, err)
	}

	merges := make([]tokenizer.MergeRule, header.MergeCount)
	for i := range merges {
		left := binary.LittleEndian.Uint32(payload[i*8:])
		right := binary.LittleEndian.Uint32(payload[i*8+4:])
		merges[i] = tokenizer.MergeRule{
			Pair: tokenizer.Pair{
				Left:  int32(left),  //nolint:gosec // G115: NewModel rejects ids outside the vocabulary.
				Right: int32(right), //nolint:gosec // G115: NewModel rejects ids outside the vocabulary.
			},
			New: int32(256 + i), // ids are re-derived, never read from the wire
		}
	}

	if flags&FlagChecksum != 0 {
		want := hash.Sum(nil)
		got := make([]byte, ChecksumSize)
		// Read from r directly: the checksum bytes are not part of the
		// checksummed region.
		if _, err := io.ReadFull(r, got); err != nil {
			return nil, fmt.Errorf("%w: checksum: %v", ErrTruncated, err)
		}
		if !bytes.Equal(want, got) {
			return nil, ErrChecksumMismatch
		}
	}

	model, err := tokenizer.NewModel(header.Pattern, merges, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid model data: %w", err)
	}
	return model, nil
}

// ReadHeader parses only the JSON header from r, for inspection without
// building the full model.
func ReadHeader(r io.Reader) (Header, error) {
	fixed := make([]byte, FixedHeaderSize)
	if _, err := io.ReadFull(r, fixed); err != nil {
		return Header{}, fmt.Errorf("%w: fixed header: %v", ErrTruncated, err)
	}
	if string(fixed[:4]) != MagicBytes {
		return Header{}, fmt.Errorf("%w: got %q", ErrInvalidMagic, fixed[:4])
	}
	version := binary.LittleEndian.Uint32(fixed[4:8])
	if version != FormatVersion {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	headerLen := binary.LittleEndian.Uint32(fixed[12:16])
	if headerLen > MaxHeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes", ErrHeaderTooLarge, headerLen)
	}

	headerJSON := make([]byte, headerLen)
	if _, err := io.ReadFull(r, headerJSON); err != nil {
		return Header{}, fmt.Errorf("%w: header: %v", ErrTruncated, err)
	}
	var header Header
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrCorruptHeader, err)
	}
	return header, nil
}

// Load reads a model from a .harf file at path.
func Load(path string, opts ...tokenizer.ModelOption) (*tokenizer.Model, error) {
	//nolint:gosec // G304: File path comes from the caller, which is expected for model loading.
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Read(file, opts...)
}
