package modelstore

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/harflab/harf/internal/tokenizer"
)

// Write serializes model to w in .harf format, checksum included.
//
// The output is buffered in memory first so the checksum can cover the
// complete header and merge table; model files are small (eight bytes
// per merge), so this never matters in practice.
func Write(w io.Writer, model *tokenizer.Model) error {
	return WriteWithMetadata(w, model, nil)
}

// WriteWithMetadata is Write with free-form key/value metadata recorded
// in the JSON header.
func WriteWithMetadata(w io.Writer, model *tokenizer.Model, metadata map[string]string) error {
	merges := model.Merges()

	header := Header{
		FormatVersion: FormatVersion,
		HarfVersion:   harfVersion,
		Pattern:       model.Pattern(),
		MergeCount:    len(merges),
		CreatedAt:     time.Now().UTC(),
		Metadata:      metadata,
	}
	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	if len(headerJSON) > MaxHeaderSize {
		return fmt.Errorf("%w: %d bytes", ErrHeaderTooLarge, len(headerJSON))
	}

	var buf bytes.Buffer
	buf.WriteString(MagicBytes)
	writeUint32(&buf, FormatVersion)
	writeUint32(&buf, FlagChecksum)
	writeUint32(&buf, uint32(len(headerJSON))) //nolint:gosec // G115: bounded by MaxHeaderSize above.
	buf.Write(headerJSON)

	for _, r := range merges {
		writeUint32(&buf, uint32(r.Pair.Left))  //nolint:gosec // G115: ids are non-negative and below 2^31.
		writeUint32(&buf, uint32(r.Pair.Right)) //nolint:gosec // G115: ids are non-negative and below 2^31.
	}

	checksum := sha256.Sum256(buf.Bytes())

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write model: %w", err)
	}
	if _, err := w.Write(checksum[:]); err != nil {
		return fmt.Errorf("failed to write checksum: %w", err)
	}

	return nil
}

// Save writes model to a .harf file at path.
func Save(path string, model *tokenizer.Model) error {
	//nolint:gosec // G304: File path comes from the caller, which is expected for model saving.
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := Write(file, model); err != nil {
		_ = file.Close() // Best effort close on error
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}
