package modelstore

import "errors"

// Common errors.
var (
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrTruncated          = errors.New("model file truncated")
	ErrHeaderTooLarge     = errors.New("header exceeds maximum size")
	ErrCorruptHeader      = errors.New("corrupt model header")
	ErrTooManyMerges      = errors.New("merge count out of range")
	ErrChecksumMismatch   = errors.New("checksum mismatch: file may be corrupted")
)
