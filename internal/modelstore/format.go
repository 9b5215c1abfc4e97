package modelstore

import "time"

const harfVersion = "0.1.0" // Current Harf version

// Format constants.
const (
	MagicBytes      = "HARF"
	FormatVersion   = 1
	FixedHeaderSize = 16      // magic + version + flags + header length
	ChecksumSize    = 32      // SHA-256
	MaxHeaderSize   = 1 << 20 // sanity bound on the JSON header
	MaxMerges       = 1 << 24 // sanity bound on the merge table
)

// Flags for the .harf format.
const (
	FlagChecksum uint32 = 1 << 0 // bit 0: SHA-256 checksum appended
)

// Header is the JSON header in a .harf file.
type Header struct {
	FormatVersion int               `json:"format_version"` // Version of the .harf format
	HarfVersion   string            `json:"harf_version"`   // Version of Harf that created this file
	Pattern       string            `json:"pattern"`        // Split pattern the model was trained with
	MergeCount    int               `json:"merge_count"`    // Number of (left, right) records that follow
	CreatedAt     time.Time         `json:"created_at"`     // When the file was created
	Metadata      map[string]string `json:"metadata,omitempty"`
}
