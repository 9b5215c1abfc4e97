// Package modelstore reads and writes trained BPE models in the .harf
// binary format.
//
// Layout of a .harf file:
//
//	[4]  magic "HARF"
//	[4]  format version (uint32, little-endian)
//	[4]  flags (uint32)
//	[4]  JSON header length (uint32)
//	[..] JSON header (pattern, merge count, metadata)
//	[..] merge table: merge count x (uint32 left, uint32 right)
//	[32] SHA-256 checksum of everything above (when FlagChecksum set)
//
// Merge ids are never stored: the id of merge i is always 256+i, so the
// pair list alone reconstructs the model exactly. The format is
// self-contained; another process can parse it without replaying
// training.
package modelstore
