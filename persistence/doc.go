// Package persistence serialises a subject store into a single self-describing
// blob and restores it.
//
// # Format
//
// Every blob starts with a fixed little-endian header:
//
//	magic        [4]byte  "JHW1"
//	version      uint16
//	compression  uint8    none, lz4 or zstd
//	codec length uint8
//	fingerprint  uint32   CRC32 of the vocabulary that wrote the blob
//	raw length   uint32   payload size before compression
//	payload len  uint32
//	checksum     uint32   CRC32 (IEEE) of the payload
//
// followed by the codec name and the (possibly compressed) payload. The
// payload is the codec-encoded document; trait sets are stored as their
// 64-bit encoding. The raw length is capped at MaxStoreSize; a larger value
// is treated as corrupt content.
//
// # Load policy
//
// A missing blob is an empty store. Any other read failure is an
// *ErrStoreLoad. Content that cannot be decoded is logged and replaced by an
// empty store, unless Options.Strict is set, in which case Load returns
// *ErrCorrupt.
package persistence
