// Package hash provides the CRC32-Castagnoli checksums used to verify blobs.
//
// One-shot:
//
//	sum := hash.CRC32C(data)
//
// Streaming:
//
//	h := hash.NewCRC32C()
//	io.Copy(h, r)
//	sum := h.Sum32()
package hash
