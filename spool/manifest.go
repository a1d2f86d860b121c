package spool

import (
	"bytes"
	"fmt"
	"time"

	"github.com/hupe1980/streamedit/codec"
)

// ManifestSuffix is appended to a blob name to form the name of its manifest.
const ManifestSuffix = ".manifest"

const manifestVersion = 1

// Manifest describes a committed blob.
type Manifest struct {
	Version     int         `json:"version"`
	Compression Compression `json:"compression"`
	// Size is the length of the content before compression.
	Size int64 `json:"size"`
	// StoredSize is the length of the blob as stored.
	StoredSize int64 `json:"stored_size"`
	// CRC32C is the Castagnoli checksum of the uncompressed content.
	CRC32C      uint32    `json:"crc32c"`
	CommittedAt time.Time `json:"committed_at"`
}

// ManifestName returns the name of the manifest blob for name.
func ManifestName(name string) string {
	return name + ManifestSuffix
}

// encodeManifest prefixes the encoded manifest with the codec name and a
// newline so that readers can select the codec.
func encodeManifest(c codec.Codec, m Manifest) ([]byte, error) {
	out := append([]byte(c.Name()), '\n')
	if a, ok := c.(codec.Appender); ok {
		return a.Append(out, m)
	}
	payload, err := c.Marshal(m)
	if err != nil {
		return nil, err
	}
	return append(out, payload...), nil
}

func decodeManifest(data []byte) (Manifest, error) {
	var m Manifest

	name, payload, ok := bytes.Cut(data, []byte{'\n'})
	if !ok {
		return m, fmt.Errorf("%w: missing codec header", ErrInvalidManifest)
	}
	c, ok := codec.ByName(string(name))
	if !ok {
		return m, fmt.Errorf("%w: unknown codec %q", ErrInvalidManifest, name)
	}
	if err := c.Unmarshal(payload, &m); err != nil {
		return m, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if m.Version != manifestVersion {
		return m, fmt.Errorf("%w: unsupported version %d", ErrInvalidManifest, m.Version)
	}
	if !m.Compression.valid() {
		return m, fmt.Errorf("%w: %q", ErrUnknownCompression, m.Compression)
	}
	return m, nil
}
