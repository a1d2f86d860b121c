package spool

import (
	"bytes"
	"testing"
	"time"

	"github.com/hupe1980/streamedit/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifest_Encoding(t *testing.T) {
	m := Manifest{
		Version:     manifestVersion,
		Compression: CompressionLZ4,
		Size:        1 << 20,
		StoredSize:  4096,
		CRC32C:      0xE3069283,
		CommittedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	for _, c := range []codec.Codec{codec.JSON{}, codec.GoJSON{}} {
		data, err := encodeManifest(c, m)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte(c.Name()+"\n")), c.Name())

		got, err := decodeManifest(data)
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
}

func TestManifest_Invalid(t *testing.T) {
	tests := map[string]string{
		"NoHeader":     `{"version":1}`,
		"UnknownCodec": "yaml\nversion: 1",
		"BadPayload":   "json\n{",
		"Version":      "json\n{\"version\":2,\"compression\":\"none\"}",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := decodeManifest([]byte(data))
			assert.ErrorIs(t, err, ErrInvalidManifest)
		})
	}

	_, err := decodeManifest([]byte("json\n{\"version\":1,\"compression\":\"snappy\"}"))
	assert.ErrorIs(t, err, ErrUnknownCompression)
}

func TestManifestName(t *testing.T) {
	assert.Equal(t, "a/b.bin.manifest", ManifestName("a/b.bin"))
}
