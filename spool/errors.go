package spool

import "errors"

var (
	// ErrClosed is returned when using a Spool after Close.
	ErrClosed = errors.New("spool: closed")

	// ErrCorrupt is returned when downloaded content does not match its manifest.
	ErrCorrupt = errors.New("spool: content does not match manifest")

	// ErrInvalidManifest is returned when a manifest blob cannot be decoded.
	ErrInvalidManifest = errors.New("spool: invalid manifest")

	// ErrUnknownCompression is returned for compression names this package
	// does not implement.
	ErrUnknownCompression = errors.New("spool: unknown compression")
)
