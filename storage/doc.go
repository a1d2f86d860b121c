// Package storage provides concrete media that satisfy streamedit.Stream.
//
//   - Buffer: an in-memory, growable byte buffer with a cursor
//   - File: a local file that reserves disk blocks when it grows
//
// Remote objects are edited through package spool, which keeps a local copy
// of a blob and commits it back to a blobstore.
package storage
