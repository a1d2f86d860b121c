// Package testutil provides testing utilities for streamedit.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random source for byte content and a slice-based
// reference model that computes the expected result of every edit.
//
// # Random Content
//
//	rng := testutil.NewRNG(seed)
//	data := rng.Bytes(4096)
//	alpha := rng.BytesFrom(4096, []byte("ab")) // dense repeats for search tests
//
// # Reference Model
//
//	want := testutil.Insert(data, 10, []byte("xyz"))
//	offs := testutil.FindAll(data, []byte("ab"))
package testutil
