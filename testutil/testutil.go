package testutil

import (
	"bytes"
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Bytes returns n pseudo-random bytes.
func (r *RNG) Bytes(n int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := make([]byte, n)
	_, _ = r.rand.Read(b)
	return b
}

// BytesFrom returns n bytes drawn from alphabet. Small alphabets produce many
// overlapping near-matches, which exercises search backtracking.
func (r *RNG) BytesFrom(n int, alphabet []byte) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[r.rand.Intn(len(alphabet))]
	}
	return b
}

// Sequence returns the bytes 1..n (wrapping at 256), handy for spotting
// misplaced chunks in failure output.
func Sequence(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i + 1)
	}
	return b
}

// Insert returns a copy of data with p inserted at off.
func Insert(data []byte, off int, p []byte) []byte {
	out := make([]byte, 0, len(data)+len(p))
	out = append(out, data[:off]...)
	out = append(out, p...)
	return append(out, data[off:]...)
}

// Cut returns a copy of data without [off, off+n), n clamped to the end.
func Cut(data []byte, off, n int) []byte {
	end := min(off+n, len(data))
	out := make([]byte, 0, len(data))
	out = append(out, data[:off]...)
	return append(out, data[end:]...)
}

// Move returns a copy of data with n zero bytes inserted at off.
func Move(data []byte, off, n int) []byte {
	return Insert(data, off, make([]byte, n))
}

// MoveTo returns a copy of data where the n bytes at start (clamped to the end)
// are removed and reinserted so that they begin at to.
func MoveTo(data []byte, start, to, n int) []byte {
	end := min(start+n, len(data))
	block := bytes.Clone(data[start:end])
	rest := Cut(data, start, end-start)
	return Insert(rest, to, block)
}

// FindAll returns the offsets of pattern in data the way a forward-only
// scanner finds them: a match resumes the scan after its last byte, and a
// mismatch resumes it after the byte that broke the partial match.
func FindAll(data, pattern []byte) []int64 {
	var offs []int64
	if len(pattern) == 0 {
		return offs
	}
	for i := 0; i < len(data); {
		k := 0
		for k < len(pattern) && i+k < len(data) && data[i+k] == pattern[k] {
			k++
		}
		switch {
		case k == len(pattern):
			offs = append(offs, int64(i))
			i += k
		case i+k >= len(data):
			return offs
		default:
			i += k + 1
		}
	}
	return offs
}
