package fnmatch

import "bytes"

// findByte locates the first occurrence of b in s, or -1. Delegates to
// bytes.IndexByte, which the Go runtime implements with an
// architecture-vectorized assembly routine (SSE2/AVX2/NEON depending on
// GOARCH) — the same primitive spec.md §4.A asks the scanner to use before
// falling back to a scalar loop.
func findByte(s []byte, b byte) int {
	return bytes.IndexByte(s, b)
}

// findAnyOf locates the first occurrence of any byte in set within s, or -1.
// set is expected to be small (a handful of metacharacters); stdlib has no
// vectorized multi-byte scan, so this falls back to a scalar bitmap probe
// per byte of s, short-circuiting to findByte when set holds a single byte.
func findAnyOf(s []byte, set []byte) int {
	if len(set) == 1 {
		return findByte(s, set[0])
	}

	var bitmap [4]uint64

	for _, b := range set {
		bitmap[b>>6] |= 1 << (b & 63)
	}

	for i, b := range s {
		if bitmap[b>>6]&(1<<(b&63)) != 0 {
			return i
		}
	}

	return -1
}
