// Package zx0 implements the encoder side of a ZX0-family compression
// format: an optimal-parse LZ77 compressor that picks, for every input
// byte, the cheapest of a literal run, a fresh-offset copy, or a
// same-offset copy, coded with interlaced Elias gamma lengths.
//
// The hard part of ZX0 is the parse, not the bitstream: for every input
// position the encoder finds the minimum-bit-cost way to reach it, via a
// dynamic-programming sweep (see optimizer.go) over a match graph
// (block.go). The chosen parse is then backtracked (backtrack.go) and
// serialized with interlaced Elias gamma codes (bitwriter.go).
//
// Typical use is the package-level shortcut:
//
//	out, err := zx0.Compress(data)
//
// or the builder, when options beyond the defaults are needed:
//
//	out, err := zx0.New().Skip(128).Quick(true).Compress(data)
package zx0
