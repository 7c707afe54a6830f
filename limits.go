package zx0

// Offset-window ceilings per spec.md §4's invariant ("max_offset, default
// 32,640; lowered when skip or classic_mode shrink the window"). v1
// (classic_mode) is kept to a narrower default window. Its plain
// (non-interlaced) high-gamma layout costs the same number of bits as
// v2's interlaced form for every value (see writeGammaPlain), so the
// window ceiling, not the bit cost, is what differs between the modes.
const (
	maxOffsetV2 = 32640
	maxOffsetV1 = 16384
)

// hashBuckets is the size of the 2-byte content-hash table used to seed
// match candidates: one bucket per distinct (S[i], S[i+1]) pair, so a
// candidate's 2-byte match is never a hash collision, only a real prefix
// match.
const hashBuckets = 1 << 16

// effectiveMaxOffset is the largest offset a match can legally use for a
// run of this length and mode: bounded by the format ceiling and by how
// far back the window actually reaches.
func effectiveMaxOffset(n int, classicMode bool) int {
	abs := maxOffsetV2
	if classicMode {
		abs = maxOffsetV1
	}
	if reach := n - 1; reach < abs {
		abs = reach
	}
	if abs < 1 {
		abs = 1
	}
	return abs
}

func hash2(a, b byte) int {
	return int(a)<<8 | int(b)
}
