package zx0

// bitWriter packs bits MSB-first into a growing byte slice. Unlike the
// reference encoder, literal bytes are not byte-realigned before being
// written (that realignment exists in the reference purely to speed up
// decompression via memcpy, see Open Question decisions in DESIGN.md) —
// they flow through the same bit-at-a-time path as everything else,
// which keeps the writer a single small primitive and produces the same
// total bit count either way.
type bitWriter struct {
	out   []byte
	cur   byte
	nbits int // bits already packed into cur, 0..7
}

func (w *bitWriter) writeBit(b int) {
	w.cur = w.cur<<1 | byte(b&1)
	w.nbits++
	if w.nbits == 8 {
		w.out = append(w.out, w.cur)
		w.cur, w.nbits = 0, 0
	}
}

func (w *bitWriter) writeByte(b byte) {
	for i := 7; i >= 0; i-- {
		w.writeBit(int(b>>uint(i)) & 1)
	}
}

// writeGammaInterlaced emits v (v >= 1) as ZX0's interlaced Elias gamma:
// an (continue=1, value-bit) pair for each of the value's trailing bits,
// terminated by a single continue=0.
func (w *bitWriter) writeGammaInterlaced(v int) {
	top := bitsLen(v) - 1
	for i := top - 1; i >= 0; i-- {
		w.writeBit(1)
		w.writeBit((v >> uint(i)) & 1)
	}
	w.writeBit(0)
}

// writeGammaPlain emits v (v >= 1) as classic_mode's non-interlaced
// gamma: a unary run of zeros giving the bit length, then the value's
// bits verbatim. Same bit count as writeGammaInterlaced (see Open
// Question decisions), different layout.
func (w *bitWriter) writeGammaPlain(v int) {
	b := bitsLen(v)
	for i := 0; i < b-1; i++ {
		w.writeBit(0)
	}
	for i := b - 1; i >= 0; i-- {
		w.writeBit((v >> uint(i)) & 1)
	}
}

func (w *bitWriter) finish() []byte {
	if w.nbits > 0 {
		w.cur <<= uint(8 - w.nbits)
		w.out = append(w.out, w.cur)
		w.cur, w.nbits = 0, 0
	}
	return w.out
}

func bitsLen(v int) int {
	n := 0
	for v > 0 {
		n++
		v >>= 1
	}
	return n
}

// writeTurnGamma emits a gamma code for v (v >= 1) with the next edge
// kind's selector folded into its trailing bit (spec.md §4.4 rules 3-4),
// by gamma-coding 2*v+selector instead of v. See turnGammaBits for why
// the selector's value never changes the emitted bit count.
func (w *bitWriter) writeTurnGamma(v, selector int, classicMode bool) {
	combined := 2*v + selector
	if classicMode {
		w.writeGammaPlain(combined)
	} else {
		w.writeGammaInterlaced(combined)
	}
}

// writeOffset emits a match offset's wire form: a raw low byte followed
// by a gamma-coded high part (spec.md §4.4 rule 3), using the plain
// layout in classic mode and the interlaced layout otherwise. The high
// part is always the final gamma code of a Copy op, so it is the one
// that carries the folded next-turn selector.
func writeOffset(w *bitWriter, offset int, classicMode bool, selector int) {
	offsetLow := (offset - 1) & 0xff
	w.writeByte(byte((256 - offsetLow) & 0xff))
	high1 := (offset-1)>>8 + 1
	w.writeTurnGamma(high1, selector, classicMode)
}

// encode serializes a backtracked parse into a ZX0 bitstream (v1 when
// classicMode), per spec.md §4.4. One leading bit picks the very first
// edge kind (rule 1). Each match turn then spends exactly one dedicated
// bit choosing new offset (Copy) from same offset (CopyPrev) — that
// choice can't be folded, since it precedes any gamma code of its own
// turn. What follows the turn, by contrast, is folded into the
// trailing bit of the turn's final gamma code (rules 3-4): Copy's final
// gamma is its offset's high part, CopyPrev's is its length. A literal
// op needs no selector bit at all: by construction (optimizer.go never
// emits two adjacent literal edges) a literal is always followed by a
// match, so the decoder assumes that unconditionally.
func encode(input []byte, skip int, ops []op, classicMode bool, maxOffset int) []byte {
	w := &bitWriter{}
	if len(ops) == 0 {
		w.writeBit(1) // an empty parse still needs the terminator match.
	} else {
		w.writeBit(boolBit(ops[0].kind != edgeLiteral))
	}

	pos := skip
	for i, o := range ops {
		nextIsMatch := 1
		if i+1 < len(ops) && ops[i+1].kind == edgeLiteral {
			nextIsMatch = 0
		}
		switch o.kind {
		case edgeLiteral:
			w.writeGammaInterlaced(o.length)
			for k := 0; k < o.length; k++ {
				w.writeByte(input[pos+k])
			}
		case edgeCopyNew:
			w.writeBit(0) // new offset
			w.writeGammaInterlaced(o.length - 1)
			writeOffset(w, o.offset, classicMode, nextIsMatch)
		case edgeCopyPrev:
			w.writeBit(1) // same offset as previous match
			w.writeTurnGamma(o.length, nextIsMatch, classicMode)
		}
		pos += o.length
	}

	// Terminator (spec.md §4.4 rule 5): a Copy at the sentinel offset
	// maxOffset+1 (generalized per DESIGN.md's Open Question decisions),
	// with a dummy length of 2 so its length-1 gamma is well-formed. Its
	// own folded selector is read along with the offset but never used:
	// the decoder recognizes the sentinel from the offset alone and stops.
	w.writeBit(0)
	w.writeGammaInterlaced(1)
	writeOffset(w, maxOffset+1, classicMode, 0)

	return w.finish()
}

func boolBit(b bool) int {
	if b {
		return 1
	}
	return 0
}
