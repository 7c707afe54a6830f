package zx0

// optimize drives the forward DP sweep described in spec.md §4.2: for
// every position it derives the cheapest way to arrive via a literal
// edge or a match edge, discovering fresh match candidates through a
// 2-byte content-hash chain and extending the live "previous offset"
// match by one byte at a time (CopyPrev). It returns the graph (so the
// backtracker can walk it) and the handle of the cheapest block reaching
// the end of input.
func optimize(input []byte, skip int, quickMode, classicMode bool, progress func(float64)) (g *graph, terminal, maxOffset int) {
	n := len(input)
	maxOffset = effectiveMaxOffset(n, classicMode)
	g = newGraph(n, maxOffset, hashBuckets)

	root := g.alloc(block{bits: 0, index: skip, offset: 1, length: 0, kind: edgeLiteral, chain: noBlock})
	g.lastLiteral[skip] = root
	g.proposeOptimal(1, root)

	progressStep := (n - skip) / 256
	if progressStep < 1 {
		progressStep = 1
	}

	nextInsert := 0
	insertUpTo := func(limit int) {
		for ; nextInsert <= limit && nextInsert+1 < n; nextInsert++ {
			bucket := hash2(input[nextInsert], input[nextInsert+1])
			g.insertCandidate(bucket, nextInsert)
		}
	}

	for p := skip + 1; p <= n; p++ {
		insertUpTo(p - 1)

		// (a): literal extension — extend an existing run, or open a
		// new one right after a match, whichever is cheaper.
		var lit block
		haveLit := false
		if h := g.lastLiteral[p-1]; h != noBlock {
			prev := g.at(h)
			newLen := prev.length + 1
			lit = block{
				bits: prev.bits + 8 + deltaGamma(newLen), index: p - newLen,
				offset: prev.offset, length: newLen, kind: edgeLiteral, chain: prev.chain,
			}
			haveLit = true
		}
		if h := g.lastMatch[p-1]; h != noBlock {
			prev := g.at(h)
			cand := block{
				bits: prev.bits + 8 + deltaGamma(1), index: p - 1,
				offset: prev.offset, length: 1, kind: edgeLiteral, chain: h,
			}
			if !haveLit || cand.bits < lit.bits {
				lit, haveLit = cand, true
			}
		}
		if haveLit {
			g.lastLiteral[p] = g.alloc(lit)
		}

		// (b): CopyPrev — grow the most recently used offset by one byte.
		// A chain of these growth steps collapses into a single emitted op
		// (chain points straight at the true predecessor, skipping the
		// scratch intermediates), so only the step that opens a new CopyPrev
		// op, where prev is not itself one, pays matchKindBit plus the
		// turn-gamma's fixed +2 over a plain gammaBits(1); further growth
		// within the same op pays only the incremental gamma cost (the
		// turn-gamma's constant offset cancels out of the delta), matching
		// what bitwriter.go emits for one op whose length field simply grew
		// during the search.
		if h := g.lastMatch[p-1]; h != noBlock {
			prev := g.at(h)
			prevOff := prev.offset
			if src := p - 1 - prevOff; src >= 0 && input[p-1] == input[src] {
				var cand block
				if prev.kind == edgeCopyPrev {
					newLen := prev.length + 1
					cand = block{
						bits: prev.bits + deltaGamma(newLen), index: prevOff,
						offset: prevOff, length: newLen, kind: edgeCopyPrev, chain: prev.chain,
					}
				} else {
					cand = block{
						bits: prev.bits + matchKindBit + turnGammaBits(1), index: prevOff,
						offset: prevOff, length: 1, kind: edgeCopyPrev, chain: h,
					}
				}
				handle := g.alloc(cand)
				g.proposeMatch(p, handle)
				g.proposeOptimal(prevOff, handle)
			}
		}

		// (c): fresh new-offset matches, seeded from the content-hash chain.
		if p+1 < n {
			prefHandle, prefBits, ok := bestArrival(g, p)
			if ok {
				bucket := hash2(input[p], input[p+1])
				maxLen := n - p
				for j := g.matchChainHead[bucket]; j != noBlock; j = g.matchChainNext[j] {
					offset := p - j
					if offset > maxOffset {
						break
					}
					matchLen := 0
					for matchLen < maxLen && input[j+matchLen] == input[p+matchLen] {
						matchLen++
					}
					if matchLen < 2 {
						continue
					}
					obits := offsetBits(offset)
					for length := 2; length <= matchLen; length++ {
						target := p + length
						bits := prefBits + matchKindBit + gammaBits(length-1) + obits
						// Allocate only a block that proposeMatch or
						// proposeOptimal would keep, by the same tests they apply.
						improved := true
						if cur := g.lastMatch[target]; cur != noBlock {
							cb := g.at(cur)
							improved = bits < cb.bits || (bits == cb.bits && offset < cb.index)
						}
						if opt := g.optimalByOffset[offset]; improved || opt == noBlock || bits < g.at(opt).bits {
							handle := g.alloc(block{
								bits: bits, index: offset, offset: offset,
								length: length, kind: edgeCopyNew, chain: prefHandle,
							})
							g.proposeMatch(target, handle)
							g.proposeOptimal(offset, handle)
						}
						if quickMode && !improved {
							break
						}
					}
				}
			}
		}

		if progress != nil && ((p-skip)%progressStep == 0 || p == n) {
			progress(float64(p-skip) / float64(n-skip))
		}
	}

	handle, _, ok := bestArrival(g, n)
	if !ok {
		panicInternal("no parse reaches the end of input (n=%d, skip=%d)", n, skip)
	}
	return g, handle, maxOffset
}

// bestArrival returns the cheaper of lastLiteral[p]/lastMatch[p], tie-
// broken per spec.md §4.1 in favor of the smaller index (smaller offset).
func bestArrival(g *graph, p int) (handle, bits int, ok bool) {
	lh, mh := g.lastLiteral[p], g.lastMatch[p]
	switch {
	case lh == noBlock && mh == noBlock:
		return noBlock, 0, false
	case lh == noBlock:
		b := g.at(mh)
		return mh, b.bits, true
	case mh == noBlock:
		b := g.at(lh)
		return lh, b.bits, true
	}
	lb, mb := g.at(lh), g.at(mh)
	if lb.bits < mb.bits || (lb.bits == mb.bits && lb.index <= mb.index) {
		return lh, lb.bits, true
	}
	return mh, mb.bits, true
}

// offsetBits is the bit cost of encoding a match offset: a raw low byte
// plus a gamma-coded high part (spec.md §4.4 rule 3) whose trailing bit
// also carries the folded next-turn selector, hence turnGammaBits rather
// than a plain gammaBits. The count is the same in classic and v2 mode;
// only the bit layout bitwriter.go emits differs (see Open Question
// decisions in DESIGN.md).
func offsetBits(offset int) int {
	high := (offset - 1) >> 8
	return 8 + turnGammaBits(high+1)
}
