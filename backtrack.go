package zx0

// op is one entry of the reconstructed parse: a forward-ordered
// literal/copy/copy-prev instruction ready for the bit emitter.
type op struct {
	kind   edgeKind
	length int
	offset int // meaningful for edgeCopyNew/edgeCopyPrev only
}

// backtrack walks chain pointers from the terminal block to the
// synthetic root and returns the parse in forward (emission) order.
// Each block already carries its own edgeKind decided at DP time
// (optimizer.go), so no offset-adjacency re-derivation happens here —
// backtracking is pure pointer-chasing, per spec.md §4.3.
func backtrack(g *graph, terminal int) []op {
	var reversed []op
	for h := terminal; h != noBlock; {
		b := g.at(h)
		if b.length == 0 {
			// the synthetic root: nothing to emit, walk stops here.
			break
		}
		o := op{kind: b.kind, length: b.length}
		if b.kind != edgeLiteral {
			o.offset = b.offset
		}
		reversed = append(reversed, o)
		if b.chain == h {
			panicInternal("block %d chains to itself", h)
		}
		h = b.chain
	}
	ops := make([]op, len(reversed))
	for i, o := range reversed {
		ops[len(reversed)-1-i] = o
	}
	return ops
}
