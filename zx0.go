package zx0

// Compressor is a chainable configuration handle (spec.md §6.1's
// "builder" surface). Its zero value is the documented default: no
// skip, forward, optimal (non-quick), v2 bitstream, no progress
// reporting.
type Compressor struct {
	skip       int
	backwards  bool
	quick      bool
	classic    bool
	progressCb func(float64)
}

// New returns a Compressor configured with the documented defaults.
func New() *Compressor {
	return &Compressor{}
}

// Skip sets the number of leading input bytes treated as an
// already-decompressed prefix: they contribute no output but remain
// available as a match source.
func (c *Compressor) Skip(n int) *Compressor {
	c.skip = n
	return c
}

// Backwards enables compressing as if the input were reversed, so a
// conforming decompressor can run from high to low addresses.
func (c *Compressor) Backwards(on bool) *Compressor {
	c.backwards = on
	return c
}

// Quick enables the hill-climbing match-search short-circuit: faster,
// slightly larger output.
func (c *Compressor) Quick(on bool) *Compressor {
	c.quick = on
	return c
}

// Classic selects the ZX0 v1 bitstream (a different offset-high
// encoding) instead of the v2 default.
func (c *Compressor) Classic(on bool) *Compressor {
	c.classic = on
	return c
}

// Progress installs a callback invoked with values in [0,1] during
// optimization. It is called synchronously on the compressing
// goroutine; a panic inside it propagates out of Compress unchanged.
func (c *Compressor) Progress(cb func(float64)) *Compressor {
	c.progressCb = cb
	return c
}

// Result is the output of a successful Compress call.
type Result struct {
	Output       []byte
	Delta        int
	OriginalSize int
	Stats        Stats
}

// Stats is a diagnostic breakdown of the chosen parse. It never
// influences the bitstream; it exists only so callers (chiefly
// cmd/zx0c) can report a human-readable summary.
type Stats struct {
	LiteralRuns   int
	LiteralBytes  int
	CopyOps       int
	CopyBytes     int
	CopyPrevOps   int
	CopyPrevBytes int
}

// Compress runs the optimal parse, backtrack, and bit emitter over
// input using this configuration (spec.md §4.5).
func (c *Compressor) Compress(input []byte) (result Result, err error) {
	defer recoverInternal(&err)

	if len(input) == 0 {
		return Result{}, ErrEmptyInput
	}
	if c.skip >= len(input) {
		return Result{}, ErrSkipTooLarge
	}

	work := input
	if c.backwards {
		work = make([]byte, len(input))
		copy(work[:c.skip], input[:c.skip])
		copy(work[c.skip:], reverseBytes(input[c.skip:]))
	}

	g, terminal, maxOffset := optimize(work, c.skip, c.quick, c.classic, c.progressCb)
	ops := backtrack(g, terminal)
	encoded := encode(work, c.skip, ops, c.classic, maxOffset)
	delta := simulateDelta(encoded, c.skip, maxOffset, c.classic)

	out := encoded
	if c.backwards {
		out = reverseBytes(encoded)
	}

	return Result{
		Output:       out,
		Delta:        delta,
		OriginalSize: len(input),
		Stats:        computeStats(ops),
	}, nil
}

// Compress is the package-level shortcut (spec.md §6.1) equivalent to
// New().Compress(input) with every option at its default.
func Compress(input []byte) ([]byte, error) {
	res, err := New().Compress(input)
	if err != nil {
		return nil, err
	}
	return res.Output, nil
}

func computeStats(ops []op) Stats {
	var s Stats
	for _, o := range ops {
		switch o.kind {
		case edgeLiteral:
			s.LiteralRuns++
			s.LiteralBytes += o.length
		case edgeCopyNew:
			s.CopyOps++
			s.CopyBytes += o.length
		case edgeCopyPrev:
			s.CopyPrevOps++
			s.CopyPrevBytes += o.length
		}
	}
	return s
}

func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
