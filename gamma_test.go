package zx0

import (
	"testing"

	"pgregory.net/rapid"
)

func TestGammaBitsKnownValues(t *testing.T) {
	cases := []struct {
		k, want int
	}{
		{0, 0},
		{1, 1},
		{2, 3},
		{3, 3},
		{4, 5},
		{7, 5},
		{8, 7},
		{255, 15},
		{256, 17},
	}
	for _, c := range cases {
		if got := gammaBits(c.k); got != c.want {
			t.Errorf("gammaBits(%d) = %d, want %d", c.k, got, c.want)
		}
	}
}

// deltaGamma must telescope: summing it from 1 to k always reproduces
// gammaBits(k) exactly, since optimizer.go's literal- and CopyPrev-growth
// steps rely on that to price incremental extension correctly.
func TestDeltaGammaTelescopes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		k := rapid.IntRange(1, 1<<20).Draw(t, "k")
		sum := 0
		for i := 1; i <= k; i++ {
			sum += deltaGamma(i)
		}
		if sum != gammaBits(k) {
			t.Fatalf("sum of deltaGamma(1..%d) = %d, want gammaBits(%d) = %d", k, sum, k, gammaBits(k))
		}
	})
}

func TestGammaBitsMatchesBitsLen(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		k := rapid.IntRange(1, 1<<24).Draw(t, "k")
		got := gammaBits(k)
		want := bitsLen(k)*2 - 1
		if got != want {
			t.Fatalf("gammaBits(%d) = %d, want %d (bitsLen-derived)", k, got, want)
		}
	})
}
