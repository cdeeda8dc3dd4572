package enhance

import (
	"github.com/iwvelando/enhance-forecast/pkg/constants"
)

// fibQuantity returns the n-th term of the mirror consumption sequence:
// fib(0) = fib(1) = 1, fib(k) = fib(k-1) + fib(k-2). Each merge consumes the
// outputs of two prior merges, so per-tier quantities grow this way.
func fibQuantity(n int) int64 {
	if n < 0 {
		return 0
	}
	prev, cur := int64(1), int64(1)
	for i := 2; i <= n; i++ {
		prev, cur = cur, prev+cur
	}
	return cur
}

// mirrorFibQuantity returns the n-th term of the catalyst count sequence:
// mirrorFib(0) = 1, mirrorFib(1) = 2, mirrorFib(k) = mirrorFib(k-1) +
// mirrorFib(k-2) + 1. The +1 is the catalyst consumed by the merge itself.
func mirrorFibQuantity(n int) int64 {
	if n < 0 {
		return 0
	}
	if n == 0 {
		return 1
	}
	prev, cur := int64(1), int64(2)
	for i := 2; i <= n; i++ {
		prev, cur = cur, prev+cur+1
	}
	return cur
}

// relaxMirror applies the mirror-merge relaxation to a per-level minimum cost
// array: at each level L >= 3, merging a copy two tiers below with a copy one
// tier below plus one catalyst replaces the traditional cost when strictly
// cheaper. The pass runs in increasing level order so later levels see
// earlier relaxations. Only this one substitution is considered; it matches
// the single merge mechanic the game actually has.
//
// The input slice is not modified. The returned start level is the first
// improved level, or 0 when nothing improved.
func relaxMirror(targetCosts []float64, catalystPrice float64) ([]float64, int) {
	relaxed := make([]float64, len(targetCosts))
	copy(relaxed, targetCosts)

	startLevel := 0
	for level := constants.MirrorMinLevel; level < len(relaxed); level++ {
		mirrorCost := relaxed[level-2] + relaxed[level-1] + catalystPrice
		if mirrorCost < relaxed[level] {
			relaxed[level] = mirrorCost
			if startLevel == 0 {
				startLevel = level
			}
		}
	}

	return relaxed, startLevel
}
