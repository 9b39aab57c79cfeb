package password

import (
	"math"
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stonepass/stonepass/stonerng"
)

// statSampleCount mirrors stonerng's helper of the same purpose: a fast
// default sample count for routine `go test` runs, with an opt-in
// override for the full rigor spec.md §8 asks for.
func statSampleCount(full int) int {
	if v := os.Getenv("STONEPASS_STAT_SAMPLES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return full / 50
}

// chiSquaredCritical999 is the same Wilson-Hilferty approximation used in
// stonerng's statistical test; duplicated here rather than exported
// across packages for a handful of lines of test-only math.
func chiSquaredCritical999(df float64) float64 {
	const z999 = 3.0902
	term := 1 - 2/(9*df) + z999*math.Sqrt(2/(9*df))
	return df * term * term * term
}

// TestStatFisherYatesUniformity implements spec.md §8 property #11:
// Fisher-Yates over L positions with an unbiased RNG must produce each of
// the L! permutations with equal probability. L is kept small (4) so the
// full permutation space (24 outcomes) is enumerable and a chi-squared
// goodness-of-fit test against a uniform distribution over permutations
// is tractable. Run with STONEPASS_STAT_SAMPLES set for the full rigor
// count; the default is reduced to keep routine `go test ./...` fast.
func TestStatFisherYatesUniformity(t *testing.T) {
	const l = 4
	samples := statSampleCount(1_000_000)

	permIndex := map[string]int{}
	next := 0
	counts := make([]int, 0, 24)

	r := stonerng.NewInsecureFromUint64(0xdeadbeef)
	for i := 0; i < samples; i++ {
		buf := []byte{0, 1, 2, 3}
		require.NoError(t, fisherYatesShuffle(buf, r))
		key := string(buf)
		idx, ok := permIndex[key]
		if !ok {
			idx = next
			permIndex[key] = idx
			counts = append(counts, 0)
			next++
		}
		counts[idx]++
	}

	require.LessOrEqualf(t, len(counts), 24, "observed more than %d! distinct permutations of %d elements", l, l)

	expected := float64(samples) / 24.0
	chiSq := 0.0
	for _, c := range counts {
		d := float64(c) - expected
		chiSq += d * d / expected
	}
	// Missing permutations (zero observations) contribute as much as any
	// other bucket would at distance `expected`; account for them so an
	// under-populated sample run is not silently under-penalized.
	for i := len(counts); i < 24; i++ {
		chiSq += expected
	}

	critical := chiSquaredCritical999(23)
	require.Lessf(t, chiSq, critical,
		"chi-squared statistic %.2f exceeds 99.9%% critical value %.2f for df=23 over %d samples",
		chiSq, critical, samples)
}
