package fingerprint

import (
	"errors"
	"fmt"
	"math"
)

// MaxEvaluations bounds the number of candidate assignments Match will try.
const MaxEvaluations = 1 << 24

var (
	// ErrEmptyInput is returned when either layout is empty.
	ErrEmptyInput = errors.New("fingerprint: empty input")
	// ErrTooManyPeaks is returned when the exhaustive search would exceed
	// MaxEvaluations candidates.
	ErrTooManyPeaks = errors.New("fingerprint: too many peaks")
)

// Assignment pairs observed peaks with ideal positions. Observed[i] is
// assigned to Ideal[i].
type Assignment struct {
	Observed []int
	Ideal    []int
	// Loss is the Frobenius distance between the two fingerprints.
	Loss float64
	// Sign is -1 when the observed peaks match the mirrored layout, as for
	// a molecule read in the opposite direction.
	Sign int
}

// Labels returns, for each of n observed peaks, the ideal index it was
// assigned to or -1.
func (a Assignment) Labels(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = -1
	}
	for i, obs := range a.Observed {
		if obs >= 0 && obs < n {
			out[obs] = a.Ideal[i]
		}
	}
	return out
}

// Fingerprint returns the pairwise differences fp[n][i] = locs[n] - locs[i].
func Fingerprint(locs []float64) [][]float64 {
	fp := make([][]float64, len(locs))
	for n := range locs {
		fp[n] = make([]float64, len(locs))
		for i := range locs {
			fp[n][i] = locs[n] - locs[i]
		}
	}
	return fp
}

// Match finds the assignment of observed peaks to ideal positions with the
// smallest fingerprint loss. It tries every subset of min(len(ideal),
// len(observed)) observed peaks in every order against every subset of the
// ideal positions, in both orientations. The first of equally good
// assignments is returned.
func Match(ideal, observed []float64) (Assignment, error) {
	if len(ideal) == 0 || len(observed) == 0 {
		return Assignment{}, ErrEmptyInput
	}

	k := min(len(ideal), len(observed))
	if size := searchSize(len(ideal), len(observed), k); size > MaxEvaluations {
		return Assignment{}, fmt.Errorf("%w: %g candidates for %d ideal and %d observed", ErrTooManyPeaks, size, len(ideal), len(observed))
	}

	idealSubsets := combinations(len(ideal), k)

	best := Assignment{Loss: math.Inf(1)}
	obsLocs := make([]float64, k)
	idealLocs := make([]float64, k)

	for _, obsSubset := range combinations(len(observed), k) {
		permute(obsSubset, func(perm []int) {
			for i, p := range perm {
				obsLocs[i] = observed[p]
			}
			for _, idealSubset := range idealSubsets {
				for i, p := range idealSubset {
					idealLocs[i] = ideal[p]
				}
				for _, sign := range []int{1, -1} {
					loss := distance(idealLocs, obsLocs, float64(sign))
					if loss < best.Loss {
						best = Assignment{
							Observed: append([]int(nil), perm...),
							Ideal:    append([]int(nil), idealSubset...),
							Loss:     loss,
							Sign:     sign,
						}
					}
				}
			}
		})
	}

	return best, nil
}

// distance is the Frobenius norm of Fingerprint(a) - sign*Fingerprint(b),
// computed without building the matrices.
func distance(a, b []float64, sign float64) float64 {
	var sum float64
	for n := range a {
		for i := range a {
			d := (a[n] - a[i]) - sign*(b[n]-b[i])
			sum += d * d
		}
	}
	return math.Sqrt(sum)
}

// searchSize counts the candidates Match evaluates.
func searchSize(nIdeal, nObserved, k int) float64 {
	size := 2 * binomial(nIdeal, k) * binomial(nObserved, k)
	for i := 2; i <= k; i++ {
		size *= float64(i)
	}
	return size
}

func binomial(n, k int) float64 {
	out := 1.0
	for i := 1; i <= k; i++ {
		out = out * float64(n-k+i) / float64(i)
	}
	return out
}

// combinations returns the k-subsets of 0..n-1 in lexicographic order.
func combinations(n, k int) [][]int {
	var out [][]int
	cur := make([]int, 0, k)

	var rec func(start int)
	rec = func(start int) {
		if len(cur) == k {
			out = append(out, append([]int(nil), cur...))
			return
		}
		for i := start; i <= n-(k-len(cur)); i++ {
			cur = append(cur, i)
			rec(i + 1)
			cur = cur[:len(cur)-1]
		}
	}
	rec(0)

	return out
}

// permute calls fn with every ordering of items in lexicographic order of
// positions. fn must not retain its argument.
func permute(items []int, fn func([]int)) {
	perm := make([]int, 0, len(items))
	used := make([]bool, len(items))

	var rec func()
	rec = func() {
		if len(perm) == len(items) {
			fn(perm)
			return
		}
		for i, v := range items {
			if used[i] {
				continue
			}
			used[i] = true
			perm = append(perm, v)
			rec()
			perm = perm[:len(perm)-1]
			used[i] = false
		}
	}
	rec()
}
