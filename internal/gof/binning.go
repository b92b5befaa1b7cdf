package gof

import (
	"fmt"
	"math"
	"sort"
)

// Histogram is an ordered set of bin edges with the observed count in each
// bin. Bin i covers [Edges[i], Edges[i+1]); the last bin also includes its
// right edge.
type Histogram struct {
	Edges  []float64 `yaml:"edges" json:"edges"`
	Counts []int     `yaml:"counts" json:"counts"`
}

// Bins returns the number of bins
func (h Histogram) Bins() int {
	return len(h.Counts)
}

// Total returns the sum of all counts
func (h Histogram) Total() int {
	n := 0
	for _, c := range h.Counts {
		n += c
	}
	return n
}

// Midpoints returns the centre of every bin
func (h Histogram) Midpoints() []float64 {
	mid := make([]float64, h.Bins())
	for i := range mid {
		mid[i] = (h.Edges[i] + h.Edges[i+1]) / 2
	}
	return mid
}

// Gaps returns the differences between adjacent arrivals.
func Gaps(arrivals []float64) ([]float64, error) {
	if len(arrivals) < 2 {
		return nil, fmt.Errorf("need at least 2 arrivals for gaps, got %d: %w", len(arrivals), ErrInsufficientData)
	}
	gaps := make([]float64, len(arrivals)-1)
	for i := range gaps {
		gaps[i] = arrivals[i+1] - arrivals[i]
	}
	return gaps, nil
}

// EdgeCount is the number of bin edges used for n gaps: int(1 + log2(n)).
func EdgeCount(n int) int {
	if n < 1 {
		return 0
	}
	return int(1 + math.Log2(float64(n)))
}

// Edges returns EdgeCount(len(gaps)) equally spaced edges spanning
// [floor(min), ceil(max)]. When every gap rounds to the same integer the
// span is widened to one unit so the edges stay strictly increasing.
func Edges(gaps []float64) ([]float64, error) {
	k := EdgeCount(len(gaps))
	if k < 2 {
		return nil, fmt.Errorf("%d gaps give %d edges: %w", len(gaps), k, ErrInsufficientData)
	}

	lo, hi := gaps[0], gaps[0]
	for _, g := range gaps[1:] {
		lo = math.Min(lo, g)
		hi = math.Max(hi, g)
	}
	lo, hi = math.Floor(lo), math.Ceil(hi)
	if hi <= lo {
		hi = lo + 1
	}

	edges := make([]float64, k)
	step := (hi - lo) / float64(k-1)
	for i := range edges {
		edges[i] = lo + float64(i)*step
	}
	edges[k-1] = hi
	return edges, nil
}

// Bin counts gaps into the bins defined by edges. Values outside
// [edges[0], edges[len-1]] are not counted.
func Bin(gaps, edges []float64) (Histogram, error) {
	if len(edges) < 2 {
		return Histogram{}, fmt.Errorf("need at least 2 edges, got %d: %w", len(edges), ErrInsufficientData)
	}
	for i := 1; i < len(edges); i++ {
		if !(edges[i] > edges[i-1]) {
			return Histogram{}, fmt.Errorf("edges must be strictly increasing at index %d: %w", i, ErrInvalidParameter)
		}
	}

	h := Histogram{
		Edges:  append([]float64(nil), edges...),
		Counts: make([]int, len(edges)-1),
	}
	last := len(edges) - 1
	for _, g := range gaps {
		if g < edges[0] || g > edges[last] {
			continue
		}
		i := sort.SearchFloat64s(edges, g)
		switch {
		case i == last:
			h.Counts[last-1]++
		case edges[i] == g:
			h.Counts[i]++
		default:
			h.Counts[i-1]++
		}
	}
	return h, nil
}
