package unshred

import (
	"math"

	"github.com/anthonynsimon/bild/parallel"
)

// Sequencer greedily orders strips by edge similarity.
//
// The order starts with strip 0 alone. Each Step looks at the current
// leftmost strip L and rightmost strip R and, over every unused strip T,
// finds the best prepend candidate (lowest distance from L's left edge to T's
// right edge) and the best append candidate (lowest distance from R's right
// edge to T's left edge). The append wins only when its score is strictly
// lower; ties prepend. Nothing is ever revisited.
//
// Used/unused state lives in the Sequencer, not on the strips.
type Sequencer struct {
	strips   []Strip
	used     []bool
	order    []int
	parallel bool

	// scratch for per-candidate scores, indexed like strips
	leftScores  []float64
	rightScores []float64
}

// NewSequencer prepares a sequence anchored on strips[0]. strips must not be
// empty, and strips[i].Index is expected to equal i.
func NewSequencer(strips []Strip, par bool) *Sequencer {
	s := &Sequencer{
		strips:      strips,
		used:        make([]bool, len(strips)),
		order:       make([]int, 0, len(strips)),
		parallel:    par,
		leftScores:  make([]float64, len(strips)),
		rightScores: make([]float64, len(strips)),
	}
	if len(strips) > 0 {
		s.order = append(s.order, 0)
		s.used[0] = true
	}
	return s
}

// Len returns the number of strips placed so far.
func (s *Sequencer) Len() int { return len(s.order) }

// UsedCount returns how many strips are marked used.
func (s *Sequencer) UsedCount() int {
	n := 0
	for _, u := range s.used {
		if u {
			n++
		}
	}
	return n
}

// Done reports whether every strip has been placed.
func (s *Sequencer) Done() bool { return len(s.order) == len(s.strips) }

// Order returns a copy of the current left-to-right strip indices.
func (s *Sequencer) Order() []int {
	out := make([]int, len(s.order))
	copy(out, s.order)
	return out
}

// Step places one more strip. It returns false once the sequence is complete.
func (s *Sequencer) Step() bool {
	if s.Done() {
		return false
	}

	leftmost := s.strips[s.order[0]]
	rightmost := s.strips[s.order[len(s.order)-1]]

	score := func(start, end int) {
		for i := start; i < end; i++ {
			if s.used[i] {
				continue
			}
			t := s.strips[i]
			s.leftScores[i] = leftmost.Left.AverageDistance(t.Right)
			s.rightScores[i] = rightmost.Right.AverageDistance(t.Left)
		}
	}
	if s.parallel {
		parallel.Line(len(s.strips), score)
	} else {
		score(0, len(s.strips))
	}

	// Reduce in index order so the first minimum wins regardless of how the
	// scoring was split.
	leftIndex, rightIndex := -1, -1
	minLeft, minRight := math.MaxFloat64, math.MaxFloat64
	for i := range s.strips {
		if s.used[i] {
			continue
		}
		if s.leftScores[i] < minLeft || leftIndex < 0 {
			minLeft = s.leftScores[i]
			leftIndex = i
		}
		if s.rightScores[i] < minRight || rightIndex < 0 {
			minRight = s.rightScores[i]
			rightIndex = i
		}
	}

	if minRight < minLeft {
		s.order = append(s.order, rightIndex)
		s.used[rightIndex] = true
	} else {
		s.order = append(s.order, 0)
		copy(s.order[1:], s.order[:len(s.order)-1])
		s.order[0] = leftIndex
		s.used[leftIndex] = true
	}
	return true
}

// Sequence runs a Sequencer to completion and returns the strip order.
func Sequence(strips []Strip, par bool) []int {
	s := NewSequencer(strips, par)
	for s.Step() {
	}
	return s.Order()
}
