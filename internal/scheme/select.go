package scheme

import (
	"slices"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/chai"
)

// Selection is the outcome of ranking a character's candidate schemes.
type Selection struct {
	Scheme Scheme
	Vector []int
	// Ties counts the other candidates whose vector equals the winner's.
	Ties int
}

// Select ranks candidates by the concatenated vectors of criteria, compared
// lexicographically, and returns the smallest. Among equal vectors the first
// candidate wins, or with strict the one with the smaller root-name
// sequence. No candidates is an exhausted error for char.
func Select(char string, candidates []Scheme, env *Environment, criteria []Criterion, strict bool) (Selection, error) {
	if len(candidates) == 0 {
		return Selection{}, chai.Exhausted(char)
	}

	best := -1
	var bestVec []int
	ties := 0
	for i, s := range candidates {
		v := Score(s, env, criteria)
		if best < 0 {
			best, bestVec = i, v
			continue
		}
		switch c := slices.Compare(v, bestVec); {
		case c < 0:
			best, bestVec, ties = i, v, 0
		case c == 0:
			ties++
			if strict && slices.Compare(s.Names(), candidates[best].Names()) < 0 {
				best = i
			}
		}
	}
	return Selection{Scheme: candidates[best], Vector: bestVec, Ties: ties}, nil
}

// Score concatenates the vectors of criteria for s.
func Score(s Scheme, env *Environment, criteria []Criterion) []int {
	var v []int
	for _, c := range criteria {
		v = append(v, c.Evaluate(s, env)...)
	}
	return v
}
