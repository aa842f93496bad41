package dice

//go:generate go tool stringer --linecomment --type AdvState,Crit,Kind --output dice_string.go

import (
	"math/rand/v2"
)

// Score is the signed result of evaluating a term or a sum of terms.
type Score int

// Sides is the number of faces on a die. The sign records whether the dice
// group is added to (positive) or subtracted from (negative) the total.
// A parsed Sides is never zero.
type Sides int

// Abs returns the number of faces on the die.
func (s Sides) Abs() int {
	if s < 0 {
		return int(-s)
	}

	return int(s)
}

// Source is the randomness consumed by rolling.
//
// IntN returns a uniform integer in [0, n). It is only ever called with n > 0.
// [*rand.Rand] from math/rand/v2 satisfies Source.
type Source interface {
	IntN(n int) int
}

// NewSource returns a deterministic Source seeded with seed.
// Two sources created with the same seed produce the same rolls.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Global returns a Source backed by the runtime-seeded top-level generator of
// math/rand/v2. It is safe for concurrent use.
func Global() Source { return global{} }

type global struct{}

func (global) IntN(n int) int { return rand.IntN(n) }

// die draws one value in [1, sides] from src.
func die(src Source, sides int) Score {
	return Score(src.IntN(sides) + 1)
}
