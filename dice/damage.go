package dice

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Damage is an ordered sum of dice groups and constant modifiers, usually
// rolled for damage. Term order is preserved from the parsed text and only
// matters for display.
type Damage []Term

// ParseDamage parses a sum of terms such as "2d6+3" or "3d12-1d4+2".
//
// The text is split before every "+" or "-" that follows the first character
// of a term. A "+" separator is discarded while a "-" stays with the term it
// negates. The empty string is a valid, empty Damage.
func ParseDamage(s string) (Damage, error) {
	var d Damage

	for i := 0; i < len(s); {
		end := len(s)
		if n := strings.IndexAny(s[i+1:], "+-"); n >= 0 {
			end = i + 1 + n
		}

		term, err := ParseTerm(s[i:end])
		if err != nil {
			return nil, err
		}

		d = append(d, term)

		i = end
		if i < len(s) && s[i] == '+' {
			i++
		}
	}

	return d, nil
}

// String renders the damage in expression syntax.
func (d Damage) String() string {
	terms := make([]string, len(d))
	for i, t := range d {
		terms[i] = t.String()
	}

	return joinSum(terms)
}

// Roll evaluates every term once, in order.
func (d Damage) Roll(src Source) DamageOutcome {
	parts := make([]Part, 0, len(d))
	for _, t := range d {
		parts = append(parts, t.roll(src))
	}

	return DamageOutcome{parts: parts}
}

// CritRoll evaluates the damage as a critical hit.
//
// Every dice group with positive sides is rolled twice, producing two adjacent
// outcome parts. Negative dice and constant modifiers are rolled once.
func (d Damage) CritRoll(src Source) DamageOutcome {
	parts := make([]Part, 0, 2*len(d))

	for _, t := range d {
		if dc, ok := t.(Dice); ok && dc.Sides > 0 {
			parts = append(parts, dc.roll(src), dc.roll(src))

			continue
		}

		parts = append(parts, t.roll(src))
	}

	return DamageOutcome{parts: parts}
}

// RollWithScore rolls the damage, doubling the dice when score is Critical.
func (d Damage) RollWithScore(src Source, score CritScore) DamageOutcome {
	if score.Crit == Critical {
		return d.CritRoll(src)
	}

	return d.Roll(src)
}

// RollWithCheck rolls the damage, doubling the dice when check was a
// critical success.
func (d Damage) RollWithCheck(src Source, check CheckOutcome) DamageOutcome {
	return d.RollWithScore(src, check.CritScore())
}

// DamageOutcome is the evaluated result of rolling a [Damage].
type DamageOutcome struct {
	parts []Part
}

// NewDamageOutcome constructs an outcome from explicit parts, for example to
// reproduce a known result without rolling.
//
//	NewDamageOutcome(Rolled{Sides: 8, Values: []Score{2, 6}}, Modifier(4))
func NewDamageOutcome(parts ...Part) DamageOutcome {
	return DamageOutcome{parts: slices.Clone(parts)}
}

// Parts returns a copy of the outcome parts in roll order.
func (o DamageOutcome) Parts() []Part { return slices.Clone(o.parts) }

// Kind implements [Outcome].
func (DamageOutcome) Kind() Kind { return KindDamage }

// Score returns the sum of the part scores.
func (o DamageOutcome) Score() Score {
	var sum Score
	for _, p := range o.parts {
		sum += p.Score()
	}

	return sum
}

// String implements [Outcome] with the decimal score.
func (o DamageOutcome) String() string { return strconv.Itoa(int(o.Score())) }

// Detail implements [Outcome], e.g. "[4+1+6]+4-[3+1]".
func (o DamageOutcome) Detail() string {
	details := make([]string, len(o.parts))
	for i, p := range o.parts {
		details[i] = p.Detail()
	}

	return joinSum(details)
}

// Format implements [fmt.Formatter]; see [Outcome].
func (o DamageOutcome) Format(f fmt.State, verb rune) { format(f, verb, o) }
