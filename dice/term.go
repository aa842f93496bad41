package dice

import (
	"regexp"
	"strconv"
	"strings"
)

// MaxCount is the largest number of dice a single group may roll.
const MaxCount = 1000

var (
	diceRE     = regexp.MustCompile(`^(-?)([0-9]+)d([0-9]+)$`)
	modifierRE = regexp.MustCompile(`^(-?)([0-9]+)$`)
)

// Term is a single parsed, unrolled component of an expression: either a
// group of [Dice] or a constant [Modifier].
type Term interface {
	// String renders the term in expression syntax, e.g. "2d8" or "-3".
	String() string

	roll(src Source) Part
}

// Part is a single evaluated component of an outcome: either the [Rolled]
// values of a dice group or a constant [Modifier].
type Part interface {
	// Score is the signed contribution of the part to a total.
	Score() Score
	// String renders the score in decimal.
	String() string
	// Detail renders the part for a verbose breakdown, e.g. "[2+6]" or "-1".
	Detail() string

	part()
}

// Dice is a request to roll Count dice with |Sides| faces each.
type Dice struct {
	Sides Sides
	Count uint
}

// String implements [Term].
func (d Dice) String() string {
	var b strings.Builder

	if d.Sides < 0 {
		b.WriteByte('-')
	}

	b.WriteString(strconv.FormatUint(uint64(d.Count), 10))
	b.WriteByte('d')
	b.WriteString(strconv.Itoa(d.Sides.Abs()))

	return b.String()
}

func (d Dice) roll(src Source) Part {
	values := make([]Score, d.Count)
	for i := range values {
		values[i] = die(src, d.Sides.Abs())
	}

	return Rolled{Sides: d.Sides, Values: values}
}

// Modifier is a flat constant. It is both a [Term] and a [Part]: rolling a
// constant yields the constant itself.
type Modifier Score

// String implements [Term] and [Part].
func (m Modifier) String() string { return strconv.Itoa(int(m)) }

// Score implements [Part].
func (m Modifier) Score() Score { return Score(m) }

// Detail implements [Part].
func (m Modifier) Detail() string { return m.String() }

func (m Modifier) roll(Source) Part { return m }

func (Modifier) part() {}

// Rolled holds one value per die rolled for a [Dice] term.
// Every value lies in [1, |Sides|].
type Rolled struct {
	Sides  Sides
	Values []Score
}

// Score implements [Part]. The sum of the values is negated when Sides is
// negative.
func (r Rolled) Score() Score {
	var sum Score
	for _, v := range r.Values {
		sum += v
	}

	if r.Sides < 0 {
		return -sum
	}

	return sum
}

// String implements [Part].
func (r Rolled) String() string { return strconv.Itoa(int(r.Score())) }

// Detail implements [Part], rendering each value inside one bracket pair.
func (r Rolled) Detail() string {
	values := make([]string, len(r.Values))
	for i, v := range r.Values {
		values[i] = strconv.Itoa(int(v))
	}

	var b strings.Builder

	if r.Sides < 0 {
		b.WriteByte('-')
	}

	b.WriteByte('[')
	b.WriteString(joinSum(values))
	b.WriteByte(']')

	return b.String()
}

func (Rolled) part() {}

// ParseTerm parses a single dice group ("2d8", "-1d4") or constant ("3", "-2").
func ParseTerm(s string) (Term, error) {
	if m := diceRE.FindStringSubmatch(s); m != nil {
		count, err := strconv.ParseUint(m[2], 10, 32)
		if err != nil {
			return nil, ErrOverflow.At(s).Wrap(err)
		}

		if count > MaxCount {
			return nil, ErrOverflow.At(s)
		}

		sides, err := strconv.ParseInt(m[3], 10, 32)
		if err != nil {
			return nil, ErrOverflow.At(s).Wrap(err)
		}

		if sides == 0 {
			return nil, ErrZeroSides.At(s)
		}

		if m[1] == "-" {
			sides = -sides
		}

		return Dice{Sides: Sides(sides), Count: uint(count)}, nil
	}

	if m := modifierRE.FindStringSubmatch(s); m != nil {
		value, err := strconv.ParseInt(m[2], 10, 32)
		if err != nil {
			return nil, ErrOverflow.At(s).Wrap(err)
		}

		if m[1] == "-" {
			value = -value
		}

		return Modifier(value), nil
	}

	return nil, ErrInvalidTerm.At(s)
}

// joinSum concatenates signed terms, inserting "+" before every term after
// the first unless it already begins with "-".
func joinSum(terms []string) string {
	var b strings.Builder

	for i, t := range terms {
		if i > 0 && !strings.HasPrefix(t, "-") {
			b.WriteByte('+')
		}

		b.WriteString(t)
	}

	return b.String()
}
