package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// AdvState is the advantage state of a check.
type AdvState int

const (
	Neutral      AdvState = iota // neutral
	Advantage                    // advantage
	Disadvantage                 // disadvantage
)

// advLetter maps the leading letter of a check to its advantage state.
var advLetter = map[byte]AdvState{
	'r': Neutral,
	'a': Advantage,
	'd': Disadvantage,
}

// Letter returns the expression letter selecting a.
func (a AdvState) Letter() byte {
	switch a {
	case Advantage:
		return 'a'
	case Disadvantage:
		return 'd'
	default:
		return 'r'
	}
}

// Crit classifies the natural d20 result of a check.
type Crit int

const (
	Normal   Crit = iota // normal
	Critical             // critical
	Fail                 // fail
)

// CritScore is the critical classification of a check outcome. Score is only
// meaningful when Crit is Normal.
type CritScore struct {
	Crit  Crit
	Score Score
}

// String renders "Critical", "Fail", or the decimal score.
func (c CritScore) String() string {
	switch c.Crit {
	case Critical:
		return "Critical"
	case Fail:
		return "Fail"
	default:
		return strconv.Itoa(int(c.Score))
	}
}

// Check is a d20 roll with an advantage state and a sum of modifiers.
type Check struct {
	Adv      AdvState
	Modifier Damage
}

// ParseCheck parses a check such as "r", "a+5", "d+4+1d4" or "+3".
//
// The first character selects the advantage state: 'r' for neutral, 'a' for
// advantage and 'd' for disadvantage. A leading '+' or '-' implies neutral and
// belongs to the modifier. A '+' directly after the letter is skipped and the
// remainder is parsed as [Damage].
func ParseCheck(s string) (Check, error) {
	if s == "" {
		return Check{}, ErrEmpty
	}

	var (
		c Check
		i int
	)

	if adv, ok := advLetter[s[0]]; ok {
		c.Adv, i = adv, 1
	} else if s[0] != '+' && s[0] != '-' {
		return Check{}, ErrInvalidCheck.At(s)
	}

	if strings.HasPrefix(s[i:], "+") {
		i++
	}

	mod, err := ParseDamage(s[i:])
	if err != nil {
		return Check{}, err
	}

	c.Modifier = mod

	return c, nil
}

// String renders the check in expression syntax with an explicit letter.
func (c Check) String() string {
	mod := c.Modifier.String()
	if mod != "" && !strings.HasPrefix(mod, "-") {
		mod = "+" + mod
	}

	return string(c.Adv.Letter()) + mod
}

// Roll rolls the check with its own advantage state.
func (c Check) Roll(src Source) CheckOutcome {
	return c.RollWithAdvantage(src, c.Adv)
}

// RollWithAdvantage rolls the check with adv in place of its own state.
// Two d20 are always drawn before the modifiers are rolled.
func (c Check) RollWithAdvantage(src Source, adv AdvState) CheckOutcome {
	r1 := die(src, 20)
	r2 := die(src, 20)

	return NewCheckOutcome(adv, r1, r2, c.Modifier.Roll(src))
}

// CheckOutcome is the evaluated result of rolling a [Check].
type CheckOutcome struct {
	main      Score
	other     Score
	hasOther  bool
	modifiers DamageOutcome
}

// NewCheckOutcome resolves two raw d20 rolls under adv.
//
// With advantage the higher roll is kept, with disadvantage the lower; the
// unused roll is reported by [CheckOutcome.Other]. A neutral check keeps r1
// and discards r2.
func NewCheckOutcome(
	adv AdvState,
	r1, r2 Score,
	modifiers DamageOutcome,
) CheckOutcome {
	o := CheckOutcome{modifiers: modifiers}

	switch adv {
	case Advantage:
		o.main, o.other, o.hasOther = max(r1, r2), min(r1, r2), true
	case Disadvantage:
		o.main, o.other, o.hasOther = min(r1, r2), max(r1, r2), true
	default:
		o.main = r1
	}

	return o
}

// Kind implements [Outcome].
func (CheckOutcome) Kind() Kind { return KindCheck }

// Main returns the d20 roll that counts.
func (o CheckOutcome) Main() Score { return o.main }

// Other returns the discarded d20 roll under advantage or disadvantage.
func (o CheckOutcome) Other() (Score, bool) { return o.other, o.hasOther }

// Modifiers returns the rolled modifiers.
func (o CheckOutcome) Modifiers() DamageOutcome { return o.modifiers }

// Score returns the kept d20 roll plus the modifiers.
func (o CheckOutcome) Score() Score { return o.main + o.modifiers.Score() }

// CritScore classifies the kept d20 roll independently of the modifiers:
// 20 is Critical, 1 is Fail, anything else is Normal with the total score.
func (o CheckOutcome) CritScore() CritScore {
	switch o.main {
	case 1:
		return CritScore{Crit: Fail}
	case 20:
		return CritScore{Crit: Critical}
	default:
		return CritScore{Crit: Normal, Score: o.Score()}
	}
}

// String implements [Outcome]: "Critical", "Fail" or the decimal score.
func (o CheckOutcome) String() string { return o.CritScore().String() }

// Detail implements [Outcome], e.g. "(12/4)-[2+3]+3".
func (o CheckOutcome) Detail() string {
	var b strings.Builder

	b.WriteByte('(')
	b.WriteString(strconv.Itoa(int(o.main)))

	if o.hasOther {
		b.WriteByte('/')
		b.WriteString(strconv.Itoa(int(o.other)))
	}

	b.WriteByte(')')

	if mods := o.modifiers.Detail(); mods != "" {
		if !strings.HasPrefix(mods, "+") && !strings.HasPrefix(mods, "-") {
			b.WriteByte('+')
		}

		b.WriteString(mods)
	}

	return b.String()
}

// Format implements [fmt.Formatter]; see [Outcome].
func (o CheckOutcome) Format(f fmt.State, verb rune) { format(f, verb, o) }
