package dice

import (
	"fmt"
	"regexp"
	"strings"
)

// attackRE matches exactly one '?' separating two non-empty sides. A second
// '?' anywhere prevents a match, so ambiguous input is rejected.
var attackRE = regexp.MustCompile(`^([^?]+)\?([^?]+)$`)

// Attack is a [Check] to hit paired with the [Damage] it deals. A critical
// check doubles the damage dice.
type Attack struct {
	Check  Check
	Damage Damage
}

// ParseAttack parses an attack such as "r+3?1d8" or "a+5 ? 1d4+4+5d6".
// Whitespace around the '?' separator is ignored, but neither side may be
// blank.
func ParseAttack(s string) (Attack, error) {
	m := attackRE.FindStringSubmatch(s)
	if m == nil {
		if s == "" {
			return Attack{}, ErrEmpty
		}

		return Attack{}, ErrInvalidAttack.At(s)
	}

	lhs, rhs := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	if lhs == "" || rhs == "" {
		return Attack{}, ErrInvalidAttack.At(s)
	}

	check, err := ParseCheck(lhs)
	if err != nil {
		return Attack{}, err
	}

	damage, err := ParseDamage(rhs)
	if err != nil {
		return Attack{}, err
	}

	return Attack{Check: check, Damage: damage}, nil
}

// String renders the attack in expression syntax.
func (a Attack) String() string {
	return a.Check.String() + "?" + a.Damage.String()
}

// Roll rolls the attack with the check's own advantage state.
func (a Attack) Roll(src Source) AttackOutcome {
	return a.RollWithAdvantage(src, a.Check.Adv)
}

// RollWithAdvantage rolls the check with adv, then rolls the damage. The
// check is resolved first because a critical check doubles the damage dice.
func (a Attack) RollWithAdvantage(src Source, adv AdvState) AttackOutcome {
	check := a.Check.RollWithAdvantage(src, adv)
	damage := a.Damage.RollWithCheck(src, check)

	return AttackOutcome{check: check, damage: damage}
}

// AttackOutcome is the evaluated result of rolling an [Attack].
type AttackOutcome struct {
	check  CheckOutcome
	damage DamageOutcome
}

// NewAttackOutcome constructs an outcome from explicit check and damage
// outcomes.
func NewAttackOutcome(check CheckOutcome, damage DamageOutcome) AttackOutcome {
	return AttackOutcome{check: check, damage: damage}
}

// Kind implements [Outcome].
func (AttackOutcome) Kind() Kind { return KindAttack }

// Check returns the outcome of the roll to hit.
func (o AttackOutcome) Check() CheckOutcome { return o.check }

// Damage returns the outcome of the damage roll.
func (o AttackOutcome) Damage() DamageOutcome { return o.damage }

// String implements [Outcome], e.g. "Critical ? 22".
func (o AttackOutcome) String() string {
	return o.check.String() + " ? " + o.damage.String()
}

// Detail implements [Outcome], e.g. "(20/4)+3 ? [2+6+8]+[1+5+2]-2".
func (o AttackOutcome) Detail() string {
	return o.check.Detail() + " ? " + o.damage.Detail()
}

// Format implements [fmt.Formatter]; see [Outcome].
func (o AttackOutcome) Format(f fmt.State, verb rune) { format(f, verb, o) }
