package dice

import (
	"fmt"
	"io"
	"strings"
)

// Kind discriminates the three kinds of roll expression.
type Kind int

const (
	KindCheck  Kind = iota // check
	KindDamage             // damage
	KindAttack             // attack
)

// Outcome is the evaluated result of any roll expression. It is implemented by
// [CheckOutcome], [DamageOutcome] and [AttackOutcome].
//
// String gives the terse summary and Detail the verbose breakdown that
// retains every die value. Outcomes also implement [fmt.Formatter]: the %v
// and %s verbs print String while %+v prints Detail.
type Outcome interface {
	Kind() Kind
	String() string
	Detail() string
}

func format(f fmt.State, verb rune, o Outcome) {
	switch {
	case verb == 'v' && f.Flag('+'):
		_, _ = io.WriteString(f, o.Detail())
	case verb == 'v', verb == 's':
		_, _ = io.WriteString(f, o.String())
	case verb == 'q':
		_, _ = fmt.Fprintf(f, "%q", o.String())
	default:
		_, _ = fmt.Fprintf(f, "%%!%c(%s)", verb, o.String())
	}
}

// Roll is any parsed roll expression: a [Check], a [Damage] or an [Attack].
// The zero value is the plain check "r".
type Roll struct {
	kind   Kind
	check  Check
	damage Damage
	attack Attack
}

// CheckRoll wraps c as a Roll.
func CheckRoll(c Check) Roll { return Roll{kind: KindCheck, check: c} }

// DamageRoll wraps d as a Roll.
func DamageRoll(d Damage) Roll { return Roll{kind: KindDamage, damage: d} }

// AttackRoll wraps a as a Roll.
func AttackRoll(a Attack) Roll { return Roll{kind: KindAttack, attack: a} }

// Parse parses any roll expression, deciding its kind from the text:
//
//   - the empty string is an error
//   - text containing '?' is an [Attack]
//   - text starting with 'r', 'a', 'd', '+' or '-' is a [Check]
//   - anything else is [Damage]
//
// Surrounding whitespace is ignored.
func Parse(s string) (Roll, error) {
	s = strings.TrimSpace(s)

	switch {
	case s == "":
		return Roll{}, ErrEmpty

	case strings.ContainsRune(s, '?'):
		a, err := ParseAttack(s)
		if err != nil {
			return Roll{}, err
		}

		return AttackRoll(a), nil

	case strings.IndexByte("rad+-", s[0]) >= 0:
		c, err := ParseCheck(s)
		if err != nil {
			return Roll{}, err
		}

		return CheckRoll(c), nil

	default:
		d, err := ParseDamage(s)
		if err != nil {
			return Roll{}, err
		}

		return DamageRoll(d), nil
	}
}

// MustParse is like [Parse] but panics if s cannot be parsed. It simplifies
// initialization of package-level expressions.
func MustParse(s string) Roll {
	r, err := Parse(s)
	if err != nil {
		panic(`dice: Parse(` + s + `): ` + err.Error())
	}

	return r
}

// Kind returns the kind of expression.
func (r Roll) Kind() Kind { return r.kind }

// Check returns the check expression if r is a check.
func (r Roll) Check() (Check, bool) { return r.check, r.kind == KindCheck }

// Damage returns the damage expression if r is a damage roll.
func (r Roll) Damage() (Damage, bool) { return r.damage, r.kind == KindDamage }

// Attack returns the attack expression if r is an attack.
func (r Roll) Attack() (Attack, bool) { return r.attack, r.kind == KindAttack }

// String renders the expression in canonical syntax.
func (r Roll) String() string {
	switch r.kind {
	case KindCheck:
		return r.check.String()
	case KindAttack:
		return r.attack.String()
	default:
		return r.damage.String()
	}
}

// Roll evaluates the expression and returns the matching [Outcome] variant.
func (r Roll) Roll(src Source) Outcome {
	switch r.kind {
	case KindCheck:
		return r.check.Roll(src)
	case KindAttack:
		return r.attack.Roll(src)
	default:
		return r.damage.Roll(src)
	}
}

// RollWithAdvantage is like [Roll.Roll] but overrides the advantage state of
// checks and attacks. Damage rolls ignore adv.
func (r Roll) RollWithAdvantage(src Source, adv AdvState) Outcome {
	switch r.kind {
	case KindCheck:
		return r.check.RollWithAdvantage(src, adv)
	case KindAttack:
		return r.attack.RollWithAdvantage(src, adv)
	default:
		return r.damage.Roll(src)
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (r Roll) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText implements [encoding.TextUnmarshaler] using [Parse].
func (r *Roll) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}

	*r = v

	return nil
}
