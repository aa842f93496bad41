// Package dice parses and evaluates tabletop dice-roll expressions.
//
// # Grammar
//
// An expression is one of three kinds:
//
//	damage  2d8+4, 3d12-1d4+6-2    a sum of dice groups and constants
//	check   r+3, a+5, d+4+1d4, +3   a d20 with an advantage letter and modifiers
//	attack  r+3?1d8, a+5?1d4+4      a check to hit and the damage it deals
//
// A dice group NdS rolls N dice with S faces; a leading '-' subtracts it.
// N is at most [MaxCount].
// The check letter is 'r' (neutral), 'a' (advantage) or 'd' (disadvantage);
// a check that starts with '+' or '-' is neutral. [Parse] picks the kind from
// the text: anything containing '?' is an attack, anything starting with one
// of "rad+-" is a check, and everything else is damage.
//
// # Rolling
//
// Every roll draws from an explicit [Source]. [NewSource] gives a seeded,
// reproducible source and [Global] the runtime-seeded generator of
// math/rand/v2. A check always draws two d20, then its modifiers, in order.
// An attack rolls its check first: a natural 20 doubles every positive dice
// group of the damage, never the constants or subtracted dice.
//
// # Outcomes
//
// Rolling yields an [Outcome] that keeps every die value. String gives the
// terse result ("Critical ? 22") and Detail the breakdown
// ("(20/4)+3 ? [2+6+8]+[1+5+2]-2"); with fmt, %v prints the former and %+v
// the latter.
//
// Parse failures are always a [*ParseError], classified by the sentinel
// errors of this package. Rolling never fails.
package dice
