package repl

import (
	"strings"

	"github.com/ardnew/critfail/dice"
)

// preview describes what input would roll: its kind and canonical form, or
// the parse error. ok is false when input does not parse.
func preview(input string, adv dice.AdvState) (hint string, ok bool) {
	r, err := dice.Parse(input)
	if err != nil {
		return err.Error(), false
	}

	var b strings.Builder

	b.WriteString(r.Kind().String())
	b.WriteByte(' ')
	b.WriteString(r.String())

	if adv != dice.Neutral && r.Kind() != dice.KindDamage {
		b.WriteString(" with ")
		b.WriteString(adv.String())
	}

	return b.String(), true
}

// renderPreview styles the preview of input for the hint line.
func renderPreview(input string, adv dice.AdvState) string {
	hint, ok := preview(input, adv)
	if !ok {
		return errorStyle.Faint(true).Render(hint)
	}

	return hintStyle.Render(hint)
}
