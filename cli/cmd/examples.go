package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/critfail/dice"
	"github.com/ardnew/critfail/log"
)

// Examples lists sample roll expressions.
type Examples struct {
	Filter []string `arg:"" help:"Fuzzy filter over expressions and descriptions." name:"filter" optional:""`
}

// Run executes the examples command.
func (e *Examples) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	pattern := strings.Join(e.Filter, " ")
	found := FindExamples(pattern)

	log.DebugContext(ctx, "examples",
		slog.String("filter", pattern),
		slog.Int("count", len(found)),
	)

	return writeExamples(stdout(ctx), found)
}

// exampleSource adapts a slice of examples to [fuzzy.Source].
type exampleSource []dice.Example

func (s exampleSource) String(i int) string { return s[i].String() }

func (s exampleSource) Len() int { return len(s) }

// FindExamples returns the examples matching pattern, best match first. An
// empty pattern returns every example in display order.
func FindExamples(pattern string) []dice.Example {
	all := dice.Examples()

	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return all
	}

	matches := fuzzy.FindFrom(pattern, exampleSource(all))
	found := make([]dice.Example, len(matches))

	for i, m := range matches {
		found[i] = all[m.Index]
	}

	return found
}

// writeExamples writes examples grouped by kind under a heading per kind.
// Styling is only applied when w is a terminal.
func writeExamples(w io.Writer, examples []dice.Example) error {
	r := lipgloss.NewRenderer(w)
	heading := r.NewStyle().Bold(true).Underline(true)
	exprStyle := r.NewStyle().Foreground(lipgloss.Color("6"))
	descStyle := r.NewStyle().Faint(true)

	width := 0
	for _, ex := range examples {
		width = max(width, len(ex.Expr))
	}

	first := true

	for _, kind := range []dice.Kind{dice.KindCheck, dice.KindDamage, dice.KindAttack} {
		group := slices.DeleteFunc(slices.Clone(examples), func(ex dice.Example) bool {
			return ex.Roll().Kind() != kind
		})
		if len(group) == 0 {
			continue
		}

		if !first {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		first = false

		title := strings.ToUpper(kind.String()[:1]) + kind.String()[1:]
		if _, err := fmt.Fprintln(w, heading.Render(title)); err != nil {
			return err
		}

		for _, ex := range group {
			pad := strings.Repeat(" ", width-len(ex.Expr))

			_, err := fmt.Fprintf(w, "  %s%s  %s\n",
				exprStyle.Render(ex.Expr), pad, descStyle.Render(ex.Description))
			if err != nil {
				return err
			}
		}
	}

	return nil
}
