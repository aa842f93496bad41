package cmd

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/critfail/dice"
	"github.com/ardnew/critfail/log"
	"github.com/ardnew/critfail/pkg"
)

// Roll parses and rolls dice expressions.
type Roll struct {
	Seed   *uint64  `help:"Seed the dice for reproducible rolls." placeholder:"N"`
	Target string   `help:"Predicate over each outcome, e.g. 'score >= 15'." short:"t"`
	Format string   `default:"text" enum:"text,json,yaml" help:"Output format (${enum})." short:"o"`
	Expr   []string `arg:"" help:"Roll expression(s)." name:"expr" optional:""`
	Repeat int      `default:"1" help:"Roll each expression N times." placeholder:"N" short:"n"`
	Adv    bool     `help:"Roll checks and attacks with advantage." short:"a" xor:"adv"`
	Dis    bool     `help:"Roll checks and attacks with disadvantage." short:"d" xor:"adv"`
}

// Help implements [kong.HelpProvider].
func (*Roll) Help() string { return grammarHelp }

const grammarHelp = `There are three kinds of roll expressions: checks, damage and attacks.

  r+6          A check. Roll a d20 and add 6.
  2d8+4        Damage. Roll 2d8 and add 4.
  r+3?1d12+3   An attack. Roll to hit and for damage. Damage dice are
               rolled twice on a critical hit.

Checks roll a d20 with a modifier. The first letter selects the advantage
state: r (normal), a (advantage) or d (disadvantage). Any number of constant
or dice modifiers can follow, e.g. r, r+5, a+5, d+4+1d4. A check starting
with + or - is normal.

Damage sums dice and constants, e.g. 2d8+5 or 2d8-1d4+7-2.

An attack is a check and a damage roll separated by ?, e.g. r+4?1d8 or
a+5?1d4+4+5d6. If the check rolls a natural 20, every positive dice group of
the damage is rolled twice. Constants are counted once.

An expression that starts with - must follow -- so it is not read as a flag.`

// Run executes the roll command.
func (r *Roll) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	target, err := compileTarget(r.Target)
	if err != nil {
		return err
	}

	roller := r.roller()
	rep := newReport(stdout(ctx), r.Format)

	var (
		errs  pkg.Error
		count int
	)

	for input, err := range r.inputs(ctx) {
		count++

		if err != nil {
			errs = errs.Wrap(err)

			continue
		}

		roll, err := roller.Parse(ctx, input)
		if err != nil {
			errs = errs.Wrap(err)

			continue
		}

		for range max(r.Repeat, 1) {
			o := r.roll(ctx, roller, roll)

			hit, err := target.eval(o)
			if err != nil {
				return err
			}

			if err := rep.add(roll, o, hit); err != nil {
				return err
			}
		}
	}

	if count == 0 {
		return ErrNoExpression
	}

	log.DebugContext(ctx, "rolled expressions",
		slog.Int("count", count),
		slog.Int("failed", len(errs)),
		logFormat(r.Format),
	)

	if err := rep.flush(ctx); err != nil {
		return err
	}

	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return ErrRoll.Wrap(errs).With(slog.Int("failed", len(errs)))
	}
}

func (r *Roll) roller() dice.Roller { return newRoller(r.Seed) }

// newRoller returns a roller logging through the default logger, seeded with
// seed if it is non-nil.
func newRoller(seed *uint64) dice.Roller {
	opts := []dice.RollerOption{
		dice.WithLogger(log.With(slog.String("component", "roller"))),
	}

	if seed != nil {
		opts = append(opts, dice.WithSeed(*seed))
	}

	return dice.NewRoller(opts...)
}

func (r *Roll) roll(ctx context.Context, roller dice.Roller, roll dice.Roll) dice.Outcome {
	switch {
	case r.Adv:
		return roller.RollWithAdvantage(ctx, roll, dice.Advantage)
	case r.Dis:
		return roller.RollWithAdvantage(ctx, roll, dice.Disadvantage)
	default:
		return roller.Roll(ctx, roll)
	}
}

// inputs yields the expressions given as arguments followed by those read
// from the --source files.
func (r *Roll) inputs(ctx context.Context) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, s := range r.Expr {
			if !yield(s, nil) {
				return
			}
		}

		src := sourceFilesFrom(ctx)
		if src == nil {
			return
		}

		defer func() {
			if err := src.Close(); err != nil {
				log.WarnContext(ctx, "closing source files", slog.Any("error", err))
			}
		}()

		for s, err := range expressions(src) {
			if !yield(s, err) {
				return
			}
		}
	}
}

// target is a compiled --target predicate. A nil target matches nothing and
// reports no verdict.
type target struct {
	src     string
	program *vm.Program
}

func compileTarget(src string) (*target, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, nil //nolint:nilnil
	}

	program, err := expr.Compile(src, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, ErrTarget.Wrap(err).With(slog.String("target", src))
	}

	return &target{src: src, program: program}, nil
}

// eval runs the predicate over the fields of o (see [dice.Fields]).
func (t *target) eval(o dice.Outcome) (*bool, error) {
	if t == nil {
		return nil, nil //nolint:nilnil
	}

	v, err := vm.Run(t.program, dice.Fields(o))
	if err != nil {
		return nil, ErrTarget.Wrap(err).With(slog.String("target", t.src))
	}

	hit, ok := v.(bool)
	if !ok {
		return nil, ErrTarget.
			Wrap(fmt.Errorf("result %v is %T, not bool", v, v)).
			With(slog.String("target", t.src))
	}

	return &hit, nil
}

// report writes roll outcomes. Text is written as each roll is added; JSON and
// YAML are collected and written as one document by flush.
type report struct {
	w       io.Writer
	format  string
	records []map[string]any
}

func newReport(w io.Writer, format string) *report {
	return &report{w: w, format: format, records: []map[string]any{}}
}

func (p *report) add(roll dice.Roll, o dice.Outcome, hit *bool) error {
	if p.format == formatText || p.format == "" {
		_, err := fmt.Fprintf(p.w, "%+v\n%v\n", o, o)
		if err == nil && hit != nil {
			_, err = fmt.Fprintln(p.w, verdict(*hit))
		}

		return err
	}

	rec := dice.Fields(o)
	rec["expr"] = roll.String()

	if hit != nil {
		rec["hit"] = *hit
	}

	p.records = append(p.records, rec)

	return nil
}

func (p *report) flush(ctx context.Context) error {
	if p.format == formatText || p.format == "" {
		return nil
	}

	return encode(ctx, p.w, p.format, p.records)
}

func verdict(hit bool) string {
	if hit {
		return "hit"
	}

	return "miss"
}
