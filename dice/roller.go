package dice

import (
	"context"
	"log/slog"

	"github.com/ardnew/critfail/log"
)

// Roller parses and rolls expressions against a single [Source], logging each
// step at trace level.
//
// A Roller is safe for concurrent use only if its Source is.
type Roller struct {
	src    Source
	logger log.Logger
}

// RollerOption configures a [Roller].
type RollerOption func(Roller) Roller

// WithSource returns an option that sets the randomness consumed by rolls.
// A nil src selects [Global].
func WithSource(src Source) RollerOption {
	return func(r Roller) Roller {
		if src == nil {
			src = Global()
		}

		r.src = src

		return r
	}
}

// WithSeed returns an option that rolls with a deterministic source created by
// [NewSource].
func WithSeed(seed uint64) RollerOption {
	return WithSource(NewSource(seed))
}

// WithLogger returns an option that sets the logger receiving trace output.
func WithLogger(l log.Logger) RollerOption {
	return func(r Roller) Roller {
		r.logger = l

		return r
	}
}

// NewRoller returns a Roller using [Global] and the package logger of
// [log], modified by opts.
func NewRoller(opts ...RollerOption) Roller {
	r := Roller{
		src:    Global(),
		logger: log.Default(),
	}

	for _, opt := range opts {
		r = opt(r)
	}

	return r
}

// Source returns the randomness consumed by rolls.
func (r Roller) Source() Source { return r.src }

// Parse parses s with [Parse].
func (r Roller) Parse(ctx context.Context, s string) (Roll, error) {
	roll, err := Parse(s)
	if err != nil {
		r.logger.DebugContext(ctx, "parse failed",
			slog.String("input", s),
			slog.Any("error", err),
		)

		return Roll{}, err
	}

	r.logger.TraceContext(ctx, "parsed",
		slog.String("input", s),
		slog.String("kind", roll.Kind().String()),
		slog.String("expr", roll.String()),
	)

	return roll, nil
}

// Roll evaluates roll with its own advantage state.
func (r Roller) Roll(ctx context.Context, roll Roll) Outcome {
	return r.trace(ctx, roll, roll.Roll(r.src))
}

// RollWithAdvantage evaluates roll with adv overriding the advantage state of
// checks and attacks.
func (r Roller) RollWithAdvantage(
	ctx context.Context,
	roll Roll,
	adv AdvState,
) Outcome {
	return r.trace(ctx, roll, roll.RollWithAdvantage(r.src, adv),
		slog.String("adv", adv.String()),
	)
}

// Eval parses s and rolls it with its own advantage state.
func (r Roller) Eval(ctx context.Context, s string) (Outcome, error) {
	roll, err := r.Parse(ctx, s)
	if err != nil {
		return nil, err
	}

	return r.Roll(ctx, roll), nil
}

func (r Roller) trace(
	ctx context.Context,
	roll Roll,
	o Outcome,
	attrs ...slog.Attr,
) Outcome {
	if r.logger.Enabled(ctx, log.LevelTrace) {
		r.logger.TraceContext(ctx, "rolled", append([]slog.Attr{
			slog.String("expr", roll.String()),
			slog.String("kind", o.Kind().String()),
			slog.String("summary", o.String()),
			slog.String("detail", o.Detail()),
		}, attrs...)...)
	}

	return o
}
