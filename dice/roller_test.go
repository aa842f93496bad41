package dice

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/critfail/log"
)

func TestRoller_Eval(t *testing.T) {
	var buf bytes.Buffer

	src := script(t, 7, 13, 5, 2)
	r := NewRoller(
		WithSource(src),
		WithLogger(log.Make(&buf,
			log.WithLevel(log.LevelTrace),
			log.WithPretty(false),
			log.WithTimeLayout("none"),
		)),
	)

	o, err := r.Eval(context.Background(), "a+2?2d6")
	require.NoError(t, err)
	src.done()

	require.Equal(t, "15 ? 7", o.String())

	out := buf.String()
	require.Contains(t, out, "msg=parsed")
	require.Contains(t, out, "kind=attack")
	require.Contains(t, out, "msg=rolled")
	require.Contains(t, out, `detail="(13/7)+2 ? [5+2]"`)
}

func TestRoller_Eval_ParseError(t *testing.T) {
	var buf bytes.Buffer

	r := NewRoller(
		WithSource(script(t)),
		WithLogger(log.Make(&buf,
			log.WithLevel(log.LevelDebug),
			log.WithPretty(false),
			log.WithTimeLayout("none"),
		)),
	)

	o, err := r.Eval(context.Background(), "2d8+x")
	require.ErrorIs(t, err, ErrInvalidTerm)
	require.Nil(t, o)
	require.Contains(t, buf.String(), "parse failed")
	require.Contains(t, buf.String(), "error.input=x")
}

func TestRoller_RollWithAdvantage(t *testing.T) {
	src := script(t, 7, 13)
	r := NewRoller(WithSource(src), WithLogger(log.Discard()))

	o := r.RollWithAdvantage(context.Background(), MustParse("r+1"), Disadvantage)
	src.done()

	require.Equal(t, "(7/13)+1", o.Detail())
}

func TestRoller_WithSeed_Reproducible(t *testing.T) {
	ctx := context.Background()
	a := NewRoller(WithSeed(99), WithLogger(log.Discard()))
	b := NewRoller(WithSeed(99), WithLogger(log.Discard()))

	var sa, sb strings.Builder

	for range 20 {
		oa, err := a.Eval(ctx, "a+3?2d8+1d6")
		require.NoError(t, err)

		ob, err := b.Eval(ctx, "a+3?2d8+1d6")
		require.NoError(t, err)

		sa.WriteString(oa.Detail())
		sb.WriteString(ob.Detail())
	}

	require.Equal(t, sa.String(), sb.String())
}

func TestRoller_NilSource(t *testing.T) {
	r := NewRoller(WithSource(nil))
	require.Equal(t, Global(), r.Source())
}
