package dice

import (
	"encoding"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	_ encoding.TextMarshaler   = Roll{}
	_ encoding.TextUnmarshaler = (*Roll)(nil)
	_ fmt.Formatter            = CheckOutcome{}
	_ fmt.Formatter            = DamageOutcome{}
	_ fmt.Formatter            = AttackOutcome{}
	_ Term                     = Dice{}
	_ Term                     = Modifier(0)
	_ Part                     = Modifier(0)
	_ Part                     = Rolled{}
	_ Source                   = NewSource(0)
)

func TestParse_Dispatch(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
		str  string
	}{
		{"+3?2d8-1", KindAttack, "r+3?2d8-1"},
		{"a-1?2d8+1", KindAttack, "a-1?2d8+1"},
		{"2d8?r", KindAttack, ""},
		{"r+3", KindCheck, "r+3"},
		{"r", KindCheck, "r"},
		{"a", KindCheck, "a"},
		{"d", KindCheck, "d"},
		{"+3", KindCheck, "r+3"},
		{"-2", KindCheck, "r-2"},
		{"-1d4+2", KindCheck, "r-1d4+2"},
		{"d20", KindCheck, "d+20"},
		{"2d8+4", KindDamage, "2d8+4"},
		{"2d10", KindDamage, "2d10"},
		{"7d6+2d8+9", KindDamage, "7d6+2d8+9"},
		{"5", KindDamage, "5"},
		{"  2d8+4\n", KindDamage, "2d8+4"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, err := Parse(tt.in)
			if tt.str == "" {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.kind, r.Kind())
			require.Equal(t, tt.str, r.String())
		})
	}
}

func TestParse_Accessors(t *testing.T) {
	r, err := Parse("a+5?1d4+4+5d6")
	require.NoError(t, err)

	a, ok := r.Attack()
	require.True(t, ok)
	require.Equal(t, Advantage, a.Check.Adv)

	_, ok = r.Check()
	require.False(t, ok)

	_, ok = r.Damage()
	require.False(t, ok)

	r, err = Parse("3d12-1d4+6-2")
	require.NoError(t, err)

	d, ok := r.Damage()
	require.True(t, ok)
	require.Len(t, d, 4)

	r, err = Parse("d+4+1d4")
	require.NoError(t, err)

	c, ok := r.Check()
	require.True(t, ok)
	require.Equal(t, Disadvantage, c.Adv)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"", ErrEmpty},
		{"   ", ErrEmpty},
		{"d+3?3d6+4?3d8", ErrInvalidAttack},
		{"x", ErrInvalidTerm},
		{"2d8+", nil},
		{"2d0", ErrZeroSides},
		{"r+", nil},
		{"r+x", ErrInvalidTerm},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := Parse(tt.in)
			if tt.want == nil {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMustParse(t *testing.T) {
	require.Equal(t, "2d8+4", MustParse("2d8+4").String())
	require.Panics(t, func() { MustParse("") })
}

func TestRoll_Text(t *testing.T) {
	var r Roll

	require.NoError(t, r.UnmarshalText([]byte("+3?2d8-1")))
	require.Equal(t, KindAttack, r.Kind())

	b, err := r.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "r+3?2d8-1", string(b))

	require.ErrorIs(t, r.UnmarshalText([]byte("??")), ErrInvalidAttack)
	require.Equal(t, KindAttack, r.Kind(), "failed unmarshal modified the receiver")
}

func TestRoll_Roll(t *testing.T) {
	tests := []struct {
		in     string
		faces  []int
		kind   Kind
		detail string
	}{
		{"2d8+4", []int{3, 5}, KindDamage, "[3+5]+4"},
		{"a+5", []int{4, 11}, KindCheck, "(11/4)+5"},
		{"r+3?1d8", []int{20, 1, 8, 2}, KindAttack, "(20)+3 ? [8]+[2]"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			src := script(t, tt.faces...)
			o := MustParse(tt.in).Roll(src)
			src.done()

			require.Equal(t, tt.kind, o.Kind())
			require.Equal(t, tt.detail, o.Detail())
		})
	}
}

func TestRoll_RollWithAdvantage(t *testing.T) {
	tests := []struct {
		in     string
		faces  []int
		detail string
	}{
		// Damage ignores the override.
		{"2d8+4", []int{3, 5}, "[3+5]+4"},
		{"r+5", []int{4, 11}, "(4/11)+5"},
		{"a+3?1d8", []int{9, 10, 2}, "(9/10)+3 ? [2]"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			src := script(t, tt.faces...)
			o := MustParse(tt.in).RollWithAdvantage(src, Disadvantage)
			src.done()

			require.Equal(t, tt.detail, o.Detail())
		})
	}
}

func TestFormat_Verbs(t *testing.T) {
	o := NewDamageOutcome(Rolled{6, []Score{1, 2}}, Modifier(3))

	require.Equal(t, "6", fmt.Sprintf("%s", o))
	require.Equal(t, `"6"`, fmt.Sprintf("%q", o))
	require.Equal(t, "[1+2]+3", fmt.Sprintf("%+v", o))
	require.Equal(t, "%!d(6)", fmt.Sprintf("%d", o))
}
