package dice

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDamage(t *testing.T) {
	tests := []struct {
		in   string
		want Damage
	}{
		{"", nil},
		{"2d10", Damage{Dice{10, 2}}},
		{"3d4+5", Damage{Dice{4, 3}, Modifier(5)}},
		{"3d4-5", Damage{Dice{4, 3}, Modifier(-5)}},
		{"7d6+2d8+9", Damage{Dice{6, 7}, Dice{8, 2}, Modifier(9)}},
		{"2d8-1d4-1+5", Damage{Dice{8, 2}, Dice{-4, 1}, Modifier(-1), Modifier(5)}},
		{"-3", Damage{Modifier(-3)}},
		{"-2d6", Damage{Dice{-6, 2}}},
		{"3d12-1d4+6-2", Damage{Dice{12, 3}, Dice{-4, 1}, Modifier(6), Modifier(-2)}},
		{"2d6+", Damage{Dice{6, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDamage(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseDamage_Invalid(t *testing.T) {
	tests := []struct {
		in   string
		want error
		at   string
	}{
		{"+3d6", ErrInvalidTerm, "+3d6"},
		{"3d6++4", ErrInvalidTerm, "+4"},
		{"3d6-", ErrInvalidTerm, "-"},
		{"2d8+x", ErrInvalidTerm, "x"},
		{"2d8 + 4", ErrInvalidTerm, "2d8 "},
		{"1d0+3", ErrZeroSides, "1d0"},
		{"r+3", ErrInvalidTerm, "r"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := ParseDamage(tt.in)
			require.ErrorIs(t, err, tt.want)
			require.ErrorContains(t, err, fmt.Sprintf("%q", tt.at))
		})
	}
}

func TestDamage_String(t *testing.T) {
	for _, in := range []string{"", "2d8", "2d8+4", "3d12-1d4+6-2", "-3", "-1d4+2"} {
		d, err := ParseDamage(in)
		require.NoError(t, err)
		require.Equal(t, in, d.String())
	}
}

func TestDamageOutcome(t *testing.T) {
	tests := []struct {
		name    string
		parts   []Part
		score   Score
		summary string
		detail  string
	}{
		{"empty", nil, 0, "0", ""},
		{"just modifier", []Part{Modifier(2)}, 2, "2", "2"},
		{
			"dice modifier",
			[]Part{Rolled{4, []Score{1, 2, 3}}, Modifier(-2)},
			4, "4", "[1+2+3]-2",
		},
		{
			"negative dice",
			[]Part{Rolled{6, []Score{4, 1, 6}}, Modifier(4), Rolled{-4, []Score{3, 1}}},
			11, "11", "[4+1+6]+4-[3+1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewDamageOutcome(tt.parts...)

			require.Equal(t, tt.score, o.Score())
			require.Equal(t, tt.score, o.Score())
			require.Equal(t, tt.summary, o.String())
			require.Equal(t, tt.detail, o.Detail())
			require.Equal(t, tt.summary, fmt.Sprint(o))
			require.Equal(t, tt.detail, fmt.Sprintf("%+v", o))
			require.Equal(t, KindDamage, o.Kind())
		})
	}
}

func TestDamageOutcome_PartsAreCopied(t *testing.T) {
	parts := []Part{Modifier(1), Modifier(2)}
	o := NewDamageOutcome(parts...)

	parts[0] = Modifier(100)
	require.Equal(t, Score(3), o.Score())

	got := o.Parts()
	got[1] = Modifier(100)
	require.Equal(t, Score(3), o.Score())
}

func TestDamage_Roll(t *testing.T) {
	d, err := ParseDamage("2d8+4-1d4")
	require.NoError(t, err)

	src := script(t, 2, 6, 3)
	o := d.Roll(src)
	src.done()

	require.Equal(t, []Part{
		Rolled{8, []Score{2, 6}},
		Modifier(4),
		Rolled{-4, []Score{3}},
	}, o.Parts())
	require.Equal(t, Score(9), o.Score())
	require.Equal(t, "[2+6]+4-[3]", o.Detail())
}

func TestDamage_CritRoll(t *testing.T) {
	d, err := ParseDamage("2d8+3-1d4")
	require.NoError(t, err)

	src := script(t, 1, 2, 7, 8, 4)
	o := d.CritRoll(src)
	src.done()

	parts := o.Parts()
	require.Len(t, parts, 4)
	require.Equal(t, Rolled{8, []Score{1, 2}}, parts[0])
	require.Equal(t, Rolled{8, []Score{7, 8}}, parts[1])
	require.Equal(t, Modifier(3), parts[2])
	require.Equal(t, Rolled{-4, []Score{4}}, parts[3])
	require.Equal(t, "[1+2]+[7+8]+3-[4]", o.Detail())
	require.Equal(t, Score(17), o.Score())
}

func TestDamage_RollWithScore(t *testing.T) {
	d := Damage{Dice{6, 1}, Modifier(1)}

	for _, tt := range []struct {
		score CritScore
		faces []int
		parts int
	}{
		{CritScore{Crit: Critical}, []int{6, 6}, 3},
		{CritScore{Crit: Fail}, []int{6}, 2},
		{CritScore{Crit: Normal, Score: 20}, []int{6}, 2},
	} {
		t.Run(tt.score.String(), func(t *testing.T) {
			src := script(t, tt.faces...)
			o := d.RollWithScore(src, tt.score)
			src.done()

			require.Len(t, o.Parts(), tt.parts)
		})
	}
}

func TestDamage_RollWithinBounds(t *testing.T) {
	src := NewSource(7)

	for _, tt := range []struct {
		in       string
		min, max Score
	}{
		{"2d8+4", 6, 20},
		{"3d12-1d4+6-2", 0, 40},
		{"1d4-2d6", -11, 2},
		{"-5", -5, -5},
		{"", 0, 0},
	} {
		d, err := ParseDamage(tt.in)
		require.NoError(t, err)

		for range 500 {
			s := d.Roll(src).Score()
			require.GreaterOrEqual(t, s, tt.min, tt.in)
			require.LessOrEqual(t, s, tt.max, tt.in)
		}
	}
}
