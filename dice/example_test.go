package dice_test

import (
	"errors"
	"fmt"

	"github.com/ardnew/critfail/dice"
)

func ExampleParse() {
	for _, s := range []string{"r+3", "2d8+4", "+3?2d8-1"} {
		r, err := dice.Parse(s)
		if err != nil {
			panic(err)
		}

		fmt.Println(r.Kind(), r)
	}
	// Output:
	// check r+3
	// damage 2d8+4
	// attack r+3?2d8-1
}

func ExampleParse_error() {
	_, err := dice.Parse("d+3?3d6+4?3d8")

	fmt.Println(err)
	fmt.Println(errors.Is(err, dice.ErrInvalidAttack))
	// Output:
	// invalid attack "d+3?3d6+4?3d8"
	// true
}

func ExampleNewAttackOutcome() {
	o := dice.NewAttackOutcome(
		dice.NewCheckOutcome(dice.Advantage, 20, 4,
			dice.NewDamageOutcome(dice.Modifier(3))),
		dice.NewDamageOutcome(
			dice.Rolled{Sides: 8, Values: []dice.Score{2, 6, 8}},
			dice.Rolled{Sides: 8, Values: []dice.Score{1, 5, 2}},
			dice.Modifier(-2),
		),
	)

	fmt.Printf("%+v\n%v\n", o, o)
	// Output:
	// (20/4)+3 ? [2+6+8]+[1+5+2]-2
	// Critical ? 22
}

func ExampleRoll_Roll() {
	src := dice.NewSource(1)
	o := dice.MustParse("2d6+3").Roll(src)

	fmt.Println(o.Kind())
	// Output:
	// damage
}
