package dice

// Example is a sample expression with a short description.
type Example struct {
	Description string
	Expr        string
}

// Roll returns the parsed expression.
func (e Example) Roll() Roll { return MustParse(e.Expr) }

// String returns the expression followed by its description, the text
// matched when searching examples.
func (e Example) String() string { return e.Expr + " " + e.Description }

// Examples returns sample expressions of every kind, in display order.
func Examples() []Example {
	return []Example{
		{"Check: roll a d20 and add 6", "r+6"},
		{"Damage: roll 2d8 and add 4", "2d8+4"},
		{"Attack: d20+3 to hit, 1d12+3 damage", "r+3?1d12+3"},
		{"Roll a d20", "r"},
		{"Roll a d20 with advantage then add 5", "a+5"},
		{"Roll a d20 with disadvantage then add 4 and 1d4", "d+4+1d4"},
		{"A simple damage roll", "2d8+5"},
		{"A more complicated damage roll", "3d12-1d4+6-2"},
		{"+3 to hit, 1d8 of damage", "r+3?1d8"},
		{"Advantage and +5 to hit, 1d4+4+5d6 of damage", "a+5?1d4+4+5d6"},
	}
}
