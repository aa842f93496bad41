package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/ardnew/critfail/dice"
	"github.com/ardnew/critfail/log"
)

// Parse prints the parsed form of an expression without rolling it.
type Parse struct {
	Format string    `default:"text" enum:"text,json,yaml" help:"Output format (${enum})." short:"o"`
	Expr   dice.Roll `arg:"" help:"Roll expression." name:"expr"`
}

// Run executes the parse command.
func (p *Parse) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	n := makeNode(p.Expr)

	log.TraceContext(ctx, "parsed expression",
		logFormat(p.Format),
	)

	if p.Format == formatText || p.Format == "" {
		_, err = fmt.Fprintln(stdout(ctx), n.render())

		return err
	}

	return encode(ctx, stdout(ctx), p.Format, n)
}

// node is one element of a parsed expression tree.
type node struct {
	Count *uint  `json:"count,omitempty" yaml:"count,omitempty"`
	Sides *int   `json:"sides,omitempty" yaml:"sides,omitempty"`
	Value *int   `json:"value,omitempty" yaml:"value,omitempty"`
	Kind  string `json:"kind"            yaml:"kind"`
	Expr  string `json:"expr"            yaml:"expr"`
	Adv   string `json:"adv,omitempty"   yaml:"adv,omitempty"`
	Terms []node `json:"terms,omitempty" yaml:"terms,omitempty"`
}

func makeNode(r dice.Roll) node {
	if c, ok := r.Check(); ok {
		return checkNode(c)
	}

	if a, ok := r.Attack(); ok {
		return node{
			Kind:  dice.KindAttack.String(),
			Expr:  a.String(),
			Terms: []node{checkNode(a.Check), damageNode(a.Damage)},
		}
	}

	d, _ := r.Damage()

	return damageNode(d)
}

func checkNode(c dice.Check) node {
	return node{
		Kind:  dice.KindCheck.String(),
		Expr:  c.String(),
		Adv:   c.Adv.String(),
		Terms: termNodes(c.Modifier),
	}
}

func damageNode(d dice.Damage) node {
	return node{
		Kind:  dice.KindDamage.String(),
		Expr:  d.String(),
		Terms: termNodes(d),
	}
}

func termNodes(d dice.Damage) []node {
	nodes := make([]node, 0, len(d))

	for _, t := range d {
		n := node{Expr: t.String()}

		switch t := t.(type) {
		case dice.Dice:
			count, sides := t.Count, int(t.Sides)
			n.Kind, n.Count, n.Sides = "dice", &count, &sides

		case dice.Modifier:
			value := int(t)
			n.Kind, n.Value = "modifier", &value
		}

		nodes = append(nodes, n)
	}

	return nodes
}

func (n node) label() string {
	if n.Adv != "" {
		return n.Kind + " " + n.Expr + " (" + n.Adv + ")"
	}

	return n.Kind + " " + n.Expr
}

// render draws the tree rooted at n, one node per line.
func (n node) render() string {
	if len(n.Terms) == 0 {
		return n.label()
	}

	return n.tree().String()
}

func (n node) tree() *tree.Tree {
	t := tree.Root(n.label())

	for _, c := range n.Terms {
		if len(c.Terms) == 0 {
			t.Child(c.label())
		} else {
			t.Child(c.tree())
		}
	}

	return t
}
