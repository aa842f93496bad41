package repl

import (
	"strings"
	"testing"

	"github.com/ardnew/critfail/dice"
)

func TestPreview(t *testing.T) {
	tests := []struct {
		input  string
		adv    dice.AdvState
		want   string
		wantOK bool
	}{
		{"+3", dice.Neutral, "check r+3", true},
		{"2d8+4", dice.Advantage, "damage 2d8+4", true},
		{"r+3?1d8", dice.Disadvantage, "attack r+3?1d8 with disadvantage", true},
		{"2d8+x", dice.Neutral, "invalid term", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := preview(tt.input, tt.adv)
			if ok != tt.wantOK || !strings.Contains(got, tt.want) {
				t.Errorf("preview(%q) = (%q, %v), want (%q, %v)",
					tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
