package repl

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/critfail/dice"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{
	"help", "adv", "dis", "normal", "examples", "history", "clear", "quit",
}

// byteOffset returns the byte offset in s of the rune at index pos, clamped
// to len(s).
func byteOffset(s string, pos int) int {
	for i := range s {
		if pos <= 0 {
			return i
		}

		pos--
	}

	return len(s)
}

// wordBounds returns the current word at the byte offset cursor and its byte
// boundaries within input. Words are delimited by whitespace only, so a
// whole expression such as "r+3?1d8" is one word.
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if unicode.IsSpace(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if unicode.IsSpace(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// evalCandidates returns the completion candidates of eval mode: previously
// rolled expressions, newest first, then the example expressions.
func evalCandidates(history *History) []string {
	var candidates []string

	if history != nil {
		candidates = history.Lines(modeEval)
	}

	for _, ex := range dice.Examples() {
		candidates = append(candidates, ex.Expr)
	}

	// Keep the first occurrence of each candidate.
	seen := make(map[string]struct{}, len(candidates))

	return slices.DeleteFunc(candidates, func(s string) bool {
		if _, ok := seen[s]; ok {
			return true
		}

		seen[s] = struct{}{}

		return false
	})
}

// computeMatches calculates the fuzzy match results for the word at the cursor.
// It returns the matches (ranked best-first), the candidate list, and the word
// boundaries. An empty word has no matches so the hint line stays visible.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()
	cursor := byteOffset(input, m.input.Position())

	word, wordStart, wordEnd := wordBounds(input, cursor)
	if word == "" {
		return nil, nil, wordStart, wordEnd
	}

	if m.mode == modeCtrl {
		candidates = ctrlCommands
	} else {
		if strings.HasPrefix(word, ":") {
			// ":cmd" runs a command from eval mode.
			candidates = make([]string, len(ctrlCommands))
			for i, c := range ctrlCommands {
				candidates[i] = ":" + c
			}
		} else {
			candidates = evalCandidates(m.history)
		}
	}

	matches = fuzzy.Find(word, candidates)

	// An exact match offers nothing to complete.
	if len(matches) == 1 && matches[0].Str == word {
		matches = nil
	}

	return matches, candidates, wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. Each candidate is rendered with its matched
// characters highlighted. The selected candidate (when tabbing) uses the
// selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		selected := tabActive && i == suggIdx
		rendered := renderCandidate(match, selected)
		candidateWidth := lipgloss.Width(rendered)

		entryWidth := candidateWidth
		if i > 0 {
			entryWidth += sepWidth
		}

		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).
			Bold(true)
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlightStyle.Render(string(r)))
		} else {
			b.WriteString(baseStyle.Render(string(r)))
		}
	}

	return b.String()
}
