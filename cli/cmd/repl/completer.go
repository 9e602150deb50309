package repl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/calc/calc"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "vars", "funcs", "rpn", "edit", "reset", "clear", "quit"}

// isWordBoundary returns true if the rune ends a completion word. Identifiers
// are letters, digits and underscores, so everything else is a boundary.
func isWordBoundary(r rune) bool {
	return r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input. Returns an empty word when the cursor sits on a
// boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// completable reports whether word may be completed to a name. Numbers are
// never completed.
func completable(word string) bool {
	r, _ := utf8.DecodeRuneInString(word)

	return word != "" && unicode.IsLetter(r)
}

// candidates returns the completion candidates for a mode. Eval mode
// offers every name the evaluator can resolve.
func candidates(ev *calc.Evaluator, mode inputMode) []string {
	if mode == modeCtrl {
		return ctrlCommands
	}

	return ev.Names()
}

// completions returns the fuzzy matches for word among cands, best first.
func completions(word string, cands []string) fuzzy.Matches {
	if !completable(word) || len(cands) == 0 {
		return nil
	}

	return fuzzy.Find(word, cands)
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor, returning the matches, the candidate list, and the word bounds.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	cands []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()

	word, ws, we := wordBounds(input, m.input.Position())

	// In ctrl mode only the command word completes.
	if m.mode == modeCtrl && strings.TrimSpace(input[:ws]) != "" {
		return nil, nil, ws, we
	}

	cands = candidates(m.ev, m.mode)

	return completions(word, cands), cands, ws, we
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
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		last := i == len(matches)-1

		if i > 0 && used+entryWidth+ellipsisWidth > width && !(last && used+entryWidth <= width) {
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
// highlighted. Functions are displayed with a "()" suffix.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := matchStyle

	if selected {
		baseStyle = selectedStyle
		highlightStyle = selectedMatchStyle
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

	if calc.IsFunc(match.Str) {
		b.WriteString(baseStyle.Render("()"))
	}

	return b.String()
}
