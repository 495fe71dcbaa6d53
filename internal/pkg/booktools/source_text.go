package booktools

import "strings"

// DefaultSourceCharBudget caps the concatenated source text embedded into
// prompts. Material beyond the cap is dropped silently, not summarized;
// the cutoff is a deliberate cost and context-window control.
const DefaultSourceCharBudget = 4000

// ConcatSources joins source document texts in their given order and
// truncates the result to budget characters. A non-positive budget falls
// back to DefaultSourceCharBudget.
func ConcatSources(texts []string, budget int) string {
	if budget <= 0 {
		budget = DefaultSourceCharBudget
	}

	joined := strings.TrimSpace(strings.Join(texts, "\n\n"))

	runes := []rune(joined)
	if len(runes) <= budget {
		return joined
	}
	return string(runes[:budget])
}
