package booktools

import (
	"context"
	"fmt"
	"strings"
)

// ChapterMeta identifies the chapter being drafted inside the prompt.
type ChapterMeta struct {
	Order   int
	Title   string
	Summary string
}

// DraftGenerator writes the narrative text of one chapter at a time
// through a remote text-generation call. One chapter per invocation,
// never a batch.
type DraftGenerator struct {
	generator  TextGenerator
	charBudget int
}

// NewDraftGenerator creates a draft generator. charBudget caps the source
// text embedded into the prompt; pass 0 for the default.
func NewDraftGenerator(generator TextGenerator, charBudget int) *DraftGenerator {
	if charBudget <= 0 {
		charBudget = DefaultSourceCharBudget
	}
	return &DraftGenerator{
		generator:  generator,
		charBudget: charBudget,
	}
}

// Generate produces the draft text for a single chapter. The returned text
// is the chapter body only; callers persist it after this returns nil.
func (g *DraftGenerator) Generate(ctx context.Context, proj ProjectContext, ch ChapterMeta, sourceTexts []string) (string, error) {
	if g.generator == nil {
		return "", fmt.Errorf("generator is required")
	}
	if strings.TrimSpace(ch.Title) == "" {
		return "", fmt.Errorf("chapter title is empty")
	}

	sourceText := ConcatSources(sourceTexts, g.charBudget)
	prompt := buildDraftPrompt(proj, ch, sourceText)

	draft, err := g.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("draft generation failed: %w", err)
	}

	draft = strings.TrimSpace(draft)
	if draft == "" {
		return "", fmt.Errorf("model returned an empty draft")
	}

	return draft, nil
}

func buildDraftPrompt(proj ProjectContext, ch ChapterMeta, sourceText string) string {
	var b strings.Builder
	b.WriteString("You are a professional ghostwriter.\n")
	b.WriteString("Write the full narrative text of one chapter of an ebook.\n\n")

	b.WriteString("BOOK CONFIGURATION:\n")
	writeProjectContext(&b, proj)
	b.WriteString("\n")

	b.WriteString("CHAPTER TO WRITE:\n")
	fmt.Fprintf(&b, "- Chapter %d: %s\n", ch.Order, ch.Title)
	if ch.Summary != "" {
		fmt.Fprintf(&b, "- Summary: %s\n", ch.Summary)
	}
	b.WriteString("\n")

	b.WriteString("REQUIREMENTS:\n")
	b.WriteString("- Write only the body of this chapter, no title heading, no preamble\n")
	b.WriteString("- Use clear subsections and a logical flow\n")
	b.WriteString("- Stay consistent with the configured tone and audience\n")
	b.WriteString("- Ground the chapter in the source material where it applies\n\n")

	if sourceText != "" {
		b.WriteString("SOURCE MATERIAL:\n")
		b.WriteString(sourceText)
		b.WriteString("\n")
	}

	return b.String()
}
