package booktools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// ProjectContext carries the book configuration embedded into prompts.
type ProjectContext struct {
	Title           string
	Subtitle        string
	TargetAudience  string
	Tone            string
	Language        string
	WordCountTarget int
}

// Outline is the structured result of an outline build, matching the
// persisted outline document schema exactly.
type Outline struct {
	Chapters []ChapterStub `json:"chapters"`
}

// ChapterStub is one outline entry before any draft text exists.
type ChapterStub struct {
	Order   int    `json:"order"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// OutlineBuilder turns concatenated source text into an ordered list of
// chapter stubs through a remote text-generation call constrained to a
// fixed JSON schema.
//
// The builder does not persist anything and does not touch HTTP; it only
// assembles the prompt, calls the injected generator, and validates the
// result.
type OutlineBuilder struct {
	generator  TextGenerator
	charBudget int
}

// NewOutlineBuilder creates an outline builder. charBudget caps the source
// text embedded into the prompt; pass 0 for the default.
func NewOutlineBuilder(generator TextGenerator, charBudget int) *OutlineBuilder {
	if charBudget <= 0 {
		charBudget = DefaultSourceCharBudget
	}
	return &OutlineBuilder{
		generator:  generator,
		charBudget: charBudget,
	}
}

// Build generates and validates an outline from the given source texts,
// which must already be in concatenation order.
//
// Stubs without a title are dropped silently; an empty chapter list after
// filtering fails the whole build. No free-text fallback is accepted.
func (b *OutlineBuilder) Build(ctx context.Context, proj ProjectContext, sourceTexts []string) (*Outline, error) {
	if b.generator == nil {
		return nil, fmt.Errorf("generator is required")
	}

	sourceText := ConcatSources(sourceTexts, b.charBudget)
	if sourceText == "" {
		return nil, fmt.Errorf("source text is empty")
	}

	prompt := buildOutlinePrompt(proj, sourceText)

	raw, err := b.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("outline generation failed: %w", err)
	}

	return parseOutline(raw)
}

// parseOutline decodes and validates model output against the outline
// schema.
func parseOutline(raw string) (*Outline, error) {
	cleaned := CleanJSONContent(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("model returned empty output")
	}

	var outline Outline
	if err := json.Unmarshal([]byte(cleaned), &outline); err != nil {
		return nil, fmt.Errorf("model output is not valid JSON: %w", err)
	}

	if len(outline.Chapters) == 0 {
		return nil, fmt.Errorf("model output is missing a non-empty chapters list")
	}

	filtered := make([]ChapterStub, 0, len(outline.Chapters))
	for _, stub := range outline.Chapters {
		stub.Title = strings.TrimSpace(stub.Title)
		if stub.Title == "" {
			continue
		}
		stub.Summary = strings.TrimSpace(stub.Summary)
		filtered = append(filtered, stub)
	}

	if len(filtered) == 0 {
		return nil, fmt.Errorf("model output contained no chapters with titles")
	}

	return &Outline{Chapters: filtered}, nil
}

// buildOutlinePrompt assembles the outline prompt. The output contract is
// spelled out twice because models drift on format more than on content.
func buildOutlinePrompt(proj ProjectContext, sourceText string) string {
	var b strings.Builder
	b.WriteString("You are an expert book planner and editor.\n")
	b.WriteString("Based on the source material below, design a chapter outline for an ebook.\n\n")

	b.WriteString("BOOK CONFIGURATION:\n")
	writeProjectContext(&b, proj)
	b.WriteString("\n")

	b.WriteString("OUTPUT FORMAT (mandatory):\n")
	b.WriteString("Respond with a single JSON object and nothing else. No markdown fences,\n")
	b.WriteString("no commentary, no trailing commas. The object must have exactly this shape:\n")
	b.WriteString(`{"chapters": [{"order": 1, "title": "...", "summary": "..."}, ...]}` + "\n")
	b.WriteString("Rules:\n")
	b.WriteString("- \"order\" is a 1-based integer and strictly ascending\n")
	b.WriteString("- \"title\" is a short, non-empty chapter title\n")
	b.WriteString("- \"summary\" is one or two sentences describing the chapter\n")
	b.WriteString("- 5 to 15 chapters, following the logical flow of the material\n\n")

	b.WriteString("SOURCE MATERIAL:\n")
	b.WriteString(sourceText)
	b.WriteString("\n")

	return b.String()
}

func writeProjectContext(b *strings.Builder, proj ProjectContext) {
	fmt.Fprintf(b, "- Title: %s\n", proj.Title)
	if proj.Subtitle != "" {
		fmt.Fprintf(b, "- Subtitle: %s\n", proj.Subtitle)
	}
	if proj.TargetAudience != "" {
		fmt.Fprintf(b, "- Target audience: %s\n", proj.TargetAudience)
	}
	if proj.Tone != "" {
		fmt.Fprintf(b, "- Tone: %s\n", proj.Tone)
	}
	if proj.Language != "" {
		fmt.Fprintf(b, "- Language: %s\n", proj.Language)
	}
	if proj.WordCountTarget > 0 {
		fmt.Fprintf(b, "- Target length: about %d words\n", proj.WordCountTarget)
	}
}
