package booktools

import (
	"context"
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// fakeGenerator returns a canned response and records the prompt.
type fakeGenerator struct {
	response string
	err      error
	prompt   string
	calls    int
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.calls++
	g.prompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

func TestOutlineBuilder_Build(t *testing.T) {
	Convey("OutlineBuilder.Build validates model output against the outline schema", t, func() {
		ctx := context.Background()
		proj := ProjectContext{Title: "Practical Beekeeping", Tone: "friendly"}
		sources := []string{"Bees live in colonies.", "Hives need inspection."}

		Convey("a valid JSON response yields the parsed outline", func() {
			gen := &fakeGenerator{response: `{"chapters": [
				{"order": 1, "title": "Getting Started", "summary": "Basics."},
				{"order": 2, "title": "The Hive", "summary": "Hive anatomy."}
			]}`}
			builder := NewOutlineBuilder(gen, 0)

			outline, err := builder.Build(ctx, proj, sources)
			So(err, ShouldBeNil)
			So(outline, ShouldNotBeNil)
			So(len(outline.Chapters), ShouldEqual, 2)
			So(outline.Chapters[0].Order, ShouldEqual, 1)
			So(outline.Chapters[0].Title, ShouldEqual, "Getting Started")
			So(outline.Chapters[1].Title, ShouldEqual, "The Hive")
		})

		Convey("fenced JSON is accepted", func() {
			gen := &fakeGenerator{response: "```json\n" +
				`{"chapters": [{"order": 1, "title": "Only Chapter", "summary": "All of it."}]}` +
				"\n```"}
			builder := NewOutlineBuilder(gen, 0)

			outline, err := builder.Build(ctx, proj, sources)
			So(err, ShouldBeNil)
			So(len(outline.Chapters), ShouldEqual, 1)
		})

		Convey("stubs without a title are dropped silently", func() {
			gen := &fakeGenerator{response: `{"chapters": [
				{"order": 1, "title": "Kept", "summary": "stays"},
				{"order": 2, "title": "   ", "summary": "dropped"},
				{"order": 3, "title": "Also Kept", "summary": "stays"}
			]}`}
			builder := NewOutlineBuilder(gen, 0)

			outline, err := builder.Build(ctx, proj, sources)
			So(err, ShouldBeNil)
			So(len(outline.Chapters), ShouldEqual, 2)
			So(outline.Chapters[0].Title, ShouldEqual, "Kept")
			So(outline.Chapters[1].Title, ShouldEqual, "Also Kept")
		})

		Convey("an outline with only untitled stubs fails", func() {
			gen := &fakeGenerator{response: `{"chapters": [{"order": 1, "title": "", "summary": "x"}]}`}
			builder := NewOutlineBuilder(gen, 0)

			_, err := builder.Build(ctx, proj, sources)
			So(err, ShouldNotBeNil)
		})

		Convey("an empty chapters list fails", func() {
			gen := &fakeGenerator{response: `{"chapters": []}`}
			builder := NewOutlineBuilder(gen, 0)

			_, err := builder.Build(ctx, proj, sources)
			So(err, ShouldNotBeNil)
		})

		Convey("free text instead of JSON fails, no fallback", func() {
			gen := &fakeGenerator{response: "Chapter 1: Getting Started\nChapter 2: The Hive"}
			builder := NewOutlineBuilder(gen, 0)

			_, err := builder.Build(ctx, proj, sources)
			So(err, ShouldNotBeNil)
		})

		Convey("generator failure propagates", func() {
			gen := &fakeGenerator{err: errors.New("rate limited")}
			builder := NewOutlineBuilder(gen, 0)

			_, err := builder.Build(ctx, proj, sources)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "rate limited")
		})

		Convey("empty source text fails before calling the generator", func() {
			gen := &fakeGenerator{response: `{"chapters": []}`}
			builder := NewOutlineBuilder(gen, 0)

			_, err := builder.Build(ctx, proj, []string{"  ", ""})
			So(err, ShouldNotBeNil)
			So(gen.calls, ShouldEqual, 0)
		})

		Convey("the prompt embeds the book configuration and the sources in order", func() {
			gen := &fakeGenerator{response: `{"chapters": [{"order": 1, "title": "A", "summary": "s"}]}`}
			builder := NewOutlineBuilder(gen, 0)

			_, err := builder.Build(ctx, proj, sources)
			So(err, ShouldBeNil)
			So(gen.prompt, ShouldContainSubstring, "Practical Beekeeping")
			So(gen.prompt, ShouldContainSubstring, "friendly")
			first := strings.Index(gen.prompt, "Bees live in colonies.")
			second := strings.Index(gen.prompt, "Hives need inspection.")
			So(first, ShouldBeGreaterThan, -1)
			So(second, ShouldBeGreaterThan, first)
		})

		Convey("source text beyond the budget is cut from the prompt", func() {
			gen := &fakeGenerator{response: `{"chapters": [{"order": 1, "title": "A", "summary": "s"}]}`}
			builder := NewOutlineBuilder(gen, 20)

			long := strings.Repeat("x", 100) + "TAIL"
			_, err := builder.Build(ctx, proj, []string{long})
			So(err, ShouldBeNil)
			So(gen.prompt, ShouldNotContainSubstring, "TAIL")
		})
	})
}
