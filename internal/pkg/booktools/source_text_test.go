package booktools

import (
	"strings"
	"testing"
	"unicode/utf8"

	. "github.com/smartystreets/goconvey/convey"
)

func TestConcatSources(t *testing.T) {
	Convey("ConcatSources joins and truncates source texts", t, func() {
		Convey("empty input yields an empty string", func() {
			So(ConcatSources(nil, 100), ShouldEqual, "")
			So(ConcatSources([]string{}, 100), ShouldEqual, "")
		})

		Convey("texts are joined in the given order with blank lines", func() {
			got := ConcatSources([]string{"first", "second", "third"}, 100)
			So(got, ShouldEqual, "first\n\nsecond\n\nthird")
		})

		Convey("the result is trimmed", func() {
			got := ConcatSources([]string{"  hello  "}, 100)
			So(got, ShouldEqual, "hello")
		})

		Convey("text beyond the budget is dropped", func() {
			got := ConcatSources([]string{strings.Repeat("a", 50)}, 10)
			So(got, ShouldEqual, strings.Repeat("a", 10))
		})

		Convey("truncation counts runes, not bytes", func() {
			got := ConcatSources([]string{strings.Repeat("世", 20)}, 10)
			So(utf8.RuneCountInString(got), ShouldEqual, 10)
			So(utf8.ValidString(got), ShouldBeTrue)
		})

		Convey("a non-positive budget falls back to the default", func() {
			long := strings.Repeat("a", DefaultSourceCharBudget+500)
			got := ConcatSources([]string{long}, 0)
			So(len(got), ShouldEqual, DefaultSourceCharBudget)
		})
	})
}
