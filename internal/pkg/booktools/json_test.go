package booktools

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCleanJSONContent(t *testing.T) {
	Convey("CleanJSONContent strips markdown fences from model output", t, func() {
		Convey("plain JSON passes through unchanged", func() {
			So(CleanJSONContent(`{"chapters": []}`), ShouldEqual, `{"chapters": []}`)
		})

		Convey("json fences are removed", func() {
			raw := "```json\n{\"chapters\": []}\n```"
			So(CleanJSONContent(raw), ShouldEqual, `{"chapters": []}`)
		})

		Convey("bare fences are removed", func() {
			raw := "```\n{\"a\": 1}\n```"
			So(CleanJSONContent(raw), ShouldEqual, `{"a": 1}`)
		})

		Convey("surrounding whitespace is trimmed", func() {
			raw := "  \n```json\n{}\n```\n  "
			So(CleanJSONContent(raw), ShouldEqual, `{}`)
		})

		Convey("empty input yields an empty string", func() {
			So(CleanJSONContent(""), ShouldEqual, "")
			So(CleanJSONContent("   "), ShouldEqual, "")
		})
	})
}
