package book

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestService_Projects(t *testing.T) {
	Convey("Project lifecycle", t, func() {
		ctx := context.Background()

		Convey("CreateProject trims and stores the metadata", func() {
			f := newTestFixture(&fakeGenerator{responses: []string{""}})

			proj, err := f.svc.CreateProject(ctx, &CreateProjectRequest{
				Title:    "  Practical Beekeeping  ",
				Subtitle: "A Field Guide",
				Tone:     "friendly",
			})
			So(err, ShouldBeNil)
			So(proj.ID, ShouldNotBeEmpty)
			So(proj.Title, ShouldEqual, "Practical Beekeeping")
			So(proj.Outline, ShouldBeNil)

			stored, findErr := f.projects.FindByID(ctx, proj.ID)
			So(findErr, ShouldBeNil)
			So(stored.Subtitle, ShouldEqual, "A Field Guide")
		})

		Convey("CreateProject rejects a blank title", func() {
			f := newTestFixture(&fakeGenerator{responses: []string{""}})

			_, err := f.svc.CreateProject(ctx, &CreateProjectRequest{Title: "   "})
			So(errors.Is(err, ErrValidation), ShouldBeTrue)
		})

		Convey("DeleteProject cascades to chapters and sources", func() {
			f := newTestFixture(&fakeGenerator{responses: []string{""}})
			f.seedProject("p1", "Practical Beekeeping")
			f.seedChapter("c1", "p1", 1, "Getting Started", "draft")
			f.seedSource("p1", "some source")
			f.seedProject("p2", "Another Book")
			f.seedChapter("c2", "p2", 1, "Other", "")

			err := f.svc.DeleteProject(ctx, "p1")
			So(err, ShouldBeNil)

			_, findErr := f.projects.FindByID(ctx, "p1")
			So(errors.Is(findErr, ErrNotFound), ShouldBeTrue)

			chapters, _ := f.chapters.FindByProjectID(ctx, "p1")
			So(chapters, ShouldBeEmpty)
			sources, _ := f.sources.FindByProjectID(ctx, "p1")
			So(sources, ShouldBeEmpty)

			Convey("other projects are untouched", func() {
				others, _ := f.chapters.FindByProjectID(ctx, "p2")
				So(len(others), ShouldEqual, 1)
			})
		})

		Convey("DeleteProject on an unknown id fails with not found", func() {
			f := newTestFixture(&fakeGenerator{responses: []string{""}})

			err := f.svc.DeleteProject(ctx, "missing")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestService_Sources(t *testing.T) {
	Convey("Source documents", t, func() {
		ctx := context.Background()

		Convey("AddSource appends to the project", func() {
			f := newTestFixture(&fakeGenerator{responses: []string{""}})
			f.seedProject("p1", "Practical Beekeeping")

			doc, err := f.svc.AddSource(ctx, "p1", &AddSourceRequest{
				Label: "interview",
				Text:  "  Bees live in colonies.  ",
			})
			So(err, ShouldBeNil)
			So(doc.Text, ShouldEqual, "Bees live in colonies.")
			So(doc.Label, ShouldEqual, "interview")

			list, _ := f.svc.ListSources(ctx, "p1")
			So(len(list), ShouldEqual, 1)
		})

		Convey("AddSource rejects blank text", func() {
			f := newTestFixture(&fakeGenerator{responses: []string{""}})
			f.seedProject("p1", "Practical Beekeeping")

			_, err := f.svc.AddSource(ctx, "p1", &AddSourceRequest{Text: "   \n "})
			So(errors.Is(err, ErrValidation), ShouldBeTrue)
		})

		Convey("AddSource on an unknown project fails with not found", func() {
			f := newTestFixture(&fakeGenerator{responses: []string{""}})

			_, err := f.svc.AddSource(ctx, "missing", &AddSourceRequest{Text: "text"})
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})

		Convey("sources keep their creation order", func() {
			f := newTestFixture(&fakeGenerator{responses: []string{""}})
			f.seedProject("p1", "Practical Beekeeping")

			for _, text := range []string{"one", "two", "three"} {
				_, err := f.svc.AddSource(ctx, "p1", &AddSourceRequest{Text: text})
				So(err, ShouldBeNil)
			}

			list, err := f.svc.ListSources(ctx, "p1")
			So(err, ShouldBeNil)
			So(len(list), ShouldEqual, 3)
			So(list[0].Text, ShouldEqual, "one")
			So(list[1].Text, ShouldEqual, "two")
			So(list[2].Text, ShouldEqual, "three")
		})
	})
}
