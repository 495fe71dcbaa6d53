package book

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

// fakeStore captures uploaded exports.
type fakeStore struct {
	key     string
	content string
}

func (s *fakeStore) Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	b, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	s.key = key
	s.content = string(b)
	return "stored://" + key, nil
}

func (s *fakeStore) GetPresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	return "https://example.test/" + key, nil
}

func TestService_ExportEbook(t *testing.T) {
	Convey("ExportEbook renders the book as Markdown", t, func() {
		ctx := context.Background()

		newFixtureWithStore := func(store ExportStore) *testFixture {
			f := newTestFixture(&fakeGenerator{responses: []string{""}})
			f.svc.store = store
			return f
		}

		Convey("drafted chapters appear in full, pending ones as stubs", func() {
			store := &fakeStore{}
			f := newFixtureWithStore(store)
			f.seedProject("p1", "Practical Beekeeping")
			f.seedChapter("c1", "p1", 1, "Getting Started", "The opening chapter text.")
			f.seedChapter("c2", "p1", 2, "The Hive", "")

			result, err := f.svc.ExportEbook(ctx, "p1")
			So(err, ShouldBeNil)
			So(result.Chapters, ShouldEqual, 2)
			So(result.Drafted, ShouldEqual, 1)
			So(result.DownloadURL, ShouldStartWith, "https://example.test/")

			So(store.content, ShouldContainSubstring, "# Practical Beekeeping")
			So(store.content, ShouldContainSubstring, "## Chapter 1: Getting Started")
			So(store.content, ShouldContainSubstring, "The opening chapter text.")
			So(store.content, ShouldContainSubstring, "## Chapter 2: The Hive")
			So(store.content, ShouldContainSubstring, "(draft pending)")
		})

		Convey("a project without chapters cannot be exported", func() {
			f := newFixtureWithStore(&fakeStore{})
			f.seedProject("p1", "Practical Beekeeping")

			_, err := f.svc.ExportEbook(ctx, "p1")
			So(errors.Is(err, ErrValidation), ShouldBeTrue)
		})

		Convey("export without a configured store is rejected", func() {
			f := newTestFixture(&fakeGenerator{responses: []string{""}})
			f.seedProject("p1", "Practical Beekeeping")
			f.seedChapter("c1", "p1", 1, "Getting Started", "text")

			_, err := f.svc.ExportEbook(ctx, "p1")
			So(errors.Is(err, ErrExportDisabled), ShouldBeTrue)
		})
	})
}
