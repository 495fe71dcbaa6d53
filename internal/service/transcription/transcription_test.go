package transcription

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	modelbook "quill/internal/model/book"
	modelresource "quill/internal/model/resource"
	bookservice "quill/internal/service/book"
	resourceservice "quill/internal/service/resource"
)

// Fakes embed the service interfaces and override only what the
// transcription flow touches.

type fakeBooks struct {
	bookservice.Service
	projectErr error
	added      []*bookservice.AddSourceRequest
}

func (f *fakeBooks) GetProject(ctx context.Context, projectID string) (*modelbook.Project, error) {
	if f.projectErr != nil {
		return nil, f.projectErr
	}
	return &modelbook.Project{ID: projectID, Title: "A Book"}, nil
}

func (f *fakeBooks) AddSource(ctx context.Context, projectID string, req *bookservice.AddSourceRequest) (*modelbook.SourceDocument, error) {
	f.added = append(f.added, req)
	return &modelbook.SourceDocument{
		ID:        "src-1",
		ProjectID: projectID,
		Label:     req.Label,
		Text:      req.Text,
	}, nil
}

type fakeResources struct {
	resourceservice.Service
	res  *modelresource.Resource
	data string
	err  error
}

func (f *fakeResources) Download(ctx context.Context, resourceID string) (*modelresource.Resource, io.ReadCloser, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.res, io.NopCloser(strings.NewReader(f.data)), nil
}

type fakeTranscriber struct {
	text  string
	err   error
	calls int
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func TestService_TranscribeToSource(t *testing.T) {
	Convey("TranscribeToSource turns audio into a source document", t, func() {
		ctx := context.Background()
		res := &modelresource.Resource{ID: "r1", Name: "interview.mp3"}

		Convey("the transcript is appended to the project", func() {
			books := &fakeBooks{}
			svc := NewService(
				&fakeResources{res: res, data: "audio bytes"},
				books,
				&fakeTranscriber{text: "what was said in the interview"},
			)

			doc, err := svc.TranscribeToSource(ctx, &TranscribeRequest{
				ResourceID: "r1",
				ProjectID:  "p1",
				Label:      "episode one",
			})
			So(err, ShouldBeNil)
			So(doc.Text, ShouldEqual, "what was said in the interview")
			So(doc.Label, ShouldEqual, "episode one")
			So(len(books.added), ShouldEqual, 1)
		})

		Convey("a blank label falls back to the file name", func() {
			books := &fakeBooks{}
			svc := NewService(
				&fakeResources{res: res, data: "audio"},
				books,
				&fakeTranscriber{text: "transcript"},
			)

			doc, err := svc.TranscribeToSource(ctx, &TranscribeRequest{
				ResourceID: "r1",
				ProjectID:  "p1",
			})
			So(err, ShouldBeNil)
			So(doc.Label, ShouldEqual, "interview.mp3")
		})

		Convey("an unknown project fails before transcription", func() {
			tr := &fakeTranscriber{text: "transcript"}
			svc := NewService(
				&fakeResources{res: res, data: "audio"},
				&fakeBooks{projectErr: bookservice.ErrNotFound},
				tr,
			)

			_, err := svc.TranscribeToSource(ctx, &TranscribeRequest{
				ResourceID: "r1",
				ProjectID:  "missing",
			})
			So(errors.Is(err, bookservice.ErrNotFound), ShouldBeTrue)
			So(tr.calls, ShouldEqual, 0)
		})

		Convey("a transcription failure adds nothing to the project", func() {
			books := &fakeBooks{}
			svc := NewService(
				&fakeResources{res: res, data: "audio"},
				books,
				&fakeTranscriber{err: errors.New("stt down")},
			)

			_, err := svc.TranscribeToSource(ctx, &TranscribeRequest{
				ResourceID: "r1",
				ProjectID:  "p1",
			})
			So(errors.Is(err, bookservice.ErrUpstream), ShouldBeTrue)
			So(books.added, ShouldBeEmpty)
		})
	})
}
