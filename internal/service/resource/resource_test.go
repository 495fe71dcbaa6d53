package resource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	modelresource "quill/internal/model/resource"
	"quill/internal/pkg/storage"
	bookrepo "quill/internal/repository/book"
)

type fakeRepo struct {
	resources map[string]*modelresource.Resource
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{resources: map[string]*modelresource.Resource{}}
}

func (r *fakeRepo) Create(ctx context.Context, res *modelresource.Resource) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.resources[res.ID] = res
	return nil
}

func (r *fakeRepo) FindByID(ctx context.Context, id string) (*modelresource.Resource, error) {
	res, ok := r.resources[id]
	if !ok {
		return nil, bookrepo.ErrNotFound
	}
	return res, nil
}

type fakeStorage struct {
	objects map[string][]byte
	deletes []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (s *fakeStorage) Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	b, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	s.objects[key] = b
	return "fake://" + key, nil
}

func (s *fakeStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	b, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("no such object: %s", key)
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (s *fakeStorage) GetPresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	return "fake://" + key, nil
}

func (s *fakeStorage) Delete(ctx context.Context, key string) error {
	s.deletes = append(s.deletes, key)
	delete(s.objects, key)
	return nil
}

func (s *fakeStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := s.objects[key]
	return ok, nil
}

func (s *fakeStorage) Type() string {
	return storage.TypeLocal
}

func TestService_UploadAudio(t *testing.T) {
	Convey("UploadAudio validates and stores audio files", t, func() {
		ctx := context.Background()

		Convey("an mp3 upload is stored and recorded", func() {
			repo := newFakeRepo()
			store := newFakeStorage()
			svc := newServiceWithRepo(repo, store)

			res, err := svc.UploadAudio(ctx, &UploadAudioRequest{
				FileName:    "interview.mp3",
				ContentType: "audio/mpeg",
				Size:        15,
				Data:        strings.NewReader("fake mp3 bytes!"),
			})
			So(err, ShouldBeNil)
			So(res.Ext, ShouldEqual, ".mp3")
			So(res.StorageKey, ShouldStartWith, "audio/")
			So(store.objects[res.StorageKey], ShouldResemble, []byte("fake mp3 bytes!"))
			So(repo.resources[res.ID], ShouldNotBeNil)
		})

		Convey("extension matching is case-insensitive", func() {
			svc := newServiceWithRepo(newFakeRepo(), newFakeStorage())

			res, err := svc.UploadAudio(ctx, &UploadAudioRequest{
				FileName: "Recording.WAV",
				Data:     strings.NewReader("bytes"),
			})
			So(err, ShouldBeNil)
			So(res.Ext, ShouldEqual, ".wav")
		})

		Convey("unsupported formats are rejected before any storage write", func() {
			store := newFakeStorage()
			svc := newServiceWithRepo(newFakeRepo(), store)

			_, err := svc.UploadAudio(ctx, &UploadAudioRequest{
				FileName: "notes.txt",
				Data:     strings.NewReader("text"),
			})
			So(errors.Is(err, ErrUnsupportedFormat), ShouldBeTrue)
			So(store.objects, ShouldBeEmpty)
		})

		Convey("a failed record insert removes the uploaded bytes", func() {
			repo := newFakeRepo()
			repo.createErr = errors.New("db down")
			store := newFakeStorage()
			svc := newServiceWithRepo(repo, store)

			_, err := svc.UploadAudio(ctx, &UploadAudioRequest{
				FileName: "talk.m4a",
				Data:     strings.NewReader("bytes"),
			})
			So(err, ShouldNotBeNil)
			So(len(store.deletes), ShouldEqual, 1)
			So(store.objects, ShouldBeEmpty)
		})
	})
}

func TestService_Download(t *testing.T) {
	Convey("Download opens the stored audio", t, func() {
		ctx := context.Background()
		repo := newFakeRepo()
		store := newFakeStorage()
		svc := newServiceWithRepo(repo, store)

		uploaded, err := svc.UploadAudio(ctx, &UploadAudioRequest{
			FileName: "talk.mp3",
			Data:     strings.NewReader("audio payload"),
		})
		So(err, ShouldBeNil)

		Convey("the stored bytes come back", func() {
			res, body, err := svc.Download(ctx, uploaded.ID)
			So(err, ShouldBeNil)
			defer body.Close()

			So(res.Name, ShouldEqual, "talk.mp3")
			data, _ := io.ReadAll(body)
			So(string(data), ShouldEqual, "audio payload")
		})

		Convey("an unknown resource fails with not found", func() {
			_, _, err := svc.Download(ctx, "missing")
			So(errors.Is(err, bookrepo.ErrNotFound), ShouldBeTrue)
		})
	})
}
