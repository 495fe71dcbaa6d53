package transcribe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestClient_Transcribe(t *testing.T) {
	Convey("Client.Transcribe calls the hosted speech-to-text API", t, func() {
		ctx := context.Background()

		Convey("a successful response yields the transcript text", func() {
			var gotPath, gotAuth, gotModel string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotAuth = r.Header.Get("Authorization")
				if err := r.ParseMultipartForm(1 << 20); err == nil {
					gotModel = r.FormValue("model")
				}
				w.Write([]byte(`{"text": "hello from the recording"}`))
			}))
			defer srv.Close()

			client, err := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL})
			So(err, ShouldBeNil)

			text, err := client.Transcribe(ctx, strings.NewReader("fake-audio-bytes"), "talk.mp3")
			So(err, ShouldBeNil)
			So(text, ShouldEqual, "hello from the recording")
			So(gotPath, ShouldEqual, "/audio/transcriptions")
			So(gotAuth, ShouldEqual, "Bearer test-key")
			So(gotModel, ShouldEqual, defaultModel)
		})

		Convey("an API error surfaces its message", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error": {"message": "bad api key", "type": "auth"}}`))
			}))
			defer srv.Close()

			client, _ := NewClient(Config{APIKey: "wrong", BaseURL: srv.URL})

			_, err := client.Transcribe(ctx, strings.NewReader("audio"), "talk.mp3")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "bad api key")
		})

		Convey("a non-JSON response fails with the status code", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte("upstream gateway error"))
			}))
			defer srv.Close()

			client, _ := NewClient(Config{APIKey: "k", BaseURL: srv.URL})

			_, err := client.Transcribe(ctx, strings.NewReader("audio"), "talk.mp3")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "502")
		})

		Convey("an empty transcript is an error", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"text": ""}`))
			}))
			defer srv.Close()

			client, _ := NewClient(Config{APIKey: "k", BaseURL: srv.URL})

			_, err := client.Transcribe(ctx, strings.NewReader("audio"), "talk.mp3")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "empty transcript")
		})

		Convey("a missing API key is rejected at construction", func() {
			_, err := NewClient(Config{})
			So(err, ShouldNotBeNil)
		})
	})
}
