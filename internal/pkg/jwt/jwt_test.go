package jwt

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestJWT(t *testing.T) {
	Convey("JWT issues and validates access tokens", t, func() {
		j := NewJWT("test-secret", time.Hour)

		Convey("a generated token round-trips its claims", func() {
			token, err := j.GenerateToken("user-1", "a@example.com")
			So(err, ShouldBeNil)
			So(token, ShouldNotBeEmpty)

			claims, err := j.ValidateToken(token)
			So(err, ShouldBeNil)
			So(claims.UserID, ShouldEqual, "user-1")
			So(claims.Email, ShouldEqual, "a@example.com")
		})

		Convey("a token signed with another secret is rejected", func() {
			other := NewJWT("different-secret", time.Hour)
			token, _ := other.GenerateToken("user-1", "a@example.com")

			_, err := j.ValidateToken(token)
			So(err, ShouldEqual, ErrInvalidToken)
		})

		Convey("an expired token is rejected", func() {
			expired := NewJWT("test-secret", -time.Minute)
			token, _ := expired.GenerateToken("user-1", "a@example.com")

			_, err := j.ValidateToken(token)
			So(err, ShouldEqual, ErrExpiredToken)
		})

		Convey("garbage input is rejected", func() {
			_, err := j.ValidateToken("not-a-token")
			So(err, ShouldEqual, ErrInvalidToken)
		})
	})
}
