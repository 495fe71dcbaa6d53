package auth

import (
	"time"

	modelauth "quill/internal/model/auth"
	httputil "quill/internal/pkg/http"
)

// ErrorResponse is the shared error body.
type ErrorResponse = httputil.ErrorResponse

// UserInfo is the account DTO.
type UserInfo struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

func toUserInfo(u *modelauth.User) UserInfo {
	return UserInfo{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}
