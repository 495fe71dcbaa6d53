package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"quill/internal/model/auth"
	"quill/internal/pkg/id"
	"quill/internal/pkg/jwt"
	"quill/internal/pkg/password"
	authrepo "quill/internal/repository/auth"
	bookrepo "quill/internal/repository/book"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Service handles account registration and login.
type Service interface {
	Register(ctx context.Context, email, plainPassword string) (*auth.User, error)
	// Login returns the user and a signed access token.
	Login(ctx context.Context, email, plainPassword string) (*auth.User, string, error)
	GetUser(ctx context.Context, userID string) (*auth.User, error)
}

type service struct {
	repo authrepo.UserRepository
	jwt  *jwt.JWT
}

// NewService creates the auth service.
func NewService(db *mongo.Database, tokens *jwt.JWT) Service {
	return &service{
		repo: authrepo.NewUserRepo(db),
		jwt:  tokens,
	}
}

func (s *service) Register(ctx context.Context, email, plainPassword string) (*auth.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, bookrepo.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &auth.User{
		ID:           id.New(),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

func (s *service) Login(ctx context.Context, email, plainPassword string) (*auth.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, bookrepo.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if !password.Verify(plainPassword, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}
	return user, token, nil
}

func (s *service) GetUser(ctx context.Context, userID string) (*auth.User, error) {
	return s.repo.FindByID(ctx, userID)
}
