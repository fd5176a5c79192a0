package user

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	GenerateToken(userID int64) (string, error)
}

type Service struct {
	repo   Repository
	tokens TokenIssuer
}

func NewService(repo Repository, tokens TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Login checks the credentials and returns a signed access token.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.GenerateToken(u.ID)
}

// Create stores a user with a bcrypt password hash. It backs the seed
// command; there is no public sign-up endpoint.
func (s *Service) Create(ctx context.Context, u *User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.PasswordHash = string(hash)
	return s.repo.Create(ctx, u)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}
