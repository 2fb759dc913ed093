package users

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"contract-backend/internal/shared/auth"
)

var (
	ErrInvalidInput       = errors.New("invalid signup input")
	ErrInvalidCredentials = errors.New("invalid login id or password")
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Signup registers a new user and returns it with the password hash cleared.
func (s *Service) Signup(ctx context.Context, loginID, userName, password string) (User, error) {
	loginID = strings.TrimSpace(loginID)
	userName = strings.TrimSpace(userName)
	if loginID == "" || userName == "" || len(password) < 4 {
		return User{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.NewString(),
		LoginID:      loginID,
		UserName:     userName,
		PasswordHash: string(hash),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}

// Login checks credentials and issues a signed token for the session.
func (s *Service) Login(ctx context.Context, loginID, password string) (User, string, error) {
	user, err := s.Repo.GetByLoginID(ctx, strings.TrimSpace(loginID))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, "", ErrInvalidCredentials
		}
		return User{}, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return User{}, "", ErrInvalidCredentials
	}

	token, err := auth.SignJWT(auth.Claims{Sub: user.ID, Name: user.UserName})
	if err != nil {
		return User{}, "", err
	}
	user.PasswordHash = ""
	return user, token, nil
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}
