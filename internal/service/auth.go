package service

import (
	"context"
	"errors"
	"fmt"
	"print3d-shop/internal/model"
	"print3d-shop/internal/repository"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (*model.Session, error)
	Login(ctx context.Context, username, password string) (*model.Session, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (string, error)
}

type authServiceImpl struct {
	accountRepo repository.AccountRepository
	sessionRepo repository.SessionRepository
	sessionTTL  time.Duration
}

func NewAuthService(
	accountRepo repository.AccountRepository,
	sessionRepo repository.SessionRepository,
	sessionTTL time.Duration,
) AuthService {
	return &authServiceImpl{
		accountRepo: accountRepo,
		sessionRepo: sessionRepo,
		sessionTTL:  sessionTTL,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, username, password string) (*model.Session, error) {
	_, err := s.accountRepo.FindByUsername(ctx, username)
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{
		Username: username,
		Password: string(hash),
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		// raced registration lands on the unique index
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	logrus.WithField("username", username).Info("account registered")

	return s.createSession(ctx, username)
}

func (s *authServiceImpl) Login(ctx context.Context, username, password string) (*model.Session, error) {
	account, err := s.accountRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)) != nil {
		logrus.WithField("username", username).Warn("login failed: wrong password")
		return nil, ErrInvalidCredentials
	}

	return s.createSession(ctx, account.Username)
}

// Logout destroys the session row. A token that no longer resolves is fine,
// logout stays idempotent.
func (s *authServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessionRepo.Delete(ctx, token)
}

func (s *authServiceImpl) CurrentUser(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrSessionNotFound
	}

	session, err := s.sessionRepo.Find(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrSessionNotFound
		}
		return "", fmt.Errorf("lookup session: %w", err)
	}

	if session.ExpiresAt.Before(time.Now()) {
		return "", ErrSessionNotFound
	}

	return session.Username, nil
}

func (s *authServiceImpl) createSession(ctx context.Context, username string) (*model.Session, error) {
	session := &model.Session{
		Token:     uuid.NewString(),
		Username:  username,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}
