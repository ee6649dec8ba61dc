package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/vedran77/chirp/internal/domain"
	"github.com/vedran77/chirp/internal/metrics"
	"github.com/vedran77/chirp/internal/repository"
	"github.com/vedran77/chirp/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo repository.UserRepository
	// tokens caches token → user. Users are never mutated or deleted, so an
	// entry can only go stale by expiring.
	tokens *expirable.LRU[string, *domain.User]
}

func NewAuthService(userRepo repository.UserRepository, cacheSize int, cacheTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   expirable.NewLRU[string, *domain.User](cacheSize, nil, cacheTTL),
	}
}

type SignupInput struct {
	FirstName string `json:"firstName" validate:"required,notblank"`
	Username  string `json:"username" validate:"required,notblank"`
	Password  string `json:"password" validate:"required,notblank"`
}

type SigninInput struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required,notblank"`
}

type SigninResult struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
}

// Signup creates a user and returns its token.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (string, error) {
	if validator.Struct(input).HasErrors() {
		return "", ErrMissingFields
	}

	existing, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return "", fmt.Errorf("looking up user: %w", err)
	}
	if existing != nil {
		return "", ErrUserExists
	}

	hash, err := hashPassword(input.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		FirstName:    input.FirstName,
		Username:     input.Username,
		PasswordHash: hash,
		Token:        token,
		CanBookmark:  true,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent signup for the same username won the race.
		if errors.Is(err, repository.ErrDuplicate) {
			return "", ErrUserExists
		}
		return "", fmt.Errorf("creating user: %w", err)
	}

	metrics.SignupsTotal.Inc()
	return user.Token, nil
}

func (s *AuthService) Signin(ctx context.Context, input SigninInput) (*SigninResult, error) {
	if validator.Struct(input).HasErrors() {
		return nil, ErrMissingFields
	}

	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCreds
	}

	if !verifyPassword(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCreds
	}

	return &SigninResult{
		Token:     user.Token,
		Username:  user.Username,
		FirstName: user.FirstName,
	}, nil
}

// ResolveToken returns the user owning token, or ErrUserNotFound.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrUserNotFound
	}
	if user, ok := s.tokens.Get(token); ok {
		metrics.TokenCacheLookups.WithLabelValues("hit").Inc()
		return user, nil
	}
	metrics.TokenCacheLookups.WithLabelValues("miss").Inc()

	user, err := s.userRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("resolving token: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	s.tokens.Add(token, user)
	return user, nil
}
