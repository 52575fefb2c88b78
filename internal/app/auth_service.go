package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"blogapi/internal/model"
	"blogapi/internal/pkg/jwtutil"
	"blogapi/internal/repository"
)

// TokenTTL is the fixed lifetime of issued session tokens.
const TokenTTL = 24 * time.Hour

type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

type AuthService struct {
	userRepo  *repository.UserRepository
	jwtSecret string
	revoker   TokenRevoker

	dummyOnce sync.Once
	dummyHash string
}

type RegisterInput struct {
	Username string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

type AuthResult struct {
	Token string
	User  *model.User
}

// NewAuthService wires the credential store and signing secret. revoker may be
// nil, in which case logout is client-side only.
func NewAuthService(userRepo *repository.UserRepository, jwtSecret string, revoker TokenRevoker) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		revoker:   revoker,
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	username, err := normalizeUsername(input.Username)
	if err != nil {
		return nil, err
	}
	if err := checkPasswordStrength(input.Password); err != nil {
		return nil, err
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Burn the same bcrypt work as a real comparison.
		verifyPassword(s.dummyPasswordHash(), input.Password)
		return nil, ErrInvalidCredentials
	}

	if !verifyPassword(user.PasswordHash, input.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, TokenTTL, user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Logout revokes the presented token for the rest of its lifetime when a
// revocation store is configured. It reports whether the token was revoked.
func (s *AuthService) Logout(ctx context.Context, claims *jwtutil.Claims) (bool, error) {
	if s.revoker == nil || claims == nil {
		return false, nil
	}
	if err := s.revoker.Revoke(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		return false, err
	}
	return true, nil
}

func (s *AuthService) dummyPasswordHash() string {
	s.dummyOnce.Do(func() {
		hash, err := hashPassword("dummy-Passw0rd!")
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}
