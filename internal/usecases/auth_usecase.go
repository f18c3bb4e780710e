package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"borderlesspay.backend/internal/domain/entities"
	domainerrors "borderlesspay.backend/internal/domain/errors"
	"borderlesspay.backend/internal/domain/repositories"
	"borderlesspay.backend/pkg/crypto"
	"borderlesspay.backend/pkg/jwt"
	"borderlesspay.backend/pkg/redis"
)

// AuthUsecase handles registration and login business logic
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	jwtService *jwt.Service
	sessions   *redis.SessionStore
	sessionTTL time.Duration
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	jwtService *jwt.Service,
	sessions *redis.SessionStore,
	sessionTTL time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		jwtService: jwtService,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

// Register creates a new business account
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, error) {
	_, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.ErrAlreadyExists
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:        input.Email,
		PasswordHash: passwordHash,
		BusinessName: input.BusinessName,
		Country:      input.Country,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user, issues a token pair and opens a session
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	tokenPair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	sessionID := uuid.NewString()
	if u.sessions != nil {
		data := &redis.SessionData{
			UserID:       user.ID,
			AccessToken:  tokenPair.AccessToken,
			RefreshToken: tokenPair.RefreshToken,
		}
		if err := u.sessions.CreateSession(ctx, sessionID, data, u.sessionTTL); err != nil {
			return nil, err
		}
	}

	return &entities.AuthResponse{
		User:         user,
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		SessionID:    sessionID,
	}, nil
}

// Me returns the authenticated user's profile
func (u *AuthUsecase) Me(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}

// Logout tears down a session
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if u.sessions == nil {
		return nil
	}
	return u.sessions.DeleteSession(ctx, sessionID)
}
