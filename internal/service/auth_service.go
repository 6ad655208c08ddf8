package service

import (
	"context"
	"errors"
	"fmt"

	"retail-mis-console/internal/logger"
	"retail-mis-console/internal/model"
	"retail-mis-console/internal/repository"
	"retail-mis-console/pkg/jwt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
)

const minPasswordLength = 6

// AuthService backs the authentication endpoint
type AuthService interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	ResetPassword(ctx context.Context, email, oldPassword, newPassword string) error
	SetPassword(ctx context.Context, email, newPassword string) error
	ValidateToken(ctx context.Context, tokenString string) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *jwt.Manager
	logger   *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.Manager, lg *zap.Logger) AuthService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   lg,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("user lookup failed", zap.String("email", logger.MaskEmail(email)), zap.Error(err))
		}
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, _, err := s.tokens.GenerateToken(user.ID, user.Email, user.FullName, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &AuthResult{
		Token: token,
		Role:  string(user.Role),
		Name:  user.FullName,
		Email: user.Email,
	}, nil
}

func (s *authService) ResetPassword(ctx context.Context, email, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return ErrUserNotFound
	}

	if !user.CheckPassword(oldPassword) {
		return ErrWrongPassword
	}
	return s.updatePassword(ctx, user, newPassword)
}

// SetPassword replaces a password without checking the old one. Used by operators only.
func (s *authService) SetPassword(ctx context.Context, email, newPassword string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return ErrUserNotFound
	}
	return s.updatePassword(ctx, user, newPassword)
}

func (s *authService) updatePassword(ctx context.Context, user *model.User, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return ErrWeakPassword
	}
	if err := user.SetPassword(newPassword); err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.userRepo.UpdatePassword(ctx, user.ID, user.Password)
}

func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*model.User, error) {
	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}
	return user, nil
}

type localAuthenticator struct {
	auth AuthService
}

// NewLocalAuthenticator lets the session store call the auth service in-process
func NewLocalAuthenticator(auth AuthService) Authenticator {
	return &localAuthenticator{auth: auth}
}

func (a *localAuthenticator) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	res, err := a.auth.Login(ctx, email, password)
	switch {
	case err == nil:
		return res, nil
	case errors.Is(err, ErrInvalidCredentials):
		return nil, &AuthError{Message: "Invalid email or password", Err: err}
	case errors.Is(err, ErrUserInactive):
		return nil, &AuthError{Message: "Your account is inactive", Err: err}
	default:
		return nil, &AuthError{Message: "Unable to sign in. Please try again.", Err: err}
	}
}
