package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/hostelms/backend/internal/domain/identity"
	"github.com/hostelms/backend/internal/domain/shared"
	"github.com/hostelms/backend/internal/infrastructure/auth"

	"go.uber.org/zap"
)

// AuthService handles authentication for the management console
type AuthService struct {
	userRepo   identity.Repository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo identity.Repository, jwtService *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// LoginInput contains login credentials
type LoginInput struct {
	Username string
	Password string
}

// LoginResult contains the issued token and the user it belongs to
type LoginResult struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresAt   time.Time     `json:"expires_at"`
	UserID      string        `json:"user_id"`
	Username    string        `json:"username"`
	DisplayName string        `json:"display_name"`
	Role        identity.Role `json:"role"`
}

// Login authenticates a user and returns an access token
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	// Same error for unknown user and wrong password
	if user == nil || !user.CheckPassword(input.Password) {
		s.logger.Warn("Failed login attempt", zap.String("username", input.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}
	if !user.Active {
		s.logger.Warn("Login attempt for inactive account", zap.String("username", input.Username))
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account has been deactivated")
	}

	token, err := s.jwtService.GenerateToken(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		// Login still succeeds; the timestamp is best-effort
		s.logger.Error("Failed to record login time", zap.Error(err))
	}

	s.logger.Info("User logged in", zap.String("username", user.Username))

	return &LoginResult{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		UserID:      user.ID.String(),
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Role:        user.Role,
	}, nil
}

// EnsureAdminUser creates the bootstrap admin account if it does not exist
// yet. Called on startup; a no-op when the username is already taken.
func (s *AuthService) EnsureAdminUser(ctx context.Context, username, password string) error {
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}
	if existing != nil {
		return nil
	}

	user, err := identity.NewUser(username, "Administrator", password, identity.RoleAdmin)
	if err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return fmt.Errorf("failed to save admin user: %w", err)
	}

	s.logger.Info("Bootstrap admin user created", zap.String("username", username))
	return nil
}

// ChangePasswordInput contains a password change request
type ChangePasswordInput struct {
	Username    string
	OldPassword string
	NewPassword string
}

// ChangePassword verifies the old password and sets a new one
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !user.CheckPassword(input.OldPassword) {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}
	if len(input.NewPassword) < 8 {
		return shared.NewDomainError("INVALID_INPUT", "Password must be at least 8 characters")
	}

	if err := user.SetPassword(input.NewPassword); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.userRepo.Save(ctx, user)
}
