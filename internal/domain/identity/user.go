package identity

import (
	"context"
	"time"

	"github.com/hostelms/backend/internal/domain/shared"

	"golang.org/x/crypto/bcrypt"
)

// Role is the coarse permission level of a login user
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleClerk Role = "CLERK" // front-desk: payments and registrations
)

// User is a staff login for the management console
type User struct {
	shared.BaseAggregateRoot
	Username     string     `json:"username"`
	DisplayName  string     `json:"display_name"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Active       bool       `json:"active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// NewUser creates a user with a bcrypt-hashed password
func NewUser(username, displayName, password string, role Role) (*User, error) {
	if username == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Username cannot be empty")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Password must be at least 8 characters")
	}
	if role != RoleAdmin && role != RoleClerk {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown role")
	}

	u := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		DisplayName:       displayName,
		Role:              role,
		Active:            true,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword hashes and stores a new password
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.Touch()
	return nil
}

// CheckPassword verifies a candidate password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// RecordLogin stamps a successful login
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// Repository defines the interface for user persistence
type Repository interface {
	// FindByUsername finds a user by username; returns nil, nil when absent
	FindByUsername(ctx context.Context, username string) (*User, error)

	// Save creates or updates a user
	Save(ctx context.Context, u *User) error
}
