package persistence

import (
	"context"
	"errors"

	"github.com/hostelms/backend/internal/domain/identity"
	"github.com/hostelms/backend/internal/infrastructure/persistence/models"

	"gorm.io/gorm"
)

// GormUserRepository implements identity.Repository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a user
func (r *GormUserRepository) Save(ctx context.Context, u *identity.User) error {
	model := models.UserModelFromDomain(u)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormUserRepository implements identity.Repository
var _ identity.Repository = (*GormUserRepository)(nil)
