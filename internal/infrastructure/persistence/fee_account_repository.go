package persistence

import (
	"context"
	"errors"

	"github.com/hostelms/backend/internal/domain/ledger"
	"github.com/hostelms/backend/internal/infrastructure/persistence/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFeeAccountRepository implements FeeAccountRepository using GORM
type GormFeeAccountRepository struct {
	db *gorm.DB
}

// NewGormFeeAccountRepository creates a new GormFeeAccountRepository
func NewGormFeeAccountRepository(db *gorm.DB) *GormFeeAccountRepository {
	return &GormFeeAccountRepository{db: db}
}

// FindByID finds a fee account by its ID
func (r *GormFeeAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.FeeAccount, error) {
	var model models.FeeAccountModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByStudentAndYear finds the unique account for a (student, year) pair
func (r *GormFeeAccountRepository) FindByStudentAndYear(ctx context.Context, studentID uuid.UUID, year ledger.AcademicYear) (*ledger.FeeAccount, error) {
	var model models.FeeAccountModel
	if err := r.db.WithContext(ctx).
		Where("student_id = ? AND academic_year = ?", studentID, year).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByStudent lists all accounts for a student across years, newest year first
func (r *GormFeeAccountRepository) FindByStudent(ctx context.Context, studentID uuid.UUID) ([]ledger.FeeAccount, error) {
	var accountModels []models.FeeAccountModel
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("academic_year DESC").
		Find(&accountModels).Error; err != nil {
		return nil, err
	}
	accounts := make([]ledger.FeeAccount, len(accountModels))
	for i, model := range accountModels {
		accounts[i] = *model.ToDomain()
	}
	return accounts, nil
}

// ExistsByStudentAndYear checks for an existing account without loading it
func (r *GormFeeAccountRepository) ExistsByStudentAndYear(ctx context.Context, studentID uuid.UUID, year ledger.AcademicYear) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.FeeAccountModel{}).
		Where("student_id = ? AND academic_year = ?", studentID, year).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a fee account
func (r *GormFeeAccountRepository) Save(ctx context.Context, account *ledger.FeeAccount) error {
	model := models.FeeAccountModelFromDomain(account)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormFeeAccountRepository implements FeeAccountRepository
var _ ledger.FeeAccountRepository = (*GormFeeAccountRepository)(nil)
