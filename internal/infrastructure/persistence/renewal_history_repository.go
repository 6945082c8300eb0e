package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/hostelms/backend/internal/domain/ledger"
	"github.com/hostelms/backend/internal/domain/shared"
	"github.com/hostelms/backend/internal/infrastructure/persistence/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRenewalHistoryRepository implements RenewalHistoryRepository using GORM
type GormRenewalHistoryRepository struct {
	db *gorm.DB
}

// NewGormRenewalHistoryRepository creates a new GormRenewalHistoryRepository
func NewGormRenewalHistoryRepository(db *gorm.DB) *GormRenewalHistoryRepository {
	return &GormRenewalHistoryRepository{db: db}
}

// CreateWithAccount atomically appends the renewal history row, creates the
// fresh fee account for the new year, and advances the student's current year
// and annual fee to the values recorded on the history row. A failure at any
// step rolls the whole renewal back, so the student can never point at a year
// that has no account. The unique index on (student_id, academic_year) catches
// concurrent renewals that slipped past the service-level existence check.
func (r *GormRenewalHistoryRepository) CreateWithAccount(ctx context.Context, history *ledger.RenewalHistory, account *ledger.FeeAccount) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.FeeAccountModelFromDomain(account)).Error; err != nil {
			if isUniqueViolation(err) {
				return shared.NewDomainError("DUPLICATE_YEAR_RECORD",
					fmt.Sprintf("A fee account for academic year %s already exists for this student", account.AcademicYear))
			}
			return fmt.Errorf("failed to create fee account: %w", err)
		}
		if err := tx.Create(models.RenewalHistoryModelFromDomain(history)).Error; err != nil {
			return fmt.Errorf("failed to create renewal history: %w", err)
		}
		res := tx.Model(&models.StudentModel{}).
			Where("id = ?", history.StudentID).
			Updates(map[string]interface{}{
				"current_academic_year": history.NewAcademicYear,
				"annual_fee":            history.NewTotalFee,
				"version":               gorm.Expr("version + 1"),
				"updated_at":            time.Now(),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to advance student year: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return shared.NewDomainError("STUDENT_NOT_FOUND", "Student not found")
		}
		return nil
	})
}

// FindByStudent lists renewal events for a student, newest first
func (r *GormRenewalHistoryRepository) FindByStudent(ctx context.Context, studentID uuid.UUID) ([]ledger.RenewalHistory, error) {
	var historyModels []models.RenewalHistoryModel
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("renewal_date DESC").
		Find(&historyModels).Error; err != nil {
		return nil, err
	}
	histories := make([]ledger.RenewalHistory, len(historyModels))
	for i, model := range historyModels {
		histories[i] = *model.ToDomain()
	}
	return histories, nil
}

// Ensure GormRenewalHistoryRepository implements RenewalHistoryRepository
var _ ledger.RenewalHistoryRepository = (*GormRenewalHistoryRepository)(nil)
