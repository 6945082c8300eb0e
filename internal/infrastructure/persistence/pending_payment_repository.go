package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hostelms/backend/internal/domain/ledger"
	"github.com/hostelms/backend/internal/infrastructure/persistence/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPendingPaymentRepository implements PendingPaymentRepository using GORM
type GormPendingPaymentRepository struct {
	db *gorm.DB
}

// NewGormPendingPaymentRepository creates a new GormPendingPaymentRepository
func NewGormPendingPaymentRepository(db *gorm.DB) *GormPendingPaymentRepository {
	return &GormPendingPaymentRepository{db: db}
}

// Create persists a new pending payment. The provisional receipt number for
// the walk-in slip comes from the same calendar-year counter as real receipts,
// issued on this transaction so it is not spent if the insert fails.
func (r *GormPendingPaymentRepository) Create(ctx context.Context, pending *ledger.PendingPayment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if pending.ProvisionalReceiptNumber == "" {
			year := time.Now().Year()
			seq, err := nextSequenceValue(tx, ledger.SequenceKey(year))
			if err != nil {
				return fmt.Errorf("failed to issue provisional receipt number: %w", err)
			}
			pending.ProvisionalReceiptNumber = ledger.FormatReceiptNumber(year, seq)
		}
		if err := tx.Create(models.PendingPaymentModelFromDomain(pending)).Error; err != nil {
			return fmt.Errorf("failed to create pending payment: %w", err)
		}
		return nil
	})
}

// FindByID finds a pending payment by its ID
func (r *GormPendingPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.PendingPayment, error) {
	var model models.PendingPaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists pending payments with filtering
func (r *GormPendingPaymentRepository) FindAll(ctx context.Context, filter ledger.PendingPaymentFilter) ([]ledger.PendingPayment, error) {
	var pendingModels []models.PendingPaymentModel
	query := r.db.WithContext(ctx).Model(&models.PendingPaymentModel{})

	if filter.Linked != nil {
		query = query.Where("is_linked = ?", *filter.Linked)
	}
	if filter.AcademicYear != nil {
		query = query.Where("academic_year = ?", *filter.AcademicYear)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("temp_reference LIKE ? OR provisional_receipt_number LIKE ?", pattern, pattern)
	}

	query = query.Offset(filter.Offset()).Limit(filter.Limit())
	if filter.OrderBy != "" {
		query = query.Order(filter.OrderBy)
	} else {
		query = query.Order("payment_date DESC")
	}

	if err := query.Find(&pendingModels).Error; err != nil {
		return nil, err
	}
	pendings := make([]ledger.PendingPayment, len(pendingModels))
	for i, model := range pendingModels {
		pendings[i] = *model.ToDomain()
	}
	return pendings, nil
}

// Save updates a pending payment
func (r *GormPendingPaymentRepository) Save(ctx context.Context, pending *ledger.PendingPayment) error {
	model := models.PendingPaymentModelFromDomain(pending)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormPendingPaymentRepository implements PendingPaymentRepository
var _ ledger.PendingPaymentRepository = (*GormPendingPaymentRepository)(nil)
