package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hostelms/backend/internal/domain/ledger"
	"github.com/hostelms/backend/internal/domain/shared"
	"github.com/hostelms/backend/internal/infrastructure/persistence/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInstallmentReceiptRepository implements InstallmentReceiptRepository using GORM
type GormInstallmentReceiptRepository struct {
	db *gorm.DB
}

// NewGormInstallmentReceiptRepository creates a new GormInstallmentReceiptRepository
func NewGormInstallmentReceiptRepository(db *gorm.DB) *GormInstallmentReceiptRepository {
	return &GormInstallmentReceiptRepository{db: db}
}

// CreateWithAccount atomically persists the account update, the receipt and
// the optional revision and pending-payment rows. When the receipt carries no
// number yet, the next one for the current calendar year is taken from the
// locked counter row on this same transaction, so a failure further down rolls
// the number back with everything else.
func (r *GormInstallmentReceiptRepository) CreateWithAccount(
	ctx context.Context,
	account *ledger.FeeAccount,
	receipt *ledger.InstallmentReceipt,
	revision *ledger.FeeRevision,
	pending *ledger.PendingPayment,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if receipt.ReceiptNumber == "" {
			year := time.Now().Year()
			seq, err := nextSequenceValue(tx, ledger.SequenceKey(year))
			if err != nil {
				return fmt.Errorf("failed to issue receipt number: %w", err)
			}
			receipt.ReceiptNumber = ledger.FormatReceiptNumber(year, seq)
		} else {
			// Manual numbers are re-checked under the transaction; the unique
			// index is the final arbiter under concurrency.
			var count int64
			if err := tx.Model(&models.InstallmentReceiptModel{}).
				Where("receipt_number = ?", receipt.ReceiptNumber).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return shared.NewDomainError("DUPLICATE_RECEIPT_NUMBER",
					fmt.Sprintf("Receipt number %q is already in use", receipt.ReceiptNumber))
			}
		}

		if err := tx.Save(models.FeeAccountModelFromDomain(account)).Error; err != nil {
			return fmt.Errorf("failed to save fee account: %w", err)
		}

		if err := tx.Create(models.InstallmentReceiptModelFromDomain(receipt)).Error; err != nil {
			if isUniqueViolation(err) {
				return shared.NewDomainError("DUPLICATE_RECEIPT_NUMBER",
					fmt.Sprintf("Receipt number %q is already in use", receipt.ReceiptNumber))
			}
			return fmt.Errorf("failed to create receipt: %w", err)
		}

		if revision != nil {
			if err := tx.Create(models.FeeRevisionModelFromDomain(revision)).Error; err != nil {
				return fmt.Errorf("failed to create fee revision: %w", err)
			}
		}

		if pending != nil {
			if err := tx.Save(models.PendingPaymentModelFromDomain(pending)).Error; err != nil {
				return fmt.Errorf("failed to update pending payment: %w", err)
			}
		}

		return nil
	})
}

// FindByReceiptNumber finds a receipt by its globally unique number
func (r *GormInstallmentReceiptRepository) FindByReceiptNumber(ctx context.Context, number string) (*ledger.InstallmentReceipt, error) {
	var model models.InstallmentReceiptModel
	if err := r.db.WithContext(ctx).
		Where("receipt_number = ?", number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByStudentAndYear lists receipts for a (student, year) pair in installment order
func (r *GormInstallmentReceiptRepository) FindByStudentAndYear(ctx context.Context, studentID uuid.UUID, year ledger.AcademicYear) ([]ledger.InstallmentReceipt, error) {
	var receiptModels []models.InstallmentReceiptModel
	if err := r.db.WithContext(ctx).
		Where("student_id = ? AND academic_year = ?", studentID, year).
		Order("installment_number ASC").
		Find(&receiptModels).Error; err != nil {
		return nil, err
	}
	receipts := make([]ledger.InstallmentReceipt, len(receiptModels))
	for i, model := range receiptModels {
		receipts[i] = *model.ToDomain()
	}
	return receipts, nil
}

// FindAll lists receipts with filtering
func (r *GormInstallmentReceiptRepository) FindAll(ctx context.Context, filter ledger.ReceiptFilter) ([]ledger.InstallmentReceipt, error) {
	var receiptModels []models.InstallmentReceiptModel
	query := r.db.WithContext(ctx).Model(&models.InstallmentReceiptModel{})
	query = applyReceiptFilter(query, filter)

	if err := query.Find(&receiptModels).Error; err != nil {
		return nil, err
	}
	receipts := make([]ledger.InstallmentReceipt, len(receiptModels))
	for i, model := range receiptModels {
		receipts[i] = *model.ToDomain()
	}
	return receipts, nil
}

// CountByStudentAndYear counts prior receipts for installment numbering
func (r *GormInstallmentReceiptRepository) CountByStudentAndYear(ctx context.Context, studentID uuid.UUID, year ledger.AcademicYear) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.InstallmentReceiptModel{}).
		Where("student_id = ? AND academic_year = ?", studentID, year).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByReceiptNumber checks global receipt-number uniqueness
func (r *GormInstallmentReceiptRepository) ExistsByReceiptNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.InstallmentReceiptModel{}).
		Where("receipt_number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyReceiptFilter applies filter options to the query
func applyReceiptFilter(query *gorm.DB, filter ledger.ReceiptFilter) *gorm.DB {
	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}
	if filter.AcademicYear != nil {
		query = query.Where("academic_year = ?", *filter.AcademicYear)
	}
	if filter.Mode != nil {
		query = query.Where("payment_mode = ?", *filter.Mode)
	}
	if filter.FromDate != nil {
		query = query.Where("payment_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("payment_date <= ?", *filter.ToDate)
	}
	if filter.ManualOnly != nil {
		query = query.Where("is_manual = ?", *filter.ManualOnly)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("receipt_number LIKE ? OR notes LIKE ?", pattern, pattern)
	}

	query = query.Offset(filter.Offset()).Limit(filter.Limit())
	if filter.OrderBy != "" {
		query = query.Order(filter.OrderBy)
	} else {
		query = query.Order("payment_date DESC")
	}
	return query
}

// Ensure GormInstallmentReceiptRepository implements InstallmentReceiptRepository
var _ ledger.InstallmentReceiptRepository = (*GormInstallmentReceiptRepository)(nil)
