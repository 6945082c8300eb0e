package ledger

import (
	"context"
	"time"

	"github.com/hostelms/backend/internal/domain/shared"

	"github.com/google/uuid"
)

// ReceiptFilter defines filtering options for receipt queries
type ReceiptFilter struct {
	shared.Filter
	StudentID    *uuid.UUID
	AcademicYear *AcademicYear
	Mode         *PaymentMode
	FromDate     *time.Time
	ToDate       *time.Time
	ManualOnly   *bool
}

// PendingPaymentFilter defines filtering options for pending payment queries
type PendingPaymentFilter struct {
	shared.Filter
	Linked       *bool
	AcademicYear *AcademicYear
}

// FeeAccountRepository defines persistence for the per-(student, year) ledger rows
type FeeAccountRepository interface {
	// FindByID finds a fee account by ID
	FindByID(ctx context.Context, id uuid.UUID) (*FeeAccount, error)

	// FindByStudentAndYear finds the unique account for a (student, academic year)
	// pair; returns nil, nil when absent
	FindByStudentAndYear(ctx context.Context, studentID uuid.UUID, year AcademicYear) (*FeeAccount, error)

	// FindByStudent lists all accounts for a student across years
	FindByStudent(ctx context.Context, studentID uuid.UUID) ([]FeeAccount, error)

	// ExistsByStudentAndYear checks for an existing account without loading it
	ExistsByStudentAndYear(ctx context.Context, studentID uuid.UUID, year AcademicYear) (bool, error)

	// Save creates or updates a fee account
	Save(ctx context.Context, account *FeeAccount) error
}

// InstallmentReceiptRepository defines persistence for the append-only receipts.
// Receipts have no update or delete path.
type InstallmentReceiptRepository interface {
	// CreateWithAccount atomically persists the updated fee account, the new
	// receipt and, when non-nil, a fee revision audit row and the linked
	// pending payment. When receipt.ReceiptNumber is empty the next
	// calendar-year sequence number is issued inside the same transaction, so
	// a failed write never burns a number. A duplicate receipt number fails
	// the whole transaction with DUPLICATE_RECEIPT_NUMBER.
	CreateWithAccount(ctx context.Context, account *FeeAccount, receipt *InstallmentReceipt, revision *FeeRevision, pending *PendingPayment) error

	// FindByReceiptNumber finds a receipt by its globally unique number
	FindByReceiptNumber(ctx context.Context, number string) (*InstallmentReceipt, error)

	// FindByStudentAndYear lists receipts for a (student, year) pair ordered by
	// installment number
	FindByStudentAndYear(ctx context.Context, studentID uuid.UUID, year AcademicYear) ([]InstallmentReceipt, error)

	// FindAll lists receipts with filtering
	FindAll(ctx context.Context, filter ReceiptFilter) ([]InstallmentReceipt, error)

	// CountByStudentAndYear counts prior receipts for installment numbering
	CountByStudentAndYear(ctx context.Context, studentID uuid.UUID, year AcademicYear) (int64, error)

	// ExistsByReceiptNumber checks global receipt-number uniqueness
	ExistsByReceiptNumber(ctx context.Context, number string) (bool, error)
}

// PendingPaymentRepository defines persistence for parked walk-in payments
type PendingPaymentRepository interface {
	// Create persists a new pending payment, issuing its provisional receipt
	// number from the calendar-year sequence in the same transaction
	Create(ctx context.Context, pending *PendingPayment) error

	// FindByID finds a pending payment by ID; returns nil, nil when absent
	FindByID(ctx context.Context, id uuid.UUID) (*PendingPayment, error)

	// FindAll lists pending payments with filtering
	FindAll(ctx context.Context, filter PendingPaymentFilter) ([]PendingPayment, error)

	// Save updates a pending payment (used outside the atomic link path)
	Save(ctx context.Context, pending *PendingPayment) error
}

// RenewalHistoryRepository defines persistence for the renewal audit trail
type RenewalHistoryRepository interface {
	// CreateWithAccount atomically appends the history row, creates the fresh
	// fee account for the new academic year, and advances the student's
	// current year and annual fee to the values on the history row. A
	// concurrent duplicate for the same (student, year) fails with
	// DUPLICATE_YEAR_RECORD and leaves the student untouched.
	CreateWithAccount(ctx context.Context, history *RenewalHistory, account *FeeAccount) error

	// FindByStudent lists renewal events for a student, newest first
	FindByStudent(ctx context.Context, studentID uuid.UUID) ([]RenewalHistory, error)
}

// FeeRevisionRepository reads the in-year fee correction audit rows
// (rows are written through InstallmentReceiptRepository.CreateWithAccount)
type FeeRevisionRepository interface {
	// FindByAccount lists revisions for a fee account, newest first
	FindByAccount(ctx context.Context, accountID uuid.UUID) ([]FeeRevision, error)
}

// SequenceRepository is the transactionally guarded counter behind receipt
// numbering. Keys follow SequenceKey; counters start at 1 on first use.
type SequenceRepository interface {
	// Next increments and returns the counter for key under a row lock in its
	// own transaction. The composite repository methods use the same
	// read-increment-write against their enclosing transaction instead, so the
	// number is never spent without the receipt that carries it.
	Next(ctx context.Context, key string) (int64, error)

	// Current returns the last issued value for key (0 when absent)
	Current(ctx context.Context, key string) (int64, error)
}
