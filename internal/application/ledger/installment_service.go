package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/hostelms/backend/internal/domain/ledger"
	"github.com/hostelms/backend/internal/domain/shared"
	"github.com/hostelms/backend/internal/domain/shared/valueobject"
	"github.com/hostelms/backend/internal/domain/student"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InstallmentService records fee installments against a student's yearly ledger
type InstallmentService struct {
	studentRepo student.Repository
	accountRepo ledger.FeeAccountRepository
	receiptRepo ledger.InstallmentReceiptRepository
}

// NewInstallmentService creates a new InstallmentService
func NewInstallmentService(
	studentRepo student.Repository,
	accountRepo ledger.FeeAccountRepository,
	receiptRepo ledger.InstallmentReceiptRepository,
) *InstallmentService {
	return &InstallmentService{
		studentRepo: studentRepo,
		accountRepo: accountRepo,
		receiptRepo: receiptRepo,
	}
}

// RecordInstallmentRequest represents a request to record one fee installment
type RecordInstallmentRequest struct {
	StudentID     uuid.UUID
	AcademicYear  string // empty means the student's current year, then the default year
	Amount        decimal.Decimal
	PaymentDate   *time.Time // nil means now
	PaymentMode   ledger.PaymentMode
	Notes         string
	ManualReceipt string           // pre-printed receipt book number; empty means auto-issue
	TotalFee      *decimal.Decimal // required on the first installment of a year
	RevisionNote  string           // reason when TotalFee re-declares an existing total
}

// RecordInstallmentResult represents the outcome of recording an installment
type RecordInstallmentResult struct {
	ReceiptID         uuid.UUID           `json:"receipt_id"`
	ReceiptNumber     string              `json:"receipt_number"`
	InstallmentNumber int                 `json:"installment_number"`
	AcademicYear      ledger.AcademicYear `json:"academic_year"`
	TotalFee          decimal.Decimal     `json:"total_fee"`
	PaidAmount        decimal.Decimal     `json:"paid_amount"`
	PendingAmount     decimal.Decimal     `json:"pending_amount"`
	Status            ledger.FeeStatus    `json:"status"`
	FeeRevised        bool                `json:"fee_revised"`
}

// RecordInstallment validates the payment, opens or updates the fee account for
// the resolved academic year, and persists the receipt atomically with the
// account update. Receipt numbers are issued inside that transaction, so a
// rejected payment never consumes a number.
func (s *InstallmentService) RecordInstallment(ctx context.Context, req RecordInstallmentRequest) (*RecordInstallmentResult, error) {
	if !req.Amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	st, err := s.studentRepo.FindByID(ctx, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load student: %w", err)
	}
	if st == nil {
		return nil, shared.NewDomainError("STUDENT_NOT_FOUND", "Student not found")
	}

	year, err := s.resolveYear(req.AcademicYear, st)
	if err != nil {
		return nil, err
	}

	// Manual receipt-book numbers share the global uniqueness rule with
	// auto-issued ones. The unique index re-checks this inside the transaction.
	if req.ManualReceipt != "" {
		exists, err := s.receiptRepo.ExistsByReceiptNumber(ctx, req.ManualReceipt)
		if err != nil {
			return nil, fmt.Errorf("failed to check receipt number: %w", err)
		}
		if exists {
			return nil, shared.NewDomainError("DUPLICATE_RECEIPT_NUMBER",
				fmt.Sprintf("Receipt number %q is already in use", req.ManualReceipt))
		}
	}

	account, revision, err := loadOrOpenAccount(ctx, s.accountRepo, st.ID, year, req.TotalFee, req.RevisionNote)
	if err != nil {
		return nil, err
	}

	paymentDate := time.Now()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	if err := account.ApplyPayment(valueobject.NewMoneyINR(req.Amount), paymentDate); err != nil {
		return nil, err
	}

	count, err := s.receiptRepo.CountByStudentAndYear(ctx, st.ID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to count installments: %w", err)
	}

	receipt, err := ledger.NewInstallmentReceipt(
		account,
		int(count)+1,
		req.ManualReceipt,
		req.ManualReceipt != "",
		valueobject.NewMoneyINR(req.Amount),
		paymentDate,
		req.PaymentMode,
		req.Notes,
	)
	if err != nil {
		return nil, err
	}

	if err := s.receiptRepo.CreateWithAccount(ctx, account, receipt, revision, nil); err != nil {
		return nil, err
	}

	return &RecordInstallmentResult{
		ReceiptID:         receipt.ID,
		ReceiptNumber:     receipt.ReceiptNumber,
		InstallmentNumber: receipt.InstallmentNumber,
		AcademicYear:      year,
		TotalFee:          account.TotalFee,
		PaidAmount:        account.PaidAmount,
		PendingAmount:     account.PendingAmount,
		Status:            account.Status,
		FeeRevised:        revision != nil,
	}, nil
}

// resolveYear picks the academic year for a payment: the explicit request
// value, else the student's current year, else the year derived from today.
func (s *InstallmentService) resolveYear(requested string, st *student.Student) (ledger.AcademicYear, error) {
	if requested != "" {
		return ledger.NewAcademicYear(requested)
	}
	if st.CurrentAcademicYear.IsValid() {
		return st.CurrentAcademicYear, nil
	}
	return ledger.DefaultAcademicYear(time.Now()), nil
}

// loadOrOpenAccount returns the fee account for (student, year), opening it
// when this is the first installment of the year. A re-declared total fee on
// an existing account becomes a revision audit row. Both direct installments
// and linked walk-in payments go through here, so the total-fee rules cannot
// drift between the two paths.
func loadOrOpenAccount(
	ctx context.Context,
	accountRepo ledger.FeeAccountRepository,
	studentID uuid.UUID,
	year ledger.AcademicYear,
	totalFee *decimal.Decimal,
	revisionNote string,
) (*ledger.FeeAccount, *ledger.FeeRevision, error) {
	account, err := accountRepo.FindByStudentAndYear(ctx, studentID, year)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load fee account: %w", err)
	}

	if account == nil {
		if totalFee == nil {
			return nil, nil, shared.NewDomainError("MISSING_TOTAL_FEE",
				fmt.Sprintf("Total fee is required for the first installment of %s", year))
		}
		account, err = ledger.NewFeeAccount(studentID, year, valueobject.NewMoneyINR(*totalFee))
		if err != nil {
			return nil, nil, err
		}
		return account, nil, nil
	}

	if totalFee == nil {
		return account, nil, nil
	}

	old, changed, err := account.ReviseTotalFee(valueobject.NewMoneyINR(*totalFee))
	if err != nil {
		return nil, nil, err
	}
	if !changed {
		return account, nil, nil
	}
	return account, ledger.NewFeeRevision(account, old, revisionNote), nil
}
