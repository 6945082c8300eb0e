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

// PendingPaymentService parks walk-in payments taken before a student record
// exists and later reconciles them into real installment receipts
type PendingPaymentService struct {
	studentRepo student.Repository
	accountRepo ledger.FeeAccountRepository
	receiptRepo ledger.InstallmentReceiptRepository
	pendingRepo ledger.PendingPaymentRepository
}

// NewPendingPaymentService creates a new PendingPaymentService
func NewPendingPaymentService(
	studentRepo student.Repository,
	accountRepo ledger.FeeAccountRepository,
	receiptRepo ledger.InstallmentReceiptRepository,
	pendingRepo ledger.PendingPaymentRepository,
) *PendingPaymentService {
	return &PendingPaymentService{
		studentRepo: studentRepo,
		accountRepo: accountRepo,
		receiptRepo: receiptRepo,
		pendingRepo: pendingRepo,
	}
}

// CreatePendingRequest represents a walk-in payment with no student yet
type CreatePendingRequest struct {
	TempReference string
	Amount        decimal.Decimal
	PaymentDate   *time.Time // nil means now
	PaymentMode   ledger.PaymentMode
	Notes         string
	AcademicYear  string // empty means the default year for today
}

// CreatePendingResult returns the parked payment and its walk-in slip number
type CreatePendingResult struct {
	PendingID                uuid.UUID           `json:"pending_id"`
	TempReference            string              `json:"temp_reference"`
	ProvisionalReceiptNumber string              `json:"provisional_receipt_number"`
	AcademicYear             ledger.AcademicYear `json:"academic_year"`
	Amount                   decimal.Decimal     `json:"amount"`
}

// CreatePending records a payment that cannot be attached to a student yet.
// A provisional receipt number is issued for the walk-in slip; it stays on the
// pending row for cross-reference and is never reused.
func (s *PendingPaymentService) CreatePending(ctx context.Context, req CreatePendingRequest) (*CreatePendingResult, error) {
	year := ledger.DefaultAcademicYear(time.Now())
	if req.AcademicYear != "" {
		var err error
		year, err = ledger.NewAcademicYear(req.AcademicYear)
		if err != nil {
			return nil, err
		}
	}

	paymentDate := time.Now()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	pending, err := ledger.NewPendingPayment(
		req.TempReference,
		valueobject.NewMoneyINR(req.Amount),
		paymentDate,
		req.PaymentMode,
		req.Notes,
		year,
	)
	if err != nil {
		return nil, err
	}

	if err := s.pendingRepo.Create(ctx, pending); err != nil {
		return nil, err
	}

	return &CreatePendingResult{
		PendingID:                pending.ID,
		TempReference:            pending.TempReference,
		ProvisionalReceiptNumber: pending.ProvisionalReceiptNumber,
		AcademicYear:             pending.AcademicYear,
		Amount:                   pending.PaymentAmount,
	}, nil
}

// LinkPendingRequest attaches a parked payment to a registered student
type LinkPendingRequest struct {
	PendingID    uuid.UUID
	StudentID    uuid.UUID
	AcademicYear string           // empty means the year recorded on the pending payment
	TotalFee     *decimal.Decimal // required when the target year has no fee account yet
	RevisionNote string           // reason when TotalFee re-declares an existing total
	Notes        string
}

// LinkPendingResult returns the receipt minted from the parked payment
type LinkPendingResult struct {
	ReceiptID         uuid.UUID           `json:"receipt_id"`
	ReceiptNumber     string              `json:"receipt_number"`
	InstallmentNumber int                 `json:"installment_number"`
	AcademicYear      ledger.AcademicYear `json:"academic_year"`
	PaidAmount        decimal.Decimal     `json:"paid_amount"`
	PendingAmount     decimal.Decimal     `json:"pending_amount"`
	Status            ledger.FeeStatus    `json:"status"`
	FeeRevised        bool                `json:"fee_revised"`
}

// LinkPending reconciles a parked payment into a real installment receipt.
// The receipt gets a fresh number; the provisional number stays on the pending
// row. Total-fee handling follows the same rules as a directly recorded
// installment: required when the year has no account, revised with an audit
// row when re-declared. The receipt, the account update and the link flag
// commit atomically, so a pending payment can never be applied twice.
func (s *PendingPaymentService) LinkPending(ctx context.Context, req LinkPendingRequest) (*LinkPendingResult, error) {
	pending, err := s.pendingRepo.FindByID(ctx, req.PendingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending payment: %w", err)
	}
	if pending == nil {
		return nil, shared.NewDomainError("PENDING_PAYMENT_NOT_FOUND", "Pending payment not found")
	}
	if pending.IsLinked {
		return nil, shared.NewDomainError("ALREADY_LINKED", "Pending payment has already been linked to a student")
	}

	st, err := s.studentRepo.FindByID(ctx, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load student: %w", err)
	}
	if st == nil {
		return nil, shared.NewDomainError("STUDENT_NOT_FOUND", "Student not found")
	}

	year := pending.AcademicYear
	if req.AcademicYear != "" {
		year, err = ledger.NewAcademicYear(req.AcademicYear)
		if err != nil {
			return nil, err
		}
	}

	account, revision, err := loadOrOpenAccount(ctx, s.accountRepo, st.ID, year, req.TotalFee, req.RevisionNote)
	if err != nil {
		return nil, err
	}

	if err := account.ApplyPayment(pending.GetPaymentAmountMoney(), pending.PaymentDate); err != nil {
		return nil, err
	}

	count, err := s.receiptRepo.CountByStudentAndYear(ctx, st.ID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to count installments: %w", err)
	}

	notes := req.Notes
	if notes == "" {
		notes = fmt.Sprintf("Linked from walk-in payment %s (slip %s)",
			pending.TempReference, pending.ProvisionalReceiptNumber)
	}

	receipt, err := ledger.NewInstallmentReceipt(
		account,
		int(count)+1,
		"", // fresh number from the sequence, inside the transaction
		false,
		pending.GetPaymentAmountMoney(),
		pending.PaymentDate,
		pending.PaymentMode,
		notes,
	)
	if err != nil {
		return nil, err
	}

	if err := pending.Link(st.ID, receipt.ID); err != nil {
		return nil, err
	}

	if err := s.receiptRepo.CreateWithAccount(ctx, account, receipt, revision, pending); err != nil {
		return nil, err
	}

	return &LinkPendingResult{
		ReceiptID:         receipt.ID,
		ReceiptNumber:     receipt.ReceiptNumber,
		InstallmentNumber: receipt.InstallmentNumber,
		AcademicYear:      year,
		PaidAmount:        account.PaidAmount,
		PendingAmount:     account.PendingAmount,
		Status:            account.Status,
		FeeRevised:        revision != nil,
	}, nil
}

// GetPending returns one pending payment
func (s *PendingPaymentService) GetPending(ctx context.Context, id uuid.UUID) (*ledger.PendingPayment, error) {
	pending, err := s.pendingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending payment: %w", err)
	}
	if pending == nil {
		return nil, shared.NewDomainError("PENDING_PAYMENT_NOT_FOUND", "Pending payment not found")
	}
	return pending, nil
}

// ListPending lists pending payments with filtering
func (s *PendingPaymentService) ListPending(ctx context.Context, filter ledger.PendingPaymentFilter) ([]ledger.PendingPayment, error) {
	return s.pendingRepo.FindAll(ctx, filter)
}
