package ledger

import (
	"time"

	"github.com/hostelms/backend/internal/domain/shared"
	"github.com/hostelms/backend/internal/domain/shared/valueobject"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMode represents how an installment was paid
type PaymentMode string

const (
	PaymentModeCash         PaymentMode = "CASH"
	PaymentModeCheque       PaymentMode = "CHEQUE"
	PaymentModeUPI          PaymentMode = "UPI"
	PaymentModeBankTransfer PaymentMode = "BANK_TRANSFER"
	PaymentModeCard         PaymentMode = "CARD"
)

// IsValid checks if the payment mode is valid
func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentModeCash, PaymentModeCheque, PaymentModeUPI, PaymentModeBankTransfer, PaymentModeCard:
		return true
	}
	return false
}

// InstallmentReceipt is the append-only record of one payment event.
// The snapshot fields freeze the ledger state at the moment of payment for
// audit and printing; they are captured once and never recomputed.
// Receipts are immutable: there is no update or delete path.
type InstallmentReceipt struct {
	shared.BaseEntity
	ReceiptNumber      string          `json:"receipt_number"`     // globally unique, "<year>-<seq>" when auto-issued
	InstallmentNumber  int             `json:"installment_number"` // 1-based per (student, academic year)
	StudentID          uuid.UUID       `json:"student_id"`
	AcademicYear       AcademicYear    `json:"academic_year"`
	PaymentAmount      decimal.Decimal `json:"payment_amount"`
	PaymentDate        time.Time       `json:"payment_date"`
	PaymentMode        PaymentMode     `json:"payment_mode"`
	Notes              string          `json:"notes,omitempty"`
	TotalFeeSnapshot   decimal.Decimal `json:"total_fee_snapshot"`
	PaidAmountToDate   decimal.Decimal `json:"paid_amount_to_date"`
	PendingAmountAfter decimal.Decimal `json:"pending_amount_after"`
	IsManual           bool            `json:"is_manual"` // true when the caller supplied the receipt number
}

// NewInstallmentReceipt builds a receipt from a payment applied to the account.
// receiptNumber may be empty, in which case the persistence layer assigns the
// next calendar-year sequence number inside the same transaction that stores
// the receipt; manual numbers set IsManual.
func NewInstallmentReceipt(
	account *FeeAccount,
	installmentNumber int,
	receiptNumber string,
	isManual bool,
	amount valueobject.Money,
	paymentDate time.Time,
	mode PaymentMode,
	notes string,
) (*InstallmentReceipt, error) {
	if account == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Fee account is required")
	}
	if installmentNumber < 1 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Installment number must be at least 1")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment mode is not valid")
	}
	if isManual && receiptNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Manual receipts require a receipt number")
	}

	return &InstallmentReceipt{
		BaseEntity:         shared.NewBaseEntity(),
		ReceiptNumber:      receiptNumber,
		InstallmentNumber:  installmentNumber,
		StudentID:          account.StudentID,
		AcademicYear:       account.AcademicYear,
		PaymentAmount:      amount.Amount(),
		PaymentDate:        paymentDate,
		PaymentMode:        mode,
		Notes:              notes,
		TotalFeeSnapshot:   account.TotalFee,
		PaidAmountToDate:   account.PaidAmount,
		PendingAmountAfter: account.PendingAmount,
		IsManual:           isManual,
	}, nil
}

// GetPaymentAmountMoney returns the payment amount as Money
func (r *InstallmentReceipt) GetPaymentAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(r.PaymentAmount)
}
