package ledger

import (
	"fmt"
	"time"

	"github.com/hostelms/backend/internal/domain/shared"
	"github.com/hostelms/backend/internal/domain/shared/valueobject"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FeeStatus is derived from the paid/pending amounts, never stored-and-trusted
type FeeStatus string

const (
	FeeStatusUnpaid        FeeStatus = "UNPAID"         // No payment received yet
	FeeStatusPartiallyPaid FeeStatus = "PARTIALLY_PAID" // 0 < paid < total
	FeeStatusPaid          FeeStatus = "PAID"           // Nothing pending
)

// IsValid checks if the status is a valid FeeStatus
func (s FeeStatus) IsValid() bool {
	switch s {
	case FeeStatusUnpaid, FeeStatusPartiallyPaid, FeeStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of FeeStatus
func (s FeeStatus) String() string {
	return string(s)
}

// DeriveFeeStatus computes the status from paid and pending amounts
func DeriveFeeStatus(paid, pending decimal.Decimal) FeeStatus {
	switch {
	case paid.IsZero():
		return FeeStatusUnpaid
	case pending.IsZero():
		return FeeStatusPaid
	default:
		return FeeStatusPartiallyPaid
	}
}

// FeeAccount is the running ledger row for one (student, academic year) pair.
// It tracks the agreed total fee and the sum of installments received against it.
// One row per year is the historical record; rows are never deleted by normal flow.
type FeeAccount struct {
	shared.BaseAggregateRoot
	StudentID       uuid.UUID       `json:"student_id"`
	AcademicYear    AcademicYear    `json:"academic_year"`
	TotalFee        decimal.Decimal `json:"total_fee"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	PendingAmount   decimal.Decimal `json:"pending_amount"`
	Status          FeeStatus       `json:"status"`
	LastPaymentDate *time.Time      `json:"last_payment_date"`
}

// NewFeeAccount opens a fee account with nothing paid yet.
// The total fee is required and must be positive.
func NewFeeAccount(studentID uuid.UUID, year AcademicYear, totalFee valueobject.Money) (*FeeAccount, error) {
	if studentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Student ID cannot be empty")
	}
	if !year.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid academic year %q", year))
	}
	if !totalFee.IsPositive() {
		return nil, shared.NewDomainError("MISSING_TOTAL_FEE", "A positive total fee is required to open a fee account")
	}

	a := &FeeAccount{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StudentID:         studentID,
		AcademicYear:      year,
		TotalFee:          totalFee.Amount(),
		PaidAmount:        decimal.Zero,
	}
	a.recalculate()
	return a, nil
}

// ApplyPayment adds an installment amount to the running total.
// Overpayment is allowed; pending simply clamps to zero.
func (a *FeeAccount) ApplyPayment(amount valueobject.Money, paymentDate time.Time) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	a.PaidAmount = a.PaidAmount.Add(amount.Amount())
	a.LastPaymentDate = &paymentDate
	a.recalculate()
	a.Touch()
	a.IncrementVersion()
	return nil
}

// ReviseTotalFee overwrites the declared total fee, e.g. to correct a wrong
// declaration on a later installment. Returns the previous value and whether
// anything actually changed so callers can write an audit row.
func (a *FeeAccount) ReviseTotalFee(newTotal valueobject.Money) (decimal.Decimal, bool, error) {
	if !newTotal.IsPositive() {
		return decimal.Zero, false, shared.NewDomainError("INVALID_AMOUNT", "Total fee must be positive")
	}
	old := a.TotalFee
	if old.Equal(newTotal.Amount()) {
		return old, false, nil
	}
	a.TotalFee = newTotal.Amount()
	a.recalculate()
	a.Touch()
	a.IncrementVersion()
	return old, true, nil
}

// recalculate re-derives pending amount and status from total and paid.
// pending = max(total - paid, 0); a total revised below paid clamps to zero.
func (a *FeeAccount) recalculate() {
	pending := a.TotalFee.Sub(a.PaidAmount)
	if pending.IsNegative() {
		pending = decimal.Zero
	}
	a.PendingAmount = pending
	a.Status = DeriveFeeStatus(a.PaidAmount, a.PendingAmount)
}

// IsPaid returns true when nothing is pending
func (a *FeeAccount) IsPaid() bool {
	return a.Status == FeeStatusPaid
}

// GetTotalFeeMoney returns the total fee as Money
func (a *FeeAccount) GetTotalFeeMoney() valueobject.Money {
	return valueobject.NewMoneyINR(a.TotalFee)
}

// GetPaidAmountMoney returns the paid amount as Money
func (a *FeeAccount) GetPaidAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(a.PaidAmount)
}

// GetPendingAmountMoney returns the pending amount as Money
func (a *FeeAccount) GetPendingAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(a.PendingAmount)
}
