package ledger

import (
	"time"

	"github.com/hostelms/backend/internal/domain/shared"
	"github.com/hostelms/backend/internal/domain/shared/valueobject"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PendingPayment parks a walk-in payment taken before the student record
// exists. It is mutated exactly once, when the payment is reconciled into a
// real installment receipt; it is never deleted.
type PendingPayment struct {
	shared.BaseAggregateRoot
	TempReference            string          `json:"temp_reference"` // caller-assigned slip reference
	PaymentAmount            decimal.Decimal `json:"payment_amount"`
	PaymentDate              time.Time       `json:"payment_date"`
	PaymentMode              PaymentMode     `json:"payment_mode"`
	Notes                    string          `json:"notes,omitempty"`
	AcademicYear             AcademicYear    `json:"academic_year"`
	ProvisionalReceiptNumber string          `json:"provisional_receipt_number"` // issued for the walk-in slip, never reused
	IsLinked                 bool            `json:"is_linked"`
	LinkedStudentID          *uuid.UUID      `json:"linked_student_id,omitempty"`
	LinkedReceiptID          *uuid.UUID      `json:"linked_receipt_id,omitempty"`
	LinkedAt                 *time.Time      `json:"linked_at,omitempty"`
}

// NewPendingPayment records a payment that has no student to attach to yet.
// The provisional receipt number for the walk-in slip is assigned by the
// persistence layer from the same calendar-year sequence as real receipts.
func NewPendingPayment(
	tempReference string,
	amount valueobject.Money,
	paymentDate time.Time,
	mode PaymentMode,
	notes string,
	year AcademicYear,
) (*PendingPayment, error) {
	if tempReference == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Temp reference is required for a pending payment")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment mode is not valid")
	}
	if !year.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid academic year")
	}

	return &PendingPayment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TempReference:     tempReference,
		PaymentAmount:     amount.Amount(),
		PaymentDate:       paymentDate,
		PaymentMode:       mode,
		Notes:             notes,
		AcademicYear:      year,
	}, nil
}

// Link marks the pending payment as reconciled into a real receipt.
// A pending payment can be linked at most once.
func (p *PendingPayment) Link(studentID, receiptID uuid.UUID) error {
	if p.IsLinked {
		return shared.NewDomainError("ALREADY_LINKED", "Pending payment has already been linked to a student")
	}
	if studentID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Student ID cannot be empty")
	}
	if receiptID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Receipt ID cannot be empty")
	}

	now := time.Now()
	p.IsLinked = true
	p.LinkedStudentID = &studentID
	p.LinkedReceiptID = &receiptID
	p.LinkedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()
	return nil
}

// GetPaymentAmountMoney returns the parked amount as Money
func (p *PendingPayment) GetPaymentAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(p.PaymentAmount)
}
