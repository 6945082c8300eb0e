package ledger

import (
	"time"

	"github.com/hostelms/backend/internal/domain/shared"
	"github.com/hostelms/backend/internal/domain/shared/valueobject"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RenewalAction distinguishes a plain renewal from a promotion to the next class
type RenewalAction string

const (
	RenewalActionRenewed  RenewalAction = "RENEWED"
	RenewalActionPromoted RenewalAction = "PROMOTED"
)

// IsValid checks if the action is valid
func (a RenewalAction) IsValid() bool {
	return a == RenewalActionRenewed || a == RenewalActionPromoted
}

// RenewalHistory is the append-only audit trail of year-to-year renewals and
// promotions. Rows are never mutated.
type RenewalHistory struct {
	shared.BaseEntity
	StudentID            uuid.UUID       `json:"student_id"`
	PreviousAcademicYear AcademicYear    `json:"previous_academic_year"`
	NewAcademicYear      AcademicYear    `json:"new_academic_year"`
	OldTotalFee          decimal.Decimal `json:"old_total_fee"`
	NewTotalFee          decimal.Decimal `json:"new_total_fee"`
	Action               RenewalAction   `json:"action"`
	Remarks              string          `json:"remarks,omitempty"`
	RenewalDate          time.Time       `json:"renewal_date"`
}

// NewRenewalHistory captures one renewal/promotion event
func NewRenewalHistory(
	studentID uuid.UUID,
	previousYear, newYear AcademicYear,
	oldTotalFee decimal.Decimal,
	newTotalFee valueobject.Money,
	action RenewalAction,
	remarks string,
) (*RenewalHistory, error) {
	if studentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Student ID cannot be empty")
	}
	if !newYear.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid new academic year")
	}
	if !action.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Renewal action must be RENEWED or PROMOTED")
	}
	if !newTotalFee.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "New total fee must be positive")
	}

	return &RenewalHistory{
		BaseEntity:           shared.NewBaseEntity(),
		StudentID:            studentID,
		PreviousAcademicYear: previousYear,
		NewAcademicYear:      newYear,
		OldTotalFee:          oldTotalFee,
		NewTotalFee:          newTotalFee.Amount(),
		Action:               action,
		Remarks:              remarks,
		RenewalDate:          time.Now(),
	}, nil
}
