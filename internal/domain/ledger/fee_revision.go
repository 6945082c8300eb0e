package ledger

import (
	"time"

	"github.com/hostelms/backend/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FeeRevision audits an in-year correction of a fee account's total fee.
// Renewals already audit through RenewalHistory; this covers the case where a
// later installment re-declares the total for the same year.
type FeeRevision struct {
	shared.BaseEntity
	FeeAccountID uuid.UUID       `json:"fee_account_id"`
	StudentID    uuid.UUID       `json:"student_id"`
	AcademicYear AcademicYear    `json:"academic_year"`
	OldTotalFee  decimal.Decimal `json:"old_total_fee"`
	NewTotalFee  decimal.Decimal `json:"new_total_fee"`
	Note         string          `json:"note,omitempty"`
	RevisedAt    time.Time       `json:"revised_at"`
}

// NewFeeRevision captures one total-fee correction on an existing account
func NewFeeRevision(account *FeeAccount, oldTotal decimal.Decimal, note string) *FeeRevision {
	return &FeeRevision{
		BaseEntity:   shared.NewBaseEntity(),
		FeeAccountID: account.ID,
		StudentID:    account.StudentID,
		AcademicYear: account.AcademicYear,
		OldTotalFee:  oldTotal,
		NewTotalFee:  account.TotalFee,
		Note:         note,
		RevisedAt:    time.Now(),
	}
}
