package ledger

import (
	"context"
	"fmt"

	"github.com/hostelms/backend/internal/domain/ledger"
	"github.com/hostelms/backend/internal/domain/shared"
	"github.com/hostelms/backend/internal/domain/shared/valueobject"
	"github.com/hostelms/backend/internal/domain/student"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RenewalService rolls students into a new academic year, opening a fresh fee
// account while leaving the previous year's ledger untouched
type RenewalService struct {
	studentRepo student.Repository
	accountRepo ledger.FeeAccountRepository
	renewalRepo ledger.RenewalHistoryRepository
}

// NewRenewalService creates a new RenewalService
func NewRenewalService(
	studentRepo student.Repository,
	accountRepo ledger.FeeAccountRepository,
	renewalRepo ledger.RenewalHistoryRepository,
) *RenewalService {
	return &RenewalService{
		studentRepo: studentRepo,
		accountRepo: accountRepo,
		renewalRepo: renewalRepo,
	}
}

// RenewStudentRequest represents a renewal or promotion into a new year
type RenewStudentRequest struct {
	StudentID       uuid.UUID
	NewAcademicYear string // empty means the year after the student's current one
	NewTotalFee     decimal.Decimal
	Action          ledger.RenewalAction
	Remarks         string
}

// RenewStudentResult returns the new year's opening ledger state
type RenewStudentResult struct {
	StudentID       uuid.UUID            `json:"student_id"`
	NewAcademicYear ledger.AcademicYear  `json:"new_academic_year"`
	OldTotalFee     decimal.Decimal      `json:"old_total_fee"`
	NewTotalFee     decimal.Decimal      `json:"new_total_fee"`
	Action          ledger.RenewalAction `json:"action"`
	FeeAccountID    uuid.UUID            `json:"fee_account_id"`
	Status          ledger.FeeStatus     `json:"status"`
}

// Renew moves a student into a new academic year: a fresh unpaid fee account
// for the new year, an audit row recording the fee change, and the student's
// current-year pointer advanced. All three commit in one transaction; a second
// renewal into the same year fails instead of touching the existing record.
func (s *RenewalService) Renew(ctx context.Context, req RenewStudentRequest) (*RenewStudentResult, error) {
	st, err := s.studentRepo.FindByID(ctx, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load student: %w", err)
	}
	if st == nil {
		return nil, shared.NewDomainError("STUDENT_NOT_FOUND", "Student not found")
	}

	newYear := st.CurrentAcademicYear.Next()
	if req.NewAcademicYear != "" {
		newYear, err = ledger.NewAcademicYear(req.NewAcademicYear)
		if err != nil {
			return nil, err
		}
	}

	// Friendly pre-check; the unique index inside CreateWithAccount is the
	// actual guard against concurrent renewals.
	exists, err := s.accountRepo.ExistsByStudentAndYear(ctx, st.ID, newYear)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing year record: %w", err)
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_YEAR_RECORD",
			fmt.Sprintf("Student already has a fee record for %s", newYear))
	}

	newFee := valueobject.NewMoneyINR(req.NewTotalFee)
	oldFee := st.AnnualFee
	previousYear := st.CurrentAcademicYear

	account, err := ledger.NewFeeAccount(st.ID, newYear, newFee)
	if err != nil {
		return nil, err
	}

	action := req.Action
	if action == "" {
		action = ledger.RenewalActionRenewed
	}

	history, err := ledger.NewRenewalHistory(st.ID, previousYear, newYear, oldFee, newFee, action, req.Remarks)
	if err != nil {
		return nil, err
	}

	if err := st.StartAcademicYear(newYear, newFee); err != nil {
		return nil, err
	}

	// CreateWithAccount also advances the student row to the new year, so the
	// pointer move commits with the account and the audit row.
	if err := s.renewalRepo.CreateWithAccount(ctx, history, account); err != nil {
		return nil, err
	}

	return &RenewStudentResult{
		StudentID:       st.ID,
		NewAcademicYear: newYear,
		OldTotalFee:     oldFee,
		NewTotalFee:     account.TotalFee,
		Action:          action,
		FeeAccountID:    account.ID,
		Status:          account.Status,
	}, nil
}

// History lists a student's renewal events, newest first
func (s *RenewalService) History(ctx context.Context, studentID uuid.UUID) ([]ledger.RenewalHistory, error) {
	return s.renewalRepo.FindByStudent(ctx, studentID)
}
