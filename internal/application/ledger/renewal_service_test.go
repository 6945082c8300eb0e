package ledger

import (
	"context"
	"testing"

	"github.com/hostelms/backend/internal/domain/ledger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRenew(t *testing.T) {
	studentRepo := new(MockStudentRepository)
	accountRepo := new(MockFeeAccountRepository)
	renewalRepo := new(MockRenewalHistoryRepository)
	service := NewRenewalService(studentRepo, accountRepo, renewalRepo)

	st := testStudent(t) // 2025-26, annual fee 15000

	studentRepo.On("FindByID", mock.Anything, st.ID).Return(st, nil)
	accountRepo.On("ExistsByStudentAndYear", mock.Anything, st.ID, ledger.AcademicYear("2026-27")).Return(false, nil)

	var capturedHistory *ledger.RenewalHistory
	var capturedAccount *ledger.FeeAccount
	renewalRepo.On("CreateWithAccount", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			capturedHistory = args.Get(1).(*ledger.RenewalHistory)
			capturedAccount = args.Get(2).(*ledger.FeeAccount)
		}).Return(nil)

	result, err := service.Renew(context.Background(), RenewStudentRequest{
		StudentID:   st.ID,
		NewTotalFee: decimal.NewFromInt(18000),
		Action:      ledger.RenewalActionPromoted,
		Remarks:     "moved to senior block",
	})
	require.NoError(t, err)

	assert.Equal(t, ledger.AcademicYear("2026-27"), result.NewAcademicYear)
	assert.True(t, result.OldTotalFee.Equal(decimal.NewFromInt(15000)))
	assert.True(t, result.NewTotalFee.Equal(decimal.NewFromInt(18000)))
	assert.Equal(t, ledger.FeeStatusUnpaid, result.Status)

	// fresh unpaid account for the new year
	require.NotNil(t, capturedAccount)
	assert.True(t, capturedAccount.PaidAmount.IsZero())
	assert.True(t, capturedAccount.PendingAmount.Equal(decimal.NewFromInt(18000)))

	// audit trail carries both fees and the action
	require.NotNil(t, capturedHistory)
	assert.Equal(t, ledger.AcademicYear("2025-26"), capturedHistory.PreviousAcademicYear)
	assert.Equal(t, ledger.RenewalActionPromoted, capturedHistory.Action)
	assert.True(t, capturedHistory.OldTotalFee.Equal(decimal.NewFromInt(15000)))

	// student now points at the new year; the pointer move is persisted by
	// CreateWithAccount inside the same transaction, never as a separate write
	assert.Equal(t, ledger.AcademicYear("2026-27"), st.CurrentAcademicYear)
	assert.True(t, st.AnnualFee.Equal(decimal.NewFromInt(18000)))
	studentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	studentRepo.AssertExpectations(t)
}

func TestRenew_DuplicateYear(t *testing.T) {
	studentRepo := new(MockStudentRepository)
	accountRepo := new(MockFeeAccountRepository)
	renewalRepo := new(MockRenewalHistoryRepository)
	service := NewRenewalService(studentRepo, accountRepo, renewalRepo)

	st := testStudent(t)
	studentRepo.On("FindByID", mock.Anything, st.ID).Return(st, nil)
	accountRepo.On("ExistsByStudentAndYear", mock.Anything, st.ID, ledger.AcademicYear("2026-27")).Return(true, nil)

	_, err := service.Renew(context.Background(), RenewStudentRequest{
		StudentID:   st.ID,
		NewTotalFee: decimal.NewFromInt(18000),
	})
	assertDomainCode(t, err, "DUPLICATE_YEAR_RECORD")

	// the existing record is untouched
	renewalRepo.AssertNotCalled(t, "CreateWithAccount", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, ledger.AcademicYear("2025-26"), st.CurrentAcademicYear)
}

func TestRenew_StudentNotFound(t *testing.T) {
	studentRepo := new(MockStudentRepository)
	service := NewRenewalService(studentRepo, new(MockFeeAccountRepository), new(MockRenewalHistoryRepository))

	studentRepo.On("FindByID", mock.Anything, mock.Anything).Return(nil, nil)

	_, err := service.Renew(context.Background(), RenewStudentRequest{
		StudentID:   uuid.New(),
		NewTotalFee: decimal.NewFromInt(18000),
	})
	assertDomainCode(t, err, "STUDENT_NOT_FOUND")
}

func TestRenew_ExplicitYear(t *testing.T) {
	studentRepo := new(MockStudentRepository)
	accountRepo := new(MockFeeAccountRepository)
	renewalRepo := new(MockRenewalHistoryRepository)
	service := NewRenewalService(studentRepo, accountRepo, renewalRepo)

	st := testStudent(t)
	studentRepo.On("FindByID", mock.Anything, st.ID).Return(st, nil)
	accountRepo.On("ExistsByStudentAndYear", mock.Anything, st.ID, ledger.AcademicYear("2027-28")).Return(false, nil)
	renewalRepo.On("CreateWithAccount", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := service.Renew(context.Background(), RenewStudentRequest{
		StudentID:       st.ID,
		NewAcademicYear: "2027-28",
		NewTotalFee:     decimal.NewFromInt(20000),
	})
	require.NoError(t, err)
	assert.Equal(t, ledger.AcademicYear("2027-28"), result.NewAcademicYear)
	assert.Equal(t, ledger.RenewalActionRenewed, result.Action)
}
