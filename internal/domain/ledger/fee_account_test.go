package ledger

import (
	"testing"
	"time"

	"github.com/hostelms/backend/internal/domain/shared"
	"github.com/hostelms/backend/internal/domain/shared/valueobject"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFeeAccount(t *testing.T) {
	studentID := uuid.New()

	account, err := NewFeeAccount(studentID, "2025-26", valueobject.NewMoneyINRFromFloat(15000))
	require.NoError(t, err)
	assert.Equal(t, studentID, account.StudentID)
	assert.Equal(t, AcademicYear("2025-26"), account.AcademicYear)
	assert.True(t, account.PaidAmount.IsZero())
	assert.True(t, account.PendingAmount.Equal(decimal.NewFromInt(15000)))
	assert.Equal(t, FeeStatusUnpaid, account.Status)
	assert.Equal(t, 1, account.Version)
}

func TestNewFeeAccount_Validation(t *testing.T) {
	tests := []struct {
		name      string
		studentID uuid.UUID
		year      AcademicYear
		totalFee  valueobject.Money
		wantCode  string
	}{
		{"nil student", uuid.Nil, "2025-26", valueobject.NewMoneyINRFromFloat(1000), "INVALID_INPUT"},
		{"bad year", uuid.New(), "2025", valueobject.NewMoneyINRFromFloat(1000), "INVALID_INPUT"},
		{"zero fee", uuid.New(), "2025-26", valueobject.ZeroINR(), "MISSING_TOTAL_FEE"},
		{"negative fee", uuid.New(), "2025-26", valueobject.NewMoneyINRFromFloat(-5), "MISSING_TOTAL_FEE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFeeAccount(tt.studentID, tt.year, tt.totalFee)
			require.Error(t, err)
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.wantCode, domainErr.Code)
		})
	}
}

func TestFeeAccount_ApplyPayment(t *testing.T) {
	account, err := NewFeeAccount(uuid.New(), "2025-26", valueobject.NewMoneyINRFromFloat(15000))
	require.NoError(t, err)

	paymentDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, account.ApplyPayment(valueobject.NewMoneyINRFromFloat(5000), paymentDate))

	assert.True(t, account.PaidAmount.Equal(decimal.NewFromInt(5000)))
	assert.True(t, account.PendingAmount.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, FeeStatusPartiallyPaid, account.Status)
	require.NotNil(t, account.LastPaymentDate)
	assert.Equal(t, paymentDate, *account.LastPaymentDate)
	assert.Equal(t, 2, account.Version)

	// Second installment settles the account
	require.NoError(t, account.ApplyPayment(valueobject.NewMoneyINRFromFloat(10000), paymentDate.AddDate(0, 1, 0)))
	assert.True(t, account.PendingAmount.IsZero())
	assert.Equal(t, FeeStatusPaid, account.Status)
	assert.True(t, account.IsPaid())
}

func TestFeeAccount_ApplyPayment_RejectsNonPositive(t *testing.T) {
	account, _ := NewFeeAccount(uuid.New(), "2025-26", valueobject.NewMoneyINRFromFloat(15000))

	err := account.ApplyPayment(valueobject.ZeroINR(), time.Now())
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)

	err = account.ApplyPayment(valueobject.NewMoneyINRFromFloat(-100), time.Now())
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
}

// paid + pending must equal total after any successful payment, clamped at zero
func TestFeeAccount_Conservation(t *testing.T) {
	account, _ := NewFeeAccount(uuid.New(), "2025-26", valueobject.NewMoneyINRFromFloat(15000))

	for _, amount := range []float64{2500, 4000, 1000, 7500} {
		require.NoError(t, account.ApplyPayment(valueobject.NewMoneyINRFromFloat(amount), time.Now()))
		sum := account.PaidAmount.Add(account.PendingAmount)
		if account.TotalFee.GreaterThanOrEqual(account.PaidAmount) {
			assert.True(t, sum.Equal(account.TotalFee), "paid %s + pending %s != total %s",
				account.PaidAmount, account.PendingAmount, account.TotalFee)
		}
	}
}

func TestFeeAccount_OverpaymentClampsPending(t *testing.T) {
	account, _ := NewFeeAccount(uuid.New(), "2025-26", valueobject.NewMoneyINRFromFloat(10000))

	require.NoError(t, account.ApplyPayment(valueobject.NewMoneyINRFromFloat(12000), time.Now()))
	assert.True(t, account.PendingAmount.IsZero())
	assert.Equal(t, FeeStatusPaid, account.Status)
	// The surplus stays visible in the paid amount
	assert.True(t, account.PaidAmount.Equal(decimal.NewFromInt(12000)))
}

func TestFeeAccount_ReviseTotalFee(t *testing.T) {
	account, _ := NewFeeAccount(uuid.New(), "2025-26", valueobject.NewMoneyINRFromFloat(15000))
	require.NoError(t, account.ApplyPayment(valueobject.NewMoneyINRFromFloat(5000), time.Now()))

	old, changed, err := account.ReviseTotalFee(valueobject.NewMoneyINRFromFloat(18000))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, old.Equal(decimal.NewFromInt(15000)))
	assert.True(t, account.PendingAmount.Equal(decimal.NewFromInt(13000)))
	assert.Equal(t, FeeStatusPartiallyPaid, account.Status)

	// Same value is a no-op
	_, changed, err = account.ReviseTotalFee(valueobject.NewMoneyINRFromFloat(18000))
	require.NoError(t, err)
	assert.False(t, changed)

	// Revising below the paid amount clamps pending to zero
	_, changed, err = account.ReviseTotalFee(valueobject.NewMoneyINRFromFloat(4000))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, account.PendingAmount.IsZero())
	assert.Equal(t, FeeStatusPaid, account.Status)
}

func TestDeriveFeeStatus(t *testing.T) {
	assert.Equal(t, FeeStatusUnpaid, DeriveFeeStatus(decimal.Zero, decimal.NewFromInt(100)))
	assert.Equal(t, FeeStatusPaid, DeriveFeeStatus(decimal.NewFromInt(100), decimal.Zero))
	assert.Equal(t, FeeStatusPartiallyPaid, DeriveFeeStatus(decimal.NewFromInt(40), decimal.NewFromInt(60)))
}
