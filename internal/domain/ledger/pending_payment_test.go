package ledger

import (
	"testing"
	"time"

	"github.com/hostelms/backend/internal/domain/shared"
	"github.com/hostelms/backend/internal/domain/shared/valueobject"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPending(t *testing.T) *PendingPayment {
	t.Helper()
	p, err := NewPendingPayment("SLIP-001", valueobject.NewMoneyINRFromFloat(2000),
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), PaymentModeCash, "", "2025-26")
	require.NoError(t, err)
	return p
}

func TestNewPendingPayment(t *testing.T) {
	p := newTestPending(t)
	assert.Equal(t, "SLIP-001", p.TempReference)
	assert.False(t, p.IsLinked)
	assert.Nil(t, p.LinkedStudentID)
}

func TestNewPendingPayment_Validation(t *testing.T) {
	date := time.Now()

	_, err := NewPendingPayment("", valueobject.NewMoneyINRFromFloat(2000), date, PaymentModeCash, "", "2025-26")
	assert.Error(t, err)

	_, err = NewPendingPayment("SLIP-001", valueobject.ZeroINR(), date, PaymentModeCash, "", "2025-26")
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)

	_, err = NewPendingPayment("SLIP-001", valueobject.NewMoneyINRFromFloat(2000), date, "IOU", "", "2025-26")
	assert.Error(t, err)
}

func TestPendingPayment_LinkOnce(t *testing.T) {
	p := newTestPending(t)
	studentID := uuid.New()
	receiptID := uuid.New()

	require.NoError(t, p.Link(studentID, receiptID))
	assert.True(t, p.IsLinked)
	require.NotNil(t, p.LinkedStudentID)
	assert.Equal(t, studentID, *p.LinkedStudentID)
	require.NotNil(t, p.LinkedReceiptID)
	assert.Equal(t, receiptID, *p.LinkedReceiptID)
	assert.NotNil(t, p.LinkedAt)

	// Second link must fail and leave the first link intact
	err := p.Link(uuid.New(), uuid.New())
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_LINKED", domainErr.Code)
	assert.Equal(t, studentID, *p.LinkedStudentID)
}

func TestInstallmentReceipt_Snapshots(t *testing.T) {
	account, err := NewFeeAccount(uuid.New(), "2025-26", valueobject.NewMoneyINRFromFloat(15000))
	require.NoError(t, err)
	paymentDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, account.ApplyPayment(valueobject.NewMoneyINRFromFloat(5000), paymentDate))

	receipt, err := NewInstallmentReceipt(account, 1, "", false,
		valueobject.NewMoneyINRFromFloat(5000), paymentDate, PaymentModeUPI, "first installment")
	require.NoError(t, err)

	assert.Equal(t, account.StudentID, receipt.StudentID)
	assert.True(t, receipt.TotalFeeSnapshot.Equal(account.TotalFee))
	assert.True(t, receipt.PaidAmountToDate.Equal(account.PaidAmount))
	assert.True(t, receipt.PendingAmountAfter.Equal(account.PendingAmount))
	assert.False(t, receipt.IsManual)
	assert.Empty(t, receipt.ReceiptNumber) // assigned by persistence

	// Manual receipts must carry their number
	_, err = NewInstallmentReceipt(account, 2, "", true,
		valueobject.NewMoneyINRFromFloat(1000), paymentDate, PaymentModeCash, "")
	assert.Error(t, err)

	manual, err := NewInstallmentReceipt(account, 2, "BOOK-77", true,
		valueobject.NewMoneyINRFromFloat(1000), paymentDate, PaymentModeCash, "")
	require.NoError(t, err)
	assert.True(t, manual.IsManual)
	assert.Equal(t, "BOOK-77", manual.ReceiptNumber)
}
