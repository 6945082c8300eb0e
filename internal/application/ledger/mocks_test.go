package ledger

import (
	"context"

	"github.com/hostelms/backend/internal/domain/ledger"
	"github.com/hostelms/backend/internal/domain/student"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) FindByID(ctx context.Context, id uuid.UUID) (*student.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*student.Student), args.Error(1)
}

func (m *MockStudentRepository) FindByAdmissionNumber(ctx context.Context, admissionNumber string) (*student.Student, error) {
	args := m.Called(ctx, admissionNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*student.Student), args.Error(1)
}

func (m *MockStudentRepository) FindAll(ctx context.Context, filter student.Filter) ([]student.Student, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]student.Student), args.Error(1)
}

func (m *MockStudentRepository) Count(ctx context.Context, filter student.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStudentRepository) Save(ctx context.Context, s *student.Student) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type MockFeeAccountRepository struct {
	mock.Mock
}

func (m *MockFeeAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.FeeAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.FeeAccount), args.Error(1)
}

func (m *MockFeeAccountRepository) FindByStudentAndYear(ctx context.Context, studentID uuid.UUID, year ledger.AcademicYear) (*ledger.FeeAccount, error) {
	args := m.Called(ctx, studentID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.FeeAccount), args.Error(1)
}

func (m *MockFeeAccountRepository) FindByStudent(ctx context.Context, studentID uuid.UUID) ([]ledger.FeeAccount, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).([]ledger.FeeAccount), args.Error(1)
}

func (m *MockFeeAccountRepository) ExistsByStudentAndYear(ctx context.Context, studentID uuid.UUID, year ledger.AcademicYear) (bool, error) {
	args := m.Called(ctx, studentID, year)
	return args.Bool(0), args.Error(1)
}

func (m *MockFeeAccountRepository) Save(ctx context.Context, account *ledger.FeeAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

type MockInstallmentReceiptRepository struct {
	mock.Mock
}

func (m *MockInstallmentReceiptRepository) CreateWithAccount(ctx context.Context, account *ledger.FeeAccount, receipt *ledger.InstallmentReceipt, revision *ledger.FeeRevision, pending *ledger.PendingPayment) error {
	args := m.Called(ctx, account, receipt, revision, pending)
	return args.Error(0)
}

func (m *MockInstallmentReceiptRepository) FindByReceiptNumber(ctx context.Context, number string) (*ledger.InstallmentReceipt, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.InstallmentReceipt), args.Error(1)
}

func (m *MockInstallmentReceiptRepository) FindByStudentAndYear(ctx context.Context, studentID uuid.UUID, year ledger.AcademicYear) ([]ledger.InstallmentReceipt, error) {
	args := m.Called(ctx, studentID, year)
	return args.Get(0).([]ledger.InstallmentReceipt), args.Error(1)
}

func (m *MockInstallmentReceiptRepository) FindAll(ctx context.Context, filter ledger.ReceiptFilter) ([]ledger.InstallmentReceipt, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ledger.InstallmentReceipt), args.Error(1)
}

func (m *MockInstallmentReceiptRepository) CountByStudentAndYear(ctx context.Context, studentID uuid.UUID, year ledger.AcademicYear) (int64, error) {
	args := m.Called(ctx, studentID, year)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInstallmentReceiptRepository) ExistsByReceiptNumber(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

type MockPendingPaymentRepository struct {
	mock.Mock
}

func (m *MockPendingPaymentRepository) Create(ctx context.Context, pending *ledger.PendingPayment) error {
	args := m.Called(ctx, pending)
	return args.Error(0)
}

func (m *MockPendingPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.PendingPayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.PendingPayment), args.Error(1)
}

func (m *MockPendingPaymentRepository) FindAll(ctx context.Context, filter ledger.PendingPaymentFilter) ([]ledger.PendingPayment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ledger.PendingPayment), args.Error(1)
}

func (m *MockPendingPaymentRepository) Save(ctx context.Context, pending *ledger.PendingPayment) error {
	args := m.Called(ctx, pending)
	return args.Error(0)
}

type MockRenewalHistoryRepository struct {
	mock.Mock
}

func (m *MockRenewalHistoryRepository) CreateWithAccount(ctx context.Context, history *ledger.RenewalHistory, account *ledger.FeeAccount) error {
	args := m.Called(ctx, history, account)
	return args.Error(0)
}

func (m *MockRenewalHistoryRepository) FindByStudent(ctx context.Context, studentID uuid.UUID) ([]ledger.RenewalHistory, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).([]ledger.RenewalHistory), args.Error(1)
}

type MockFeeRevisionRepository struct {
	mock.Mock
}

func (m *MockFeeRevisionRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) ([]ledger.FeeRevision, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).([]ledger.FeeRevision), args.Error(1)
}
