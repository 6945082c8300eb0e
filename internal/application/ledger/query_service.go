package ledger

import (
	"context"
	"fmt"

	"github.com/hostelms/backend/internal/domain/ledger"
	"github.com/hostelms/backend/internal/domain/shared"

	"github.com/google/uuid"
)

// QueryService serves the read side of the ledger: account summaries, receipt
// lookups and audit trails
type QueryService struct {
	accountRepo  ledger.FeeAccountRepository
	receiptRepo  ledger.InstallmentReceiptRepository
	revisionRepo ledger.FeeRevisionRepository
}

// NewQueryService creates a new QueryService
func NewQueryService(
	accountRepo ledger.FeeAccountRepository,
	receiptRepo ledger.InstallmentReceiptRepository,
	revisionRepo ledger.FeeRevisionRepository,
) *QueryService {
	return &QueryService{
		accountRepo:  accountRepo,
		receiptRepo:  receiptRepo,
		revisionRepo: revisionRepo,
	}
}

// FeeAccountSummary is the account with its receipts, as printed on statements
type FeeAccountSummary struct {
	Account  *ledger.FeeAccount          `json:"account"`
	Receipts []ledger.InstallmentReceipt `json:"receipts"`
}

// GetFeeAccount returns the ledger for one (student, academic year) pair with
// all its installment receipts in order
func (s *QueryService) GetFeeAccount(ctx context.Context, studentID uuid.UUID, year ledger.AcademicYear) (*FeeAccountSummary, error) {
	account, err := s.accountRepo.FindByStudentAndYear(ctx, studentID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load fee account: %w", err)
	}
	if account == nil {
		return nil, shared.NewDomainError("NOT_FOUND",
			fmt.Sprintf("No fee record for student in %s", year))
	}

	receipts, err := s.receiptRepo.FindByStudentAndYear(ctx, studentID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load receipts: %w", err)
	}

	return &FeeAccountSummary{Account: account, Receipts: receipts}, nil
}

// ListFeeAccounts returns all of a student's yearly accounts
func (s *QueryService) ListFeeAccounts(ctx context.Context, studentID uuid.UUID) ([]ledger.FeeAccount, error) {
	return s.accountRepo.FindByStudent(ctx, studentID)
}

// GetReceipt returns one receipt by its number
func (s *QueryService) GetReceipt(ctx context.Context, number string) (*ledger.InstallmentReceipt, error) {
	receipt, err := s.receiptRepo.FindByReceiptNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("failed to load receipt: %w", err)
	}
	if receipt == nil {
		return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Receipt %q not found", number))
	}
	return receipt, nil
}

// ListReceipts lists receipts with filtering
func (s *QueryService) ListReceipts(ctx context.Context, filter ledger.ReceiptFilter) ([]ledger.InstallmentReceipt, error) {
	return s.receiptRepo.FindAll(ctx, filter)
}

// ListFeeRevisions lists the total-fee corrections recorded against an account
func (s *QueryService) ListFeeRevisions(ctx context.Context, accountID uuid.UUID) ([]ledger.FeeRevision, error) {
	return s.revisionRepo.FindByAccount(ctx, accountID)
}
