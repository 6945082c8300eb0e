package models

import (
	"time"

	"github.com/hostelms/backend/internal/domain/ledger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FeeAccountModel is the persistence model for the FeeAccount aggregate root.
// The (student_id, academic_year) pair is unique: one ledger row per year.
type FeeAccountModel struct {
	AggregateModel
	StudentID       uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_fee_account_student_year,priority:1"`
	AcademicYear    ledger.AcademicYear `gorm:"type:varchar(7);not null;uniqueIndex:idx_fee_account_student_year,priority:2"`
	TotalFee        decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	PaidAmount      decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	PendingAmount   decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	Status          ledger.FeeStatus    `gorm:"type:varchar(20);not null;default:'UNPAID';index"`
	LastPaymentDate *time.Time
}

// TableName returns the table name for GORM
func (FeeAccountModel) TableName() string {
	return "fee_accounts"
}

// ToDomain converts the persistence model to a domain FeeAccount.
func (m *FeeAccountModel) ToDomain() *ledger.FeeAccount {
	return &ledger.FeeAccount{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		StudentID:         m.StudentID,
		AcademicYear:      m.AcademicYear,
		TotalFee:          m.TotalFee,
		PaidAmount:        m.PaidAmount,
		PendingAmount:     m.PendingAmount,
		Status:            m.Status,
		LastPaymentDate:   m.LastPaymentDate,
	}
}

// FromDomain populates the persistence model from a domain FeeAccount.
func (m *FeeAccountModel) FromDomain(a *ledger.FeeAccount) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.StudentID = a.StudentID
	m.AcademicYear = a.AcademicYear
	m.TotalFee = a.TotalFee
	m.PaidAmount = a.PaidAmount
	m.PendingAmount = a.PendingAmount
	m.Status = a.Status
	m.LastPaymentDate = a.LastPaymentDate
}

// FeeAccountModelFromDomain creates a new persistence model from a domain FeeAccount.
func FeeAccountModelFromDomain(a *ledger.FeeAccount) *FeeAccountModel {
	m := &FeeAccountModel{}
	m.FromDomain(a)
	return m
}

// InstallmentReceiptModel is the persistence model for installment receipts.
// Receipts are append-only; the unique index on receipt_number is the final
// guard against duplicate numbers.
type InstallmentReceiptModel struct {
	BaseModel
	ReceiptNumber      string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	InstallmentNumber  int                 `gorm:"not null"`
	StudentID          uuid.UUID           `gorm:"type:uuid;not null;index:idx_receipt_student_year,priority:1"`
	AcademicYear       ledger.AcademicYear `gorm:"type:varchar(7);not null;index:idx_receipt_student_year,priority:2"`
	PaymentAmount      decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	PaymentDate        time.Time           `gorm:"not null;index"`
	PaymentMode        ledger.PaymentMode  `gorm:"type:varchar(20);not null"`
	Notes              string              `gorm:"type:text"`
	TotalFeeSnapshot   decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	PaidAmountToDate   decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	PendingAmountAfter decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	IsManual           bool                `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (InstallmentReceiptModel) TableName() string {
	return "installment_receipts"
}

// ToDomain converts the persistence model to a domain InstallmentReceipt.
func (m *InstallmentReceiptModel) ToDomain() *ledger.InstallmentReceipt {
	return &ledger.InstallmentReceipt{
		BaseEntity:         m.BaseModel.ToDomain(),
		ReceiptNumber:      m.ReceiptNumber,
		InstallmentNumber:  m.InstallmentNumber,
		StudentID:          m.StudentID,
		AcademicYear:       m.AcademicYear,
		PaymentAmount:      m.PaymentAmount,
		PaymentDate:        m.PaymentDate,
		PaymentMode:        m.PaymentMode,
		Notes:              m.Notes,
		TotalFeeSnapshot:   m.TotalFeeSnapshot,
		PaidAmountToDate:   m.PaidAmountToDate,
		PendingAmountAfter: m.PendingAmountAfter,
		IsManual:           m.IsManual,
	}
}

// FromDomain populates the persistence model from a domain InstallmentReceipt.
func (m *InstallmentReceiptModel) FromDomain(r *ledger.InstallmentReceipt) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.ReceiptNumber = r.ReceiptNumber
	m.InstallmentNumber = r.InstallmentNumber
	m.StudentID = r.StudentID
	m.AcademicYear = r.AcademicYear
	m.PaymentAmount = r.PaymentAmount
	m.PaymentDate = r.PaymentDate
	m.PaymentMode = r.PaymentMode
	m.Notes = r.Notes
	m.TotalFeeSnapshot = r.TotalFeeSnapshot
	m.PaidAmountToDate = r.PaidAmountToDate
	m.PendingAmountAfter = r.PendingAmountAfter
	m.IsManual = r.IsManual
}

// InstallmentReceiptModelFromDomain creates a new persistence model from a domain receipt.
func InstallmentReceiptModelFromDomain(r *ledger.InstallmentReceipt) *InstallmentReceiptModel {
	m := &InstallmentReceiptModel{}
	m.FromDomain(r)
	return m
}

// PendingPaymentModel is the persistence model for parked walk-in payments.
type PendingPaymentModel struct {
	AggregateModel
	TempReference            string              `gorm:"type:varchar(50);not null;index"`
	PaymentAmount            decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	PaymentDate              time.Time           `gorm:"not null"`
	PaymentMode              ledger.PaymentMode  `gorm:"type:varchar(20);not null"`
	Notes                    string              `gorm:"type:text"`
	AcademicYear             ledger.AcademicYear `gorm:"type:varchar(7);not null"`
	ProvisionalReceiptNumber string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	IsLinked                 bool                `gorm:"not null;default:false;index"`
	LinkedStudentID          *uuid.UUID          `gorm:"type:uuid;index"`
	LinkedReceiptID          *uuid.UUID          `gorm:"type:uuid"`
	LinkedAt                 *time.Time
}

// TableName returns the table name for GORM
func (PendingPaymentModel) TableName() string {
	return "pending_payments"
}

// ToDomain converts the persistence model to a domain PendingPayment.
func (m *PendingPaymentModel) ToDomain() *ledger.PendingPayment {
	return &ledger.PendingPayment{
		BaseAggregateRoot:        m.ToDomainAggregateRoot(),
		TempReference:            m.TempReference,
		PaymentAmount:            m.PaymentAmount,
		PaymentDate:              m.PaymentDate,
		PaymentMode:              m.PaymentMode,
		Notes:                    m.Notes,
		AcademicYear:             m.AcademicYear,
		ProvisionalReceiptNumber: m.ProvisionalReceiptNumber,
		IsLinked:                 m.IsLinked,
		LinkedStudentID:          m.LinkedStudentID,
		LinkedReceiptID:          m.LinkedReceiptID,
		LinkedAt:                 m.LinkedAt,
	}
}

// FromDomain populates the persistence model from a domain PendingPayment.
func (m *PendingPaymentModel) FromDomain(p *ledger.PendingPayment) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.TempReference = p.TempReference
	m.PaymentAmount = p.PaymentAmount
	m.PaymentDate = p.PaymentDate
	m.PaymentMode = p.PaymentMode
	m.Notes = p.Notes
	m.AcademicYear = p.AcademicYear
	m.ProvisionalReceiptNumber = p.ProvisionalReceiptNumber
	m.IsLinked = p.IsLinked
	m.LinkedStudentID = p.LinkedStudentID
	m.LinkedReceiptID = p.LinkedReceiptID
	m.LinkedAt = p.LinkedAt
}

// PendingPaymentModelFromDomain creates a new persistence model from a domain pending payment.
func PendingPaymentModelFromDomain(p *ledger.PendingPayment) *PendingPaymentModel {
	m := &PendingPaymentModel{}
	m.FromDomain(p)
	return m
}

// RenewalHistoryModel is the persistence model for the renewal audit trail.
type RenewalHistoryModel struct {
	BaseModel
	StudentID            uuid.UUID            `gorm:"type:uuid;not null;index"`
	PreviousAcademicYear ledger.AcademicYear  `gorm:"type:varchar(7)"`
	NewAcademicYear      ledger.AcademicYear  `gorm:"type:varchar(7);not null"`
	OldTotalFee          decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	NewTotalFee          decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	Action               ledger.RenewalAction `gorm:"type:varchar(20);not null"`
	Remarks              string               `gorm:"type:text"`
	RenewalDate          time.Time            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RenewalHistoryModel) TableName() string {
	return "renewal_history"
}

// ToDomain converts the persistence model to a domain RenewalHistory.
func (m *RenewalHistoryModel) ToDomain() *ledger.RenewalHistory {
	return &ledger.RenewalHistory{
		BaseEntity:           m.BaseModel.ToDomain(),
		StudentID:            m.StudentID,
		PreviousAcademicYear: m.PreviousAcademicYear,
		NewAcademicYear:      m.NewAcademicYear,
		OldTotalFee:          m.OldTotalFee,
		NewTotalFee:          m.NewTotalFee,
		Action:               m.Action,
		Remarks:              m.Remarks,
		RenewalDate:          m.RenewalDate,
	}
}

// FromDomain populates the persistence model from a domain RenewalHistory.
func (m *RenewalHistoryModel) FromDomain(h *ledger.RenewalHistory) {
	m.FromDomainBaseEntity(h.BaseEntity)
	m.StudentID = h.StudentID
	m.PreviousAcademicYear = h.PreviousAcademicYear
	m.NewAcademicYear = h.NewAcademicYear
	m.OldTotalFee = h.OldTotalFee
	m.NewTotalFee = h.NewTotalFee
	m.Action = h.Action
	m.Remarks = h.Remarks
	m.RenewalDate = h.RenewalDate
}

// RenewalHistoryModelFromDomain creates a new persistence model from a domain history row.
func RenewalHistoryModelFromDomain(h *ledger.RenewalHistory) *RenewalHistoryModel {
	m := &RenewalHistoryModel{}
	m.FromDomain(h)
	return m
}

// FeeRevisionModel is the persistence model for in-year total-fee corrections.
type FeeRevisionModel struct {
	BaseModel
	FeeAccountID uuid.UUID           `gorm:"type:uuid;not null;index"`
	StudentID    uuid.UUID           `gorm:"type:uuid;not null;index"`
	AcademicYear ledger.AcademicYear `gorm:"type:varchar(7);not null"`
	OldTotalFee  decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	NewTotalFee  decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	Note         string              `gorm:"type:text"`
	RevisedAt    time.Time           `gorm:"not null"`
}

// TableName returns the table name for GORM
func (FeeRevisionModel) TableName() string {
	return "fee_revisions"
}

// ToDomain converts the persistence model to a domain FeeRevision.
func (m *FeeRevisionModel) ToDomain() *ledger.FeeRevision {
	return &ledger.FeeRevision{
		BaseEntity:   m.BaseModel.ToDomain(),
		FeeAccountID: m.FeeAccountID,
		StudentID:    m.StudentID,
		AcademicYear: m.AcademicYear,
		OldTotalFee:  m.OldTotalFee,
		NewTotalFee:  m.NewTotalFee,
		Note:         m.Note,
		RevisedAt:    m.RevisedAt,
	}
}

// FromDomain populates the persistence model from a domain FeeRevision.
func (m *FeeRevisionModel) FromDomain(rev *ledger.FeeRevision) {
	m.FromDomainBaseEntity(rev.BaseEntity)
	m.FeeAccountID = rev.FeeAccountID
	m.StudentID = rev.StudentID
	m.AcademicYear = rev.AcademicYear
	m.OldTotalFee = rev.OldTotalFee
	m.NewTotalFee = rev.NewTotalFee
	m.Note = rev.Note
	m.RevisedAt = rev.RevisedAt
}

// FeeRevisionModelFromDomain creates a new persistence model from a domain fee revision.
func FeeRevisionModelFromDomain(rev *ledger.FeeRevision) *FeeRevisionModel {
	m := &FeeRevisionModel{}
	m.FromDomain(rev)
	return m
}

// SequenceCounterModel backs the transactionally guarded receipt-number
// counter. One row per key, e.g. "receipt_sequence_2025".
type SequenceCounterModel struct {
	Key       string    `gorm:"type:varchar(50);primary_key"`
	Value     int64     `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SequenceCounterModel) TableName() string {
	return "sequence_counters"
}
