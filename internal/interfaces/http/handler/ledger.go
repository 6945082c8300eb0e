package handler

import (
	"time"

	ledgerapp "github.com/hostelms/backend/internal/application/ledger"
	"github.com/hostelms/backend/internal/domain/ledger"
	"github.com/hostelms/backend/internal/interfaces/http/dto"
	"github.com/hostelms/backend/internal/interfaces/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerHandler handles fee ledger HTTP requests: installments, receipts,
// fee accounts and walk-in pending payments
type LedgerHandler struct {
	BaseHandler
	installmentService *ledgerapp.InstallmentService
	pendingService     *ledgerapp.PendingPaymentService
	queryService       *ledgerapp.QueryService
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(
	installmentService *ledgerapp.InstallmentService,
	pendingService *ledgerapp.PendingPaymentService,
	queryService *ledgerapp.QueryService,
) *LedgerHandler {
	return &LedgerHandler{
		installmentService: installmentService,
		pendingService:     pendingService,
		queryService:       queryService,
	}
}

// RecordInstallmentRequest carries one fee payment
type RecordInstallmentRequest struct {
	StudentID     string   `json:"student_id" binding:"required,uuid"`
	AcademicYear  string   `json:"academic_year"`
	Amount        float64  `json:"amount" binding:"required,gt=0"`
	PaymentDate   *string  `json:"payment_date"` // RFC 3339 date, defaults to now
	PaymentMode   string   `json:"payment_mode" binding:"required,oneof=CASH CHEQUE UPI BANK_TRANSFER CARD"`
	Notes         string   `json:"notes"`
	ManualReceipt string   `json:"manual_receipt"`
	TotalFee      *float64 `json:"total_fee"`
	RevisionNote  string   `json:"revision_note"`
}

// RecordInstallment records a payment against a student's yearly fee account
func (h *LedgerHandler) RecordInstallment(c *gin.Context) {
	var req RecordInstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		h.BadRequest(c, "Invalid student ID")
		return
	}

	paymentDate, err := parseOptionalDate(req.PaymentDate)
	if err != nil {
		h.BadRequest(c, "Invalid payment date, expected RFC 3339")
		return
	}

	var totalFee *decimal.Decimal
	if req.TotalFee != nil {
		d := decimal.NewFromFloat(*req.TotalFee)
		totalFee = &d
	}

	result, err := h.installmentService.RecordInstallment(c.Request.Context(), ledgerapp.RecordInstallmentRequest{
		StudentID:     studentID,
		AcademicYear:  req.AcademicYear,
		Amount:        decimal.NewFromFloat(req.Amount),
		PaymentDate:   paymentDate,
		PaymentMode:   ledger.PaymentMode(req.PaymentMode),
		Notes:         req.Notes,
		ManualReceipt: req.ManualReceipt,
		TotalFee:      totalFee,
		RevisionNote:  req.RevisionNote,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetFeeAccount returns the ledger for one (student, year) pair with receipts
func (h *LedgerHandler) GetFeeAccount(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid student ID")
		return
	}
	year, err := ledger.NewAcademicYear(c.Param("year"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	summary, err := h.queryService.GetFeeAccount(c.Request.Context(), studentID, year)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// ListFeeAccounts returns all of a student's yearly fee accounts
func (h *LedgerHandler) ListFeeAccounts(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid student ID")
		return
	}

	accounts, err := h.queryService.ListFeeAccounts(c.Request.Context(), studentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, accounts)
}

// ListFeeRevisions lists the total-fee corrections recorded against an account
func (h *LedgerHandler) ListFeeRevisions(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	revisions, err := h.queryService.ListFeeRevisions(c.Request.Context(), accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, revisions)
}

// GetReceipt returns one receipt by its number
func (h *LedgerHandler) GetReceipt(c *gin.Context) {
	receipt, err := h.queryService.GetReceipt(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipt)
}

// ListReceipts lists receipts with filtering
func (h *LedgerHandler) ListReceipts(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := ledger.ReceiptFilter{}
	filter.Page = listReq.Page
	filter.PageSize = listReq.PageSize
	filter.OrderBy = listReq.OrderBy
	filter.Search = listReq.Search

	if studentParam := c.Query("student_id"); studentParam != "" {
		studentID, err := uuid.Parse(studentParam)
		if err != nil {
			h.BadRequest(c, "Invalid student ID")
			return
		}
		filter.StudentID = &studentID
	}
	if yearParam := c.Query("academic_year"); yearParam != "" {
		year, err := ledger.NewAcademicYear(yearParam)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		filter.AcademicYear = &year
	}
	if modeParam := c.Query("payment_mode"); modeParam != "" {
		mode := ledger.PaymentMode(modeParam)
		filter.Mode = &mode
	}
	if manualParam := c.Query("manual_only"); manualParam != "" {
		manual := manualParam == "true"
		filter.ManualOnly = &manual
	}

	receipts, err := h.queryService.ListReceipts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipts)
}

// CreatePendingRequest parks a walk-in payment with no student yet
type CreatePendingRequest struct {
	TempReference string  `json:"temp_reference" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentDate   *string `json:"payment_date"`
	PaymentMode   string  `json:"payment_mode" binding:"required,oneof=CASH CHEQUE UPI BANK_TRANSFER CARD"`
	Notes         string  `json:"notes"`
	AcademicYear  string  `json:"academic_year"`
}

// CreatePending records a walk-in payment before the student record exists
func (h *LedgerHandler) CreatePending(c *gin.Context) {
	var req CreatePendingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	paymentDate, err := parseOptionalDate(req.PaymentDate)
	if err != nil {
		h.BadRequest(c, "Invalid payment date, expected RFC 3339")
		return
	}

	result, err := h.pendingService.CreatePending(c.Request.Context(), ledgerapp.CreatePendingRequest{
		TempReference: req.TempReference,
		Amount:        decimal.NewFromFloat(req.Amount),
		PaymentDate:   paymentDate,
		PaymentMode:   ledger.PaymentMode(req.PaymentMode),
		Notes:         req.Notes,
		AcademicYear:  req.AcademicYear,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetPending returns one pending payment
func (h *LedgerHandler) GetPending(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid pending payment ID")
		return
	}

	pending, err := h.pendingService.GetPending(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, pending)
}

// ListPending lists pending payments, optionally only unlinked ones
func (h *LedgerHandler) ListPending(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := ledger.PendingPaymentFilter{}
	filter.Page = listReq.Page
	filter.PageSize = listReq.PageSize
	filter.OrderBy = listReq.OrderBy
	filter.Search = listReq.Search

	if linkedParam := c.Query("linked"); linkedParam != "" {
		linked := linkedParam == "true"
		filter.Linked = &linked
	}
	if yearParam := c.Query("academic_year"); yearParam != "" {
		year, err := ledger.NewAcademicYear(yearParam)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		filter.AcademicYear = &year
	}

	pendings, err := h.pendingService.ListPending(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, pendings)
}

// LinkPendingRequest attaches a parked payment to a registered student
type LinkPendingRequest struct {
	StudentID    string   `json:"student_id" binding:"required,uuid"`
	AcademicYear string   `json:"academic_year"`
	TotalFee     *float64 `json:"total_fee"`
	RevisionNote string   `json:"revision_note"`
	Notes        string   `json:"notes"`
}

// LinkPending reconciles a parked payment into a real installment receipt
func (h *LedgerHandler) LinkPending(c *gin.Context) {
	pendingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid pending payment ID")
		return
	}

	var req LinkPendingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		h.BadRequest(c, "Invalid student ID")
		return
	}

	var totalFee *decimal.Decimal
	if req.TotalFee != nil {
		d := decimal.NewFromFloat(*req.TotalFee)
		totalFee = &d
	}

	result, err := h.pendingService.LinkPending(c.Request.Context(), ledgerapp.LinkPendingRequest{
		PendingID:    pendingID,
		StudentID:    studentID,
		AcademicYear: req.AcademicYear,
		TotalFee:     totalFee,
		RevisionNote: req.RevisionNote,
		Notes:        req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// parseOptionalDate parses an optional RFC 3339 timestamp
func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// RegisterRoutes registers ledger routes
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ledgerGroup := rg.Group("/ledger")
	{
		ledgerGroup.POST("/installments", h.RecordInstallment)

		ledgerGroup.GET("/receipts", h.ListReceipts)
		ledgerGroup.GET("/receipts/:number", h.GetReceipt)

		ledgerGroup.GET("/students/:id/accounts", h.ListFeeAccounts)
		ledgerGroup.GET("/students/:id/accounts/:year", h.GetFeeAccount)
		ledgerGroup.GET("/accounts/:id/revisions", h.ListFeeRevisions)

		ledgerGroup.POST("/pending-payments", h.CreatePending)
		ledgerGroup.GET("/pending-payments", h.ListPending)
		ledgerGroup.GET("/pending-payments/:id", h.GetPending)
		ledgerGroup.POST("/pending-payments/:id/link", h.LinkPending)
	}
}
