package handler

import (
	ledgerapp "github.com/hostelms/backend/internal/application/ledger"
	studentapp "github.com/hostelms/backend/internal/application/student"
	"github.com/hostelms/backend/internal/domain/ledger"
	"github.com/hostelms/backend/internal/domain/student"
	"github.com/hostelms/backend/internal/interfaces/http/dto"
	"github.com/hostelms/backend/internal/interfaces/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StudentHandler handles student registry HTTP requests
type StudentHandler struct {
	BaseHandler
	studentService *studentapp.StudentService
	renewalService *ledgerapp.RenewalService
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(studentService *studentapp.StudentService, renewalService *ledgerapp.RenewalService) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
		renewalService: renewalService,
	}
}

// RegisterStudentRequest carries a new admission
type RegisterStudentRequest struct {
	AdmissionNumber string  `json:"admission_number" binding:"required"`
	FullName        string  `json:"full_name" binding:"required"`
	GuardianName    string  `json:"guardian_name"`
	Phone           string  `json:"phone"`
	RoomNumber      string  `json:"room_number"`
	AnnualFee       float64 `json:"annual_fee" binding:"required,gt=0"`
	AcademicYear    string  `json:"academic_year"`
}

// Register admits a new student
func (h *StudentHandler) Register(c *gin.Context) {
	var req RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	st, err := h.studentService.Register(c.Request.Context(), studentapp.RegisterStudentInput{
		AdmissionNumber: req.AdmissionNumber,
		FullName:        req.FullName,
		GuardianName:    req.GuardianName,
		Phone:           req.Phone,
		RoomNumber:      req.RoomNumber,
		AnnualFee:       decimal.NewFromFloat(req.AnnualFee),
		AcademicYear:    req.AcademicYear,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, st)
}

// Get returns one student
func (h *StudentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid student ID")
		return
	}

	st, err := h.studentService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, st)
}

// List returns students with filtering and pagination
func (h *StudentHandler) List(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := student.Filter{}
	filter.Page = listReq.Page
	filter.PageSize = listReq.PageSize
	filter.OrderBy = listReq.OrderBy
	filter.Search = listReq.Search
	if activeParam := c.Query("active"); activeParam != "" {
		active := activeParam == "true"
		filter.Active = &active
	}

	students, total, err := h.studentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	h.SuccessWithMeta(c, students, total, page, filter.Limit())
}

// UpdateContactRequest carries contact detail changes
type UpdateContactRequest struct {
	GuardianName string `json:"guardian_name"`
	Phone        string `json:"phone"`
	RoomNumber   string `json:"room_number"`
}

// UpdateContact updates a student's contact details
func (h *StudentHandler) UpdateContact(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid student ID")
		return
	}

	var req UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	st, err := h.studentService.UpdateContact(c.Request.Context(), id, studentapp.UpdateContactInput{
		GuardianName: req.GuardianName,
		Phone:        req.Phone,
		RoomNumber:   req.RoomNumber,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, st)
}

// Deactivate marks a student as having left the hostel
func (h *StudentHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid student ID")
		return
	}

	if err := h.studentService.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RenewStudentRequest rolls a student into a new academic year
type RenewStudentRequest struct {
	NewAcademicYear string  `json:"new_academic_year"`
	NewTotalFee     float64 `json:"new_total_fee" binding:"required,gt=0"`
	Action          string  `json:"action" binding:"omitempty,oneof=RENEWED PROMOTED"`
	Remarks         string  `json:"remarks"`
}

// Renew opens a fresh fee account for the new year and records the fee change
func (h *StudentHandler) Renew(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid student ID")
		return
	}

	var req RenewStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.renewalService.Renew(c.Request.Context(), ledgerapp.RenewStudentRequest{
		StudentID:       id,
		NewAcademicYear: req.NewAcademicYear,
		NewTotalFee:     decimal.NewFromFloat(req.NewTotalFee),
		Action:          ledger.RenewalAction(req.Action),
		Remarks:         req.Remarks,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// RenewalHistory lists a student's renewal events, newest first
func (h *StudentHandler) RenewalHistory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid student ID")
		return
	}

	events, err := h.renewalService.History(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, events)
}

// RegisterRoutes registers student routes
func (h *StudentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	students := rg.Group("/students")
	{
		students.POST("", h.Register)
		students.GET("", h.List)
		students.GET(":id", h.Get)
		students.PUT(":id/contact", h.UpdateContact)
		students.DELETE(":id", h.Deactivate)
		students.POST(":id/renew", h.Renew)
		students.GET(":id/renewals", h.RenewalHistory)
	}
}
