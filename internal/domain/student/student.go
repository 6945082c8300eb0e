package student

import (
	"time"

	"github.com/hostelms/backend/internal/domain/ledger"
	"github.com/hostelms/backend/internal/domain/shared"
	"github.com/hostelms/backend/internal/domain/shared/valueobject"

	"github.com/shopspring/decimal"
)

// Student is the hostel resident a fee ledger hangs off. Room allocation and
// occupancy management live outside this service; the room number here is a
// plain label carried for receipts and certificates.
type Student struct {
	shared.BaseAggregateRoot
	AdmissionNumber     string              `json:"admission_number"`
	FullName            string              `json:"full_name"`
	GuardianName        string              `json:"guardian_name,omitempty"`
	Phone               string              `json:"phone,omitempty"`
	RoomNumber          string              `json:"room_number,omitempty"`
	AnnualFee           decimal.Decimal     `json:"annual_fee"`
	CurrentAcademicYear ledger.AcademicYear `json:"current_academic_year"`
	Active              bool                `json:"active"`
	DeactivatedAt       *time.Time          `json:"deactivated_at,omitempty"`
}

// NewStudent registers a student
func NewStudent(
	admissionNumber, fullName string,
	annualFee valueobject.Money,
	currentYear ledger.AcademicYear,
) (*Student, error) {
	if admissionNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Admission number cannot be empty")
	}
	if fullName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Student name cannot be empty")
	}
	if !annualFee.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Annual fee must be positive")
	}
	if !currentYear.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid academic year")
	}

	return &Student{
		BaseAggregateRoot:   shared.NewBaseAggregateRoot(),
		AdmissionNumber:     admissionNumber,
		FullName:            fullName,
		AnnualFee:           annualFee.Amount(),
		CurrentAcademicYear: currentYear,
		Active:              true,
	}, nil
}

// UpdateContact updates guardian/phone/room details
func (s *Student) UpdateContact(guardianName, phone, roomNumber string) {
	s.GuardianName = guardianName
	s.Phone = phone
	s.RoomNumber = roomNumber
	s.Touch()
	s.IncrementVersion()
}

// StartAcademicYear moves the student into a new fee year with a new annual fee.
// Called by the renewal/promotion flow after its duplicate-year check.
func (s *Student) StartAcademicYear(year ledger.AcademicYear, annualFee valueobject.Money) error {
	if !s.Active {
		return shared.NewDomainError("INVALID_STATE", "Cannot renew an inactive student")
	}
	if !year.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Invalid academic year")
	}
	if !annualFee.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Annual fee must be positive")
	}

	s.CurrentAcademicYear = year
	s.AnnualFee = annualFee.Amount()
	s.Touch()
	s.IncrementVersion()
	return nil
}

// Deactivate marks the student as having left the hostel. Ledger history stays.
func (s *Student) Deactivate() error {
	if !s.Active {
		return shared.NewDomainError("INVALID_STATE", "Student is already inactive")
	}
	now := time.Now()
	s.Active = false
	s.DeactivatedAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()
	return nil
}
