package student

import (
	"context"
	"fmt"
	"time"

	"github.com/hostelms/backend/internal/domain/ledger"
	"github.com/hostelms/backend/internal/domain/shared"
	"github.com/hostelms/backend/internal/domain/shared/valueobject"
	"github.com/hostelms/backend/internal/domain/student"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StudentService manages the student registry behind the fee ledger
type StudentService struct {
	studentRepo student.Repository
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo student.Repository) *StudentService {
	return &StudentService{studentRepo: studentRepo}
}

// RegisterStudentInput contains data for registering a student
type RegisterStudentInput struct {
	AdmissionNumber string
	FullName        string
	GuardianName    string
	Phone           string
	RoomNumber      string
	AnnualFee       decimal.Decimal
	AcademicYear    string // empty means the default year for today
}

// Register admits a new student
func (s *StudentService) Register(ctx context.Context, input RegisterStudentInput) (*student.Student, error) {
	existing, err := s.studentRepo.FindByAdmissionNumber(ctx, input.AdmissionNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check admission number: %w", err)
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS",
			fmt.Sprintf("Admission number %q is already registered", input.AdmissionNumber))
	}

	year := ledger.DefaultAcademicYear(time.Now())
	if input.AcademicYear != "" {
		year, err = ledger.NewAcademicYear(input.AcademicYear)
		if err != nil {
			return nil, err
		}
	}

	st, err := student.NewStudent(input.AdmissionNumber, input.FullName,
		valueobject.NewMoneyINR(input.AnnualFee), year)
	if err != nil {
		return nil, err
	}
	st.UpdateContact(input.GuardianName, input.Phone, input.RoomNumber)

	if err := s.studentRepo.Save(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// UpdateContactInput contains updatable contact details
type UpdateContactInput struct {
	GuardianName string
	Phone        string
	RoomNumber   string
}

// UpdateContact updates a student's contact details
func (s *StudentService) UpdateContact(ctx context.Context, id uuid.UUID, input UpdateContactInput) (*student.Student, error) {
	st, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	st.UpdateContact(input.GuardianName, input.Phone, input.RoomNumber)
	if err := s.studentRepo.Save(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Deactivate marks a student as having left the hostel
func (s *StudentService) Deactivate(ctx context.Context, id uuid.UUID) error {
	st, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if err := st.Deactivate(); err != nil {
		return err
	}
	return s.studentRepo.Save(ctx, st)
}

// Get returns one student by ID
func (s *StudentService) Get(ctx context.Context, id uuid.UUID) (*student.Student, error) {
	return s.get(ctx, id)
}

// List returns students matching the filter together with the total count
func (s *StudentService) List(ctx context.Context, filter student.Filter) ([]student.Student, int64, error) {
	students, err := s.studentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.studentRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return students, total, nil
}

func (s *StudentService) get(ctx context.Context, id uuid.UUID) (*student.Student, error) {
	st, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load student: %w", err)
	}
	if st == nil {
		return nil, shared.NewDomainError("STUDENT_NOT_FOUND", "Student not found")
	}
	return st, nil
}
