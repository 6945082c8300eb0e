package models

import (
	"time"

	"github.com/hostelms/backend/internal/domain/ledger"
	"github.com/hostelms/backend/internal/domain/student"

	"github.com/shopspring/decimal"
)

// StudentModel is the persistence model for the Student aggregate root.
type StudentModel struct {
	AggregateModel
	AdmissionNumber     string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	FullName            string              `gorm:"type:varchar(200);not null"`
	GuardianName        string              `gorm:"type:varchar(200)"`
	Phone               string              `gorm:"type:varchar(20)"`
	RoomNumber          string              `gorm:"type:varchar(20)"`
	AnnualFee           decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	CurrentAcademicYear ledger.AcademicYear `gorm:"type:varchar(7);not null;index"`
	Active              bool                `gorm:"not null;default:true;index"`
	DeactivatedAt       *time.Time
}

// TableName returns the table name for GORM
func (StudentModel) TableName() string {
	return "students"
}

// ToDomain converts the persistence model to a domain Student.
func (m *StudentModel) ToDomain() *student.Student {
	return &student.Student{
		BaseAggregateRoot:   m.ToDomainAggregateRoot(),
		AdmissionNumber:     m.AdmissionNumber,
		FullName:            m.FullName,
		GuardianName:        m.GuardianName,
		Phone:               m.Phone,
		RoomNumber:          m.RoomNumber,
		AnnualFee:           m.AnnualFee,
		CurrentAcademicYear: m.CurrentAcademicYear,
		Active:              m.Active,
		DeactivatedAt:       m.DeactivatedAt,
	}
}

// FromDomain populates the persistence model from a domain Student.
func (m *StudentModel) FromDomain(s *student.Student) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.AdmissionNumber = s.AdmissionNumber
	m.FullName = s.FullName
	m.GuardianName = s.GuardianName
	m.Phone = s.Phone
	m.RoomNumber = s.RoomNumber
	m.AnnualFee = s.AnnualFee
	m.CurrentAcademicYear = s.CurrentAcademicYear
	m.Active = s.Active
	m.DeactivatedAt = s.DeactivatedAt
}

// StudentModelFromDomain creates a new persistence model from a domain Student.
func StudentModelFromDomain(s *student.Student) *StudentModel {
	m := &StudentModel{}
	m.FromDomain(s)
	return m
}
