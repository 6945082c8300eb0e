package student

import (
	"context"

	"github.com/hostelms/backend/internal/domain/shared"

	"github.com/google/uuid"
)

// Filter defines listing options for student queries
type Filter struct {
	shared.Filter
	Active *bool
}

// Repository defines the interface for student persistence
type Repository interface {
	// FindByID finds a student by ID; returns nil, nil when absent
	FindByID(ctx context.Context, id uuid.UUID) (*Student, error)

	// FindByAdmissionNumber finds a student by admission number
	FindByAdmissionNumber(ctx context.Context, admissionNumber string) (*Student, error)

	// FindAll lists students with filtering
	FindAll(ctx context.Context, filter Filter) ([]Student, error)

	// Count counts students matching the filter
	Count(ctx context.Context, filter Filter) (int64, error)

	// Save creates or updates a student
	Save(ctx context.Context, s *Student) error
}
