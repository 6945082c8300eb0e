package persistence

import (
	"context"
	"errors"

	"github.com/hostelms/backend/internal/domain/student"
	"github.com/hostelms/backend/internal/infrastructure/persistence/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStudentRepository implements student.Repository using GORM
type GormStudentRepository struct {
	db *gorm.DB
}

// NewGormStudentRepository creates a new GormStudentRepository
func NewGormStudentRepository(db *gorm.DB) *GormStudentRepository {
	return &GormStudentRepository{db: db}
}

// FindByID finds a student by ID
func (r *GormStudentRepository) FindByID(ctx context.Context, id uuid.UUID) (*student.Student, error) {
	var model models.StudentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByAdmissionNumber finds a student by admission number
func (r *GormStudentRepository) FindByAdmissionNumber(ctx context.Context, admissionNumber string) (*student.Student, error) {
	var model models.StudentModel
	if err := r.db.WithContext(ctx).
		Where("admission_number = ?", admissionNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists students with filtering
func (r *GormStudentRepository) FindAll(ctx context.Context, filter student.Filter) ([]student.Student, error) {
	var studentModels []models.StudentModel
	query := applyStudentFilter(r.db.WithContext(ctx).Model(&models.StudentModel{}), filter)

	query = query.Offset(filter.Offset()).Limit(filter.Limit())
	if filter.OrderBy != "" {
		query = query.Order(filter.OrderBy)
	} else {
		query = query.Order("admission_number ASC")
	}

	if err := query.Find(&studentModels).Error; err != nil {
		return nil, err
	}
	students := make([]student.Student, len(studentModels))
	for i, model := range studentModels {
		students[i] = *model.ToDomain()
	}
	return students, nil
}

// Count counts students matching the filter
func (r *GormStudentRepository) Count(ctx context.Context, filter student.Filter) (int64, error) {
	var count int64
	query := applyStudentFilter(r.db.WithContext(ctx).Model(&models.StudentModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a student
func (r *GormStudentRepository) Save(ctx context.Context, s *student.Student) error {
	model := models.StudentModelFromDomain(s)
	return r.db.WithContext(ctx).Save(model).Error
}

// applyStudentFilter applies the shared filter conditions (not pagination)
func applyStudentFilter(query *gorm.DB, filter student.Filter) *gorm.DB {
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("full_name LIKE ? OR admission_number LIKE ?", pattern, pattern)
	}
	return query
}

// Ensure GormStudentRepository implements student.Repository
var _ student.Repository = (*GormStudentRepository)(nil)
