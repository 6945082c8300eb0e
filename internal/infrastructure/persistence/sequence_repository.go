package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hostelms/backend/internal/infrastructure/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSequenceRepository implements SequenceRepository using GORM
type GormSequenceRepository struct {
	db *gorm.DB
}

// NewGormSequenceRepository creates a new GormSequenceRepository
func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db}
}

// Next increments and returns the counter for key in its own transaction
func (r *GormSequenceRepository) Next(ctx context.Context, key string) (int64, error) {
	var value int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		v, err := nextSequenceValue(tx, key)
		if err != nil {
			return err
		}
		value = v
		return nil
	})
	return value, err
}

// Current returns the last issued value for key, 0 when the counter does not exist yet
func (r *GormSequenceRepository) Current(ctx context.Context, key string) (int64, error) {
	var model models.SequenceCounterModel
	if err := r.db.WithContext(ctx).First(&model, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return model.Value, nil
}

// nextSequenceValue reads, increments and writes the counter row for key under
// a row lock on the caller's transaction. Composite writes (receipt + account)
// call this on their own tx so the number commits or rolls back with the rest.
func nextSequenceValue(tx *gorm.DB, key string) (int64, error) {
	var model models.SequenceCounterModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "key = ?", key).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		model = models.SequenceCounterModel{Key: key, Value: 1, UpdatedAt: time.Now()}
		if err := tx.Create(&model).Error; err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}

	model.Value++
	model.UpdatedAt = time.Now()
	if err := tx.Save(&model).Error; err != nil {
		return 0, err
	}
	return model.Value, nil
}

// isUniqueViolation reports whether err is a unique-constraint failure.
// GORM only translates these with TranslateError enabled, so the driver
// messages are matched as a fallback (postgres 23505, sqlite UNIQUE).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
