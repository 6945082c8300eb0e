package persistence

import (
	"context"

	"github.com/hostelms/backend/internal/domain/ledger"
	"github.com/hostelms/backend/internal/infrastructure/persistence/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFeeRevisionRepository implements FeeRevisionRepository using GORM.
// Revision rows are written through the receipt repository's composite
// transaction; this repository only reads them back.
type GormFeeRevisionRepository struct {
	db *gorm.DB
}

// NewGormFeeRevisionRepository creates a new GormFeeRevisionRepository
func NewGormFeeRevisionRepository(db *gorm.DB) *GormFeeRevisionRepository {
	return &GormFeeRevisionRepository{db: db}
}

// FindByAccount lists revisions for a fee account, newest first
func (r *GormFeeRevisionRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) ([]ledger.FeeRevision, error) {
	var revisionModels []models.FeeRevisionModel
	if err := r.db.WithContext(ctx).
		Where("fee_account_id = ?", accountID).
		Order("revised_at DESC").
		Find(&revisionModels).Error; err != nil {
		return nil, err
	}
	revisions := make([]ledger.FeeRevision, len(revisionModels))
	for i, model := range revisionModels {
		revisions[i] = *model.ToDomain()
	}
	return revisions, nil
}

// Ensure GormFeeRevisionRepository implements FeeRevisionRepository
var _ ledger.FeeRevisionRepository = (*GormFeeRevisionRepository)(nil)
