package postgres

import (
	"context"
	"time"

	"github.com/dom/todo-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// revocationRepository keeps revoked token IDs in a table so revocations
// survive restarts. Entries become dead weight once the token itself has
// expired, so each write prunes whatever is already past its expiry; the
// table stays bounded by the token lifetime without a background sweep.
type revocationRepository struct {
	db *gorm.DB
}

func NewRevocationRepository(db *gorm.DB) *revocationRepository {
	return &revocationRepository{db: db}
}

func (r *revocationRepository) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	entry := &domain.RevokedToken{
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(entry).Error
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Delete(&domain.RevokedToken{}, "expires_at < ?", time.Now()).Error
}

func (r *revocationRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.RevokedToken{}).
		Where("token_id = ?", tokenID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
