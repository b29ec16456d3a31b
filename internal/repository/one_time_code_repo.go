package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sulakshana2003/BackEnd-R/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OneTimeCodeRepository interface {
	// Supersede stores code as the only code of its user.
	Supersede(ctx context.Context, code *entity.OneTimeCode) error
	FindValid(ctx context.Context, userID uuid.UUID, codeHash string, now time.Time) (*entity.OneTimeCode, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type oneTimeCodeRepository struct {
	db *gorm.DB
}

func NewOneTimeCodeRepository(db *gorm.DB) OneTimeCodeRepository {
	return &oneTimeCodeRepository{db: db}
}

// Supersede locks the owning user row, inserts the new code and prunes every
// other code of that user in one transaction. Callers racing on the same user
// are serialised by the lock, so the last one to commit holds the only code.
func (r *oneTimeCodeRepository) Supersede(ctx context.Context, code *entity.OneTimeCode) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner entity.User
		if err := lockForUpdate(tx).Select("id").Where("id = ?", code.UserID).First(&owner).Error; err != nil {
			return err
		}
		if err := tx.Create(code).Error; err != nil {
			return err
		}
		return tx.
			Where("user_id = ? AND id <> ?", code.UserID, code.ID).
			Delete(&entity.OneTimeCode{}).
			Error
	})
}

func (r *oneTimeCodeRepository) FindValid(
	ctx context.Context,
	userID uuid.UUID,
	codeHash string,
	now time.Time,
) (*entity.OneTimeCode, error) {

	var code entity.OneTimeCode
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND code_hash = ? AND expires_at > ?", userID, codeHash, now).
		Order("created_at DESC").
		First(&code).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *oneTimeCodeRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&entity.OneTimeCode{}).
		Error
}
