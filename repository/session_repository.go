package repository

import (
	"context"
	"time"

	"storefront/entity"

	"gorm.io/gorm"
)

// SessionRepository keeps sessions in the main database. Used when Redis is not configured.
type SessionRepository struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db, Now: time.Now}
}

func (r *SessionRepository) Create(ctx context.Context, s *entity.Session) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *SessionRepository) Active(ctx context.Context, id string) (bool, error) {
	var cnt int64
	err := r.DB.WithContext(ctx).Model(&entity.Session{}).
		Where("id = ? AND revoked_at IS NULL AND expires_at > ?", id, r.Now()).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *SessionRepository) Revoke(ctx context.Context, id string) (bool, error) {
	now := r.Now()
	res := r.DB.WithContext(ctx).Model(&entity.Session{}).
		Where("id = ? AND revoked_at IS NULL AND expires_at > ?", id, now).
		Update("revoked_at", now)
	return res.RowsAffected == 1, res.Error
}

// PurgeExpired drops sessions that can no longer authenticate.
func (r *SessionRepository) PurgeExpired(ctx context.Context) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("expires_at <= ? OR revoked_at IS NOT NULL", r.Now()).
		Delete(&entity.Session{})
	return res.RowsAffected, res.Error
}
