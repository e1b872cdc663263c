package outbox

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harvestlane/harvestlane-backend/pkg/db/models"
	"github.com/harvestlane/harvestlane-backend/pkg/enums"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Insert writes the event inside the caller's transaction so the event and
// the state change it describes commit or roll back together.
func (r *Repository) Insert(tx *gorm.DB, event models.OutboxEvent) error {
	if tx == nil {
		return errors.New("transaction required")
	}
	return tx.Create(&event).Error
}

// FetchPending returns the oldest pending events, capped at limit.
func (r *Repository) FetchPending(ctx context.Context, limit int) ([]models.OutboxEvent, error) {
	var rows []models.OutboxEvent
	err := r.db.WithContext(ctx).
		Where("status = ?", enums.OutboxStatusPending).
		Order("created_at ASC").
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// MarkProcessed flags the event as handled.
func (r *Repository) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.OutboxEvent{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       enums.OutboxStatusProcessed,
			"processed_at": time.Now(),
		}).Error
}

// MarkFailed records the error and bumps the attempt counter. Once attempts
// reach maxAttempts the event moves to dead and is never retried.
func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, cause error, maxAttempts int) error {
	updates := map[string]any{
		"last_error": cause.Error(),
		"attempts":   gorm.Expr("attempts + 1"),
	}
	if err := r.db.WithContext(ctx).Model(&models.OutboxEvent{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&models.OutboxEvent{}).
		Where("id = ? AND attempts >= ?", id, maxAttempts).
		Update("status", enums.OutboxStatusDead).Error
}

// CountByStatus is used by tests and the admin surface to inspect backlog.
func (r *Repository) CountByStatus(ctx context.Context, status enums.OutboxStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.OutboxEvent{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
