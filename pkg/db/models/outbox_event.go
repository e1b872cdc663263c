package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/harvestlane/harvestlane-backend/pkg/enums"
)

// OutboxEvent is written in the same transaction as the state change it
// describes. The sync-worker dispatcher polls pending rows and marks them
// processed or dead.
type OutboxEvent struct {
	ID            uuid.UUID                 `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EventType     enums.OutboxEventType     `gorm:"column:event_type;not null"`
	AggregateType enums.OutboxAggregateType `gorm:"column:aggregate_type;not null"`
	AggregateID   uuid.UUID                 `gorm:"column:aggregate_id;type:uuid;not null"`
	Payload       json.RawMessage           `gorm:"column:payload;type:jsonb;not null"`
	Status        enums.OutboxStatus        `gorm:"column:status;not null;default:'pending';index:idx_outbox_status_created,priority:1"`
	Attempts      int                       `gorm:"column:attempts;not null;default:0"`
	LastError     *string                   `gorm:"column:last_error"`
	CreatedAt     time.Time                 `gorm:"column:created_at;autoCreateTime;index:idx_outbox_status_created,priority:2"`
	ProcessedAt   *time.Time                `gorm:"column:processed_at"`
}

// TableName keeps the plural snake_case convention explicit.
func (OutboxEvent) TableName() string { return "outbox_events" }
