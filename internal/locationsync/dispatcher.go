package locationsync

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harvestlane/harvestlane-backend/pkg/config"
	"github.com/harvestlane/harvestlane-backend/pkg/db/models"
	"github.com/harvestlane/harvestlane-backend/pkg/enums"
	"github.com/harvestlane/harvestlane-backend/pkg/logger"
	"github.com/harvestlane/harvestlane-backend/pkg/metrics"
	"github.com/harvestlane/harvestlane-backend/pkg/outbox"
	"github.com/harvestlane/harvestlane-backend/pkg/outbox/payloads"
)

type outboxStore interface {
	FetchPending(ctx context.Context, limit int) ([]models.OutboxEvent, error)
	MarkProcessed(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, cause error, maxAttempts int) error
}

// Dispatcher drains the outbox and triggers per-seller syncs for
// seller.location_changed events. It is the bridge between profile writes
// and snapshot consistency: the seller service queues the event, the
// dispatcher makes the snapshots catch up.
type Dispatcher struct {
	store   outboxStore
	sync    Service
	cfg     config.SyncConfig
	metrics *metrics.SyncMetrics
	logg    *logger.Logger
}

// NewDispatcher builds an outbox dispatcher.
func NewDispatcher(store outboxStore, syncSvc Service, cfg config.SyncConfig, m *metrics.SyncMetrics, logg *logger.Logger) (*Dispatcher, error) {
	if store == nil {
		return nil, fmt.Errorf("outbox store required")
	}
	if syncSvc == nil {
		return nil, fmt.Errorf("sync service required")
	}
	return &Dispatcher{store: store, sync: syncSvc, cfg: cfg, metrics: m, logg: logg}, nil
}

// Run polls the outbox until the context is canceled.
func (d *Dispatcher) Run(ctx context.Context) error {
	interval := d.cfg.PollInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := d.DispatchOnce(ctx); err != nil {
				if d.logg != nil {
					d.logg.Error(ctx, "outbox dispatch cycle failed", err)
				}
			}
		}
	}
}

// DispatchOnce processes one batch of pending events and returns how many
// were handled.
func (d *Dispatcher) DispatchOnce(ctx context.Context) (int, error) {
	batch := d.cfg.DispatchBatch
	if batch <= 0 {
		batch = 25
	}

	events, err := d.store.FetchPending(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("fetch pending events: %w", err)
	}

	handled := 0
	for _, event := range events {
		if err := d.handle(ctx, event); err != nil {
			d.metrics.IncOutbox("retried")
			if markErr := d.store.MarkFailed(ctx, event.ID, err, d.maxAttempts()); markErr != nil && d.logg != nil {
				d.logg.Error(ctx, "mark outbox event failed", markErr)
			}
			if d.logg != nil {
				d.logg.Error(ctx, "outbox event handling failed", err)
			}
			continue
		}
		if err := d.store.MarkProcessed(ctx, event.ID); err != nil {
			if d.logg != nil {
				d.logg.Error(ctx, "mark outbox event processed", err)
			}
			continue
		}
		d.metrics.IncOutbox("processed")
		handled++
	}
	return handled, nil
}

func (d *Dispatcher) handle(ctx context.Context, event models.OutboxEvent) error {
	switch event.EventType {
	case enums.EventSellerLocationChanged:
		envelope, err := outbox.DecodeEnvelope(event.Payload)
		if err != nil {
			return err
		}
		var payload payloads.SellerLocationChangedEvent
		if err := json.Unmarshal(envelope.Data, &payload); err != nil {
			return fmt.Errorf("decode location_changed payload: %w", err)
		}
		_, err = d.sync.SyncSellerProducts(ctx, payload.SellerType, payload.SellerID)
		return err
	case enums.EventSellerProfileCreated:
		// New profiles have no products yet; nothing to resync.
		return nil
	default:
		return fmt.Errorf("unhandled event type %q", event.EventType)
	}
}

func (d *Dispatcher) maxAttempts() int {
	if d.cfg.MaxAttempts > 0 {
		return d.cfg.MaxAttempts
	}
	return 5
}
