package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"rfp-console/internal/entity"
	"rfp-console/internal/pkg/logger"
	"rfp-console/pkg/events"
	natsbus "rfp-console/pkg/nats"
)

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type EventSubscriber interface {
	Subscribe(ctx context.Context, eventType string, handler natsbus.EventHandler) error
}

// Bridge mirrors session changes between console instances over NATS, so
// a login or logout in one instance reaches every other one.
type Bridge struct {
	manager    *Manager
	publisher  EventPublisher
	subscriber EventSubscriber
	logger     logger.ILogger
}

func NewBridge(manager *Manager, publisher EventPublisher, subscriber EventSubscriber, log logger.ILogger) *Bridge {
	return &Bridge{manager: manager, publisher: publisher, subscriber: subscriber, logger: log}
}

// Run forwards local changes and applies remote ones until ctx is done.
func (b *Bridge) Run(ctx context.Context) error {
	if err := b.subscriber.Subscribe(ctx, events.TypeSessionChanged, b.applyRemote); err != nil {
		return fmt.Errorf("subscribe remote session changes: %w", err)
	}

	changes, err := b.manager.Subscribe(ctx)
	if err != nil {
		return err
	}

	b.logger.Info(logModule, "Session bridge started", map[string]interface{}{"origin": b.manager.Origin()})
	for c := range changes {
		if c.Origin != b.manager.Origin() {
			continue
		}
		event, err := toEvent(c)
		if err != nil {
			b.logger.Error(logModule, "Failed to encode session change", map[string]interface{}{"error": err.Error(), "reason": c.Reason})
			continue
		}
		if err := b.publisher.Publish(ctx, event); err != nil {
			b.logger.Error(logModule, "Failed to forward session change", map[string]interface{}{"error": err.Error(), "reason": c.Reason})
		}
	}
	return ctx.Err()
}

func (b *Bridge) applyRemote(ctx context.Context, event events.Event) error {
	c, err := fromEvent(event)
	if err != nil {
		return err
	}
	if c.Origin == "" || c.Origin == b.manager.Origin() {
		return nil
	}
	b.logger.Info(logModule, "Applying remote session change", map[string]interface{}{"origin": c.Origin, "reason": c.Reason})
	return b.manager.Apply(ctx, c)
}

func toEvent(c Change) (events.SessionChanged, error) {
	e := events.SessionChanged{Origin: c.Origin, Reason: c.Reason, OccurredAt: time.Now()}
	if c.Session != nil {
		raw, err := json.Marshal(c.Session)
		if err != nil {
			return events.SessionChanged{}, fmt.Errorf("encode session: %w", err)
		}
		if err := json.Unmarshal(raw, &e.Session); err != nil {
			return events.SessionChanged{}, fmt.Errorf("decode session: %w", err)
		}
	}
	return e, nil
}

func fromEvent(event events.Event) (Change, error) {
	payload := event.Payload()
	c := Change{}
	c.Origin, _ = payload["origin"].(string)
	c.Reason, _ = payload["reason"].(string)

	if raw, ok := payload["session"].(map[string]interface{}); ok && raw != nil {
		data, err := json.Marshal(raw)
		if err != nil {
			return Change{}, fmt.Errorf("encode remote session: %w", err)
		}
		var s entity.Session
		if err := json.Unmarshal(data, &s); err != nil {
			return Change{}, fmt.Errorf("decode remote session: %w", err)
		}
		c.Session = &s
	}
	return c, nil
}
