package application

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/stockops/stockflow/internal/identity"
	"github.com/stockops/stockflow/internal/notification/domain"
	orderdomain "github.com/stockops/stockflow/internal/order/domain"
	repldomain "github.com/stockops/stockflow/internal/replenishment/domain"
	stockdomain "github.com/stockops/stockflow/internal/stock/domain"
)

// Dispatcher fans a domain event out to its interested users as in-app
// notification rows. Delivery is fire-and-forget: a recipient that cannot
// be written is logged and skipped, never bubbled back to the workflow
// that produced the event.
type Dispatcher struct {
	log   *slog.Logger
	users UserDirectory
	repo  NotificationRepository
}

func NewDispatcher(log *slog.Logger, users UserDirectory, repo NotificationRepository) *Dispatcher {
	return &Dispatcher{log: log, users: users, repo: repo}
}

func (d *Dispatcher) Handle(ctx context.Context, eventType string, payload []byte) error {
	recipients, err := d.resolve(ctx, eventType, payload)
	if err != nil {
		return err
	}

	for _, userID := range recipients {
		if err := d.repo.Insert(ctx, domain.New(userID, eventType, payload)); err != nil {
			d.log.Error("notification delivery failed", "user_id", userID, "type", eventType, "err", err)
		}
	}
	return nil
}

// resolve maps an event to the users who should hear about it: low stock
// goes to every admin, order status changes to the order's owner, and
// replenishment outcomes to the requester.
func (d *Dispatcher) resolve(ctx context.Context, eventType string, payload []byte) ([]uuid.UUID, error) {
	switch eventType {
	case stockdomain.EventLowStock:
		admins, err := d.users.ListByRole(ctx, identity.RoleAdmin)
		if err != nil {
			return nil, err
		}
		ids := make([]uuid.UUID, 0, len(admins))
		for _, u := range admins {
			ids = append(ids, u.ID)
		}
		return ids, nil

	case orderdomain.EventStatusChanged:
		var ev orderdomain.OrderStatusChanged
		if err := json.Unmarshal(payload, &ev); err != nil {
			return nil, err
		}
		return []uuid.UUID{ev.UserID}, nil

	case repldomain.EventDecided:
		var ev repldomain.ReplenishmentDecided
		if err := json.Unmarshal(payload, &ev); err != nil {
			return nil, err
		}
		return []uuid.UUID{ev.RequestedBy}, nil

	default:
		// order.created and anything newer have no in-app audience yet.
		return nil, nil
	}
}
