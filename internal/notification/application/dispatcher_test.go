package application

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/stockops/stockflow/internal/identity"
	"github.com/stockops/stockflow/internal/notification/domain"
	orderdomain "github.com/stockops/stockflow/internal/order/domain"
	repldomain "github.com/stockops/stockflow/internal/replenishment/domain"
	stockdomain "github.com/stockops/stockflow/internal/stock/domain"
)

type fakeDirectory struct {
	usersByRole map[identity.Role][]identity.User
}

func (f *fakeDirectory) ListByRole(ctx context.Context, role identity.Role) ([]identity.User, error) {
	return f.usersByRole[role], nil
}

type fakeNotifRepo struct {
	inserted  []domain.Notification
	insertErr error
}

func (f *fakeNotifRepo) Insert(ctx context.Context, n domain.Notification) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, n)
	return nil
}

func (f *fakeNotifRepo) ListByUser(ctx context.Context, userID uuid.UUID, onlyUnread bool) ([]domain.Notification, error) {
	return nil, nil
}
func (f *fakeNotifRepo) MarkRead(ctx context.Context, id, userID uuid.UUID) error { return nil }
func (f *fakeNotifRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) error  { return nil }
func (f *fakeNotifRepo) Delete(ctx context.Context, id, userID uuid.UUID) error   { return nil }

func TestLowStockGoesToEveryAdmin(t *testing.T) {
	adminA := identity.User{ID: uuid.New(), Role: identity.RoleAdmin}
	adminB := identity.User{ID: uuid.New(), Role: identity.RoleAdmin}
	dir := &fakeDirectory{usersByRole: map[identity.Role][]identity.User{
		identity.RoleAdmin: {adminA, adminB},
	}}
	repo := &fakeNotifRepo{}
	d := NewDispatcher(slog.Default(), dir, repo)

	payload, _ := json.Marshal(stockdomain.LowStockCrossed{ProductID: uuid.New(), ProductName: "widget", Quantity: 2, LowStockThreshold: 3})
	require.NoError(t, d.Handle(context.Background(), stockdomain.EventLowStock, payload))

	require.Len(t, repo.inserted, 2)
	require.ElementsMatch(t,
		[]uuid.UUID{adminA.ID, adminB.ID},
		[]uuid.UUID{repo.inserted[0].UserID, repo.inserted[1].UserID},
	)
	require.Equal(t, stockdomain.EventLowStock, repo.inserted[0].Type)
}

func TestOrderStatusChangeGoesToOwner(t *testing.T) {
	owner := uuid.New()
	repo := &fakeNotifRepo{}
	d := NewDispatcher(slog.Default(), &fakeDirectory{}, repo)

	payload, _ := json.Marshal(orderdomain.OrderStatusChanged{
		OrderID:     uuid.New(),
		OrderNumber: "ORD-ABCDEFGH12",
		UserID:      owner,
		Status:      orderdomain.StatusShipped,
	})
	require.NoError(t, d.Handle(context.Background(), orderdomain.EventStatusChanged, payload))

	require.Len(t, repo.inserted, 1)
	require.Equal(t, owner, repo.inserted[0].UserID)
}

func TestReplenishmentDecisionGoesToRequester(t *testing.T) {
	requester := uuid.New()
	repo := &fakeNotifRepo{}
	d := NewDispatcher(slog.Default(), &fakeDirectory{}, repo)

	payload, _ := json.Marshal(repldomain.ReplenishmentDecided{
		RequestID:   uuid.New(),
		RequestedBy: requester,
		Stage:       repldomain.StageWarehouse,
		Decision:    repldomain.ApprovalApproved,
	})
	require.NoError(t, d.Handle(context.Background(), repldomain.EventDecided, payload))

	require.Len(t, repo.inserted, 1)
	require.Equal(t, requester, repo.inserted[0].UserID)
}

func TestUnknownEventHasNoAudience(t *testing.T) {
	repo := &fakeNotifRepo{}
	d := NewDispatcher(slog.Default(), &fakeDirectory{}, repo)

	require.NoError(t, d.Handle(context.Background(), orderdomain.EventCreated, []byte(`{}`)))
	require.Empty(t, repo.inserted)
}

func TestDeliveryFailureIsSwallowed(t *testing.T) {
	owner := uuid.New()
	repo := &fakeNotifRepo{insertErr: errors.New("row write failed")}
	d := NewDispatcher(slog.Default(), &fakeDirectory{}, repo)

	payload, _ := json.Marshal(orderdomain.OrderStatusChanged{UserID: owner, Status: orderdomain.StatusShipped})
	require.NoError(t, d.Handle(context.Background(), orderdomain.EventStatusChanged, payload))
	require.Empty(t, repo.inserted)
}

func TestMalformedPayloadErrors(t *testing.T) {
	d := NewDispatcher(slog.Default(), &fakeDirectory{}, &fakeNotifRepo{})
	err := d.Handle(context.Background(), orderdomain.EventStatusChanged, []byte(`{not json`))
	require.Error(t, err)
}
