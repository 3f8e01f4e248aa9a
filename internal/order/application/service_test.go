package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/stockops/stockflow/internal/cart/domain"
	"github.com/stockops/stockflow/internal/order/domain"
	stockdomain "github.com/stockops/stockflow/internal/stock/domain"
)

type fakeOrderRepo struct {
	orders map[uuid.UUID]domain.Order

	createErrs []error // popped per CreateFromCart call
	created    []domain.Order

	paymentMethods []domain.PaymentMethod

	lastEventType string
	lastPayload   []byte
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]domain.Order)}
}

func (f *fakeOrderRepo) CreateFromCart(ctx context.Context, o domain.Order, cartID uuid.UUID) error {
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return err
		}
	}
	f.orders[o.ID] = o
	f.created = append(f.created, o)
	return nil
}

func (f *fakeOrderRepo) Get(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrNotFound
	}
	return o, nil
}

func (f *fakeOrderRepo) List(ctx context.Context, filter domain.ListFilter) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status, staffID uuid.UUID, eventType string, payload []byte) error {
	o, ok := f.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	o.StaffID = &staffID
	f.orders[id] = o
	f.lastEventType = eventType
	f.lastPayload = payload
	return nil
}

func (f *fakeOrderRepo) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) error {
	o, ok := f.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.PaymentStatus = status
	f.orders[id] = o
	return nil
}

func (f *fakeOrderRepo) ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	return f.paymentMethods, nil
}

type fakeCartSource struct {
	cart cartdomain.Cart
}

func (f *fakeCartSource) GetByUser(ctx context.Context, userID uuid.UUID) (cartdomain.Cart, error) {
	return f.cart, nil
}

func filledCart(userID uuid.UUID) cartdomain.Cart {
	return cartdomain.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items: []cartdomain.CartItem{
			{ID: uuid.New(), ProductID: uuid.New(), ProductName: "widget", UnitPrice: decimal.RequireFromString("10.00"), Quantity: 2},
		},
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	userID := uuid.New()
	repo := newFakeOrderRepo()
	svc := NewService(slog.Default(), repo, &fakeCartSource{cart: cartdomain.Cart{ID: uuid.New(), UserID: userID}})

	_, err := svc.Checkout(context.Background(), userID, "")
	require.ErrorIs(t, err, domain.ErrEmptyCart)
	require.Empty(t, repo.created)
}

func TestCheckoutFreezesCartPrices(t *testing.T) {
	userID := uuid.New()
	repo := newFakeOrderRepo()
	cart := filledCart(userID)
	svc := NewService(slog.Default(), repo, &fakeCartSource{cart: cart})

	o, err := svc.Checkout(context.Background(), userID, "gift wrap")
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, o.Status)
	require.True(t, o.TotalAmount.Equal(decimal.RequireFromString("20.00")))
	require.Equal(t, "gift wrap", o.Notes)
	require.Len(t, o.Items, 1)
	require.True(t, o.Items[0].UnitPrice.Equal(cart.Items[0].UnitPrice))
}

func TestCheckoutInsufficientStockAborts(t *testing.T) {
	userID := uuid.New()
	repo := newFakeOrderRepo()
	repo.createErrs = []error{stockdomain.ErrInsufficientStock}
	svc := NewService(slog.Default(), repo, &fakeCartSource{cart: filledCart(userID)})

	_, err := svc.Checkout(context.Background(), userID, "")
	require.ErrorIs(t, err, stockdomain.ErrInsufficientStock)
	// No retry on stock failure; regeneration is only for number collisions.
	require.Empty(t, repo.created)
}

func TestCheckoutRetriesNumberCollision(t *testing.T) {
	userID := uuid.New()
	repo := newFakeOrderRepo()
	repo.createErrs = []error{domain.ErrOrderNumberTaken, domain.ErrOrderNumberTaken, nil}
	svc := NewService(slog.Default(), repo, &fakeCartSource{cart: filledCart(userID)})

	o, err := svc.Checkout(context.Background(), userID, "")
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	require.Equal(t, o.OrderNumber, repo.created[0].OrderNumber)
}

func TestCheckoutGivesUpAfterThreeCollisions(t *testing.T) {
	userID := uuid.New()
	repo := newFakeOrderRepo()
	repo.createErrs = []error{domain.ErrOrderNumberTaken, domain.ErrOrderNumberTaken, domain.ErrOrderNumberTaken}
	svc := NewService(slog.Default(), repo, &fakeCartSource{cart: filledCart(userID)})

	_, err := svc.Checkout(context.Background(), userID, "")
	require.ErrorIs(t, err, domain.ErrOrderNumberCollision)
	require.Empty(t, repo.created)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewService(slog.Default(), repo, &fakeCartSource{})

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), domain.Status("Cancelled"), uuid.New())
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestUpdateStatusRecordsStaffAndEvent(t *testing.T) {
	userID := uuid.New()
	staffID := uuid.New()
	repo := newFakeOrderRepo()
	svc := NewService(slog.Default(), repo, &fakeCartSource{cart: filledCart(userID)})

	o, err := svc.Checkout(context.Background(), userID, "")
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), o.ID, domain.StatusShipped, staffID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusShipped, updated.Status)
	require.NotNil(t, updated.StaffID)
	require.Equal(t, staffID, *updated.StaffID)

	require.Equal(t, domain.EventStatusChanged, repo.lastEventType)
	var ev domain.OrderStatusChanged
	require.NoError(t, json.Unmarshal(repo.lastPayload, &ev))
	require.Equal(t, o.ID, ev.OrderID)
	require.Equal(t, userID, ev.UserID)
	require.Equal(t, domain.StatusShipped, ev.Status)
}

func TestUpdateStatusAllowsJumpsWithinTheSet(t *testing.T) {
	userID := uuid.New()
	repo := newFakeOrderRepo()
	svc := NewService(slog.Default(), repo, &fakeCartSource{cart: filledCart(userID)})

	o, err := svc.Checkout(context.Background(), userID, "")
	require.NoError(t, err)

	// Pending straight to Delivered, then back to Processing.
	_, err = svc.UpdateStatus(context.Background(), o.ID, domain.StatusDelivered, uuid.New())
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), o.ID, domain.StatusProcessing, uuid.New())
	require.NoError(t, err)
}

func TestPaymentMethodsListsSeededLookup(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.paymentMethods = []domain.PaymentMethod{
		{ID: uuid.New(), Name: "Credit Card"},
		{ID: uuid.New(), Name: "PayPal"},
	}
	svc := NewService(slog.Default(), repo, &fakeCartSource{})

	methods, err := svc.PaymentMethods(context.Background())
	require.NoError(t, err)
	require.Len(t, methods, 2)
	require.Equal(t, "Credit Card", methods[0].Name)
}

func TestUpdatePaymentStatus(t *testing.T) {
	userID := uuid.New()
	repo := newFakeOrderRepo()
	svc := NewService(slog.Default(), repo, &fakeCartSource{cart: filledCart(userID)})

	o, err := svc.Checkout(context.Background(), userID, "")
	require.NoError(t, err)

	_, err = svc.UpdatePaymentStatus(context.Background(), o.ID, domain.PaymentStatus("Refunded"))
	require.ErrorIs(t, err, domain.ErrInvalidPaymentStatus)

	updated, err := svc.UpdatePaymentStatus(context.Background(), o.ID, domain.PaymentPaid)
	require.NoError(t, err)
	require.Equal(t, domain.PaymentPaid, updated.PaymentStatus)
}
