package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateRange bounds the reporting window; both ends are inclusive.
type DateRange struct {
	From time.Time
	To   time.Time
}

type OrderSummary struct {
	ID            uuid.UUID       `json:"id"`
	OrderNumber   string          `json:"order_number"`
	UserID        uuid.UUID       `json:"user_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	OrderStatus   string          `json:"order_status"`
	PaymentStatus string          `json:"payment_status"`
	CreatedAt     time.Time       `json:"created_at"`
}

type ProductSummary struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Quantity          int       `json:"quantity"`
	LowStockThreshold int       `json:"low_stock_threshold"`
}

type TopSeller struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitsSold   int             `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

type RequestSummary struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	RequestedBy uuid.UUID `json:"requested_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type InventorySummary struct {
	TotalProducts int `json:"total_products"`
	TotalUnits    int `json:"total_units"`
	LowStock      int `json:"low_stock"`
	OutOfStock    int `json:"out_of_stock"`
}

type CartSummary struct {
	ItemCount   int             `json:"item_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type AdminDashboard struct {
	TotalIncome          decimal.Decimal  `json:"total_income"`
	OrdersByStatus       map[string]int   `json:"orders_by_status"`
	RecentOrders         []OrderSummary   `json:"recent_orders"`
	LowStockProducts     []ProductSummary `json:"low_stock_products"`
	PendingAdminRequests []RequestSummary `json:"pending_admin_requests"`
	TopSellers           []TopSeller      `json:"top_sellers"`
	CustomerCount        int              `json:"customer_count"`
}

type WarehouseDashboard struct {
	PendingApprovals []RequestSummary `json:"pending_approvals"`
	LowStockProducts []ProductSummary `json:"low_stock_products"`
	RecentApproved   []RequestSummary `json:"recent_approved"`
	Inventory        InventorySummary `json:"inventory"`
}

type StaffDashboard struct {
	PendingOrders   []OrderSummary `json:"pending_orders"`
	ProcessedOrders []OrderSummary `json:"processed_orders"`
}

type CustomerDashboard struct {
	RecentOrders []OrderSummary `json:"recent_orders"`
	Cart         CartSummary    `json:"cart"`
}

// Repository is the read model behind the dashboards. Every method is a
// self-contained aggregate query; none of them mutate state.
type Repository interface {
	TotalIncome(ctx context.Context, r DateRange) (decimal.Decimal, error)
	OrdersByStatus(ctx context.Context, r DateRange) (map[string]int, error)
	RecentOrders(ctx context.Context, r DateRange, limit int) ([]OrderSummary, error)
	TopSellers(ctx context.Context, r DateRange, limit int) ([]TopSeller, error)
	CustomerCount(ctx context.Context) (int, error)
	LowStockProducts(ctx context.Context, limit int) ([]ProductSummary, error)
	InventorySummary(ctx context.Context) (InventorySummary, error)
	PendingAdminRequests(ctx context.Context, limit int) ([]RequestSummary, error)
	PendingWarehouseRequests(ctx context.Context, limit int) ([]RequestSummary, error)
	RecentApprovedRequests(ctx context.Context, limit int) ([]RequestSummary, error)
	OrdersWithStatus(ctx context.Context, status string, limit int) ([]OrderSummary, error)
	OrdersProcessedBy(ctx context.Context, staffID uuid.UUID, limit int) ([]OrderSummary, error)
	OrdersForUser(ctx context.Context, userID uuid.UUID, limit int) ([]OrderSummary, error)
	CartSummary(ctx context.Context, userID uuid.UUID) (CartSummary, error)
}
