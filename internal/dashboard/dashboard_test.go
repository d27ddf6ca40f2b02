package dashboard

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/models"
)

func ordersFromJSON(t *testing.T, body string) []models.Order {
	t.Helper()
	var orders []models.Order
	if err := json.Unmarshal([]byte(body), &orders); err != nil {
		t.Fatalf("invalid fixture: %v", err)
	}
	return orders
}

func TestStatusHistogram(t *testing.T) {
	orders := []models.Order{
		{Status: models.OrderStatusPending},
		{Status: models.OrderStatusPending},
		{Status: models.OrderStatusShipped},
	}

	hist := StatusHistogram(orders)

	if len(hist) != 2 || hist["PENDING"] != 2 || hist["SHIPPED"] != 1 {
		t.Errorf("Expected {PENDING:2, SHIPPED:1}, got %v", hist)
	}
}

func TestStatusHistogram_MissingStatus(t *testing.T) {
	hist := StatusHistogram([]models.Order{{}, {Status: models.OrderStatusCancelled}})

	if hist["UNKNOWN"] != 1 || hist["CANCELLED"] != 1 {
		t.Errorf("Unexpected histogram %v", hist)
	}
}

func TestOrders_AverageValueCoercesBadTotals(t *testing.T) {
	orders := ordersFromJSON(t, `[
		{"totalAmount": 10},
		{"totalAmount": "20"},
		{"totalAmount": "bad"},
		{"totalAmount": 30}
	]`)

	stats := Orders(orders)

	if stats.Count != 4 {
		t.Errorf("Expected count 4, got %d", stats.Count)
	}
	if stats.AverageValue != 15 {
		t.Errorf("Expected average 15, got %v", stats.AverageValue)
	}
	if !stats.AverageValueDecimal().Equal(decimal.NewFromInt(15)) {
		t.Errorf("Expected exact average 15, got %s", stats.AverageValueDecimal())
	}
}

func TestOrders_AverageItems(t *testing.T) {
	orders := ordersFromJSON(t, `[
		{"orderItems": [{"productId": 1, "quantity": 2}, {"productId": 2, "quantity": 1}]},
		{"items": [{"productId": 3, "quantity": 3}]},
		{}
	]`)

	stats := Orders(orders)

	if stats.AverageItemCount != 2 {
		t.Errorf("Expected average items 2, got %v", stats.AverageItemCount)
	}
}

func TestOrders_Empty(t *testing.T) {
	stats := Orders(nil)

	if stats.Count != 0 || stats.AverageValue != 0 || stats.AverageItemCount != 0 {
		t.Errorf("Expected zero stats, got %+v", stats)
	}
	if stats.ByStatus == nil {
		t.Error("Expected non-nil histogram")
	}
}

func TestOrders_OrderIndependent(t *testing.T) {
	a := ordersFromJSON(t, `[{"orderStatus":"PENDING","totalAmount":5},{"orderStatus":"SHIPPED","totalAmount":"7.5"}]`)
	b := []models.Order{a[1], a[0]}

	sa, sb := Orders(a), Orders(b)
	if sa.AverageValue != sb.AverageValue || sa.ByStatus["PENDING"] != sb.ByStatus["PENDING"] {
		t.Errorf("Expected order-independent results, got %+v vs %+v", sa, sb)
	}
}

func TestUsers(t *testing.T) {
	tests := []struct {
		name    string
		users   []models.User
		active  int
		percent int
	}{
		{"empty", nil, 0, 0},
		{"all active", []models.User{{Active: true}, {Active: true}}, 2, 100},
		{"one of three", []models.User{{Active: true}, {}, {}}, 1, 33},
		{"two of three rounds up", []models.User{{Active: true}, {Active: true}, {}}, 2, 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := Users(tt.users)
			if stats.Count != len(tt.users) || stats.Active != tt.active || stats.ActivePercent != tt.percent {
				t.Errorf("Users() = %+v, want active %d percent %d", stats, tt.active, tt.percent)
			}
		})
	}
}

func TestProducts(t *testing.T) {
	stock := func(n int) *int { return &n }
	products := []models.Product{
		{ID: 1, Category: models.CategoryBooks, Stock: stock(3)},
		{ID: 2, Category: models.CategoryBooks, Stock: stock(10)},
		{ID: 3, Category: models.CategoryFood, Stock: stock(11)},
		{ID: 4, Stock: nil},
	}

	stats := Products(products)

	if stats.Count != 4 {
		t.Errorf("Expected count 4, got %d", stats.Count)
	}
	if stats.ByCategory["BOOKS"] != 2 || stats.ByCategory["FOOD"] != 1 || stats.ByCategory["UNKNOWN"] != 1 {
		t.Errorf("Unexpected category histogram %v", stats.ByCategory)
	}
	if len(stats.LowStock) != 2 || stats.LowStock[0].ID != 1 || stats.LowStock[1].ID != 2 {
		t.Errorf("Expected products 1 and 2 low on stock, got %+v", stats.LowStock)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(
		[]models.User{{Active: true}},
		[]models.Product{{Category: models.CategoryOther}},
		[]models.Order{{Status: models.OrderStatusDelivered, TotalAmount: models.ParseAmount("12")}},
	)

	if s.Users.Count != 1 || s.Products.Count != 1 || s.Orders.Count != 1 {
		t.Errorf("Unexpected summary %+v", s)
	}
	if s.Orders.AverageValue != 12 {
		t.Errorf("Expected average 12, got %v", s.Orders.AverageValue)
	}
}
