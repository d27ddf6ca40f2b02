// Package dashboard reduces fetched lists to the figures shown on the home
// tab. Every function is pure and ignores input order.
package dashboard

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/models"
)

const (
	unknownKey        = "UNKNOWN"
	lowStockThreshold = 10
)

type OrderStats struct {
	Count             int            `json:"count"`
	ByStatus          map[string]int `json:"byStatus"`
	AverageValue      float64        `json:"averageValue"`
	AverageItemCount  float64        `json:"averageItems"`
	averageValueExact decimal.Decimal
}

// AverageValueDecimal is AverageValue without float rounding.
func (s OrderStats) AverageValueDecimal() decimal.Decimal {
	return s.averageValueExact
}

// Orders computes the status histogram and averages. A total that is not a
// number contributes zero; an empty list averages to zero.
func Orders(orders []models.Order) OrderStats {
	stats := OrderStats{
		Count:             len(orders),
		ByStatus:          StatusHistogram(orders),
		averageValueExact: decimal.Zero,
	}
	if len(orders) == 0 {
		return stats
	}

	sum := decimal.Zero
	items := 0
	for i := range orders {
		sum = sum.Add(orders[i].TotalAmount.Decimal())
		items += orders[i].ItemCount()
	}

	n := decimal.NewFromInt(int64(len(orders)))
	stats.averageValueExact = sum.Div(n)
	stats.AverageValue, _ = stats.averageValueExact.Float64()
	stats.AverageItemCount = float64(items) / float64(len(orders))
	return stats
}

// StatusHistogram counts orders per status.
func StatusHistogram(orders []models.Order) map[string]int {
	hist := make(map[string]int)
	for _, o := range orders {
		key := string(o.Status)
		if key == "" {
			key = unknownKey
		}
		hist[key]++
	}
	return hist
}

type UserStats struct {
	Count         int `json:"count"`
	Active        int `json:"active"`
	ActivePercent int `json:"activePercent"`
}

func Users(users []models.User) UserStats {
	stats := UserStats{Count: len(users)}
	for _, u := range users {
		if u.Active {
			stats.Active++
		}
	}
	if stats.Count > 0 {
		stats.ActivePercent = int(math.Round(float64(stats.Active) * 100 / float64(stats.Count)))
	}
	return stats
}

type ProductStats struct {
	Count      int              `json:"count"`
	ByCategory map[string]int   `json:"byCategory"`
	LowStock   []models.Product `json:"lowStock"`
}

// Products groups by category and lists products whose known stock is at
// or below the low-stock threshold.
func Products(products []models.Product) ProductStats {
	stats := ProductStats{
		Count:      len(products),
		ByCategory: make(map[string]int),
		LowStock:   make([]models.Product, 0),
	}
	for _, p := range products {
		key := string(p.Category)
		if key == "" {
			key = unknownKey
		}
		stats.ByCategory[key]++

		if p.Stock != nil && *p.Stock <= lowStockThreshold {
			stats.LowStock = append(stats.LowStock, p)
		}
	}
	return stats
}

// Summary is the whole home tab.
type Summary struct {
	Users    UserStats    `json:"users"`
	Products ProductStats `json:"products"`
	Orders   OrderStats   `json:"orders"`
}

func Summarize(users []models.User, products []models.Product, orders []models.Order) Summary {
	return Summary{
		Users:    Users(users),
		Products: Products(products),
		Orders:   Orders(orders),
	}
}
