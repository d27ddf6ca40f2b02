package editor

import (
	"strconv"

	"github.com/tm-acme-shop/acme-shop-admin-console/internal/models"
)

// View is what an editor panel renders.
type View struct {
	Mode            Mode                 `json:"mode"`
	OrderID         int64                `json:"orderId,omitempty"`
	UserID          string               `json:"userId"`
	CustomerName    string               `json:"customerName,omitempty"`
	ShippingAddress string               `json:"shippingAddress"`
	Items           []ViewItem           `json:"items"`
	TotalAmount     *models.Amount       `json:"totalAmount,omitempty"`
	CurrentStatus   models.OrderStatus   `json:"currentStatus,omitempty"`
	Status          models.OrderStatus   `json:"status,omitempty"`
	StatusOptions   []models.OrderStatus `json:"statusOptions,omitempty"`
	ReadOnly        []string             `json:"readOnly,omitempty"`
	CanDelete       bool                 `json:"canDelete"`
}

type ViewItem struct {
	ProductID   int64          `json:"productId"`
	ProductName string         `json:"productName,omitempty"`
	Quantity    int            `json:"quantity"`
	UnitPrice   *models.Amount `json:"unitPrice,omitempty"`
	Subtotal    *models.Amount `json:"subtotal,omitempty"`
}

func (e *OrderEditor) View() View {
	switch d := e.draft.(type) {
	case *NewDraft:
		return e.newView(d)
	case *ExistingDraft:
		return e.existingView(d)
	}
	return View{}
}

func (e *OrderEditor) newView(d *NewDraft) View {
	v := View{
		Mode:            ModeNew,
		UserID:          d.UserID,
		ShippingAddress: d.ShippingAddress,
		Items:           make([]ViewItem, 0, len(d.Items)),
	}
	if u, ok := e.ref.User(d.UserID); ok {
		v.CustomerName = u.FullName()
	}
	for _, item := range d.Items {
		vi := ViewItem{ProductID: item.ProductID, Quantity: item.Quantity}
		if p, ok := e.ref.Product(item.ProductID); ok {
			vi.ProductName = p.Name
		}
		v.Items = append(v.Items, vi)
	}
	return v
}

func (e *OrderEditor) existingView(d *ExistingDraft) View {
	total := d.Order.TotalAmount
	v := View{
		Mode:            ModeExisting,
		OrderID:         d.ID,
		UserID:          formatID(d.Order.UserID),
		CustomerName:    d.Order.UserName,
		ShippingAddress: d.Order.ShippingAddress,
		Items:           make([]ViewItem, 0, len(d.Order.Items)),
		TotalAmount:     &total,
		CurrentStatus:   d.CurrentStatus,
		Status:          d.Status,
		StatusOptions:   append([]models.OrderStatus(nil), models.OrderStatuses...),
		ReadOnly:        []string{"userId", "shippingAddress", "items"},
		CanDelete:       !d.CurrentStatus.IsTerminal(),
	}
	if v.CustomerName == "" {
		if u, ok := e.ref.User(v.UserID); ok {
			v.CustomerName = u.FullName()
		}
	}
	for _, item := range d.Order.Items {
		vi := ViewItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		}
		if vi.ProductName == "" {
			if p, ok := e.ref.Product(item.ProductID); ok {
				vi.ProductName = p.Name
			}
		}
		v.Items = append(v.Items, vi)
	}
	return v
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
