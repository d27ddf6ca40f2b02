package editor

import (
	"strconv"

	"github.com/tm-acme-shop/acme-shop-admin-console/internal/models"
)

// Mode tells whether a draft describes an order that does not exist yet.
type Mode string

const (
	ModeNew      Mode = "NEW"
	ModeExisting Mode = "EXISTING"
)

// Draft is either a *NewDraft or an *ExistingDraft.
type Draft interface {
	Mode() Mode
	isDraft()
}

// NewDraft holds the fields of an order being composed. Values may be
// incomplete or invalid until Save checks them.
type NewDraft struct {
	UserID          string                   `json:"userId"`
	ShippingAddress string                   `json:"shippingAddress"`
	Items           []models.LineItemRequest `json:"items"`
}

func (*NewDraft) Mode() Mode { return ModeNew }
func (*NewDraft) isDraft()   {}

func (d *NewDraft) clone() *NewDraft {
	c := *d
	c.Items = append([]models.LineItemRequest(nil), d.Items...)
	return &c
}

// ExistingDraft edits an order that already exists. Only Status is ever
// submitted; Order is the read-only snapshot it was opened from.
type ExistingDraft struct {
	ID            int64              `json:"id"`
	CurrentStatus models.OrderStatus `json:"currentStatus"`
	Status        models.OrderStatus `json:"status"`
	Order         models.Order       `json:"order"`
}

func (*ExistingDraft) Mode() Mode { return ModeExisting }
func (*ExistingDraft) isDraft()   {}

func (d *ExistingDraft) clone() *ExistingDraft {
	c := *d
	c.Order.Items = append([]models.OrderLineItem(nil), d.Order.Items...)
	return &c
}

// ReferenceData is the users and products snapshot an editor validates
// against. It is fixed for the editor's lifetime.
type ReferenceData struct {
	Users    []models.User    `json:"users"`
	Products []models.Product `json:"products"`
}

func (r ReferenceData) Product(id int64) (models.Product, bool) {
	for _, p := range r.Products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// User looks a user up by the id as the form holds it.
func (r ReferenceData) User(id string) (models.User, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return models.User{}, false
	}
	for _, u := range r.Users {
		if u.ID == n {
			return u, true
		}
	}
	return models.User{}, false
}

func (r ReferenceData) clone() ReferenceData {
	return ReferenceData{
		Users:    append([]models.User(nil), r.Users...),
		Products: append([]models.Product(nil), r.Products...),
	}
}
