// Package editor implements the order editor: draft state for a new or an
// existing order, the rules that govern what may change, and the payload
// each kind of draft submits.
package editor

import (
	"context"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/tm-acme-shop/acme-shop-admin-console/internal/errors"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/models"
)

const minShippingAddressLength = 5

// OrderSubmitter is the part of the orders client the editor needs.
type OrderSubmitter interface {
	Create(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
	UpdateStatus(ctx context.Context, id int64, req *models.UpdateOrderStatusRequest) (*models.Order, error)
}

// OrderEditor owns one draft. It is not safe for concurrent use.
type OrderEditor struct {
	draft     Draft
	ref       ReferenceData
	submitter OrderSubmitter
}

// NewEditor starts an empty draft for an order that does not exist yet.
func NewEditor(ref ReferenceData, submitter OrderSubmitter) *OrderEditor {
	return &OrderEditor{
		draft:     &NewDraft{Items: []models.LineItemRequest{}},
		ref:       ref.clone(),
		submitter: submitter,
	}
}

// EditOrder hydrates a draft from a fetched order.
func EditOrder(order *models.Order, ref ReferenceData, submitter OrderSubmitter) (*OrderEditor, error) {
	if order == nil || order.ID == 0 {
		return nil, errors.NewValidationError("id", "order has no identifier")
	}
	snapshot := *order
	snapshot.Items = append([]models.OrderLineItem(nil), order.Items...)

	status := order.Status
	if status == "" {
		status = models.OrderStatusPending
	}

	return &OrderEditor{
		draft: &ExistingDraft{
			ID:            order.ID,
			CurrentStatus: order.Status,
			Status:        status,
			Order:         snapshot,
		},
		ref:       ref.clone(),
		submitter: submitter,
	}, nil
}

func (e *OrderEditor) Mode() Mode {
	return e.draft.Mode()
}

// Draft returns a copy of the current draft.
func (e *OrderEditor) Draft() Draft {
	switch d := e.draft.(type) {
	case *NewDraft:
		return d.clone()
	case *ExistingDraft:
		return d.clone()
	}
	return nil
}

func (e *OrderEditor) newDraft() (*NewDraft, error) {
	d, ok := e.draft.(*NewDraft)
	if !ok {
		return nil, errors.ErrReadOnly
	}
	return d, nil
}

// SetCustomer records the chosen user id as the form holds it.
func (e *OrderEditor) SetCustomer(userID string) error {
	d, err := e.newDraft()
	if err != nil {
		return err
	}
	d.UserID = userID
	return nil
}

func (e *OrderEditor) SetShippingAddress(address string) error {
	d, err := e.newDraft()
	if err != nil {
		return err
	}
	d.ShippingAddress = address
	return nil
}

// AddLineItem appends a line for a product from the snapshot. The draft is
// unchanged when the product is unknown or the quantity is not positive.
func (e *OrderEditor) AddLineItem(productID int64, quantity int) error {
	d, err := e.newDraft()
	if err != nil {
		return err
	}
	if _, ok := e.ref.Product(productID); !ok {
		return errors.NewValidationError("productId", "select a product")
	}
	if quantity <= 0 {
		return errors.NewValidationError("quantity", "quantity must be a positive integer")
	}
	d.Items = append(d.Items, models.LineItemRequest{ProductID: productID, Quantity: quantity})
	return nil
}

// RemoveLineItem drops the line at index and keeps the rest in order.
func (e *OrderEditor) RemoveLineItem(index int) error {
	d, err := e.newDraft()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(d.Items) {
		return errors.NewValidationError("index", fmt.Sprintf("no line item at position %d", index))
	}
	items := make([]models.LineItemRequest, 0, len(d.Items)-1)
	items = append(items, d.Items[:index]...)
	d.Items = append(items, d.Items[index+1:]...)
	return nil
}

// SetStatus accepts any of the enumerated statuses regardless of the
// current one.
func (e *OrderEditor) SetStatus(status models.OrderStatus) error {
	d, ok := e.draft.(*ExistingDraft)
	if !ok {
		return errors.ErrStatusNotAssignable
	}
	if !status.Valid() {
		return errors.NewValidationError("status", fmt.Sprintf("unknown status %q", status))
	}
	d.Status = status
	return nil
}

// Validate reports the first unmet condition of the draft, if any.
func (e *OrderEditor) Validate() error {
	switch d := e.draft.(type) {
	case *NewDraft:
		_, err := createRequest(d)
		return err
	case *ExistingDraft:
		_, err := statusRequest(d)
		return err
	}
	return nil
}

// Save submits the draft. A new draft is checked first and nothing is sent
// when a check fails. An existing draft sends only its status. On failure
// the draft is kept so the operator can retry.
func (e *OrderEditor) Save(ctx context.Context) (*models.Order, error) {
	switch d := e.draft.(type) {
	case *NewDraft:
		req, err := createRequest(d)
		if err != nil {
			return nil, err
		}
		return e.submitter.Create(ctx, req)

	case *ExistingDraft:
		req, err := statusRequest(d)
		if err != nil {
			return nil, err
		}
		return e.submitter.UpdateStatus(ctx, d.ID, req)
	}
	return nil, errors.New("unknown draft")
}

func createRequest(d *NewDraft) (*models.CreateOrderRequest, error) {
	if d.UserID == "" {
		return nil, errors.NewValidationError("userId", "choose a user")
	}
	if utf8.RuneCountInString(d.ShippingAddress) < minShippingAddressLength {
		return nil, errors.NewValidationError("shippingAddress", "valid shipping address required")
	}
	if len(d.Items) == 0 {
		return nil, errors.NewValidationError("items", "add at least one item")
	}

	userID, err := strconv.ParseInt(d.UserID, 10, 64)
	if err != nil {
		return nil, errors.NewValidationError("userId", "user id must be an integer")
	}

	return &models.CreateOrderRequest{
		UserID:          userID,
		ShippingAddress: d.ShippingAddress,
		Items:           append([]models.LineItemRequest(nil), d.Items...),
	}, nil
}

func statusRequest(d *ExistingDraft) (*models.UpdateOrderStatusRequest, error) {
	if !d.Status.Valid() {
		return nil, errors.NewValidationError("status", fmt.Sprintf("unknown status %q", d.Status))
	}
	return &models.UpdateOrderStatusRequest{Status: d.Status}, nil
}
