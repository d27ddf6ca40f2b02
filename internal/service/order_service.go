package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/clients"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/editor"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/errors"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/logging"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/models"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/repository"
)

// OrderService backs the orders view and its editor panel.
type OrderService struct {
	orders   clients.OrderClient
	users    clients.UserClient
	products clients.ProductClient
	drafts   repository.DraftStore
	audit    *Auditor
	logger   *logging.LoggerV2
	now      func() time.Time
}

// NewOrderService creates a new order service.
func NewOrderService(
	orders clients.OrderClient,
	users clients.UserClient,
	products clients.ProductClient,
	drafts repository.DraftStore,
	audit *Auditor,
	logger *logging.LoggerV2,
) *OrderService {
	if audit == nil {
		audit = NewAuditor(nil, nil, logger)
	}
	return &OrderService{
		orders:   orders,
		users:    users,
		products: products,
		drafts:   drafts,
		audit:    audit,
		logger:   logger,
		now:      time.Now,
	}
}

// DraftView is an editor session as the panel sees it.
type DraftView struct {
	ID   string      `json:"id"`
	View editor.View `json:"draft"`

	// Ready reports whether Save would submit. Problem is the first unmet
	// condition otherwise.
	Ready   bool   `json:"ready"`
	Problem string `json:"problem,omitempty"`
}

func newDraftView(id string, e *editor.OrderEditor) *DraftView {
	v := &DraftView{ID: id, View: e.View(), Ready: true}
	if err := e.Validate(); err != nil {
		v.Ready = false
		v.Problem = err.Error()
	}
	return v
}

// SaveResult carries the saved order and the list reloaded after it.
type SaveResult struct {
	Order  *models.Order  `json:"order"`
	Orders []models.Order `json:"orders"`
}

// DraftChanges holds the fields a PATCH may set; nil means untouched.
type DraftChanges struct {
	UserID          *string
	ShippingAddress *string
	Status          *models.OrderStatus
}

// ListOrders never fails: a failed load degrades to an empty list.
func (s *OrderService) ListOrders(ctx context.Context) []models.Order {
	orders, err := s.orders.List(ctx)
	if err != nil {
		s.logger.Warn("Failed to load orders", logging.Fields{"error": err.Error()})
		return []models.Order{}
	}
	return orders
}

// SearchOrders looks orders up by owning user. An empty query reloads the
// full list.
func (s *OrderService) SearchOrders(ctx context.Context, userQuery string) ([]models.Order, error) {
	q := strings.TrimSpace(userQuery)
	if q == "" {
		return s.ListOrders(ctx), nil
	}

	userID, err := strconv.ParseInt(q, 10, 64)
	if err != nil {
		return nil, errors.NewValidationError("user", "user id must be an integer")
	}
	return s.orders.ByUser(ctx, userID)
}

// FilterOrdersByID keeps orders whose id contains q.
func FilterOrdersByID(orders []models.Order, q string) []models.Order {
	q = strings.TrimSpace(q)
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if q == "" || strings.Contains(strconv.FormatInt(o.ID, 10), q) {
			out = append(out, o)
		}
	}
	return out
}

func (s *OrderService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	return s.orders.Get(ctx, id)
}

// DeleteOrder fetches the order so the terminal check sees its current
// status, refuses terminal orders without issuing the delete, and returns
// the reloaded list on success.
func (s *OrderService) DeleteOrder(ctx context.Context, id int64) ([]models.Order, error) {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.DeleteKnownOrder(ctx, order)
}

// DeleteKnownOrder deletes an order whose status the caller already holds,
// typically a row from the last list. A terminal order is refused with no
// request at all.
func (s *OrderService) DeleteKnownOrder(ctx context.Context, order *models.Order) ([]models.Order, error) {
	if err := CanDelete(order); err != nil {
		s.logger.Info("Refused to delete order", logging.Fields{
			"order_id": order.ID,
			"status":   string(order.Status),
		})
		return nil, err
	}

	if err := s.orders.Remove(ctx, order.ID); err != nil {
		return nil, err
	}
	s.audit.OrderDeleted(ctx, order)

	return s.ListOrders(ctx), nil
}

// CanDelete reports ErrDeleteNotAllowed for orders in a terminal status.
func CanDelete(order *models.Order) error {
	if order.Status.IsTerminal() {
		return errors.ErrDeleteNotAllowed
	}
	return nil
}

// ReferenceData snapshots users and products for a new editor. Either
// list degrades to empty on failure.
func (s *OrderService) ReferenceData(ctx context.Context) editor.ReferenceData {
	ref := editor.ReferenceData{Users: []models.User{}, Products: []models.Product{}}

	if users, err := s.users.List(ctx); err != nil {
		s.logger.Warn("Failed to load users for editor", logging.Fields{"error": err.Error()})
	} else {
		ref.Users = users
	}
	if products, err := s.products.List(ctx); err != nil {
		s.logger.Warn("Failed to load products for editor", logging.Fields{"error": err.Error()})
	} else {
		ref.Products = products
	}
	return ref
}

// OpenNewDraft starts an editor session for a new order.
func (s *OrderService) OpenNewDraft(ctx context.Context) (*DraftView, error) {
	e := editor.NewEditor(s.ReferenceData(ctx), s.orders)
	return s.store(ctx, uuid.New().String(), e, time.Time{})
}

// OpenOrderDraft fetches the order first; when that fails no session is
// opened.
func (s *OrderService) OpenOrderDraft(ctx context.Context, id int64) (*DraftView, error) {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	e, err := editor.EditOrder(order, s.ReferenceData(ctx), s.orders)
	if err != nil {
		return nil, err
	}
	return s.store(ctx, uuid.New().String(), e, time.Time{})
}

func (s *OrderService) GetDraft(ctx context.Context, draftID string) (*DraftView, error) {
	session, e, err := s.load(ctx, draftID)
	if err != nil {
		return nil, err
	}
	return newDraftView(session.ID, e), nil
}

// UpdateDraft applies changes in field order. The session is stored only
// when every change applied.
func (s *OrderService) UpdateDraft(ctx context.Context, draftID string, changes DraftChanges) (*DraftView, error) {
	return s.mutate(ctx, draftID, func(e *editor.OrderEditor) error {
		if changes.UserID != nil {
			if err := e.SetCustomer(*changes.UserID); err != nil {
				return err
			}
		}
		if changes.ShippingAddress != nil {
			if err := e.SetShippingAddress(*changes.ShippingAddress); err != nil {
				return err
			}
		}
		if changes.Status != nil {
			if err := e.SetStatus(*changes.Status); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *OrderService) AddDraftItem(ctx context.Context, draftID string, productID int64, quantity int) (*DraftView, error) {
	return s.mutate(ctx, draftID, func(e *editor.OrderEditor) error {
		return e.AddLineItem(productID, quantity)
	})
}

func (s *OrderService) RemoveDraftItem(ctx context.Context, draftID string, index int) (*DraftView, error) {
	return s.mutate(ctx, draftID, func(e *editor.OrderEditor) error {
		return e.RemoveLineItem(index)
	})
}

// SaveDraft submits the session. On success the session is discarded and
// the reloaded list is returned. On failure the session is kept for retry.
func (s *OrderService) SaveDraft(ctx context.Context, draftID string) (*SaveResult, error) {
	_, e, err := s.load(ctx, draftID)
	if err != nil {
		return nil, err
	}

	var previous models.OrderStatus
	if d, ok := e.Draft().(*editor.ExistingDraft); ok {
		previous = d.CurrentStatus
	}

	order, err := e.Save(ctx)
	if err != nil {
		s.logger.Warn("Draft save failed", logging.Fields{
			"draft_id": draftID,
			"mode":     string(e.Mode()),
			"error":    err.Error(),
		})
		return nil, err
	}

	if err := s.drafts.Delete(ctx, draftID); err != nil {
		s.logger.Warn("Failed to discard saved draft", logging.Fields{
			"draft_id": draftID,
			"error":    err.Error(),
		})
	}

	if e.Mode() == editor.ModeNew {
		s.audit.OrderCreated(ctx, order)
	} else {
		s.audit.OrderStatusChanged(ctx, order, previous)
	}

	return &SaveResult{Order: order, Orders: s.ListOrders(ctx)}, nil
}

func (s *OrderService) DiscardDraft(ctx context.Context, draftID string) error {
	if _, err := s.drafts.Get(ctx, draftID); err != nil {
		return err
	}
	return s.drafts.Delete(ctx, draftID)
}

func (s *OrderService) mutate(ctx context.Context, draftID string, fn func(*editor.OrderEditor) error) (*DraftView, error) {
	session, e, err := s.load(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if err := fn(e); err != nil {
		return nil, err
	}
	return s.store(ctx, session.ID, e, session.CreatedAt)
}

func (s *OrderService) load(ctx context.Context, draftID string) (*repository.DraftSession, *editor.OrderEditor, error) {
	session, err := s.drafts.Get(ctx, draftID)
	if err != nil {
		return nil, nil, err
	}
	e, err := editor.Restore(session.Snapshot, s.orders)
	if err != nil {
		s.logger.Error("Corrupt draft session", logging.Fields{
			"draft_id": draftID,
			"error":    err.Error(),
		})
		return nil, nil, errors.ErrDraftNotFound
	}
	return session, e, nil
}

func (s *OrderService) store(ctx context.Context, id string, e *editor.OrderEditor, createdAt time.Time) (*DraftView, error) {
	now := s.now().UTC()
	if createdAt.IsZero() {
		createdAt = now
	}
	session := &repository.DraftSession{
		ID:        id,
		Snapshot:  e.Snapshot(),
		CreatedAt: createdAt,
		UpdatedAt: now,
	}
	if err := s.drafts.Save(ctx, session); err != nil {
		return nil, err
	}
	return newDraftView(id, e), nil
}
