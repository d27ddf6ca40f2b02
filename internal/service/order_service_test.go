package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/tm-acme-shop/acme-shop-admin-console/internal/clients"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/editor"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/errors"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/events"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/logging"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/models"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/repository"
)

type fixture struct {
	orders    *clients.MockOrderClient
	users     *clients.MockUserClient
	products  *clients.MockProductClient
	drafts    *repository.MemoryDraftStore
	auditLog  *repository.MemoryAuditLog
	publisher *events.MockPublisher
	svc       *OrderService
	catalog   *CatalogService
}

func newFixture() *fixture {
	f := &fixture{
		orders:    clients.NewMockOrderClient(),
		users:     clients.NewMockUserClient(),
		products:  clients.NewMockProductClient(),
		drafts:    repository.NewMemoryDraftStore(0),
		auditLog:  repository.NewMemoryAuditLog(0),
		publisher: events.NewMockPublisher(),
	}
	logger := logging.NewWithZap(nil)
	audit := NewAuditor(f.auditLog, f.publisher, logger)
	f.svc = NewOrderService(f.orders, f.users, f.products, f.drafts, audit, logger)
	f.catalog = NewCatalogService(f.users, f.products, audit, logger)

	f.users.AddUser(&models.User{ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Active: true})
	f.products.AddProduct(&models.Product{ID: 10, Name: "Keyboard", Price: models.ParseAmount("49.90"), Category: models.CategoryElectronics})
	f.orders.AddOrder(&models.Order{ID: 7, UserID: 1, ShippingAddress: "12 Baker Street", Status: models.OrderStatusPending})
	f.orders.AddOrder(&models.Order{ID: 8, UserID: 2, ShippingAddress: "1 Infinite Loop", Status: models.OrderStatusDelivered})
	return f
}

func TestOrderService_ListOrders_Degrades(t *testing.T) {
	f := newFixture()
	f.orders.ListErr = &errors.TransportError{Service: "orders", Err: errors.New("connection refused")}

	orders := f.svc.ListOrders(context.Background())

	if orders == nil || len(orders) != 0 {
		t.Errorf("Expected empty non-nil list, got %v", orders)
	}
}

func TestOrderService_SearchOrders(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		query     string
		wantCount int
		wantErr   bool
		wantCall  string
	}{
		{name: "empty query lists all", query: "  ", wantCount: 2, wantCall: "list"},
		{name: "by user", query: "1", wantCount: 1, wantCall: "by_user"},
		{name: "unknown user", query: "99", wantCount: 0, wantCall: "by_user"},
		{name: "non integer", query: "ada", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			orders, err := f.svc.SearchOrders(ctx, tt.query)

			if tt.wantErr {
				var ve *errors.ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("Expected validation error, got %v", err)
				}
				if len(f.orders.Calls) != 0 {
					t.Errorf("Expected no request, got %v", f.orders.Calls)
				}
				return
			}
			if err != nil {
				t.Fatalf("SearchOrders returned error: %v", err)
			}
			if len(orders) != tt.wantCount {
				t.Errorf("Expected %d orders, got %d", tt.wantCount, len(orders))
			}
			if f.orders.CallCount(tt.wantCall) != 1 {
				t.Errorf("Expected one %s call, got %v", tt.wantCall, f.orders.Calls)
			}
		})
	}
}

func TestOrderService_SearchOrders_PropagatesError(t *testing.T) {
	f := newFixture()
	f.orders.ByUserErr = &errors.ServiceError{StatusCode: http.StatusInternalServerError, Message: "boom"}

	if _, err := f.svc.SearchOrders(context.Background(), "1"); err == nil || err.Error() != "boom" {
		t.Errorf("Expected boom, got %v", err)
	}
}

func TestFilterOrdersByID(t *testing.T) {
	orders := []models.Order{{ID: 7}, {ID: 17}, {ID: 28}}

	got := FilterOrdersByID(orders, "7")
	if len(got) != 2 || got[0].ID != 7 || got[1].ID != 17 {
		t.Errorf("Unexpected filter result %v", got)
	}
	if len(FilterOrdersByID(orders, "")) != 3 {
		t.Error("Expected empty filter to keep every order")
	}
}

func TestOrderService_DeleteOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	orders, err := f.svc.DeleteOrder(ctx, 7)
	if err != nil {
		t.Fatalf("DeleteOrder returned error: %v", err)
	}

	if len(orders) != 1 || orders[0].ID != 8 {
		t.Errorf("Expected reloaded list with order 8, got %v", orders)
	}
	if len(f.orders.Removed) != 1 || f.orders.Removed[0] != 7 {
		t.Errorf("Expected remove of 7, got %v", f.orders.Removed)
	}

	entries, _ := f.auditLog.Recent(ctx, 0)
	if len(entries) != 1 || entries[0].Action != models.AuditOrderDeleted {
		t.Errorf("Expected one order.deleted entry, got %+v", entries)
	}
}

func TestOrderService_DeleteOrder_Terminal(t *testing.T) {
	for _, status := range []models.OrderStatus{models.OrderStatusDelivered, models.OrderStatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture()
			f.orders.AddOrder(&models.Order{ID: 9, Status: status})

			_, err := f.svc.DeleteOrder(context.Background(), 9)

			if !errors.Is(err, errors.ErrDeleteNotAllowed) {
				t.Fatalf("Expected ErrDeleteNotAllowed, got %v", err)
			}
			if f.orders.CallCount("remove") != 0 {
				t.Error("Expected no delete request for terminal order")
			}
			if len(f.publisher.Events) != 0 {
				t.Error("Expected no audit event for refused delete")
			}
		})
	}
}

func TestOrderService_DeleteKnownOrder(t *testing.T) {
	t.Run("terminal sends nothing", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.DeleteKnownOrder(context.Background(), &models.Order{ID: 8, Status: models.OrderStatusDelivered})

		if !errors.Is(err, errors.ErrDeleteNotAllowed) {
			t.Fatalf("Expected ErrDeleteNotAllowed, got %v", err)
		}
		if len(f.orders.Calls) != 0 {
			t.Errorf("Expected no requests, got %v", f.orders.Calls)
		}
	})

	t.Run("pending skips the fetch", func(t *testing.T) {
		f := newFixture()

		orders, err := f.svc.DeleteKnownOrder(context.Background(), &models.Order{ID: 7, Status: models.OrderStatusPending})

		if err != nil {
			t.Fatalf("DeleteKnownOrder returned error: %v", err)
		}
		if f.orders.CallCount("get") != 0 || f.orders.CallCount("remove") != 1 {
			t.Errorf("Expected a single remove, got %v", f.orders.Calls)
		}
		if len(orders) != 1 {
			t.Errorf("Expected reloaded list of 1, got %d", len(orders))
		}
	})
}

func TestOrderService_DeleteOrder_ServiceRejects(t *testing.T) {
	f := newFixture()
	f.orders.RemoveErr = &errors.ServiceError{StatusCode: http.StatusConflict, Message: "Order already shipped"}

	_, err := f.svc.DeleteOrder(context.Background(), 7)

	if err == nil || err.Error() != "Order already shipped" {
		t.Errorf("Expected service message, got %v", err)
	}
	if f.orders.CallCount("list") != 0 {
		t.Error("Expected no reload after a failed delete")
	}
}

func TestOrderService_NewDraftLifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	draft, err := f.svc.OpenNewDraft(ctx)
	if err != nil {
		t.Fatalf("OpenNewDraft returned error: %v", err)
	}
	if draft.ID == "" || draft.View.Mode != editor.ModeNew {
		t.Fatalf("Unexpected draft %+v", draft)
	}
	if draft.Ready || draft.Problem != "choose a user" {
		t.Errorf("Expected empty draft to report its first problem, got ready=%v problem=%q", draft.Ready, draft.Problem)
	}

	user := "1"
	address := "12 Baker Street"
	if _, err := f.svc.UpdateDraft(ctx, draft.ID, DraftChanges{UserID: &user, ShippingAddress: &address}); err != nil {
		t.Fatalf("UpdateDraft returned error: %v", err)
	}
	view, err := f.svc.AddDraftItem(ctx, draft.ID, 10, 3)
	if err != nil {
		t.Fatalf("AddDraftItem returned error: %v", err)
	}
	if len(view.View.Items) != 1 || view.View.Items[0].ProductName != "Keyboard" {
		t.Errorf("Expected keyboard line item, got %+v", view.View.Items)
	}
	if view.View.CustomerName != "Ada Lovelace" {
		t.Errorf("Expected customer name, got %q", view.View.CustomerName)
	}
	if !view.Ready || view.Problem != "" {
		t.Errorf("Expected complete draft to be ready, got problem %q", view.Problem)
	}

	result, err := f.svc.SaveDraft(ctx, draft.ID)
	if err != nil {
		t.Fatalf("SaveDraft returned error: %v", err)
	}

	if len(f.orders.Created) != 1 {
		t.Fatalf("Expected one create, got %d", len(f.orders.Created))
	}
	req := f.orders.Created[0]
	if req.UserID != 1 || req.ShippingAddress != address || len(req.Items) != 1 || req.Items[0].Quantity != 3 {
		t.Errorf("Unexpected create request %+v", req)
	}
	if len(result.Orders) != 3 {
		t.Errorf("Expected reloaded list of 3, got %d", len(result.Orders))
	}
	if _, err := f.svc.GetDraft(ctx, draft.ID); !errors.Is(err, errors.ErrDraftNotFound) {
		t.Errorf("Expected draft discarded after save, got %v", err)
	}
	if types := f.publisher.Types(); len(types) != 1 || types[0] != models.AuditOrderCreated {
		t.Errorf("Expected order.created event, got %v", types)
	}
}

func TestOrderService_SaveDraft_ValidationKeepsDraft(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	draft, _ := f.svc.OpenNewDraft(ctx)

	_, err := f.svc.SaveDraft(ctx, draft.ID)

	var ve *errors.ValidationError
	if !errors.As(err, &ve) || ve.Message != "choose a user" {
		t.Fatalf("Expected choose a user, got %v", err)
	}
	if f.orders.CallCount("create") != 0 {
		t.Error("Expected no create request")
	}
	if _, err := f.svc.GetDraft(ctx, draft.ID); err != nil {
		t.Errorf("Expected draft retained, got %v", err)
	}
}

func TestOrderService_SaveDraft_ServiceFailureKeepsDraft(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.orders.CreateErr = &errors.ServiceError{StatusCode: http.StatusBadRequest, Message: "Product 10 out of stock"}

	draft, _ := f.svc.OpenNewDraft(ctx)
	user, address := "1", "12 Baker Street"
	_, _ = f.svc.UpdateDraft(ctx, draft.ID, DraftChanges{UserID: &user, ShippingAddress: &address})
	_, _ = f.svc.AddDraftItem(ctx, draft.ID, 10, 1)

	_, err := f.svc.SaveDraft(ctx, draft.ID)

	if err == nil || err.Error() != "Product 10 out of stock" {
		t.Fatalf("Expected service message, got %v", err)
	}
	got, err := f.svc.GetDraft(ctx, draft.ID)
	if err != nil {
		t.Fatalf("Expected draft retained, got %v", err)
	}
	if got.View.UserID != "1" || len(got.View.Items) != 1 {
		t.Errorf("Expected draft contents unchanged, got %+v", got.View)
	}
}

func TestOrderService_OpenOrderDraft_StatusChange(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	draft, err := f.svc.OpenOrderDraft(ctx, 7)
	if err != nil {
		t.Fatalf("OpenOrderDraft returned error: %v", err)
	}
	if draft.View.Mode != editor.ModeExisting || draft.View.Status != models.OrderStatusPending {
		t.Fatalf("Unexpected draft %+v", draft.View)
	}

	shipped := models.OrderStatusShipped
	if _, err := f.svc.UpdateDraft(ctx, draft.ID, DraftChanges{Status: &shipped}); err != nil {
		t.Fatalf("UpdateDraft returned error: %v", err)
	}
	if _, err := f.svc.SaveDraft(ctx, draft.ID); err != nil {
		t.Fatalf("SaveDraft returned error: %v", err)
	}

	updates := f.orders.StatusUpdates[7]
	if len(updates) != 1 || updates[0].Status != models.OrderStatusShipped {
		t.Errorf("Expected one SHIPPED update, got %v", updates)
	}
	entries, _ := f.auditLog.Recent(ctx, 1)
	if len(entries) != 1 || entries[0].Detail["from"] != "PENDING" || entries[0].Detail["to"] != "SHIPPED" {
		t.Errorf("Unexpected audit entry %+v", entries)
	}
}

func TestOrderService_OpenOrderDraft_ReadOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	draft, _ := f.svc.OpenOrderDraft(ctx, 7)
	address := "Somewhere else"

	_, err := f.svc.UpdateDraft(ctx, draft.ID, DraftChanges{ShippingAddress: &address})

	if !errors.Is(err, errors.ErrReadOnly) {
		t.Errorf("Expected ErrReadOnly, got %v", err)
	}
}

func TestOrderService_OpenOrderDraft_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.OpenOrderDraft(context.Background(), 404)

	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Expected not found, got %v", err)
	}
}

func TestOrderService_OpenNewDraft_ReferenceDegrades(t *testing.T) {
	f := newFixture()
	f.users.ListErr = errors.New("users down")
	f.products.ListErr = errors.New("products down")
	ctx := context.Background()

	draft, err := f.svc.OpenNewDraft(ctx)
	if err != nil {
		t.Fatalf("OpenNewDraft returned error: %v", err)
	}

	_, err = f.svc.AddDraftItem(ctx, draft.ID, 10, 1)
	var ve *errors.ValidationError
	if !errors.As(err, &ve) || ve.Field != "productId" {
		t.Errorf("Expected product selection error with empty catalog, got %v", err)
	}
}

func TestOrderService_RemoveDraftItem(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	draft, _ := f.svc.OpenNewDraft(ctx)
	_, _ = f.svc.AddDraftItem(ctx, draft.ID, 10, 1)
	_, _ = f.svc.AddDraftItem(ctx, draft.ID, 10, 2)

	view, err := f.svc.RemoveDraftItem(ctx, draft.ID, 0)
	if err != nil {
		t.Fatalf("RemoveDraftItem returned error: %v", err)
	}
	if len(view.View.Items) != 1 || view.View.Items[0].Quantity != 2 {
		t.Errorf("Unexpected items %+v", view.View.Items)
	}

	if _, err := f.svc.RemoveDraftItem(ctx, draft.ID, 5); err == nil {
		t.Error("Expected error for out of range index")
	}
}

func TestOrderService_DiscardDraft(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	draft, _ := f.svc.OpenNewDraft(ctx)
	if err := f.svc.DiscardDraft(ctx, draft.ID); err != nil {
		t.Fatalf("DiscardDraft returned error: %v", err)
	}
	if err := f.svc.DiscardDraft(ctx, draft.ID); !errors.Is(err, errors.ErrDraftNotFound) {
		t.Errorf("Expected ErrDraftNotFound on second discard, got %v", err)
	}
}

func TestAuditor_PublishFailureIsIgnored(t *testing.T) {
	f := newFixture()
	f.publisher.Err = errors.New("broker down")

	if _, err := f.svc.DeleteOrder(context.Background(), 7); err != nil {
		t.Fatalf("Expected delete to succeed despite publish failure, got %v", err)
	}
	entries, _ := f.auditLog.Recent(context.Background(), 0)
	if len(entries) != 1 {
		t.Errorf("Expected audit log entry, got %d", len(entries))
	}
}
