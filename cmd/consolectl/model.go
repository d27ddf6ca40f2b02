package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/dashboard"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/models"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/service"
)

type tab int

const (
	tabHome tab = iota
	tabUsers
	tabProducts
	tabOrders
)

var tabNames = []string{"Home", "Users", "Products", "Orders"}

const requestTimeout = 10 * time.Second

type backend struct {
	orders    *service.OrderService
	catalog   *service.CatalogService
	dashboard *service.DashboardService
}

type model struct {
	backend backend

	tab       tab
	selected  int
	searching bool
	query     string
	status    string
	busy      bool

	summary  dashboard.Summary
	users    []models.User
	products []models.Product
	orders   []models.Order
}

// loadedMsg carries the result of one backend call for one tab.
type loadedMsg struct {
	tab      tab
	summary  *dashboard.Summary
	users    []models.User
	products []models.Product
	orders   []models.Order
	status   string
	err      error
}

func initialModel(b backend) model {
	return model{backend: b, status: "Loading..."}
}

func (m model) Init() tea.Cmd {
	return m.reload()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)

	case loadedMsg:
		m.busy = false
		if msg.tab != m.tab {
			return m, nil
		}
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, nil
		}
		switch {
		case msg.summary != nil:
			m.summary = *msg.summary
		case msg.tab == tabUsers:
			m.users = msg.users
		case msg.tab == tabProducts:
			m.products = msg.products
		case msg.tab == tabOrders:
			m.orders = msg.orders
		}
		if m.selected >= m.rows() {
			m.selected = max(m.rows()-1, 0)
		}
		m.status = msg.status
	}
	return m, nil
}

func (m model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "left":
		if m.tab > tabHome {
			return m.switchTab(m.tab - 1)
		}
	case "right":
		if int(m.tab) < len(tabNames)-1 {
			return m.switchTab(m.tab + 1)
		}
	case "up":
		if m.selected > 0 {
			m.selected--
		}
	case "down":
		if m.selected < m.rows()-1 {
			m.selected++
		}
	case "/":
		if m.tab != tabHome {
			m.searching = true
			m.query = ""
		}
	case "esc":
		m.query = ""
		m.selected = 0
		return m, m.reload()
	case "r":
		return m, m.reload()
	case "d":
		return m.deleteSelected()
	}
	return m, nil
}

func (m model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.query = ""
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.selected = 0
		return m, m.search(m.query)
	case tea.KeyBackspace:
		if r := []rune(m.query); len(r) > 0 {
			m.query = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.query += string(msg.Runes)
	}
	return m, nil
}

func (m model) switchTab(t tab) (tea.Model, tea.Cmd) {
	m.tab = t
	m.selected = 0
	m.query = ""
	return m, m.reload()
}

func (m model) rows() int {
	switch m.tab {
	case tabUsers:
		return len(m.users)
	case tabProducts:
		return len(m.products)
	case tabOrders:
		return len(m.orders)
	}
	return 0
}

// reload fetches the current tab's data. List failures degrade to empty
// lists inside the services, so reloads never report an error.
func (m model) reload() tea.Cmd {
	b, t := m.backend, m.tab
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		switch t {
		case tabUsers:
			users := b.catalog.ListUsers(ctx)
			return loadedMsg{tab: t, users: users, status: fmt.Sprintf("%d users", len(users))}
		case tabProducts:
			products := b.catalog.ListProducts(ctx)
			return loadedMsg{tab: t, products: products, status: fmt.Sprintf("%d products", len(products))}
		case tabOrders:
			orders := b.orders.ListOrders(ctx)
			return loadedMsg{tab: t, orders: orders, status: fmt.Sprintf("%d orders", len(orders))}
		}
		summary := b.dashboard.Summary(ctx)
		return loadedMsg{tab: t, summary: &summary, status: "Dashboard loaded"}
	}
}

func (m model) search(q string) tea.Cmd {
	b, t := m.backend, m.tab
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		msg := loadedMsg{tab: t}
		switch t {
		case tabUsers:
			msg.users, msg.err = b.catalog.SearchUsers(ctx, q)
			msg.status = fmt.Sprintf("%d users matching %q", len(msg.users), q)
		case tabProducts:
			msg.products, msg.err = b.catalog.SearchProducts(ctx, q)
			msg.status = fmt.Sprintf("%d products matching %q", len(msg.products), q)
		case tabOrders:
			msg.orders, msg.err = b.orders.SearchOrders(ctx, q)
			msg.status = fmt.Sprintf("%d orders for user %q", len(msg.orders), q)
		}
		return msg
	}
}

func (m model) deleteSelected() (tea.Model, tea.Cmd) {
	if m.busy || m.rows() == 0 {
		return m, nil
	}
	b, t := m.backend, m.tab

	switch t {
	case tabUsers:
		id := m.users[m.selected].ID
		m.busy = true
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			users, err := b.catalog.DeleteUser(ctx, id)
			return loadedMsg{tab: t, users: users, err: err, status: fmt.Sprintf("Deleted user %d", id)}
		}

	case tabProducts:
		id := m.products[m.selected].ID
		m.busy = true
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			products, err := b.catalog.DeleteProduct(ctx, id)
			return loadedMsg{tab: t, products: products, err: err, status: fmt.Sprintf("Deleted product %d", id)}
		}

	case tabOrders:
		order := m.orders[m.selected]
		if err := service.CanDelete(&order); err != nil {
			m.status = fmt.Sprintf("Order %d is %s: %v", order.ID, order.Status, err)
			return m, nil
		}
		m.busy = true
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			orders, err := b.orders.DeleteKnownOrder(ctx, &order)
			return loadedMsg{tab: t, orders: orders, err: err, status: fmt.Sprintf("Deleted order %d", order.ID)}
		}
	}
	return m, nil
}

func (m model) View() string {
	b := &strings.Builder{}
	fmt.Fprintln(b, "acme-shop admin console")
	fmt.Fprintln(b, "")

	for i, name := range tabNames {
		if tab(i) == m.tab {
			fmt.Fprintf(b, "[%s] ", name)
		} else {
			fmt.Fprintf(b, " %s  ", name)
		}
	}
	fmt.Fprintln(b, "")
	fmt.Fprintln(b, "")

	switch m.tab {
	case tabHome:
		m.viewHome(b)
	case tabUsers:
		for i, u := range m.users {
			state := "inactive"
			if u.Active {
				state = "active"
			}
			fmt.Fprintf(b, " %s %-6d %-28s %-30s %s\n", m.marker(i), u.ID, u.FullName(), u.Email, state)
		}
	case tabProducts:
		for i, p := range m.products {
			stock := "-"
			if p.Stock != nil {
				stock = strconv.Itoa(*p.Stock)
			}
			fmt.Fprintf(b, " %s %-6d %-28s %-12s %10s %6s\n", m.marker(i), p.ID, p.Name, p.Category, p.Price, stock)
		}
	case tabOrders:
		for i, o := range m.orders {
			fmt.Fprintf(b, " %s %-6d user %-6d %-11s %3d items %10s\n", m.marker(i), o.ID, o.UserID, o.Status, o.ItemCount(), o.TotalAmount)
		}
	}

	fmt.Fprintln(b, "")
	if m.searching {
		fmt.Fprintf(b, "Search: %s_\n", m.query)
	}
	fmt.Fprintf(b, "Status: %s\n", m.status)
	fmt.Fprintln(b, "\nControls: left/right tab, up/down select, / search, enter run, esc reset, d delete, r reload, q quit")
	return b.String()
}

func (m model) viewHome(b *strings.Builder) {
	s := m.summary
	fmt.Fprintf(b, "Users:    %d (%d active, %d%%)\n", s.Users.Count, s.Users.Active, s.Users.ActivePercent)
	fmt.Fprintf(b, "Products: %d (%d low on stock)\n", s.Products.Count, len(s.Products.LowStock))
	fmt.Fprintf(b, "Orders:   %d (avg %s, %.1f items)\n", s.Orders.Count, s.Orders.AverageValueDecimal().StringFixed(2), s.Orders.AverageItemCount)

	for _, status := range models.OrderStatuses {
		if n := s.Orders.ByStatus[string(status)]; n > 0 {
			fmt.Fprintf(b, "  %-11s %d\n", status, n)
		}
	}
	if n := s.Orders.ByStatus["UNKNOWN"]; n > 0 {
		fmt.Fprintf(b, "  %-11s %d\n", "UNKNOWN", n)
	}
}

func (m model) marker(i int) string {
	if i == m.selected {
		return ">"
	}
	return " "
}
