// Package order records café orders and keeps menu order counts in step with them.
package order

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"cafe/pkg/domain"
	"cafe/pkg/filter"
	"cafe/pkg/storage/jsonstore"
)

// Catalog is the slice of the menu the ledger needs to price lines and
// maintain lifetime order counts.
type Catalog interface {
	Item(id string) (domain.MenuItem, bool)
	IncrementOrderCount(id string, qty int)
	DecrementOrderCount(id string, qty int)
	SetOrderCounts(counts map[string]int) error
	Save() error
}

// Ledger owns every order by identifier. Each mutation rewrites the order
// file and, when counts change, the menu file.
type Ledger struct {
	path    string
	catalog Catalog
	logger  *slog.Logger
	orders  map[string]*domain.Order
}

// Open loads the order file at path. Missing or corrupt files start an empty ledger.
func Open(path string, catalog Catalog, logger *slog.Logger) (*Ledger, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	l := &Ledger{
		path:    path,
		catalog: catalog,
		logger:  logger.With("component", "orders"),
		orders:  make(map[string]*domain.Order),
	}

	var doc map[string]domain.Order
	status, err := jsonstore.Load(path, &doc)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	if status == jsonstore.Corrupt {
		l.logger.Warn("order file was corrupt, starting fresh", "path", path)
		doc = nil
	}
	for id, o := range doc {
		if o.ID == "" {
			o.ID = id
		}
		l.orders[id] = &o
	}
	l.logger.Info("orders loaded", "path", path, "status", status.String(), "orders", len(l.orders))
	return l, nil
}

func (l *Ledger) save() error {
	doc := make(map[string]domain.Order, len(l.orders))
	for id, o := range l.orders {
		doc[id] = *o
	}
	if err := jsonstore.Save(l.path, doc); err != nil {
		l.logger.Error("order save failed", "path", l.path, "err", err)
		return domain.PersistenceError("orders", err)
	}
	return nil
}

// GenerateOrderID returns "ORD-<YYYY-MM>-<seq>" where the month comes from
// the leading seven characters of timestamp and seq is one more than the
// highest numeric suffix among orders of that month.
func (l *Ledger) GenerateOrderID(timestamp string) string {
	month := domain.MonthKey(timestamp)
	highest := 0
	for id, o := range l.orders {
		if o.Month() != month {
			continue
		}
		parts := strings.Split(id, "-")
		if len(parts) < 4 {
			continue
		}
		if n, err := strconv.Atoi(parts[3]); err == nil && n > highest {
			highest = n
		}
	}
	for next := highest + 1; ; next++ {
		id := fmt.Sprintf("ORD-%s-%04d", month, next)
		if _, taken := l.orders[id]; !taken {
			return id
		}
	}
}

// AddOrder stores a fully built order and bumps the menu counts of its lines.
// The stored total is always recomputed from the lines.
func (l *Ledger) AddOrder(o domain.Order) error {
	if _, ok := l.orders[o.ID]; ok {
		return fmt.Errorf("%w: order %s", domain.ErrDuplicateID, o.ID)
	}
	o.Items = cloneLines(o.Items)
	o.TotalAmount = domain.CalculateTotal(o.Items)
	if o.Status == "" {
		o.Status = domain.StatusPlaced
	}
	if err := o.Validate(); err != nil {
		return err
	}

	l.orders[o.ID] = &o
	saveErr := l.save()
	for _, line := range o.Items {
		l.catalog.IncrementOrderCount(line.ItemID, line.Qty)
	}
	l.logger.Info("order added", "order_id", o.ID, "lines", len(o.Items), "total", o.TotalAmount)
	return errors.Join(saveErr, l.catalog.Save())
}

// LineRequest asks for qty units of one menu item.
type LineRequest struct {
	ItemID string
	Qty    int
}

// PlaceRequest is a new order as collected from the customer.
type PlaceRequest struct {
	Customer string
	Lines    []LineRequest
}

// PlaceOrder prices the request against the menu, stamps it with now and
// stores a placed, unpaid order. Repeated items are merged into one line in
// first-seen order.
func (l *Ledger) PlaceOrder(req PlaceRequest, now time.Time) (domain.Order, error) {
	if len(req.Lines) == 0 {
		return domain.Order{}, domain.NewValidationError("order must contain at least one item")
	}

	var lines []domain.LineItem
	index := make(map[string]int)
	for _, r := range req.Lines {
		if r.Qty < 1 {
			return domain.Order{}, domain.NewValidationError("quantity for %s must be at least 1", r.ItemID)
		}
		if i, ok := index[r.ItemID]; ok {
			lines[i].Qty += r.Qty
			continue
		}
		item, ok := l.catalog.Item(r.ItemID)
		if !ok {
			return domain.Order{}, fmt.Errorf("%w: item %s", domain.ErrNotFound, r.ItemID)
		}
		if !item.Available {
			return domain.Order{}, domain.NewValidationError("%s is not available", item.Name)
		}
		index[r.ItemID] = len(lines)
		lines = append(lines, domain.LineItem{
			ItemID:   item.ID,
			Name:     item.Name,
			Qty:      r.Qty,
			Price:    item.Price,
			Category: item.Category,
		})
	}

	ts := domain.FormatTimestamp(now)
	o := domain.Order{
		ID:          l.GenerateOrderID(ts),
		Items:       lines,
		Status:      domain.StatusPlaced,
		TotalAmount: domain.CalculateTotal(lines),
		Timestamp:   ts,
		Customer:    strings.TrimSpace(req.Customer),
	}
	err := l.AddOrder(o)
	stored, ok := l.orders[o.ID]
	if !ok {
		return domain.Order{}, err
	}
	// A persistence error still leaves the order in the ledger.
	return cloneOrder(stored), err
}

// UpdateStatus moves an order to one of the canonical statuses.
func (l *Ledger) UpdateStatus(id string, status domain.Status) error {
	o, ok := l.orders[id]
	if !ok {
		return fmt.Errorf("%w: order %s", domain.ErrNotFound, id)
	}
	parsed, err := domain.ParseStatus(string(status))
	if err != nil {
		return err
	}
	o.Status = parsed
	l.logger.Info("order status updated", "order_id", id, "status", string(parsed))
	return l.save()
}

// MarkPaid sets paid unconditionally; there is no way back to unpaid.
func (l *Ledger) MarkPaid(id string) error {
	o, ok := l.orders[id]
	if !ok {
		return fmt.Errorf("%w: order %s", domain.ErrNotFound, id)
	}
	o.Paid = true
	l.logger.Info("order marked paid", "order_id", id)
	return l.save()
}

// RemoveOrder deletes an order and gives back its quantities to the menu counts.
func (l *Ledger) RemoveOrder(id string) error {
	o, ok := l.orders[id]
	if !ok {
		return fmt.Errorf("%w: order %s", domain.ErrNotFound, id)
	}
	delete(l.orders, id)
	for _, line := range o.Items {
		l.catalog.DecrementOrderCount(line.ItemID, line.Qty)
	}
	l.logger.Info("order removed", "order_id", id)
	return errors.Join(l.catalog.Save(), l.save())
}

// RebuildOrderCounts recomputes every item's lifetime count from the orders
// currently held and persists the menu.
func (l *Ledger) RebuildOrderCounts() error {
	counts := make(map[string]int)
	for _, o := range l.orders {
		for _, line := range o.Items {
			counts[line.ItemID] += line.Qty
		}
	}
	return l.catalog.SetOrderCounts(counts)
}

// Order returns a copy of one order.
func (l *Ledger) Order(id string) (domain.Order, bool) {
	o, ok := l.orders[id]
	if !ok {
		return domain.Order{}, false
	}
	return cloneOrder(o), true
}

// Orders returns copies of every order in identifier order.
func (l *Ledger) Orders() []domain.Order {
	out := make([]domain.Order, 0, len(l.orders))
	for _, o := range l.orders {
		out = append(out, cloneOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Filter selects orders; only the highest-precedence date window is applied.
func (l *Ledger) Filter(c filter.OrderCriteria) []domain.Order {
	return filter.Orders(l.Orders(), c)
}

func cloneOrder(o *domain.Order) domain.Order {
	c := *o
	c.Items = cloneLines(o.Items)
	return c
}

func cloneLines(lines []domain.LineItem) []domain.LineItem {
	return append([]domain.LineItem(nil), lines...)
}
