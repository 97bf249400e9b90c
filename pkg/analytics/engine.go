// Package analytics derives sales figures from the order ledger and the menu.
// Nothing is cached: every call reads the current state of both stores.
package analytics

import (
	"log/slog"
	"time"

	"cafe/pkg/domain"
	"cafe/pkg/filter"
	"cafe/pkg/menu"
)

// Placeholder is reported instead of a value when no order qualifies.
const Placeholder = "N/A"

// Orders is the read side of the order ledger.
type Orders interface {
	Orders() []domain.Order
	Filter(c filter.OrderCriteria) []domain.Order
}

// Menu is the read side of the menu catalog.
type Menu interface {
	Item(id string) (domain.MenuItem, bool)
	Items() []domain.MenuItem
	Categories() []string
	AvailableCount() int
	SpecialCount() int
	CountByCategory() []menu.CategoryCount
}

// Limits sizes the ranked lists of the summaries.
type Limits struct {
	DailyTop      int
	DailyBottom   int
	MonthlyTop    int
	MonthlyBottom int
	CategoryTop   int
}

// DefaultLimits matches the console's historical report sizes.
func DefaultLimits() Limits {
	return Limits{DailyTop: 3, DailyBottom: 2, MonthlyTop: 5, MonthlyBottom: 5, CategoryTop: 3}
}

// Engine computes reports on demand.
type Engine struct {
	orders Orders
	menu   Menu
	limits Limits
	now    func() time.Time
	logger *slog.Logger
}

// Option customises an Engine.
type Option func(*Engine)

// WithLimits overrides the ranking sizes.
func WithLimits(l Limits) Option {
	return func(e *Engine) { e.limits = l }
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New wires an engine over the two stores.
func New(orders Orders, catalog Menu, logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	e := &Engine{
		orders: orders,
		menu:   catalog,
		limits: DefaultLimits(),
		now:    time.Now,
		logger: logger.With("component", "analytics"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ItemCount is the quantity sold of one item. Rows are keyed by item id, so
// two items that share a display name are reported separately.
type ItemCount struct {
	ItemID string
	Name   string
	Qty    int
}

// CategoryStat is the quantity sold and revenue earned by one category.
type CategoryStat struct {
	Category string
	Qty      int
	Revenue  float64
}

// Summary covers every order in a date or month window, whatever its status.
type Summary struct {
	Window                 string
	TotalOrders            int
	TotalRevenue           float64
	AverageOrderValue      float64
	TopItems               []ItemCount
	LeastItems             []ItemCount
	TopCategoriesByOrders  []CategoryStat
	TopCategoriesByRevenue []CategoryStat
	// BestCategoryByOrders holds the leader, both leaders when the top two
	// tie, or nothing when the window is empty. Same for revenue.
	BestCategoryByOrders  []CategoryStat
	BestCategoryByRevenue []CategoryStat
}

// DailySummary reports on the orders placed on date (YYYY-MM-DD).
func (e *Engine) DailySummary(date string) (Summary, error) {
	if _, err := domain.ParseDate(date); err != nil {
		return Summary{}, err
	}
	orders := e.orders.Filter(filter.OrderCriteria{Date: date})
	return e.summarize(date, orders, e.limits.DailyTop, e.limits.DailyBottom), nil
}

// MonthlySummary reports on the orders placed in month (YYYY-MM).
func (e *Engine) MonthlySummary(month string) (Summary, error) {
	if _, err := domain.ParseMonth(month); err != nil {
		return Summary{}, err
	}
	orders := e.orders.Filter(filter.OrderCriteria{Month: month})
	return e.summarize(month, orders, e.limits.MonthlyTop, e.limits.MonthlyBottom), nil
}

func (e *Engine) summarize(window string, orders []domain.Order, top, bottom int) Summary {
	s := Summary{Window: window, TotalOrders: len(orders)}
	for _, o := range orders {
		s.TotalRevenue += o.TotalAmount
	}
	s.AverageOrderValue = average(s.TotalRevenue, s.TotalOrders)

	items := e.itemCounts(orders)
	s.TopItems = head(rankItems(items, true), top)
	s.LeastItems = head(rankItems(items, false), bottom)

	cats := e.categoryStats(orders)
	byOrders := rankCategories(cats, func(c CategoryStat) float64 { return float64(c.Qty) })
	byRevenue := rankCategories(cats, func(c CategoryStat) float64 { return c.Revenue })
	s.TopCategoriesByOrders = head(byOrders, e.limits.CategoryTop)
	s.TopCategoriesByRevenue = head(byRevenue, e.limits.CategoryTop)
	s.BestCategoryByOrders = best(byOrders, func(c CategoryStat) float64 { return float64(c.Qty) })
	s.BestCategoryByRevenue = best(byRevenue, func(c CategoryStat) float64 { return c.Revenue })
	return s
}

// MenuInsights is the all-time view of the menu.
type MenuInsights struct {
	TotalItems       int
	TotalCategories  int
	AvailableCount   int
	SpecialCount     int
	ItemsByCategory  []menu.CategoryCount
	OrdersByCategory []CategoryStat
}

// MenuInsights sums ordered quantity per category over all orders,
// regardless of status, sorted by quantity descending.
func (e *Engine) MenuInsights() MenuInsights {
	cats := e.categoryStats(e.orders.Orders())
	return MenuInsights{
		TotalItems:       len(e.menu.Items()),
		TotalCategories:  len(e.menu.Categories()),
		AvailableCount:   e.menu.AvailableCount(),
		SpecialCount:     e.menu.SpecialCount(),
		ItemsByCategory:  e.menu.CountByCategory(),
		OrdersByCategory: rankCategories(cats, func(c CategoryStat) float64 { return float64(c.Qty) }),
	}
}

func average(total float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

func head[T any](in []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(in) > n {
		in = in[:n]
	}
	return in
}
