package analytics

import (
	"fmt"
	"time"

	"cafe/pkg/domain"
	"cafe/pkg/filter"
)

// TodayInsights describes today's completed orders. TopItem and PeakHour hold
// Placeholder when nothing was completed.
type TodayInsights struct {
	Date              string
	TotalOrders       int
	TotalRevenue      float64
	AverageOrderValue float64
	TopItem           string
	TopItemQty        int
	PeakHour          string
}

// TodayInsights only counts orders whose status is completed.
func (e *Engine) TodayInsights() TodayInsights {
	today := e.now().Format(time.DateOnly)
	orders := e.completedOn(today)

	t := TodayInsights{Date: today, TotalOrders: len(orders), TopItem: Placeholder, PeakHour: Placeholder}
	for _, o := range orders {
		t.TotalRevenue += o.TotalAmount
	}
	t.AverageOrderValue = average(t.TotalRevenue, t.TotalOrders)

	if ranked := rankItems(e.itemCounts(orders), true); len(ranked) > 0 {
		t.TopItem, t.TopItemQty = ranked[0].Name, ranked[0].Qty
	}
	if hour, ok := e.peakHour(orders); ok {
		t.PeakHour = fmt.Sprintf("%02d - %02d", hour, hour+1)
	}
	return t
}

// peakHour picks the local hour with the most orders; the earliest-seen hour
// wins a tie.
func (e *Engine) peakHour(orders []domain.Order) (int, bool) {
	var counts [24]int
	var seen []int
	for _, o := range orders {
		ts, err := o.Time()
		if err != nil {
			e.logger.Warn("order timestamp unreadable", "order_id", o.ID, "err", err)
			continue
		}
		h := ts.Local().Hour()
		if counts[h] == 0 {
			seen = append(seen, h)
		}
		counts[h]++
	}
	if len(seen) == 0 {
		return 0, false
	}
	peak := seen[0]
	for _, h := range seen[1:] {
		if counts[h] > counts[peak] {
			peak = h
		}
	}
	return peak, true
}

// MonthlyInsights is the dashboard view of one month's completed orders.
type MonthlyInsights struct {
	Month             string
	TotalOrders       int
	TotalRevenue      float64
	AverageOrderValue float64
	TopItem           string
	LeastItem         string
	SecondLeastItem   string
}

// MonthlyInsights reports for month (YYYY-MM); an empty month means the
// current one. Item slots with no data hold Placeholder.
func (e *Engine) MonthlyInsights(month string) (MonthlyInsights, error) {
	if month == "" {
		month = e.now().Format("2006-01")
	}
	if _, err := domain.ParseMonth(month); err != nil {
		return MonthlyInsights{}, err
	}
	orders := e.orders.Filter(filter.OrderCriteria{Status: domain.StatusCompleted, Month: month})

	m := MonthlyInsights{
		Month:           month,
		TotalOrders:     len(orders),
		TopItem:         Placeholder,
		LeastItem:       Placeholder,
		SecondLeastItem: Placeholder,
	}
	for _, o := range orders {
		m.TotalRevenue += o.TotalAmount
	}
	m.AverageOrderValue = average(m.TotalRevenue, m.TotalOrders)

	items := e.itemCounts(orders)
	if top := rankItems(items, true); len(top) > 0 {
		m.TopItem = top[0].Name
	}
	least := rankItems(items, false)
	if len(least) > 0 {
		m.LeastItem = least[0].Name
	}
	if len(least) > 1 {
		m.SecondLeastItem = least[1].Name
	}
	return m, nil
}

// DaySales is one row of the weekly report.
type DaySales struct {
	Date    string
	Weekday string
	Orders  int
	Revenue float64
}

// WeeklyInsights covers today and the six days before it, oldest first.
type WeeklyInsights struct {
	Days         []DaySales
	TotalOrders  int
	TotalRevenue float64
	// DailyAverage is TotalRevenue / 7 even when some days had no orders.
	DailyAverage float64
}

// WeeklyInsights sums completed orders per day. A day whose orders cannot be
// read is logged and counted as zero; the other days are unaffected.
func (e *Engine) WeeklyInsights() WeeklyInsights {
	today := e.now()
	var w WeeklyInsights
	for back := 6; back >= 0; back-- {
		day := today.AddDate(0, 0, -back)
		sales := DaySales{Date: day.Format(time.DateOnly), Weekday: day.Weekday().String()}
		if orders, revenue, err := e.daySales(sales.Date); err != nil {
			e.logger.Warn("weekly sales: skipping day", "date", sales.Date, "err", err)
		} else {
			sales.Orders, sales.Revenue = orders, revenue
		}
		w.Days = append(w.Days, sales)
		w.TotalOrders += sales.Orders
		w.TotalRevenue += sales.Revenue
	}
	w.DailyAverage = w.TotalRevenue / 7
	return w
}

func (e *Engine) daySales(date string) (int, float64, error) {
	orders := e.completedOn(date)
	var revenue float64
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return 0, 0, err
		}
		revenue += o.TotalAmount
	}
	return len(orders), revenue, nil
}

func (e *Engine) completedOn(date string) []domain.Order {
	return e.orders.Filter(filter.OrderCriteria{Status: domain.StatusCompleted, Date: date})
}
