package filter

import "cafe/pkg/domain"

// OrderCriteria selects orders. Only one date-like window is applied, chosen
// by precedence: Date, then the From/To range, then Month.
type OrderCriteria struct {
	Status domain.Status
	Paid   *bool
	Date   string // YYYY-MM-DD
	From   string // YYYY-MM-DD, inclusive
	To     string // YYYY-MM-DD, inclusive
	Month  string // YYYY-MM
}

// Orders applies every set criterion (logical AND).
func Orders(orders []domain.Order, c OrderCriteria) []domain.Order {
	out := orders
	if c.Status != "" {
		out = ByStatus(out, c.Status)
	}
	if c.Paid != nil {
		out = ByPaid(out, *c.Paid)
	}
	switch {
	case c.Date != "":
		out = ByDate(out, c.Date)
	case c.From != "" || c.To != "":
		out = ByDateRange(out, c.From, c.To)
	case c.Month != "":
		out = ByMonth(out, c.Month)
	}
	return out
}

// ByStatus keeps orders in the given status.
func ByStatus(orders []domain.Order, status domain.Status) []domain.Order {
	return keep(orders, func(o domain.Order) bool { return o.Status == status })
}

// ByPaid keeps orders whose payment flag equals paid.
func ByPaid(orders []domain.Order, paid bool) []domain.Order {
	return keep(orders, func(o domain.Order) bool { return o.Paid == paid })
}

// ByDate keeps orders placed on the given calendar date.
func ByDate(orders []domain.Order, date string) []domain.Order {
	return keep(orders, func(o domain.Order) bool {
		d := o.Date()
		return d != "" && d == date
	})
}

// ByDateRange keeps orders whose calendar date lies in [from, to]. An empty
// bound leaves that side open.
func ByDateRange(orders []domain.Order, from, to string) []domain.Order {
	return keep(orders, func(o domain.Order) bool {
		d := o.Date()
		if d == "" {
			return false
		}
		if from != "" && d < from {
			return false
		}
		if to != "" && d > to {
			return false
		}
		return true
	})
}

// ByMonth compares the leading YYYY-MM of the timestamp.
func ByMonth(orders []domain.Order, month string) []domain.Order {
	return keep(orders, func(o domain.Order) bool { return o.Month() == month })
}
