package domain

import (
	"math"
	"strings"
	"time"
)

// Status is the preparation state of an order.
type Status string

const (
	StatusPlaced     Status = "placed"
	StatusInProgress Status = "in progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists the canonical values in workflow order.
var Statuses = []Status{StatusPlaced, StatusInProgress, StatusCompleted, StatusCancelled}

// ParseStatus accepts any casing and "in_progress"/"in-progress" spellings.
func ParseStatus(s string) (Status, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", " ", "-", " ").Replace(norm)
	for _, st := range Statuses {
		if string(st) == norm {
			return st, nil
		}
	}
	return "", NewValidationError("invalid status %q: must be one of placed, in progress, completed, cancelled", s)
}

// TimestampLayout is the local ISO-8601 form written for new orders.
const TimestampLayout = "2006-01-02T15:04:05.000000"

var timestampLayouts = []string{
	TimestampLayout,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
}

// FormatTimestamp renders t in local wall-clock time.
func FormatTimestamp(t time.Time) string {
	return t.Local().Format(TimestampLayout)
}

// ParseTimestamp reads the stored timestamp forms, offset-free ones as local time.
func ParseTimestamp(ts string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, ts, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, NewValidationError("invalid timestamp %q", ts)
}

// LineItem captures one menu item inside an order with the price charged at order time.
type LineItem struct {
	ItemID   string  `json:"item_id"`
	Name     string  `json:"name"`
	Qty      int     `json:"qty"`
	Price    float64 `json:"price"`
	Category string  `json:"category,omitempty"`
}

// Subtotal is qty × price.
func (l LineItem) Subtotal() float64 {
	return float64(l.Qty) * l.Price
}

// Order is a customer or admin purchase recorded in the ledger.
type Order struct {
	ID          string     `json:"order_id"`
	Items       []LineItem `json:"items"`
	Status      Status     `json:"status"`
	TotalAmount float64    `json:"total_amount"`
	Timestamp   string     `json:"timestamp"`
	Customer    string     `json:"name"`
	Paid        bool       `json:"paid"`
}

// NewOrder builds a placed, unpaid order whose total is derived from its lines.
func NewOrder(id string, lines []LineItem, customer string, at time.Time) (Order, error) {
	o := Order{
		ID:          id,
		Items:       lines,
		Status:      StatusPlaced,
		TotalAmount: CalculateTotal(lines),
		Timestamp:   FormatTimestamp(at),
		Customer:    strings.TrimSpace(customer),
	}
	if err := o.Validate(); err != nil {
		return Order{}, err
	}
	return o, nil
}

// CalculateTotal sums qty × price over the lines.
func CalculateTotal(lines []LineItem) float64 {
	var total float64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}

// totalTolerance absorbs float drift between a stored total and its recomputation.
const totalTolerance = 1e-6

// Validate checks the structural invariants of an order.
func (o Order) Validate() error {
	if strings.TrimSpace(o.ID) == "" {
		return NewValidationError("order id is required")
	}
	if st, err := ParseStatus(string(o.Status)); err != nil || st != o.Status {
		return NewValidationError("order %s: invalid status %q", o.ID, o.Status)
	}
	if len(o.Items) == 0 {
		return NewValidationError("order %s has no items", o.ID)
	}
	for _, l := range o.Items {
		if l.ItemID == "" {
			return NewValidationError("order %s has a line without item id", o.ID)
		}
		if l.Qty < 1 {
			return NewValidationError("order %s: quantity for %s must be at least 1", o.ID, l.ItemID)
		}
		if l.Price <= 0 || math.IsNaN(l.Price) || math.IsInf(l.Price, 0) {
			return NewValidationError("order %s: price for %s must be greater than 0", o.ID, l.ItemID)
		}
	}
	if math.Abs(o.TotalAmount-CalculateTotal(o.Items)) > totalTolerance {
		return NewValidationError("order %s: total %.2f does not match its items", o.ID, o.TotalAmount)
	}
	return nil
}

// Date returns the YYYY-MM-DD part of the timestamp, or "" when it is too short.
func (o Order) Date() string {
	if len(o.Timestamp) < 10 {
		return ""
	}
	return o.Timestamp[:10]
}

// Month returns the YYYY-MM part of the timestamp.
func (o Order) Month() string {
	return MonthKey(o.Timestamp)
}

// Time parses the order timestamp.
func (o Order) Time() (time.Time, error) {
	return ParseTimestamp(o.Timestamp)
}

// MonthKey is the leading YYYY-MM of an ISO timestamp.
func MonthKey(ts string) string {
	if len(ts) < 7 {
		return ts
	}
	return ts[:7]
}

// ParseDate validates a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, NewValidationError("date %q must be YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseMonth validates a YYYY-MM string.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01", strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, NewValidationError("month %q must be YYYY-MM", s)
	}
	return t, nil
}
