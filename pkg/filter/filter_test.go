package filter

import (
	"testing"

	"cafe/pkg/domain"
)

func sampleOrders() []domain.Order {
	return []domain.Order{
		{ID: "ORD-2024-05-0001", Status: domain.StatusCompleted, Paid: true, Timestamp: "2024-05-01T09:00:00.000000"},
		{ID: "ORD-2024-05-0002", Status: domain.StatusPlaced, Paid: false, Timestamp: "2024-05-03T12:30:00.000000"},
		{ID: "ORD-2024-06-0001", Status: domain.StatusCompleted, Paid: false, Timestamp: "2024-06-02T18:45:00.000000"},
		{ID: "ORD-BROKEN", Status: domain.StatusPlaced, Timestamp: "2024"},
	}
}

func ids(orders []domain.Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

func sameIDs(got []domain.Order, want ...string) bool {
	g := ids(got)
	if len(g) != len(want) {
		return false
	}
	for i := range g {
		if g[i] != want[i] {
			return false
		}
	}
	return true
}

func TestOrdersEmptyCriteriaReturnsAll(t *testing.T) {
	all := sampleOrders()
	if got := Orders(all, OrderCriteria{}); len(got) != len(all) {
		t.Fatalf("expected %d orders, got %d", len(all), len(got))
	}
}

func TestOrdersDatePrecedence(t *testing.T) {
	all := sampleOrders()
	got := Orders(all, OrderCriteria{Date: "2024-05-03", From: "2024-01-01", Month: "2024-06"})
	if !sameIDs(got, "ORD-2024-05-0002") {
		t.Fatalf("date should win, got %v", ids(got))
	}
	got = Orders(all, OrderCriteria{From: "2024-05-02", Month: "2024-05"})
	if !sameIDs(got, "ORD-2024-05-0002", "ORD-2024-06-0001") {
		t.Fatalf("open-ended range should win over month, got %v", ids(got))
	}
	got = Orders(all, OrderCriteria{Month: "2024-05"})
	if !sameIDs(got, "ORD-2024-05-0001", "ORD-2024-05-0002") {
		t.Fatalf("month filter, got %v", ids(got))
	}
}

func TestOrdersCombinesStatusAndPaid(t *testing.T) {
	got := Orders(sampleOrders(), OrderCriteria{Status: domain.StatusCompleted, Paid: Bool(false)})
	if !sameIDs(got, "ORD-2024-06-0001") {
		t.Fatalf("got %v", ids(got))
	}
}

func TestShortTimestampNeverMatchesDates(t *testing.T) {
	got := ByDateRange(sampleOrders(), "", "")
	for _, o := range got {
		if o.ID == "ORD-BROKEN" {
			t.Fatal("order without a date must not match a date range")
		}
	}
}

func TestMenuItemsKeepsOrderAndInput(t *testing.T) {
	items := []domain.MenuItem{
		{ID: "001_bev", Category: "Beverages", Available: true, IsSpecial: true},
		{ID: "002_bev", Category: "Beverages", Available: false},
		{ID: "001_sna", Category: "Snacks", Available: true},
	}
	got := MenuItems(items, MenuCriteria{Available: Bool(true)})
	if len(got) != 2 || got[0].ID != "001_bev" || got[1].ID != "001_sna" {
		t.Fatalf("unexpected result %+v", got)
	}
	got = MenuItems(items, MenuCriteria{Category: "Beverages", Special: Bool(true)})
	if len(got) != 1 || got[0].ID != "001_bev" {
		t.Fatalf("unexpected result %+v", got)
	}
	if len(items) != 3 || items[1].ID != "002_bev" {
		t.Fatal("input slice was modified")
	}
}
