package menu

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cafe/pkg/domain"
)

func openCatalog(t *testing.T) (*Catalog, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "menu.json")
	c, err := Open(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return c, path
}

func mustItem(t *testing.T, c *Catalog, category, name string, price float64) domain.MenuItem {
	t.Helper()
	item, err := domain.NewMenuItem(c.GenerateItemID(category), category, name, price, true, false)
	if err != nil {
		t.Fatalf("new item: %v", err)
	}
	if err := c.AddItem(item); err != nil {
		t.Fatalf("add item: %v", err)
	}
	return item
}

func TestGenerateItemIDSequence(t *testing.T) {
	c, _ := openCatalog(t)
	if err := c.AddCategory("Beverages"); err != nil {
		t.Fatal(err)
	}
	if id := c.GenerateItemID("Beverages"); id != "001_bev" {
		t.Fatalf("expected 001_bev, got %s", id)
	}
	first := mustItem(t, c, "Beverages", "latte", 150)
	if first.ID != "001_bev" {
		t.Fatalf("unexpected id %s", first.ID)
	}
	if id := c.GenerateItemID("beverages"); id != "002_bev" {
		t.Fatalf("expected 002_bev, got %s", id)
	}
}

func TestGenerateItemIDSkipsNonNumericPrefixes(t *testing.T) {
	c, _ := openCatalog(t)
	if err := c.AddCategory("Snacks"); err != nil {
		t.Fatal(err)
	}
	legacy, _ := domain.NewMenuItem("abc_sna", "Snacks", "Chips", 40, true, false)
	if err := c.AddItem(legacy); err != nil {
		t.Fatal(err)
	}
	seven, _ := domain.NewMenuItem("007_sna", "Snacks", "Cookie", 30, true, false)
	if err := c.AddItem(seven); err != nil {
		t.Fatal(err)
	}
	if id := c.GenerateItemID("Snacks"); id != "008_sna" {
		t.Fatalf("expected 008_sna, got %s", id)
	}
}

func TestAddItemRejectsDuplicatesAndUnknownCategory(t *testing.T) {
	c, _ := openCatalog(t)
	item, _ := domain.NewMenuItem("001_bev", "Beverages", "Latte", 150, true, false)
	if err := c.AddItem(item); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing category, got %v", err)
	}
	if err := c.AddCategory("Beverages"); err != nil {
		t.Fatal(err)
	}
	if err := c.AddItem(item); err != nil {
		t.Fatal(err)
	}
	if err := c.AddItem(item); !errors.Is(err, domain.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestAddItemRejectsInvalidRecords(t *testing.T) {
	c, _ := openCatalog(t)
	if err := c.AddCategory("Beverages"); err != nil {
		t.Fatal(err)
	}
	for _, item := range []domain.MenuItem{
		{ID: "001_bev", Category: "Beverages", Name: "  ", Price: 150, Available: true},
		{ID: "001_bev", Category: "Beverages", Name: "Latte", Price: 0, Available: true},
		{ID: "001_bev", Category: "Beverages", Name: "Latte", Price: -5, Available: true},
		{ID: "", Category: "Beverages", Name: "Latte", Price: 150, Available: true},
	} {
		if err := c.AddItem(item); !domain.IsValidation(err) {
			t.Fatalf("AddItem(%+v): expected validation error, got %v", item, err)
		}
	}
	if len(c.Items()) != 0 {
		t.Fatalf("invalid items were stored: %+v", c.Items())
	}
}

func TestCategoryLifecycle(t *testing.T) {
	c, _ := openCatalog(t)
	if err := c.AddCategory("Desserts"); err != nil {
		t.Fatal(err)
	}
	if err := c.AddCategory("Desserts"); !errors.Is(err, domain.ErrDuplicateCategory) {
		t.Fatalf("expected ErrDuplicateCategory, got %v", err)
	}
	if err := c.AddCategory("   "); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got, ok := c.ResolveCategory("  desserts "); !ok || got != "Desserts" {
		t.Fatalf("resolve: %q %v", got, ok)
	}

	mustItem(t, c, "Desserts", "brownie", 90)
	if err := c.RemoveCategory("Desserts"); !errors.Is(err, domain.ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}
	if err := c.RemoveItem("001_des"); err != nil {
		t.Fatal(err)
	}
	if err := c.RemoveCategory("Desserts"); err != nil {
		t.Fatalf("remove unused category: %v", err)
	}
	if err := c.RemoveCategory("Desserts"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateAndToggleSpecial(t *testing.T) {
	c, _ := openCatalog(t)
	_ = c.AddCategory("Beverages")
	item := mustItem(t, c, "Beverages", "latte", 150)

	price := 175.0
	name := "iced latte"
	if err := c.UpdateItem(item.ID, domain.ItemUpdate{Name: &name, Price: &price}); err != nil {
		t.Fatal(err)
	}
	got, _ := c.Item(item.ID)
	if got.Name != "Iced Latte" || got.Price != 175 || got.Category != "Beverages" {
		t.Fatalf("unexpected item after update: %+v", got)
	}

	bad := -1.0
	if err := c.UpdateItem(item.ID, domain.ItemUpdate{Price: &bad}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := c.UpdateItem("missing", domain.ItemUpdate{Price: &price}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := c.ToggleSpecial(item.ID); err != nil {
		t.Fatal(err)
	}
	if specials := c.SpecialItems(); len(specials) != 1 || specials[0].ID != item.ID {
		t.Fatalf("expected one special, got %+v", specials)
	}
}

func TestOrderCountsFloorAtZero(t *testing.T) {
	c, _ := openCatalog(t)
	_ = c.AddCategory("Beverages")
	item := mustItem(t, c, "Beverages", "latte", 150)

	c.IncrementOrderCount(item.ID, 2)
	c.DecrementOrderCount(item.ID, 5)
	got, _ := c.Item(item.ID)
	if got.OrderCount != 0 {
		t.Fatalf("expected count floored at 0, got %d", got.OrderCount)
	}

	if err := c.SetOrderCounts(map[string]int{item.ID: 4}); err != nil {
		t.Fatal(err)
	}
	if most := c.MostOrdered(); len(most) != 1 || most[0].OrderCount != 4 {
		t.Fatalf("unexpected most ordered: %+v", most)
	}
}

func TestReopenRestoresState(t *testing.T) {
	c, path := openCatalog(t)
	_ = c.AddCategory("Beverages")
	_ = c.AddCategory("Snacks")
	mustItem(t, c, "Beverages", "latte", 150)
	mustItem(t, c, "Snacks", "chips", 40)

	reopened, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cats := reopened.Categories(); len(cats) != 2 || cats[0] != "Beverages" || cats[1] != "Snacks" {
		t.Fatalf("categories not restored: %v", cats)
	}
	items := reopened.Items()
	if len(items) != 2 || items[0].ID != "001_bev" || items[1].ID != "001_sna" {
		t.Fatalf("items not restored in id order: %+v", items)
	}
	if counts := reopened.CountByCategory(); len(counts) != 2 || counts[0].Category != "beverages" {
		t.Fatalf("unexpected category counts: %+v", counts)
	}
}

func TestSaveFailureKeepsInMemoryChange(t *testing.T) {
	c, path := openCatalog(t)
	if err := os.Mkdir(path+".tmp", 0o755); err != nil {
		t.Fatal(err)
	}
	err := c.AddCategory("Beverages")
	if !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if _, ok := c.ResolveCategory("Beverages"); !ok {
		t.Fatal("in-memory change should survive a failed save")
	}
}
