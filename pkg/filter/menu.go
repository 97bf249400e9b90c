package filter

import "cafe/pkg/domain"

// MenuCriteria selects menu items. Category matches exactly.
type MenuCriteria struct {
	Category  string
	Available *bool
	Special   *bool
}

// MenuItems applies every set criterion (logical AND).
func MenuItems(items []domain.MenuItem, c MenuCriteria) []domain.MenuItem {
	out := items
	if c.Category != "" {
		out = ByCategory(out, c.Category)
	}
	if c.Available != nil {
		out = ByAvailable(out, *c.Available)
	}
	if c.Special != nil {
		out = BySpecial(out, *c.Special)
	}
	return out
}

// ByCategory keeps items whose category equals category exactly.
func ByCategory(items []domain.MenuItem, category string) []domain.MenuItem {
	return keep(items, func(it domain.MenuItem) bool { return it.Category == category })
}

// ByAvailable keeps items whose availability equals available.
func ByAvailable(items []domain.MenuItem, available bool) []domain.MenuItem {
	return keep(items, func(it domain.MenuItem) bool { return it.Available == available })
}

// BySpecial keeps items whose special flag equals special.
func BySpecial(items []domain.MenuItem, special bool) []domain.MenuItem {
	return keep(items, func(it domain.MenuItem) bool { return it.IsSpecial == special })
}
