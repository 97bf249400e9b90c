package menu

import (
	"sort"
	"strings"

	"cafe/pkg/domain"
)

// CategoryCount pairs a category with a count.
type CategoryCount struct {
	Category string
	Count    int
}

// AvailableCount is the number of items customers can order right now.
func (c *Catalog) AvailableCount() int {
	n := 0
	for _, item := range c.items {
		if item.Available {
			n++
		}
	}
	return n
}

// SpecialCount counts items flagged as specials, available or not.
func (c *Catalog) SpecialCount() int {
	n := 0
	for _, item := range c.items {
		if item.IsSpecial {
			n++
		}
	}
	return n
}

// CountByCategory groups items by lower-cased category, sorted by name.
func (c *Catalog) CountByCategory() []CategoryCount {
	counts := make(map[string]int)
	for _, item := range c.items {
		counts[strings.ToLower(strings.TrimSpace(item.Category))]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for cat, n := range counts {
		out = append(out, CategoryCount{Category: cat, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// MostOrdered returns every item sharing the highest non-zero lifetime count.
func (c *Catalog) MostOrdered() []domain.MenuItem {
	best := 0
	for _, item := range c.items {
		best = max(best, item.OrderCount)
	}
	if best == 0 {
		return nil
	}
	var out []domain.MenuItem
	for _, item := range c.Items() {
		if item.OrderCount == best {
			out = append(out, item)
		}
	}
	return out
}

func sameCategory(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func categoryPrefix(category string) string {
	runes := []rune(strings.ToLower(strings.TrimSpace(category)))
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return string(runes)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
