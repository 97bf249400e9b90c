package analytics

import (
	"sort"
	"strings"

	"cafe/pkg/domain"
)

const uncategorized = "Uncategorized"

// itemCounts sums line quantities per item in first-seen order. Names come
// from the menu, or from the order line when the item no longer exists.
func (e *Engine) itemCounts(orders []domain.Order) []ItemCount {
	var out []ItemCount
	index := make(map[string]int)
	for _, o := range orders {
		for _, line := range o.Items {
			if i, ok := index[line.ItemID]; ok {
				out[i].Qty += line.Qty
				continue
			}
			index[line.ItemID] = len(out)
			out = append(out, ItemCount{ItemID: line.ItemID, Name: e.itemName(line), Qty: line.Qty})
		}
	}
	return out
}

// categoryStats sums quantity and qty×price per category in first-seen order.
func (e *Engine) categoryStats(orders []domain.Order) []CategoryStat {
	var out []CategoryStat
	index := make(map[string]int)
	for _, o := range orders {
		for _, line := range o.Items {
			cat := e.itemCategory(line)
			i, ok := index[cat]
			if !ok {
				i = len(out)
				index[cat] = i
				out = append(out, CategoryStat{Category: cat})
			}
			out[i].Qty += line.Qty
			out[i].Revenue += line.Subtotal()
		}
	}
	return out
}

func (e *Engine) itemName(line domain.LineItem) string {
	if item, ok := e.menu.Item(line.ItemID); ok {
		return item.Name
	}
	if line.Name != "" {
		return line.Name
	}
	return line.ItemID
}

func (e *Engine) itemCategory(line domain.LineItem) string {
	if item, ok := e.menu.Item(line.ItemID); ok {
		return item.Category
	}
	if strings.TrimSpace(line.Category) != "" {
		return line.Category
	}
	return uncategorized
}

// rankItems sorts a copy by quantity. Ties keep their first-seen order.
func rankItems(items []ItemCount, descending bool) []ItemCount {
	out := append([]ItemCount{}, items...)
	sort.SliceStable(out, func(i, j int) bool {
		if descending {
			return out[i].Qty > out[j].Qty
		}
		return out[i].Qty < out[j].Qty
	})
	return out
}

func rankCategories(cats []CategoryStat, metric func(CategoryStat) float64) []CategoryStat {
	out := append([]CategoryStat{}, cats...)
	sort.SliceStable(out, func(i, j int) bool { return metric(out[i]) > metric(out[j]) })
	return out
}

// best returns the leader of a ranked list, or both leaders when the first
// two share the same metric.
func best(ranked []CategoryStat, metric func(CategoryStat) float64) []CategoryStat {
	switch {
	case len(ranked) == 0:
		return nil
	case len(ranked) > 1 && metric(ranked[0]) == metric(ranked[1]):
		return append([]CategoryStat{}, ranked[:2]...)
	default:
		return append([]CategoryStat{}, ranked[:1]...)
	}
}
