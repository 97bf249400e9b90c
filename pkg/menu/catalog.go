// Package menu owns the café's menu items and categories.
package menu

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"cafe/pkg/domain"
	"cafe/pkg/filter"
	"cafe/pkg/storage/jsonstore"
)

// document is the on-disk layout of the menu store.
type document struct {
	Categories []string                   `json:"categories"`
	Items      map[string]domain.MenuItem `json:"items"`
}

// Catalog keeps items and categories in memory and rewrites the whole menu
// file after every mutation.
type Catalog struct {
	path       string
	logger     *slog.Logger
	categories []string
	items      map[string]*domain.MenuItem
}

// Open loads the menu file at path. Missing or corrupt files start an empty menu.
func Open(path string, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &Catalog{
		path:   path,
		logger: logger.With("component", "menu"),
		items:  make(map[string]*domain.MenuItem),
	}

	var doc document
	status, err := jsonstore.Load(path, &doc)
	if err != nil {
		return nil, fmt.Errorf("load menu: %w", err)
	}
	switch status {
	case jsonstore.Corrupt:
		c.logger.Warn("menu file was corrupt, starting fresh", "path", path)
	case jsonstore.Loaded:
		c.categories = append(c.categories, doc.Categories...)
		for id, item := range doc.Items {
			item.ID = id
			if item.OrderCount < 0 {
				item.OrderCount = 0
			}
			c.items[id] = &item
		}
	}
	c.logger.Info("menu loaded", "path", path, "status", status.String(), "items", len(c.items), "categories", len(c.categories))
	return c, nil
}

// Save persists items and categories.
func (c *Catalog) Save() error {
	doc := document{
		Categories: c.Categories(),
		Items:      make(map[string]domain.MenuItem, len(c.items)),
	}
	for id, item := range c.items {
		doc.Items[id] = *item
	}
	if err := jsonstore.Save(c.path, doc); err != nil {
		c.logger.Error("menu save failed", "path", c.path, "err", err)
		return domain.PersistenceError("menu", err)
	}
	return nil
}

// AddItem inserts a new item. Its category must already exist.
func (c *Catalog) AddItem(item domain.MenuItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if _, ok := c.items[item.ID]; ok {
		return fmt.Errorf("%w: item %s", domain.ErrDuplicateID, item.ID)
	}
	if _, ok := c.ResolveCategory(item.Category); !ok {
		return fmt.Errorf("%w: category %q", domain.ErrNotFound, item.Category)
	}
	if item.OrderCount < 0 {
		item.OrderCount = 0
	}
	c.items[item.ID] = &item
	c.logger.Info("item added", "item_id", item.ID, "name", item.Name, "category", item.Category)
	return c.Save()
}

// RemoveItem deletes an item; its identifier becomes unknown immediately.
func (c *Catalog) RemoveItem(id string) error {
	if _, ok := c.items[id]; !ok {
		return fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
	}
	delete(c.items, id)
	c.logger.Info("item removed", "item_id", id)
	return c.Save()
}

// UpdateItem applies the set fields of upd. Category is immutable.
func (c *Catalog) UpdateItem(id string, upd domain.ItemUpdate) error {
	item, ok := c.items[id]
	if !ok {
		return fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
	}
	if err := upd.Validate(); err != nil {
		return err
	}
	if upd.Name != nil {
		item.Name = domain.TitleCase(*upd.Name)
	}
	if upd.Price != nil {
		item.Price = *upd.Price
	}
	if upd.Available != nil {
		item.Available = *upd.Available
	}
	if upd.IsSpecial != nil {
		item.IsSpecial = *upd.IsSpecial
	}
	c.logger.Info("item updated", "item_id", id)
	return c.Save()
}

// ToggleSpecial flips the special flag of an item.
func (c *Catalog) ToggleSpecial(id string) error {
	item, ok := c.items[id]
	if !ok {
		return fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
	}
	item.IsSpecial = !item.IsSpecial
	c.logger.Info("item special toggled", "item_id", id, "is_special", item.IsSpecial)
	return c.Save()
}

// AddCategory appends a category. Duplicates are detected by exact match only;
// callers wanting case-insensitive uniqueness check ResolveCategory first.
func (c *Catalog) AddCategory(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.NewValidationError("category name cannot be empty")
	}
	for _, existing := range c.categories {
		if existing == name {
			return fmt.Errorf("%w: %q", domain.ErrDuplicateCategory, name)
		}
	}
	c.categories = append(c.categories, name)
	c.logger.Info("category added", "category", name)
	return c.Save()
}

// RemoveCategory deletes a category that no item references (case-insensitively).
func (c *Catalog) RemoveCategory(name string) error {
	name = strings.TrimSpace(name)
	idx := -1
	for i, existing := range c.categories {
		if existing == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: category %q", domain.ErrNotFound, name)
	}
	for _, item := range c.items {
		if sameCategory(item.Category, name) {
			return fmt.Errorf("%w: %q", domain.ErrCategoryInUse, name)
		}
	}
	c.categories = append(c.categories[:idx], c.categories[idx+1:]...)
	c.logger.Info("category removed", "category", name)
	return c.Save()
}

// ResolveCategory finds a category ignoring case and surrounding spaces and
// returns its stored spelling.
func (c *Catalog) ResolveCategory(name string) (string, bool) {
	for _, existing := range c.categories {
		if sameCategory(existing, name) {
			return existing, true
		}
	}
	return "", false
}

// GenerateItemID returns "<seq>_<prefix>": prefix is the first three lower-case
// characters of the category, seq is one more than the highest numeric prefix
// among the category's items, zero-padded to three digits. Identifiers whose
// prefix is not numeric are ignored. If another category sharing the prefix
// already holds that identifier, the sequence moves forward until it is free.
func (c *Catalog) GenerateItemID(category string) string {
	prefix := categoryPrefix(category)
	highest := 0
	for id, item := range c.items {
		if !sameCategory(item.Category, category) {
			continue
		}
		numberPart, _, _ := strings.Cut(id, "_")
		if !isDigits(numberPart) {
			continue
		}
		if n, err := strconv.Atoi(numberPart); err == nil && n > highest {
			highest = n
		}
	}
	for next := highest + 1; ; next++ {
		id := fmt.Sprintf("%03d_%s", next, prefix)
		if _, taken := c.items[id]; !taken {
			return id
		}
	}
}

// IncrementOrderCount adds qty to an item's lifetime count. Unknown ids are ignored.
// The caller persists.
func (c *Catalog) IncrementOrderCount(id string, qty int) {
	if item, ok := c.items[id]; ok {
		item.OrderCount += qty
	}
}

// DecrementOrderCount subtracts qty, flooring at zero. The caller persists.
func (c *Catalog) DecrementOrderCount(id string, qty int) {
	if item, ok := c.items[id]; ok {
		item.OrderCount = max(0, item.OrderCount-qty)
	}
}

// SetOrderCounts overwrites every item's lifetime count from counts (absent
// ids get zero) and persists. It is the repair path for drifted counters.
func (c *Catalog) SetOrderCounts(counts map[string]int) error {
	for id, item := range c.items {
		item.OrderCount = max(0, counts[id])
	}
	c.logger.Info("order counts rebuilt", "items", len(c.items))
	return c.Save()
}

// Item returns a copy of the item with the given id.
func (c *Catalog) Item(id string) (domain.MenuItem, bool) {
	item, ok := c.items[id]
	if !ok {
		return domain.MenuItem{}, false
	}
	return *item, true
}

// Items returns copies of all items ordered by identifier.
func (c *Catalog) Items() []domain.MenuItem {
	out := make([]domain.MenuItem, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Categories returns the category list in insertion order.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// Filter selects items with the shared filtering rules.
func (c *Catalog) Filter(criteria filter.MenuCriteria) []domain.MenuItem {
	return filter.MenuItems(c.Items(), criteria)
}

// SpecialItems lists items that are both available and special.
func (c *Catalog) SpecialItems() []domain.MenuItem {
	return c.Filter(filter.MenuCriteria{Available: filter.Bool(true), Special: filter.Bool(true)})
}

// ItemsInCategory lists the available items of one category.
func (c *Catalog) ItemsInCategory(category string) []domain.MenuItem {
	return c.Filter(filter.MenuCriteria{Category: category, Available: filter.Bool(true)})
}

// NameIndex maps lower-cased names of available items to their identifiers.
func (c *Catalog) NameIndex() map[string]string {
	index := make(map[string]string)
	for _, item := range c.Items() {
		if item.Available {
			index[strings.ToLower(item.Name)] = item.ID
		}
	}
	return index
}

// NewItem builds an item for an existing category with a freshly generated
// identifier. The category is stored with its canonical spelling.
func (c *Catalog) NewItem(category, name string, price float64, available, special bool) (domain.MenuItem, error) {
	canonical, ok := c.ResolveCategory(category)
	if !ok {
		return domain.MenuItem{}, fmt.Errorf("%w: category %q", domain.ErrNotFound, category)
	}
	item, err := domain.NewMenuItem(c.GenerateItemID(canonical), canonical, name, price, available, special)
	if err != nil {
		return domain.MenuItem{}, err
	}
	item.Category = canonical
	return item, nil
}
