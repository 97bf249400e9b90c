package console

import (
	"cafe/pkg/domain"
	"cafe/pkg/filter"
)

func (c *Console) itemsAndCategories() error {
	return c.menuLoop("Menu Items & Categories", "Back", nil, []action{
		{"1", "View Menu", c.viewMenu},
		{"2", "View Special Items", c.viewSpecials},
		{"3", "Filter Items", c.filterItems},
		{"4", "Add Item", c.addItem},
		{"5", "Update Item", c.updateItem},
		{"6", "Remove Item", c.removeItem},
		{"7", "Toggle Special", c.toggleSpecial},
		{"8", "Add Category", c.addCategory},
		{"9", "Remove Category", c.removeCategory},
	})
}

func (c *Console) viewMenu() error {
	c.renderItems(c.catalog.Items())
	return nil
}

func (c *Console) viewSpecials() error {
	c.renderItems(c.catalog.SpecialItems())
	return nil
}

func (c *Console) filterItems() error {
	var crit filter.MenuCriteria
	cat, err := c.ask("Category (Enter to skip)")
	if err != nil {
		return err
	}
	if cat != "" {
		canonical, ok := c.catalog.ResolveCategory(cat)
		if !ok {
			c.printf("Unknown category %q.\n", cat)
			return nil
		}
		crit.Category = canonical
	}
	if crit.Available, err = c.askOptionalBool("Available only?"); err != nil {
		return err
	}
	if crit.Special, err = c.askOptionalBool("Special only?"); err != nil {
		return err
	}
	c.renderItems(c.catalog.Filter(crit))
	return nil
}

// askCategory keeps asking until an existing category is named.
func (c *Console) askCategory() (string, error) {
	for {
		v, err := c.askRequired("Category")
		if err != nil {
			return "", err
		}
		if canonical, ok := c.catalog.ResolveCategory(v); ok {
			return canonical, nil
		}
		c.printf("Invalid category. Choose from: %v\n", c.catalog.Categories())
	}
}

func (c *Console) addItem() error {
	if len(c.catalog.Categories()) == 0 {
		c.println("No categories yet. Add a category first.")
		return nil
	}
	c.printf("Categories: %v\n", c.catalog.Categories())
	category, err := c.askCategory()
	if err != nil {
		return err
	}
	name, err := c.askRequired("Item name")
	if err != nil {
		return err
	}
	price, err := c.askPrice("Price", false)
	if err != nil {
		return err
	}
	available, err := c.askYesNo("Available?")
	if err != nil {
		return err
	}
	special, err := c.askYesNo("Special?")
	if err != nil {
		return err
	}

	item, err := c.catalog.NewItem(category, name, *price, available, special)
	if err != nil {
		return err
	}
	if err := c.catalog.AddItem(item); err != nil {
		return err
	}
	c.printf("Item %s added with ID %s.\n", item.Name, item.ID)
	return nil
}

func (c *Console) updateItem() error {
	c.renderItems(c.catalog.Items())
	id, ok, err := c.askItemID("Item ID to update")
	if err != nil || !ok {
		return err
	}
	var upd domain.ItemUpdate
	name, err := c.ask("New name (Enter to keep)")
	if err != nil {
		return err
	}
	if name != "" {
		upd.Name = &name
	}
	if upd.Price, err = c.askPrice("New price (Enter to keep)", true); err != nil {
		return err
	}
	if upd.Available, err = c.askOptionalBool("Available?"); err != nil {
		return err
	}
	if upd.IsSpecial, err = c.askOptionalBool("Special?"); err != nil {
		return err
	}
	if upd.Empty() {
		c.println("Nothing to update.")
		return nil
	}
	if err := c.catalog.UpdateItem(id, upd); err != nil {
		return err
	}
	c.printf("Item %s updated.\n", id)
	return nil
}

func (c *Console) removeItem() error {
	id, ok, err := c.askItemID("Item ID to remove")
	if err != nil || !ok {
		return err
	}
	confirm, err := c.askYesNo("Are you sure you want to delete this item?")
	if err != nil || !confirm {
		return err
	}
	if err := c.catalog.RemoveItem(id); err != nil {
		return err
	}
	c.printf("Item %s removed.\n", id)
	return nil
}

func (c *Console) toggleSpecial() error {
	id, ok, err := c.askItemID("Item ID")
	if err != nil || !ok {
		return err
	}
	if err := c.catalog.ToggleSpecial(id); err != nil {
		return err
	}
	item, _ := c.catalog.Item(id)
	if item.IsSpecial {
		c.printf("%s is now a special.\n", item.Name)
	} else {
		c.printf("%s is no longer a special.\n", item.Name)
	}
	return nil
}

func (c *Console) addCategory() error {
	name, err := c.askRequired("New category name")
	if err != nil {
		return err
	}
	if existing, ok := c.catalog.ResolveCategory(name); ok {
		c.printf("Category already exists as %q.\n", existing)
		return nil
	}
	name = domain.TitleCase(name)
	if err := c.catalog.AddCategory(name); err != nil {
		return err
	}
	c.printf("Category %s added.\n", name)
	return nil
}

func (c *Console) removeCategory() error {
	c.printf("Categories: %v\n", c.catalog.Categories())
	name, err := c.askRequired("Category to remove")
	if err != nil {
		return err
	}
	canonical, ok := c.catalog.ResolveCategory(name)
	if !ok {
		c.printf("Category %q not found.\n", name)
		return nil
	}
	if err := c.catalog.RemoveCategory(canonical); err != nil {
		return err
	}
	c.printf("Category %s removed.\n", canonical)
	return nil
}
