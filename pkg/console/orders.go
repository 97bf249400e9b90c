package console

import (
	"strings"

	"cafe/pkg/domain"
	"cafe/pkg/filter"
	"cafe/pkg/order"
)

func (c *Console) orderManagement() error {
	return c.menuLoop("Order Management", "Back", nil, []action{
		{"1", "Add Order", func() error { return c.placeOrder(true) }},
		{"2", "Update Status", c.updateStatus},
		{"3", "Mark Paid", c.markPaid},
		{"4", "View Order", c.viewOrder},
		{"5", "View All Orders", c.listOrders},
		{"6", "Remove Order", c.removeOrder},
		{"7", "Rebuild Item Order Counts", c.rebuildCounts},
	})
}

// placeOrder collects lines by item name or id. Customer orders are paid and
// completed straight away; admin orders stay placed and unpaid.
func (c *Console) placeOrder(admin bool) error {
	c.renderCustomerMenu()
	index := c.catalog.NameIndex()
	if len(index) == 0 {
		return nil
	}
	proceed, err := c.askYesNo("Place an order?")
	if err != nil || !proceed {
		return err
	}

	var req order.PlaceRequest
	if admin {
		if req.Customer, err = c.ask("Customer name"); err != nil {
			return err
		}
	}
	for {
		name, err := c.askRequired("What would you like to order?")
		if err != nil {
			return err
		}
		id, ok := index[strings.ToLower(name)]
		if !ok {
			if item, found := c.catalog.Item(name); found && item.Available {
				id, ok = item.ID, true
			}
		}
		if !ok {
			c.println("Invalid item name. Try again.")
			continue
		}
		qty, err := c.askQty("How many")
		if err != nil {
			return err
		}
		req.Lines = append(req.Lines, order.LineRequest{ItemID: id, Qty: qty})

		more, err := c.askYesNo("Would you like to add anything else?")
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}

	o, err := c.ledger.PlaceOrder(req, c.now())
	if o.ID == "" {
		return err
	}
	if err != nil {
		c.report(err)
	}
	if admin {
		c.printf("Order %s added. Update its status and payment from Order Management.\n", o.ID)
	} else {
		if err := c.ledger.MarkPaid(o.ID); err != nil {
			c.report(err)
		}
		c.println("Payment successful! Preparing your order...")
		if err := c.ledger.UpdateStatus(o.ID, domain.StatusCompleted); err != nil {
			c.report(err)
		}
		c.println("Your order is now completed. Enjoy your meal!")
		o, _ = c.ledger.Order(o.ID)
	}
	c.renderOrder(o)
	return nil
}

func (c *Console) updateStatus() error {
	id, ok, err := c.askOrderID("Order ID")
	if err != nil || !ok {
		return err
	}
	o, _ := c.ledger.Order(id)
	c.printf("Current status: %s\n", o.Status)
	status, err := c.askStatus("New status", false)
	if err != nil {
		return err
	}
	if err := c.ledger.UpdateStatus(id, status); err != nil {
		return err
	}
	c.println("Order status changed successfully!")
	o, _ = c.ledger.Order(id)
	c.renderOrder(o)
	return nil
}

func (c *Console) markPaid() error {
	id, ok, err := c.askOrderID("Order ID")
	if err != nil || !ok {
		return err
	}
	if o, _ := c.ledger.Order(id); o.Paid {
		c.println("This order is already marked as paid.")
		return nil
	}
	confirm, err := c.askYesNo("Mark this order as paid?")
	if err != nil || !confirm {
		return err
	}
	if err := c.ledger.MarkPaid(id); err != nil {
		return err
	}
	c.println("Payment recorded.")
	return nil
}

func (c *Console) viewOrder() error {
	id, ok, err := c.askOrderID("Order ID")
	if err != nil || !ok {
		return err
	}
	o, _ := c.ledger.Order(id)
	c.renderOrder(o)
	return nil
}

func (c *Console) listOrders() error {
	apply, err := c.askYesNo("Would you like to apply filters?")
	if err != nil {
		return err
	}
	var crit filter.OrderCriteria
	if apply {
		if crit.Status, err = c.askStatus("Status, Enter to skip", true); err != nil {
			return err
		}
		if crit.Paid, err = c.askOptionalBool("Paid?"); err != nil {
			return err
		}
		if crit.Date, err = c.askDate("Exact date, Enter to skip", true); err != nil {
			return err
		}
		if crit.Date == "" {
			if crit.From, err = c.askDate("From date, Enter to skip", true); err != nil {
				return err
			}
			if crit.To, err = c.askDate("To date, Enter to skip", true); err != nil {
				return err
			}
		}
		if crit.Date == "" && crit.From == "" && crit.To == "" {
			if crit.Month, err = c.askMonth("Month, Enter to skip", true); err != nil {
				return err
			}
		}
	}
	c.renderOrders(c.ledger.Filter(crit))
	return nil
}

func (c *Console) removeOrder() error {
	id, ok, err := c.askOrderID("Order ID")
	if err != nil || !ok {
		return err
	}
	confirm, err := c.askYesNo("Are you sure you want to delete this order?")
	if err != nil {
		return err
	}
	if !confirm {
		c.println("Deletion cancelled.")
		return nil
	}
	if err := c.ledger.RemoveOrder(id); err != nil {
		return err
	}
	c.println("Order removed successfully.")
	return nil
}

func (c *Console) rebuildCounts() error {
	confirm, err := c.askYesNo("Recompute every item's order count from the order history?")
	if err != nil || !confirm {
		return err
	}
	if err := c.ledger.RebuildOrderCounts(); err != nil {
		return err
	}
	c.println("Order counts rebuilt.")
	return nil
}
