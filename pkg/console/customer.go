package console

func (c *Console) customerMenu() error {
	return c.menuLoop("Customer Menu", "Back to Main Menu", nil, []action{
		{"1", "View Menu", func() error {
			c.renderCustomerMenu()
			return nil
		}},
		{"2", "Place Order", func() error { return c.placeOrder(false) }},
		{"3", "View My Order", c.viewOrder},
	})
}
