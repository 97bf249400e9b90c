package console

func (c *Console) analyticsMenu() error {
	return c.menuLoop("Sales Analytics", "Back", nil, []action{
		{"1", "Daily Summary", c.dailySummary},
		{"2", "Monthly Summary", c.monthlySummary},
		{"3", "Menu Insights", c.menuInsights},
	})
}

func (c *Console) dailySummary() error {
	date, err := c.askDate("Date", false)
	if err != nil {
		return err
	}
	s, err := c.analytics.DailySummary(date)
	if err != nil {
		return err
	}
	c.renderSummary(s)
	return nil
}

func (c *Console) monthlySummary() error {
	month, err := c.askMonth("Month", false)
	if err != nil {
		return err
	}
	s, err := c.analytics.MonthlySummary(month)
	if err != nil {
		return err
	}
	c.renderSummary(s)
	return nil
}

func (c *Console) menuInsights() error {
	c.renderMenuInsights(c.analytics.MenuInsights())
	return nil
}

func (c *Console) dashboard() error {
	c.renderToday(c.analytics.TodayInsights())
	m, err := c.analytics.MonthlyInsights("")
	if err != nil {
		return err
	}
	c.renderMonthly(m)
	c.renderMenuInsights(c.analytics.MenuInsights())
	c.renderWeekly(c.analytics.WeeklyInsights())
	return nil
}
