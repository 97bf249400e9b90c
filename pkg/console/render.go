package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"cafe/pkg/analytics"
	"cafe/pkg/domain"
	"cafe/pkg/menu"
)

func (c *Console) table(header []string, rows [][]string) {
	t := tablewriter.NewWriter(c.out)
	t.SetHeader(header)
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	t.AppendBulk(rows)
	t.Render()
}

// panel renders label/value pairs as a two-column table.
func (c *Console) panel(title string, pairs [][2]string) {
	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, []string{p[0], p[1]})
	}
	c.println("")
	c.table([]string{title, ""}, rows)
}

func money(v float64) string {
	return fmt.Sprintf("₹%.2f", v)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func (c *Console) renderItems(items []domain.MenuItem) {
	if len(items) == 0 {
		c.println("No items to show.")
		return
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.ID, it.Name, it.Category, money(it.Price),
			yesNo(it.Available), yesNo(it.IsSpecial), strconv.Itoa(it.OrderCount),
		})
	}
	c.table([]string{"ID", "Name", "Category", "Price", "Available", "Special", "Ordered"}, rows)
}

// renderCustomerMenu lists available items per category, in category order.
func (c *Console) renderCustomerMenu() {
	shown := false
	for _, cat := range c.catalog.Categories() {
		items := c.catalog.ItemsInCategory(cat)
		if len(items) == 0 {
			continue
		}
		shown = true
		rows := make([][]string, 0, len(items))
		for _, it := range items {
			name := it.Name
			if it.IsSpecial {
				name += " *"
			}
			rows = append(rows, []string{name, money(it.Price)})
		}
		c.println("")
		c.table([]string{cat, "Price"}, rows)
	}
	if !shown {
		c.println("The menu is empty.")
		return
	}
	c.println("* today's special")
}

func (c *Console) renderOrders(orders []domain.Order) {
	if len(orders) == 0 {
		c.println("No orders match the selected filters.")
		return
	}
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []string{
			o.ID, o.Customer, strconv.Itoa(len(o.Items)), money(o.TotalAmount),
			string(o.Status), yesNo(o.Paid), o.Timestamp,
		})
	}
	c.table([]string{"Order ID", "Customer", "Lines", "Total", "Status", "Paid", "Placed At"}, rows)
}

func (c *Console) renderOrder(o domain.Order) {
	customer := o.Customer
	if customer == "" {
		customer = "-"
	}
	c.panel("Order "+o.ID, [][2]string{
		{"Customer", customer},
		{"Status", string(o.Status)},
		{"Paid", yesNo(o.Paid)},
		{"Placed At", o.Timestamp},
	})
	rows := make([][]string, 0, len(o.Items)+1)
	for _, l := range o.Items {
		rows = append(rows, []string{l.Name, strconv.Itoa(l.Qty), money(l.Price), money(l.Subtotal())})
	}
	t := tablewriter.NewWriter(c.out)
	t.SetHeader([]string{"Item", "Qty", "Price", "Subtotal"})
	t.SetAutoFormatHeaders(false)
	t.AppendBulk(rows)
	t.SetFooter([]string{"", "", "Total", money(o.TotalAmount)})
	t.Render()
}

func (c *Console) renderSummary(s analytics.Summary) {
	c.panel("Summary for "+s.Window, [][2]string{
		{"Total Orders", strconv.Itoa(s.TotalOrders)},
		{"Total Revenue", money(s.TotalRevenue)},
		{"Avg. Order Value", money(s.AverageOrderValue)},
		{"Best Category (orders)", bestCategories(s.BestCategoryByOrders, false)},
		{"Best Category (revenue)", bestCategories(s.BestCategoryByRevenue, true)},
	})
	c.renderItemCounts("Top Selling Items", s.TopItems)
	c.renderItemCounts("Lowest Selling Items", s.LeastItems)
	c.renderCategoryStats("Top Categories by Orders", s.TopCategoriesByOrders)
	c.renderCategoryStats("Top Categories by Revenue", s.TopCategoriesByRevenue)
}

func bestCategories(stats []analytics.CategoryStat, revenue bool) string {
	if len(stats) == 0 {
		return "None"
	}
	parts := make([]string, 0, len(stats))
	for _, s := range stats {
		if revenue {
			parts = append(parts, fmt.Sprintf("%s (%s)", s.Category, money(s.Revenue)))
		} else {
			parts = append(parts, fmt.Sprintf("%s (%d)", s.Category, s.Qty))
		}
	}
	if len(parts) > 1 {
		return strings.Join(parts, " & ") + " (tie)"
	}
	return parts[0]
}

func (c *Console) renderItemCounts(title string, items []analytics.ItemCount) {
	c.println("")
	if len(items) == 0 {
		c.println(title + ": no data")
		return
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{it.Name, strconv.Itoa(it.Qty)})
	}
	c.table([]string{title, "Qty"}, rows)
}

func (c *Console) renderCategoryStats(title string, stats []analytics.CategoryStat) {
	c.println("")
	if len(stats) == 0 {
		c.println(title + ": no data")
		return
	}
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{s.Category, strconv.Itoa(s.Qty), money(s.Revenue)})
	}
	c.table([]string{title, "Qty", "Revenue"}, rows)
}

func (c *Console) renderMenuInsights(m analytics.MenuInsights) {
	c.panel("Menu Summary", [][2]string{
		{"Total Items", strconv.Itoa(m.TotalItems)},
		{"Total Categories", strconv.Itoa(m.TotalCategories)},
		{"Available Items", strconv.Itoa(m.AvailableCount)},
		{"Special Items", strconv.Itoa(m.SpecialCount)},
	})
	c.renderCategoryCounts(m.ItemsByCategory)

	c.println("")
	if len(m.OrdersByCategory) == 0 {
		c.println("Orders per Category: no data")
		return
	}
	total := 0
	for _, s := range m.OrdersByCategory {
		total += s.Qty
	}
	rows := make([][]string, 0, len(m.OrdersByCategory))
	for _, s := range m.OrdersByCategory {
		share := 0.0
		if total > 0 {
			share = float64(s.Qty) / float64(total) * 100
		}
		rows = append(rows, []string{s.Category, strconv.Itoa(s.Qty), fmt.Sprintf("%.1f%%", share)})
	}
	c.table([]string{"Orders per Category", "Qty", "Share"}, rows)
}

func (c *Console) renderCategoryCounts(counts []menu.CategoryCount) {
	c.println("")
	if len(counts) == 0 {
		c.println("Items by Category: no data")
		return
	}
	rows := make([][]string, 0, len(counts))
	for _, cc := range counts {
		rows = append(rows, []string{domain.TitleCase(cc.Category), strconv.Itoa(cc.Count)})
	}
	c.table([]string{"Items by Category", "Items"}, rows)
}

func (c *Console) renderToday(t analytics.TodayInsights) {
	top := t.TopItem
	if top != analytics.Placeholder {
		top = fmt.Sprintf("%s (%d)", t.TopItem, t.TopItemQty)
	}
	c.panel("Today: "+t.Date, [][2]string{
		{"Total Orders Today", strconv.Itoa(t.TotalOrders)},
		{"Total Revenue Today", money(t.TotalRevenue)},
		{"Avg. Order Value", money(t.AverageOrderValue)},
		{"Top Item Today", top},
		{"Peak Hour Today", t.PeakHour},
	})
}

func (c *Console) renderMonthly(m analytics.MonthlyInsights) {
	c.panel("This Month: "+m.Month, [][2]string{
		{"Orders This Month", strconv.Itoa(m.TotalOrders)},
		{"Revenue This Month", money(m.TotalRevenue)},
		{"Avg. Order Value", money(m.AverageOrderValue)},
		{"Best Selling Item", m.TopItem},
		{"Low Performing Item 1", m.LeastItem},
		{"Low Performing Item 2", m.SecondLeastItem},
	})
}

func (c *Console) renderWeekly(w analytics.WeeklyInsights) {
	rows := make([][]string, 0, len(w.Days))
	for i := len(w.Days) - 1; i >= 0; i-- {
		d := w.Days[i]
		rows = append(rows, []string{d.Date, d.Weekday, strconv.Itoa(d.Orders), money(d.Revenue)})
	}
	c.println("")
	t := tablewriter.NewWriter(c.out)
	t.SetHeader([]string{"Date", "Day", "Orders", "Revenue"})
	t.SetAutoFormatHeaders(false)
	t.AppendBulk(rows)
	t.Append([]string{"TOTAL", "7 Days", strconv.Itoa(w.TotalOrders), money(w.TotalRevenue)})
	t.Append([]string{"DAILY AVG", "Per Day", fmt.Sprintf("%.1f", float64(w.TotalOrders)/7), money(w.DailyAverage)})
	t.Render()
}
