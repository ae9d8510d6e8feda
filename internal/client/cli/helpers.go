package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	pkgapi "github.com/iudanet/coffeecloud/pkg/api"
)

// parseID разбирает положительный идентификатор из аргумента команды
func parseID(s, field string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", field)
	}
	return id, nil
}

// parseOrderLine разбирает "menu_id" или "menu_id:counts"
func parseOrderLine(s string) (pkgapi.OrderLine, error) {
	menuPart, countPart, hasCount := strings.Cut(s, ":")

	menuID, err := parseID(menuPart, "menu_id")
	if err != nil {
		return pkgapi.OrderLine{}, fmt.Errorf("item %q: %w", s, err)
	}

	counts := 1
	if hasCount {
		counts, err = strconv.Atoi(strings.TrimSpace(countPart))
		if err != nil || counts < 1 {
			return pkgapi.OrderLine{}, fmt.Errorf("item %q: counts must be a positive integer", s)
		}
	}

	return pkgapi.OrderLine{MenuID: menuID, Counts: counts}, nil
}

func formatLines(lines []pkgapi.OrderLine) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, fmt.Sprintf("%d:%d", l.MenuID, l.Counts))
	}
	return strings.Join(parts, ",")
}

func (c *Cli) newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
}

func (c *Cli) printMenus(menus []pkgapi.MenuResponse) error {
	if len(menus) == 0 {
		c.io.Println("No menus found.")
		return nil
	}

	tw := c.newTable()
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tTYPE\tTASTE\tWATER\tFOAM\tGRIND\tOPTION")
	for _, m := range menus {
		option := m.CoffeeOption
		if option == "" {
			option = "-"
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			m.MenuID, m.Name, m.MenuType, m.TasteLevel, m.WaterLevel, m.FoamLevel, m.GrindSize, option)
	}
	return tw.Flush()
}

func (c *Cli) printOrders(orders []pkgapi.OrderResponse) error {
	if len(orders) == 0 {
		c.io.Println("No orders found.")
		return nil
	}

	tw := c.newTable()
	_, _ = fmt.Fprintln(tw, "ID\tCREATED\tSTATUS\tITEMS\tMESSAGE")
	for _, o := range orders {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			o.OrderID, o.CreatedAt.Local().Format("2006-01-02 15:04"), orderStatus(o), formatLines(o.OrderContents), o.Message)
	}
	return tw.Flush()
}

func orderStatus(o pkgapi.OrderResponse) string {
	if o.IsObsolete {
		return "obsolete"
	}
	return "active"
}

func (c *Cli) printProfile(p *pkgapi.ProfileResponse) {
	birthday := p.Birthday
	if birthday == "" {
		birthday = "-"
	}
	c.io.Printf("ID:       %d\n", p.ID)
	c.io.Printf("Username: %s\n", p.Username)
	c.io.Printf("Email:    %s\n", p.Email)
	c.io.Printf("Phone:    %s\n", p.Phone)
	c.io.Printf("Gender:   %s\n", p.Gender)
	c.io.Printf("Birthday: %s\n", birthday)
}
