package domain

import "github.com/shopspring/decimal"

// PlotStatus tracks a plot through the reservation/sale lifecycle.
type PlotStatus string

const (
	// PlotActive means the plot is available for sale.
	PlotActive PlotStatus = "active"
	// PlotReserved means a token holds the plot pending a booking.
	PlotReserved PlotStatus = "reserved"
	// PlotSold means an active booking holds the plot.
	PlotSold PlotStatus = "sold"
)

// Plot is a sellable unit of land within a project. CostPrice feeds the
// Cost_of_Good_Sold / Land_Inventory posting legs.
type Plot struct {
	PlotID    string          `json:"plotID"`
	ProjectID string          `json:"projectID"`
	Number    string          `json:"number"`
	Sector    string          `json:"sector"`
	AreaSqft  decimal.Decimal `json:"areaSqft"`
	CostPrice decimal.Decimal `json:"costPrice"`
	SalePrice decimal.Decimal `json:"salePrice"`
	Status    PlotStatus      `json:"status"`
	AuditFields
}

// SumPlotCost totals the cost price of the given plots.
func SumPlotCost(plots []Plot) decimal.Decimal {
	total := decimal.Zero
	for _, p := range plots {
		total = total.Add(p.CostPrice)
	}
	return total
}
