package controllers

import (
	"net/http"
	"os"
	"strconv"

	"github.com/waraseoni/vtech-workshop-api/config"
	"github.com/waraseoni/vtech-workshop-api/models"
	"github.com/waraseoni/vtech-workshop-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const defaultPartsCostRatio = 0.90

// partsCostRatio is the assumed cost share of a part's sale price. It is a
// business heuristic, not a measured figure, so it stays configurable.
func partsCostRatio() float64 {
	if s := os.Getenv("PARTS_COST_RATIO"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil && v >= 0 && v <= 1 {
			return v
		}
	}
	return defaultPartsCostRatio
}

type FinancialSummary struct {
	From string `json:"from"`
	To   string `json:"to"`

	TotalSales  float64 `json:"total_sales"`
	PartsCost   float64 `json:"parts_cost"`
	GrossProfit float64 `json:"gross_profit"`

	Discounts float64 `json:"discounts"`
	Salary    float64 `json:"salary"`
	LoanPaid  float64 `json:"loan_paid"`
	Expenses  float64 `json:"expenses"`

	TotalOutflow float64 `json:"total_outflow"`
	NetProfit    float64 `json:"net_profit"`

	// A failed term stays zero but is named here instead of silently
	// passing as a real zero.
	Partial     bool     `json:"partial"`
	FailedTerms []string `json:"failed_terms,omitempty"`
}

// FinancialReport reduces jobs, sales, payments, attendance, loans and
// expenses over an inclusive calendar-date range into one summary.
func FinancialReport(c *gin.Context) {
	from := getDatePtr(c, "from")
	to := getDatePtr(c, "to")
	if from == nil || to == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "from and to are required (YYYY-MM-DD)"})
		return
	}
	start, before := dayRange(*from, *to)

	db := config.DB
	sum := FinancialSummary{
		From: from.Format("2006-01-02"),
		To:   to.Format("2006-01-02"),
	}
	fail := func(term string) {
		sum.Partial = true
		sum.FailedTerms = append(sum.FailedTerms, term)
	}

	var deliveredSales, directSales float64
	if err := db.Model(&models.Job{}).
		Where("status = ? AND delivered_at >= ? AND delivered_at < ?", models.JobDelivered, start, before).
		Select("COALESCE(SUM(final_bill),0)").
		Scan(&deliveredSales).Error; err != nil {
		fail("delivered_jobs")
	}
	if err := db.Model(&models.DirectSale{}).
		Where("sale_date >= ? AND sale_date < ?", start, before).
		Select("COALESCE(SUM(grand_total),0)").
		Scan(&directSales).Error; err != nil {
		fail("direct_sales")
	}
	sum.TotalSales = deliveredSales + directSales

	var jobPartsBase, salePartsBase float64
	if err := db.Table("job_parts jp").
		Joins("INNER JOIN jobs j ON j.id = jp.job_id").
		Where("j.status = ? AND j.delivered_at >= ? AND j.delivered_at < ?", models.JobDelivered, start, before).
		Select("COALESCE(SUM(jp.line_total),0)").
		Scan(&jobPartsBase).Error; err != nil {
		fail("job_parts_cost")
	}
	if err := db.Table("direct_sale_items si").
		Joins("INNER JOIN direct_sales s ON s.id = si.direct_sale_id").
		Where("s.sale_date >= ? AND s.sale_date < ?", start, before).
		Select("COALESCE(SUM(si.line_total),0)").
		Scan(&salePartsBase).Error; err != nil {
		fail("sale_parts_cost")
	}
	sum.PartsCost = partsCostRatio() * (jobPartsBase + salePartsBase)
	sum.GrossProfit = sum.TotalSales - sum.PartsCost

	if err := db.Model(&models.Payment{}).
		Where("paid_at >= ? AND paid_at < ?", start, before).
		Select("COALESCE(SUM(discount),0)").
		Scan(&sum.Discounts).Error; err != nil {
		fail("discounts")
	}

	if err := db.Table("attendances a").
		Joins("INNER JOIN employees e ON e.id = a.employee_id").
		Where("a.date >= ? AND a.date < ?", start, before).
		Select(`COALESCE(SUM(e.daily_salary * CASE a.status
			WHEN 'FULL' THEN 1.0
			WHEN 'HALF' THEN 0.5
			ELSE 0 END),0)`).
		Scan(&sum.Salary).Error; err != nil {
		fail("salary")
	}

	if err := db.Model(&models.LoanPayment{}).
		Where("paid_at >= ? AND paid_at < ?", start, before).
		Select("COALESCE(SUM(amount_paid),0)").
		Scan(&sum.LoanPaid).Error; err != nil {
		fail("loan_paid")
	}

	if err := db.Model(&models.Expense{}).
		Where("spent_at >= ? AND spent_at < ?", start, before).
		Select("COALESCE(SUM(amount),0)").
		Scan(&sum.Expenses).Error; err != nil {
		fail("expenses")
	}

	sum.TotalOutflow = sum.Discounts + sum.Salary + sum.LoanPaid + sum.Expenses
	sum.NetProfit = sum.GrossProfit - sum.TotalOutflow

	utils.Success(c, "Financial report computed", sum)
}

type StockReportRow struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Stock      int     `json:"stock"`
	MinStock   int     `json:"min_stock"`
	Low        bool    `json:"low"`
	StockValue float64 `json:"stock_value"` // stock * purchase price
}

func StockReport(c *gin.Context) {
	var parts []models.Part
	if err := config.DB.Order("name ASC").Find(&parts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch stock report", "error": err.Error()})
		return
	}

	rows := make([]StockReportRow, 0, len(parts))
	var totalValue float64
	lowCount := 0
	for _, p := range parts {
		row := StockReportRow{
			ID:         p.ID,
			Name:       p.Name,
			Category:   p.Category,
			Stock:      p.Stock,
			MinStock:   p.MinStock,
			Low:        p.LowStock(),
			StockValue: float64(p.Stock) * p.PurchasePrice,
		}
		if row.Low {
			lowCount++
		}
		totalValue += row.StockValue
		rows = append(rows, row)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock report computed",
		"data": gin.H{
			"rows":        rows,
			"total_value": totalValue,
			"low_count":   lowCount,
		},
	})
}

type OutstandingRow struct {
	ClientID       uint    `json:"client_id"`
	Name           string  `json:"name"`
	Mobile         string  `json:"mobile"`
	DeliveredTotal float64 `json:"delivered_total"`
	SalesTotal     float64 `json:"sales_total"`
	PaidNet        float64 `json:"paid_net"` // sum(amount - discount)
	Outstanding    float64 `json:"outstanding"`
	Balance        float64 `json:"balance"` // cached ledger balance, for reconciliation
}

// OutstandingReport recomputes each client's position from the raw tables:
// delivered jobs + direct sales - net payments. The cached balance rides
// along so a drifted ledger is visible instead of hidden.
func OutstandingReport(c *gin.Context) {
	var clients []models.Client
	if err := config.DB.Order("name ASC").Find(&clients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch clients", "error": err.Error()})
		return
	}

	sumFor := func(q *gorm.DB, expr string) (float64, error) {
		var v float64
		err := q.Select(expr).Scan(&v).Error
		return v, err
	}

	rows := make([]OutstandingRow, 0, len(clients))
	for _, cl := range clients {
		delivered, err := sumFor(config.DB.Model(&models.Job{}).
			Where("client_id = ? AND status = ?", cl.ID, models.JobDelivered),
			"COALESCE(SUM(final_bill),0)")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to compute report", "error": err.Error()})
			return
		}
		sales, err := sumFor(config.DB.Model(&models.DirectSale{}).
			Where("client_id = ?", cl.ID),
			"COALESCE(SUM(grand_total),0)")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to compute report", "error": err.Error()})
			return
		}
		paid, err := sumFor(config.DB.Model(&models.Payment{}).
			Where("client_id = ?", cl.ID),
			"COALESCE(SUM(amount - discount),0)")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to compute report", "error": err.Error()})
			return
		}

		rows = append(rows, OutstandingRow{
			ClientID:       cl.ID,
			Name:           cl.Name,
			Mobile:         cl.Mobile,
			DeliveredTotal: delivered,
			SalesTotal:     sales,
			PaidNet:        paid,
			Outstanding:    cl.OpeningBalance + delivered + sales - paid,
			Balance:        cl.Balance,
		})
	}
	utils.Success(c, "Outstanding report computed", rows)
}
