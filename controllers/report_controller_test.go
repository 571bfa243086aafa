package controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/waraseoni/vtech-workshop-api/models"

	"github.com/stretchr/testify/assert"
)

func TestFinancialReportReconciliation(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter()
	staff := authHeader(t, 1, "staff")
	admin := authHeader(t, 2, "admin")

	client := createTestClient(t, db, "Report Client")
	part := createTestPart(t, db, "Motherboard", 1000, 10, 2)

	// delivered job: labour 500 + one part 1000 => 1500
	jobID := createTestJob(t, r, staff, client.ID, 500)
	doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/jobs/%d/parts", jobID), staff, map[string]any{
		"part_id": part.ID, "qty": 1,
	})
	for _, st := range []string{"IN_PROGRESS", "REPAIRED", "DELIVERED"} {
		doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/jobs/%d/status", jobID), staff, map[string]any{"status": st})
	}

	// direct sale: 2 x 1000 = 2000
	w := doJSON(t, r, http.MethodPost, "/api/sales/", staff, map[string]any{
		"client_id": client.ID,
		"items":     []map[string]any{{"part_id": part.ID, "qty": 2}},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// payment discount 25
	doJSON(t, r, http.MethodPost, "/api/payments/", staff, map[string]any{
		"client_id": client.ID, "amount": 1000, "discount": 25, "mode": "CASH",
	})

	// salary: one full day at 400, one half day at 300
	emp1 := models.Employee{Name: "Tech A", DailySalary: 400, IsActive: true}
	emp2 := models.Employee{Name: "Tech B", DailySalary: 300, IsActive: true}
	assert.NoError(t, db.Create(&emp1).Error)
	assert.NoError(t, db.Create(&emp2).Error)
	today := time.Now().UTC().Format("2006-01-02")
	doJSON(t, r, http.MethodPost, "/api/attendance/", staff, map[string]any{
		"employee_id": emp1.ID, "date": today, "status": "FULL",
	})
	doJSON(t, r, http.MethodPost, "/api/attendance/", staff, map[string]any{
		"employee_id": emp2.ID, "date": today, "status": "HALF",
	})

	// loan repayment 200, expense 150
	loan := models.Loan{Lender: "Bank", Principal: 50000}
	assert.NoError(t, db.Create(&loan).Error)
	doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/loans/%d/payments", loan.ID), admin, map[string]any{
		"amount_paid": 200,
	})
	doJSON(t, r, http.MethodPost, "/api/expenses/", staff, map[string]any{
		"title": "Electricity", "amount": 150,
	})

	// staff cannot see the financial report
	w = doJSON(t, r, http.MethodGet, "/api/reports/financial?from="+today+"&to="+today, staff, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/reports/financial?from="+today+"&to="+today, admin, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	sum := decodeBody(t, w)["data"].(map[string]interface{})

	assert.Equal(t, 3500.0, sum["total_sales"]) // 1500 job + 2000 sale
	assert.InDelta(t, 2700.0, sum["parts_cost"], 0.001) // 0.9 * (1000 + 2000)
	assert.InDelta(t, 800.0, sum["gross_profit"], 0.001)

	assert.Equal(t, 25.0, sum["discounts"])
	assert.Equal(t, 550.0, sum["salary"]) // 400 + 150
	assert.Equal(t, 200.0, sum["loan_paid"])
	assert.Equal(t, 150.0, sum["expenses"])
	assert.Equal(t, 925.0, sum["total_outflow"])

	// the identity must hold exactly
	assert.InDelta(t,
		sum["gross_profit"].(float64)-sum["total_outflow"].(float64),
		sum["net_profit"].(float64), 1e-9)
	assert.Equal(t, false, sum["partial"])
}

func TestFinancialReportEmptyRange(t *testing.T) {
	setupTestDB(t)
	r := setupRouter()
	admin := authHeader(t, 1, "admin")

	w := doJSON(t, r, http.MethodGet, "/api/reports/financial?from=2020-01-01&to=2020-01-31", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	sum := decodeBody(t, w)["data"].(map[string]interface{})

	for _, term := range []string{
		"total_sales", "parts_cost", "gross_profit",
		"discounts", "salary", "loan_paid", "expenses",
		"total_outflow", "net_profit",
	} {
		assert.Equal(t, 0.0, sum[term], term)
	}
	assert.Equal(t, false, sum["partial"])
}

func TestFinancialReportDateInclusivity(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter()
	admin := authHeader(t, 1, "admin")

	client := createTestClient(t, db, "Boundary Client")
	part := createTestPart(t, db, "Belt", 100, 50, 2)

	mkSale := func(day string) {
		d, err := time.Parse("2006-01-02", day)
		assert.NoError(t, err)
		w := doJSON(t, r, http.MethodPost, "/api/sales/", admin, map[string]any{
			"client_id": client.ID,
			"sale_date": d.Format(time.RFC3339),
			"items":     []map[string]any{{"part_id": part.ID, "qty": 1}},
		})
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	mkSale("2026-03-01") // exactly fromDate
	mkSale("2026-03-15") // inside
	mkSale("2026-03-31") // exactly toDate
	mkSale("2026-04-01") // outside

	w := doJSON(t, r, http.MethodGet, "/api/reports/financial?from=2026-03-01&to=2026-03-31", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	sum := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, 300.0, sum["total_sales"]) // boundary days included, April excluded

	w = doJSON(t, r, http.MethodGet, "/api/reports/financial?from=2026-03-31&to=2026-03-31", admin, nil)
	sum = decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, 100.0, sum["total_sales"]) // single-day range

	// missing params are a client error, not a silent full scan
	w = doJSON(t, r, http.MethodGet, "/api/reports/financial", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPartsCostRatioConfigurable(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter()
	admin := authHeader(t, 1, "admin")

	client := createTestClient(t, db, "Ratio Client")
	part := createTestPart(t, db, "Chip", 1000, 10, 1)

	w := doJSON(t, r, http.MethodPost, "/api/sales/", admin, map[string]any{
		"client_id": client.ID,
		"items":     []map[string]any{{"part_id": part.ID, "qty": 1}},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	today := time.Now().UTC().Format("2006-01-02")

	t.Setenv("PARTS_COST_RATIO", "0.5")
	w = doJSON(t, r, http.MethodGet, "/api/reports/financial?from="+today+"&to="+today, admin, nil)
	sum := decodeBody(t, w)["data"].(map[string]interface{})
	assert.InDelta(t, 500.0, sum["parts_cost"], 0.001)

	// junk falls back to the default 0.90
	t.Setenv("PARTS_COST_RATIO", "nonsense")
	w = doJSON(t, r, http.MethodGet, "/api/reports/financial?from="+today+"&to="+today, admin, nil)
	sum = decodeBody(t, w)["data"].(map[string]interface{})
	assert.InDelta(t, 900.0, sum["parts_cost"], 0.001)
}

func TestStockReport(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter()
	auth := authHeader(t, 1, "staff")

	createTestPart(t, db, "Plenty", 100, 50, 5)
	createTestPart(t, db, "Scarce", 100, 3, 5) // at/below threshold

	w := doJSON(t, r, http.MethodGet, "/api/reports/stock", auth, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, 1.0, data["low_count"])

	rows := data["rows"].([]interface{})
	assert.Len(t, rows, 2)
	for _, raw := range rows {
		row := raw.(map[string]interface{})
		if row["name"] == "Scarce" {
			assert.Equal(t, true, row["low"])
		} else {
			assert.Equal(t, false, row["low"])
		}
	}
}
