package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/waraseoni/vtech-workshop-api/config"
	"github.com/waraseoni/vtech-workshop-api/models"
	"github.com/waraseoni/vtech-workshop-api/routes"
	"github.com/waraseoni/vtech-workshop-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Part{},
		&models.StockMovement{},
		&models.Job{},
		&models.JobPart{},
		&models.DirectSale{},
		&models.DirectSaleItem{},
		&models.Payment{},
		&models.LedgerEntry{},
		&models.Employee{},
		&models.Attendance{},
		&models.Loan{},
		&models.LoanPayment{},
		&models.Expense{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	return db
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func authHeader(t *testing.T, userID uint, role string) string {
	token, err := utils.GenerateToken(userID, "Test User", role, time.Hour)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	return "Bearer " + token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, auth string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
	return resp
}

// common fixtures

func createTestClient(t *testing.T, db *gorm.DB, name string) models.Client {
	client := models.Client{Name: name, Mobile: "9876500000"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return client
}

func createTestPart(t *testing.T, db *gorm.DB, name string, price float64, stock, minStock int) models.Part {
	part := models.Part{Name: name, SalePrice: price, PurchasePrice: price * 0.8, Stock: stock, MinStock: minStock}
	if err := db.Create(&part).Error; err != nil {
		t.Fatalf("Failed to create part: %v", err)
	}
	return part
}

func createTestJob(t *testing.T, r *gin.Engine, auth string, clientID uint, labour float64) uint {
	w := doJSON(t, r, http.MethodPost, "/api/jobs/", auth, map[string]any{
		"client_id":     clientID,
		"item_name":     "LED TV 32 inch",
		"problem":       "no display",
		"labour_charge": labour,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Failed to create job: %d %s", w.Code, w.Body.String())
	}
	data := decodeBody(t, w)["data"].(map[string]interface{})
	return uint(data["id"].(float64))
}
