package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/waraseoni/vtech-workshop-api/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateSaleMovesStockAndLedger(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter()
	auth := authHeader(t, 1, "staff")

	client := createTestClient(t, db, "Walk-in Client")
	cable := createTestPart(t, db, "HDMI cable", 150, 10, 2)
	remote := createTestPart(t, db, "Universal remote", 250, 5, 1)

	w := doJSON(t, r, http.MethodPost, "/api/sales/", auth, map[string]any{
		"client_id": client.ID,
		"discount":  50,
		"items": []map[string]any{
			{"part_id": cable.ID, "qty": 2},
			{"part_id": remote.ID, "qty": 1},
		},
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, 550.0, data["subtotal"])
	assert.Equal(t, 500.0, data["grand_total"])

	var p models.Part
	assert.NoError(t, db.First(&p, cable.ID).Error)
	assert.Equal(t, 8, p.Stock)
	assert.NoError(t, db.First(&p, remote.ID).Error)
	assert.Equal(t, 4, p.Stock)

	var cl models.Client
	assert.NoError(t, db.First(&cl, client.ID).Error)
	assert.Equal(t, 500.0, cl.Balance)

	// every stock move left an audit row
	var moves int64
	db.Model(&models.StockMovement{}).Where("ref_type = ?", "direct_sale").Count(&moves)
	assert.Equal(t, int64(2), moves)
}

func TestCreateSaleInsufficientStockRollsBack(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter()
	auth := authHeader(t, 1, "staff")

	client := createTestClient(t, db, "Greedy Client")
	cable := createTestPart(t, db, "HDMI cable", 150, 10, 2)
	fuse := createTestPart(t, db, "Fuse 5A", 20, 1, 5)

	// second line overdraws, the whole sale must vanish including line one's decrement
	w := doJSON(t, r, http.MethodPost, "/api/sales/", auth, map[string]any{
		"client_id": client.ID,
		"items": []map[string]any{
			{"part_id": cable.ID, "qty": 3},
			{"part_id": fuse.ID, "qty": 2},
		},
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient stock")

	var p models.Part
	assert.NoError(t, db.First(&p, cable.ID).Error)
	assert.Equal(t, 10, p.Stock)
	assert.NoError(t, db.First(&p, fuse.ID).Error)
	assert.Equal(t, 1, p.Stock)

	var sales int64
	db.Model(&models.DirectSale{}).Count(&sales)
	assert.Equal(t, int64(0), sales)

	var cl models.Client
	assert.NoError(t, db.First(&cl, client.ID).Error)
	assert.Equal(t, 0.0, cl.Balance)
}

func TestDeleteSaleReversesEverything(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter()
	staff := authHeader(t, 1, "staff")
	admin := authHeader(t, 2, "admin")

	client := createTestClient(t, db, "Reversal Client")
	part := createTestPart(t, db, "Antenna", 100, 6, 1)

	w := doJSON(t, r, http.MethodPost, "/api/sales/", staff, map[string]any{
		"client_id": client.ID,
		"items":     []map[string]any{{"part_id": part.ID, "qty": 4}},
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	saleID := uint(decodeBody(t, w)["data"].(map[string]interface{})["id"].(float64))

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/sales/%d", saleID), staff, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/sales/%d", saleID), admin, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var p models.Part
	assert.NoError(t, db.First(&p, part.ID).Error)
	assert.Equal(t, 6, p.Stock)

	var cl models.Client
	assert.NoError(t, db.First(&cl, client.ID).Error)
	assert.Equal(t, 0.0, cl.Balance)

	var items int64
	db.Model(&models.DirectSaleItem{}).Count(&items)
	assert.Equal(t, int64(0), items)
}
