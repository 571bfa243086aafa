package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/waraseoni/vtech-workshop-api/models"

	"github.com/stretchr/testify/assert"
)

// Scenario from the shop floor: deliver a 200 job, receive 150 with a 10
// discount, outstanding lands on 60.
func TestDeliverThenPayScenario(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter()
	auth := authHeader(t, 1, "staff")

	client := createTestClient(t, db, "Client C")
	part := createTestPart(t, db, "Speaker coil", 50, 10, 2)
	jobID := createTestJob(t, r, auth, client.ID, 100)

	doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/jobs/%d/parts", jobID), auth, map[string]any{
		"part_id": part.ID, "qty": 2,
	})
	for _, st := range []string{"IN_PROGRESS", "REPAIRED", "DELIVERED"} {
		doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/jobs/%d/status", jobID), auth, map[string]any{"status": st})
	}

	var cl models.Client
	assert.NoError(t, db.First(&cl, client.ID).Error)
	assert.Equal(t, 200.0, cl.Balance)

	w := doJSON(t, r, http.MethodPost, "/api/payments/", auth, map[string]any{
		"client_id": client.ID,
		"amount":    150,
		"discount":  10,
		"mode":      "CASH",
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.NoError(t, db.First(&cl, client.ID).Error)
	assert.Equal(t, 60.0, cl.Balance) // 200 - (150 - 10)

	// the outstanding report recomputes the same figure from raw tables
	w = doJSON(t, r, http.MethodGet, "/api/reports/outstanding", auth, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	rows := decodeBody(t, w)["data"].([]interface{})
	assert.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, 200.0, row["delivered_total"])
	assert.Equal(t, 140.0, row["paid_net"])
	assert.Equal(t, 60.0, row["outstanding"])
	assert.Equal(t, 60.0, row["balance"])
}

func TestPaymentValidation(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter()
	auth := authHeader(t, 1, "staff")

	client := createTestClient(t, db, "Validation Client")

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{
			name: "missing amount",
			body: map[string]any{"client_id": client.ID, "mode": "CASH"},
			want: http.StatusBadRequest,
		},
		{
			name: "unknown mode",
			body: map[string]any{"client_id": client.ID, "amount": 100, "mode": "CHEQUE"},
			want: http.StatusBadRequest,
		},
		{
			name: "discount above amount",
			body: map[string]any{"client_id": client.ID, "amount": 100, "discount": 150, "mode": "UPI"},
			want: http.StatusBadRequest,
		},
		{
			name: "unknown client",
			body: map[string]any{"client_id": 9999, "amount": 100, "mode": "UPI"},
			want: http.StatusBadRequest,
		},
		{
			name: "valid UPI payment",
			body: map[string]any{"client_id": client.ID, "amount": 100, "mode": "UPI"},
			want: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/payments/", auth, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}

	// only the valid payment touched the ledger
	var entries int64
	db.Model(&models.LedgerEntry{}).Where("client_id = ?", client.ID).Count(&entries)
	assert.Equal(t, int64(1), entries)
}

func TestDeletePaymentReversesLedger(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter()
	staff := authHeader(t, 1, "staff")
	admin := authHeader(t, 2, "admin")

	client := createTestClient(t, db, "Refund Client")

	w := doJSON(t, r, http.MethodPost, "/api/payments/", staff, map[string]any{
		"client_id": client.ID, "amount": 500, "discount": 50, "mode": "BANK",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	pid := uint(decodeBody(t, w)["data"].(map[string]interface{})["id"].(float64))

	var cl models.Client
	assert.NoError(t, db.First(&cl, client.ID).Error)
	assert.Equal(t, -450.0, cl.Balance) // nothing owed, so the payment is an advance

	// staff cannot delete payments
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/payments/%d", pid), staff, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/payments/%d", pid), admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.NoError(t, db.First(&cl, client.ID).Error)
	assert.Equal(t, 0.0, cl.Balance)

	var reversal models.LedgerEntry
	assert.NoError(t, db.Where("client_id = ? AND type = ?", client.ID, models.LedgerPaymentReversed).First(&reversal).Error)
	assert.Equal(t, "DEBIT", reversal.Direction)
	assert.Equal(t, 450.0, reversal.Amount)
}

func TestClientStatementRunningBalance(t *testing.T) {
	setupTestDB(t)
	r := setupRouter()
	auth := authHeader(t, 1, "staff")

	// opening balance flows through the ledger too
	w := doJSON(t, r, http.MethodPost, "/api/clients/", auth, map[string]any{
		"name":            "Opening Client",
		"mobile":          "9876512345",
		"opening_balance": 300,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	clientID := uint(decodeBody(t, w)["data"].(map[string]interface{})["ID"].(float64))

	doJSON(t, r, http.MethodPost, "/api/payments/", auth, map[string]any{
		"client_id": clientID, "amount": 100, "mode": "CASH",
	})

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/clients/%d/statement", clientID), auth, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	entries := data["entries"].([]interface{})
	assert.Len(t, entries, 2)

	first := entries[0].(map[string]interface{})
	assert.Equal(t, string(models.LedgerOpening), first["type"])
	assert.Equal(t, 300.0, first["running_balance"])

	last := entries[1].(map[string]interface{})
	assert.Equal(t, 200.0, last["running_balance"])

	// the replay must land on the cached balance
	cl := data["client"].(map[string]interface{})
	assert.Equal(t, 200.0, cl["balance"])
}
