package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/waraseoni/vtech-workshop-api/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateClientValidation(t *testing.T) {
	setupTestDB(t)
	r := setupRouter()
	auth := authHeader(t, 1, "staff")

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{
			name: "missing mobile",
			body: map[string]any{"name": "No Phone"},
			want: http.StatusBadRequest,
		},
		{
			name: "missing name",
			body: map[string]any{"mobile": "9876512345"},
			want: http.StatusBadRequest,
		},
		{
			name: "negative opening balance",
			body: map[string]any{"name": "Bad Balance", "mobile": "9876512345", "opening_balance": -10},
			want: http.StatusBadRequest,
		},
		{
			name: "valid client",
			body: map[string]any{"name": "Good Client", "mobile": "9876512345", "gstin": "22AAAAA0000A1Z5"},
			want: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/clients/", auth, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestDeleteClientBlockedByReferences(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter()
	admin := authHeader(t, 1, "admin")

	client := createTestClient(t, db, "Busy Client")
	createTestJob(t, r, admin, client.ID, 50)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/clients/%d", client.ID), admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cannot be deleted")

	var cnt int64
	db.Model(&models.Client{}).Count(&cnt)
	assert.Equal(t, int64(1), cnt)

	// an unreferenced client goes away cleanly
	free := createTestClient(t, db, "Free Client")
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/clients/%d", free.ID), admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestClientListShowsDeliveredTotal(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter()
	auth := authHeader(t, 1, "staff")

	client := createTestClient(t, db, "Totals Client")
	jobID := createTestJob(t, r, auth, client.ID, 350)
	for _, st := range []string{"IN_PROGRESS", "REPAIRED", "DELIVERED"} {
		doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/jobs/%d/status", jobID), auth, map[string]any{"status": st})
	}
	// a pending job must not count
	createTestJob(t, r, auth, client.ID, 9999)

	w := doJSON(t, r, http.MethodGet, "/api/clients/", auth, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	rows := decodeBody(t, w)["data"].([]interface{})
	assert.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, 350.0, row["delivered_total"])
	assert.Equal(t, 350.0, row["balance"])
}
