package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/waraseoni/vtech-workshop-api/models"

	"github.com/stretchr/testify/assert"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter()

	// registration is closed unless explicitly opened
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": "owner", "full_name": "Shop Owner", "password": "secret123",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	t.Setenv("ALLOW_REGISTRATION", "true")

	// first account becomes admin
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": "owner", "full_name": "Shop Owner", "password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "admin", decodeBody(t, w)["role"])

	// later accounts start as staff
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": "helper", "full_name": "Shop Helper", "password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "staff", decodeBody(t, w)["role"])

	// duplicate usernames are refused
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": "owner", "full_name": "Imposter", "password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// wrong password
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "owner", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "owner", "password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.NotEmpty(t, resp["token"])
	assert.Equal(t, "admin", resp["role"])

	// the issued token works against a protected route
	w = doJSON(t, r, http.MethodGet, "/api/profile", "Bearer "+resp["token"].(string), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var owner models.User
	assert.NoError(t, db.Where("username = ?", "owner").First(&owner).Error)
	assert.NotNil(t, owner.LastLoginAt)
}

func TestAdminUserManagement(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter()
	staff := authHeader(t, 1, "staff")
	admin := authHeader(t, 2, "admin")

	// staff cannot touch user management
	w := doJSON(t, r, http.MethodGet, "/api/users/", staff, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/users/", admin, map[string]any{
		"username": "tech1", "full_name": "Technician One", "password": "secret123", "role": "staff",
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	userID := uint(decodeBody(t, w)["data"].(map[string]interface{})["id"].(float64))

	// role escalation requires a valid role value
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/users/%d", userID), admin, map[string]any{
		"role": "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/users/%d", userID), admin, map[string]any{
		"role": "admin", "full_name": "Technician Promoted",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var u models.User
	assert.NoError(t, db.First(&u, userID).Error)
	assert.Equal(t, models.RoleAdmin, u.Role)
	assert.Equal(t, "Technician Promoted", u.FullName)
}
