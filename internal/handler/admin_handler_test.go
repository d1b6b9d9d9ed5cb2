package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"feedapp/backend/internal/database"
	"feedapp/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsersRequiresAdmin(t *testing.T) {
	router := setupTest(t)
	_, token := registerUser(t, router, "alice")

	w := doJSON(t, router, http.MethodGet, "/api/v1/admin/users", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListUsersAsAdmin(t *testing.T) {
	router := setupTest(t)
	adminID, adminToken := registerUser(t, router, "welcome")
	registerUser(t, router, "alice")
	registerUser(t, router, "bob")

	require.NoError(t, database.DB.Model(&models.User{}).Where("id = ?", adminID).
		Update("role", "admin").Error)

	w := doJSON(t, router, http.MethodGet, "/api/v1/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp PaginatedResponse[AdminUserResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.Meta.TotalItems)
	assert.Len(t, resp.Data, 3)

	// Search by nickname.
	w = doJSON(t, router, http.MethodGet, "/api/v1/admin/users?q=ALI", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "alice", resp.Data[0].Nickname)
}
