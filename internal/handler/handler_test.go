package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"feedapp/backend/internal/config"
	"feedapp/backend/internal/database"
	"feedapp/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	// Set Gin to test mode to reduce noise
	gin.SetMode(gin.TestMode)
}

// setupTest wires a fresh in-memory database and router for one test.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTSecret:     "test-secret",
		WelcomeUserID: 1,
		UploadDir:     t.TempDir(),
	}

	// One named in-memory database per test; cache=shared keeps every
	// pooled connection on the same database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	router := gin.New()
	RegisterRoutes(router)
	return router
}

// doJSON performs a JSON request against the router, optionally authenticated.
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// registerUser registers a fresh account and returns its ID and token.
func registerUser(t *testing.T, router *gin.Engine, nickname string) (uint, string) {
	t.Helper()

	body := gin.H{
		"nickname": nickname,
		"email":    nickname + "@example.com",
		"password": "password123",
	}
	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])

	var user models.User
	require.NoError(t, database.DB.Where("nickname = ?", nickname).First(&user).Error)
	return user.ID, resp["token"]
}

// createPost creates a post via multipart form (no image) and returns its ID.
func createPost(t *testing.T, router *gin.Engine, token, description string) uint {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("description", description))
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, "/api/v1/posts", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp PostResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

// findPendingEdge returns the pending edge between two users' profiles.
func findPendingEdge(t *testing.T, senderUserID, receiverUserID uint) models.RelationshipEdge {
	t.Helper()

	var senderProfile, receiverProfile models.Profile
	require.NoError(t, database.DB.Where("user_id = ?", senderUserID).First(&senderProfile).Error)
	require.NoError(t, database.DB.Where("user_id = ?", receiverUserID).First(&receiverProfile).Error)

	var edge models.RelationshipEdge
	require.NoError(t, database.DB.
		Where("sender_id = ? AND receiver_id = ? AND status = ?", senderProfile.ID, receiverProfile.ID, models.StatusSent).
		First(&edge).Error)
	return edge
}

// makeFriends runs the full request/accept flow between two users.
func makeFriends(t *testing.T, router *gin.Engine, senderID uint, senderToken string, receiverID uint, receiverToken string) {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/friends/requests", senderToken, gin.H{"user_ids": []uint{receiverID}})
	require.Equal(t, http.StatusCreated, w.Code)

	edge := findPendingEdge(t, senderID, receiverID)

	w = doJSON(t, router, http.MethodPost, "/api/v1/friends/accept", receiverToken, gin.H{"edge_ids": []uint{edge.ID}})
	require.Equal(t, http.StatusOK, w.Code)
}
