package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"feedapp/backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostWithImage(t *testing.T) {
	router := setupTest(t)
	_, token := registerUser(t, router, "alice")

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("description", "beach day"))
	part, err := mw.CreateFormFile("image", "beach.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("not-really-a-png"))
	require.NoError(t, err)
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
	assert.Equal(t, "beach day", resp.Description)
	require.True(t, strings.HasPrefix(resp.ImageURL, "/uploads/"))
	assert.True(t, strings.HasSuffix(resp.ImageURL, ".png"))

	// The file landed in the upload directory.
	stored := filepath.Join(config.AppConfig.UploadDir, strings.TrimPrefix(resp.ImageURL, "/uploads/"))
	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, []byte("not-really-a-png"), data)
}

func TestCreatePostWithoutImage(t *testing.T) {
	router := setupTest(t)
	_, token := registerUser(t, router, "alice")

	postID := createPost(t, router, token, "")

	feed := getFeed(t, router, "/api/v1/feed/me", token)
	require.Len(t, feed.Data, 1)
	assert.Equal(t, postID, feed.Data[0].ID)
	assert.Empty(t, feed.Data[0].Description)
	assert.Empty(t, feed.Data[0].ImageURL)
}

func TestCreatePostDescriptionTooLong(t *testing.T) {
	router := setupTest(t)
	_, token := registerUser(t, router, "alice")

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("description", strings.Repeat("x", maxDescriptionLength+1)))
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, "/api/v1/posts", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
