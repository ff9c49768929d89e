package postControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/craftroots/artisan-api/middleware"
	"github.com/craftroots/artisan-api/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Post{}))
	return db
}

func postsRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	asUser := func(c *gin.Context) { c.Set(middleware.UserIDKey, userID) }
	r.POST("/posts", asUser, CreatePost(db))
	r.GET("/posts", asUser, GetPosts(db))
	return r
}

func TestHashtagsRoundTrip(t *testing.T) {
	assert.Equal(t, `["a","b"]`, encodeHashtags([]string{"a", "b"}))
	assert.Equal(t, `[]`, encodeHashtags(nil))
	assert.Equal(t, []string{"a", "b"}, decodeHashtags(`["a","b"]`))
	assert.Equal(t, []string{}, decodeHashtags(""))
	assert.Equal(t, []string{}, decodeHashtags("null"))
	assert.Equal(t, []string{}, decodeHashtags("not json"))
}

func TestCreateAndListPosts(t *testing.T) {
	db := setupTestDB(t)
	router := postsRouter(db, "artisan-1")

	body, _ := json.Marshal(map[string]any{
		"title":       "Diya Story",
		"description": "How it is made",
		"caption":     "Handmade with love",
		"hashtags":    []string{"Handmade", "Diya"},
	})
	req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Stored as a JSON string, served back as a list.
	var stored models.Post
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, `["Handmade","Diya"]`, stored.Hashtags)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []struct {
			Title    string   `json:"title"`
			Hashtags []string `json:"hashtags"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, []string{"Handmade", "Diya"}, resp.Data[0].Hashtags)
}

func TestGetPostsScopedToUser(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Post{UserID: "someone-else", Title: "T", Description: "D", Caption: "C", Hashtags: "[]"}).Error)

	rec := httptest.NewRecorder()
	postsRouter(db, "artisan-1").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data)
}

func TestCreatePostRequiresFields(t *testing.T) {
	db := setupTestDB(t)
	router := postsRouter(db, "artisan-1")

	body, _ := json.Marshal(map[string]any{"title": "only a title"})
	req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
