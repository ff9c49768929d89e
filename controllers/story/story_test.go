package storyControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftroots/artisan-api/config"
)

func TestFallbackStoryTitleFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"clay_pot-large.jpg", "Handcrafted Clay Pot Large"},
		{"silk scarf.png", "Handcrafted Silk Scarf"},
		{"diya.jpeg", "Handcrafted Diya"},
		{".jpg", "Handcrafted Product Story"},
		{"", "Handcrafted Product Story"},
	}
	for _, tt := range tests {
		story := FallbackStory(tt.filename, "")
		assert.Equal(t, tt.want, story.Title, tt.filename)
	}
}

func TestFallbackStoryNoteOverridesDescription(t *testing.T) {
	story := FallbackStory("pot.jpg", "Made from river clay by my grandmother's technique")
	assert.Equal(t, "Made from river clay by my grandmother's technique", story.Description)
	assert.Contains(t, story.Caption, `"Made from river clay by my grandmother's technique"`)
	assert.NotEmpty(t, story.Hashtags)
}

func TestFallbackStoryDefaultsWithoutNote(t *testing.T) {
	story := FallbackStory("pot.jpg", "")
	assert.Contains(t, story.Description, "handcrafted")
	assert.Equal(t, fallbackHashtags, story.Hashtags)
}

func TestHealthy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	up := NewGateway(config.StoryConfig{BackendURL: server.URL})
	assert.True(t, up.Healthy(context.Background()))

	down := NewGateway(config.StoryConfig{BackendURL: "http://127.0.0.1:1"})
	assert.False(t, down.Healthy(context.Background()))
}

func storyRequest(t *testing.T, note string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", "clay_pot.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	if note != "" {
		require.NoError(t, writer.WriteField("note", note))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/story/generate", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestGenerateStoryHandlerFallsBackWhenBackendDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/story/generate", GenerateStoryHandler(NewGateway(config.StoryConfig{BackendURL: "http://127.0.0.1:1"})))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, storyRequest(t, "a note"))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool         `json:"success"`
		Data    StoryContent `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Handcrafted Clay Pot", resp.Data.Title)
	assert.Equal(t, "a note", resp.Data.Description)
}

func TestGenerateStoryHandlerUsesBackend(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.WriteHeader(http.StatusOK)
		case "/generate-story":
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "a note", r.FormValue("note"))
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data": StoryContent{
					Title:       "AI Title",
					Description: "AI description",
					Caption:     "AI caption",
					Hashtags:    []string{"AI"},
				},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer backend.Close()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/story/generate", GenerateStoryHandler(NewGateway(config.StoryConfig{BackendURL: backend.URL})))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, storyRequest(t, "a note"))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data StoryContent `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "AI Title", resp.Data.Title)
}

func TestGenerateStoryHandlerRequiresImage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/story/generate", GenerateStoryHandler(NewGateway(config.StoryConfig{})))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/story/generate", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateStoryHandlerFallsBackOnBackendError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer backend.Close()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/story/generate", GenerateStoryHandler(NewGateway(config.StoryConfig{BackendURL: backend.URL})))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, storyRequest(t, ""))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data StoryContent `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Handcrafted Clay Pot", resp.Data.Title)
}
