package auth_test

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

	"github.com/craftroots/artisan-api/auth"
	"github.com/craftroots/artisan-api/config"
	"github.com/craftroots/artisan-api/middleware"
	"github.com/craftroots/artisan-api/models"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.RegisterValidators()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	cfg := &config.Config{SessionSecret: "test-secret"}

	r := gin.New()
	r.POST("/auth/register", auth.RegisterArtisan(db, cfg))
	r.POST("/auth/register/buyer", auth.RegisterBuyer(db, cfg))
	r.POST("/auth/login", auth.LoginArtisan(db, cfg))
	r.POST("/auth/login/buyer", auth.LoginBuyer(db, cfg))
	r.GET("/auth/check", auth.Check(db, cfg))
	r.POST("/auth/logout", auth.Logout(cfg))
	return r, db
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func artisanPayload() map[string]any {
	return map[string]any{
		"name":      "Meera Devi",
		"phone":     "+91 98765 43210",
		"password":  "secret123",
		"city":      "Jaipur",
		"state":     "Rajasthan",
		"craftType": "Pottery",
		"languages": []string{"Hindi", "English"},
	}
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	t.Fatalf("cookie %s not set", name)
	return nil
}

func TestRegisterArtisan(t *testing.T) {
	router, db := newAuthRouter(t)

	rec := postJSON(t, router, "/auth/register", artisanPayload())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	cookie := sessionCookie(t, rec, auth.ArtisanCookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	// Phone stored normalized.
	var user models.User
	require.NoError(t, db.First(&user, "phone = ?", "9876543210").Error)
	assert.Equal(t, models.RoleArtisan, user.Role)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.JSONEq(t, `["Hindi","English"]`, user.Languages)
}

func TestRegisterDuplicatePhone(t *testing.T) {
	router, _ := newAuthRouter(t)

	require.Equal(t, http.StatusCreated, postJSON(t, router, "/auth/register", artisanPayload()).Code)

	// Same number, different formatting.
	dup := artisanPayload()
	dup["phone"] = "9876543210"
	rec := postJSON(t, router, "/auth/register", dup)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Phone number already registered")
}

func TestRegisterInvalidPhone(t *testing.T) {
	router, _ := newAuthRouter(t)

	bad := artisanPayload()
	bad["phone"] = "12345"
	rec := postJSON(t, router, "/auth/register", bad)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginByPhone(t *testing.T) {
	router, _ := newAuthRouter(t)
	require.Equal(t, http.StatusCreated, postJSON(t, router, "/auth/register", artisanPayload()).Code)

	rec := postJSON(t, router, "/auth/login", map[string]any{
		"identifier": "98765 43210",
		"password":   "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sessionCookie(t, rec, auth.ArtisanCookie)
}

func TestLoginWrongPassword(t *testing.T) {
	router, _ := newAuthRouter(t)
	require.Equal(t, http.StatusCreated, postJSON(t, router, "/auth/register", artisanPayload()).Code)

	rec := postJSON(t, router, "/auth/login", map[string]any{
		"identifier": "9876543210",
		"password":   "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginWrongPortal(t *testing.T) {
	router, _ := newAuthRouter(t)

	buyer := map[string]any{
		"name":     "Anil Kumar",
		"phone":    "9123456780",
		"password": "secret123",
		"city":     "Mumbai",
		"state":    "Maharashtra",
	}
	require.Equal(t, http.StatusCreated, postJSON(t, router, "/auth/register/buyer", buyer).Code)

	// A buyer on the artisan portal is told where to go, not given a session.
	rec := postJSON(t, router, "/auth/login", map[string]any{
		"identifier": "9123456780",
		"password":   "secret123",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "buyer login")
}

func TestCheckReportsSession(t *testing.T) {
	router, _ := newAuthRouter(t)
	reg := postJSON(t, router, "/auth/register", artisanPayload())
	require.Equal(t, http.StatusCreated, reg.Code)
	cookie := sessionCookie(t, reg, auth.ArtisanCookie)

	req := httptest.NewRequest(http.MethodGet, "/auth/check", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":true`)
	assert.Contains(t, rec.Body.String(), `"role":"artisan"`)
}

func TestCheckWithoutSession(t *testing.T) {
	router, _ := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/check", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":false`)
}

func TestLogoutClearsCookies(t *testing.T) {
	router, _ := newAuthRouter(t)

	rec := postJSON(t, router, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	cleared := 0
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == auth.ArtisanCookie || cookie.Name == auth.BuyerCookie {
			assert.Negative(t, cookie.MaxAge)
			cleared++
		}
	}
	assert.Equal(t, 2, cleared)
}
