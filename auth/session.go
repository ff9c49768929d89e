package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/craftroots/artisan-api/models"
)

// Session cookie names. Artisans and buyers authenticate independently so a
// single browser can hold both sessions at once.
const (
	ArtisanCookie = "session_user"
	BuyerCookie   = "session_buyer"

	sessionTTL = 7 * 24 * time.Hour
)

var ErrInvalidSession = errors.New("invalid or expired session")

// IssueSession signs a session token carrying the user id and role.
func IssueSession(userID string, role models.Role, secret string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"exp":  time.Now().Add(sessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSession verifies a session token and returns the user id and role.
func ParseSession(tokenString, secret string) (string, models.Role, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", "", ErrInvalidSession
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", ErrInvalidSession
	}
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || role == "" {
		return "", "", ErrInvalidSession
	}
	return sub, models.Role(role), nil
}

// SetSessionCookie attaches the session token as an HTTP-only cookie.
// SameSite=Lax, 7-day expiry; Secure only in production.
func SetSessionCookie(c *gin.Context, name, token string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, token, int(sessionTTL.Seconds()), "/", "", secure, true)
}

// ClearSessionCookies drops both role cookies.
func ClearSessionCookies(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ArtisanCookie, "", -1, "/", "", secure, true)
	c.SetCookie(BuyerCookie, "", -1, "/", "", secure, true)
}
