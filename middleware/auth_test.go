package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret-test-secret-test-secret")

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthRequired(testSecret), func(c *gin.Context) {
		id, ok := UserID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	return r
}

func doGet(r *gin.Engine, auth string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", "/me", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequiredValidToken(t *testing.T) {
	token, err := IssueToken(testSecret, 42, time.Hour)
	require.NoError(t, err)

	w := doGet(authRouter(), "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":42}`, w.Body.String())
}

func TestAuthRequiredMissingHeader(t *testing.T) {
	w := doGet(authRouter(), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	assert.Contains(t, w.Body.String(), "Missing bearer token")
}

func TestAuthRequiredExpiredToken(t *testing.T) {
	token, err := IssueToken(testSecret, 42, -time.Minute)
	require.NoError(t, err)

	w := doGet(authRouter(), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token expired")
}

func TestAuthRequiredWrongSecret(t *testing.T) {
	token, err := IssueToken([]byte("another-secret"), 42, time.Hour)
	require.NoError(t, err)

	w := doGet(authRouter(), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestAuthRequiredRejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{UserID: 42, RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(testSecret)
	require.NoError(t, err)

	w := doGet(authRouter(), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredWithoutUserID(t *testing.T) {
	token, err := IssueToken(testSecret, 0, time.Hour)
	require.NoError(t, err)

	w := doGet(authRouter(), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserIDWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := UserID(c)
	assert.False(t, ok)
}

func TestSetUpMiddlewareAnswersPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetUpMiddleware(r, []string{"https://squadup.gg"})
	r.POST("/matches", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest("OPTIONS", "/matches", nil)
	req.Header.Set("Origin", "https://squadup.gg")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://squadup.gg", w.Header().Get("Access-Control-Allow-Origin"))
}
