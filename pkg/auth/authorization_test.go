package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeVerifier struct{}

func (fakeVerifier) VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error) {
	if idToken != "good" {
		return nil, errors.New("token expired")
	}
	return &fbauth.Token{UID: "user-1"}, nil
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthMiddleware(fakeVerifier{}))
	router.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, UID(c))
	})

	for _, c := range []struct {
		header string
		code   int
		body   string
	}{
		{"", http.StatusUnauthorized, ""},
		{"good", http.StatusUnauthorized, ""},
		{"Bearer ", http.StatusUnauthorized, ""},
		{"Bearer bad", http.StatusUnauthorized, ""},
		{"Bearer good", http.StatusOK, "user-1"},
	} {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if c.header != "" {
			req.Header.Set("Authorization", c.header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, c.code, w.Code, c.header)
		if c.body != "" {
			assert.Equal(t, c.body, w.Body.String())
		}
	}
}

func TestUIDWithoutToken(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, "", UID(c))
}
