package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/pathwise/pathwise/internal/models"
	"github.com/pathwise/pathwise/internal/sessions"
	"github.com/pathwise/pathwise/internal/tokens"
)

const testSecret = "middleware-test-secret-32-bytes-x"

func newSessionAndToken(t *testing.T, svc *sessions.Service) string {
	t.Helper()
	sid, err := svc.Create(context.Background(), models.SessionView{FullName: "Ada", Email: "ada@x.test"}, time.Minute)
	require.NoError(t, err)
	access, err := tokens.GenerateAccessToken(testSecret, sid, "ada@x.test", "Ada", time.Minute)
	require.NoError(t, err)
	return access
}

func TestAuthMiddleware_NoHeader(t *testing.T) {
	svc := sessions.NewService(sessions.NewMemoryRepository())
	g := gin.New()
	g.GET("/", AuthMiddleware(testSecret, svc), func(c *gin.Context) { c.Status(http.StatusOK) })

	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, rw.Code)
}

func TestAuthMiddleware_InvalidHeader(t *testing.T) {
	svc := sessions.NewService(sessions.NewMemoryRepository())
	g := gin.New()
	g.GET("/", AuthMiddleware(testSecret, svc), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "BadHeader")
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)
	require.Equal(t, http.StatusUnauthorized, rw.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	svc := sessions.NewService(sessions.NewMemoryRepository())
	access := newSessionAndToken(t, svc)

	g := gin.New()
	g.GET("/", AuthMiddleware(testSecret, svc), func(c *gin.Context) {
		sess, ok := c.Get(SessionKey)
		require.True(t, ok)
		view := sess.(*sessions.Session).View
		resp, _ := json.Marshal(gin.H{"email": view.Email})
		c.Writer.Write(resp)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusOK, rw.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &got))
	require.Equal(t, "ada@x.test", got["email"])
}

func TestAuthMiddleware_RejectsDestroyedSession(t *testing.T) {
	svc := sessions.NewService(sessions.NewMemoryRepository())
	sid, err := svc.Create(context.Background(), models.SessionView{Email: "ada@x.test"}, time.Minute)
	require.NoError(t, err)
	access, err := tokens.GenerateAccessToken(testSecret, sid, "ada@x.test", "Ada", time.Minute)
	require.NoError(t, err)

	// logout destroys the session; the still-signed JWT must stop working
	require.NoError(t, svc.Destroy(context.Background(), sid))

	g := gin.New()
	g.GET("/", AuthMiddleware(testSecret, svc), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)
	require.Equal(t, http.StatusUnauthorized, rw.Code)
}
