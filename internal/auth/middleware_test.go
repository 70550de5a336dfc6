package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
)

// fakeSessions maps session IDs to user IDs.
type fakeSessions map[string]int64

func (f fakeSessions) GetUserID(_ context.Context, sessionID string) (int64, bool) {
	id, ok := f[sessionID]
	return id, ok
}

func newSessionRouter(sessions SessionReader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", RequireSession(sessions), func(c *gin.Context) {
		c.String(http.StatusOK, strconv.FormatInt(UserIDFromContext(c), 10))
	})
	return r
}

func TestRequireSession_NoCookie(t *testing.T) {
	t.Parallel()

	r := newSessionRouter(fakeSessions{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
}

func TestRequireSession_UnknownSession(t *testing.T) {
	t.Parallel()

	r := newSessionRouter(fakeSessions{"s1": 42})
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "expired"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
}

func TestRequireSession_SetsUserID(t *testing.T) {
	t.Parallel()

	r := newSessionRouter(fakeSessions{"s1": 42})
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "s1"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", w.Code)
	}
	if w.Body.String() != "42" {
		t.Fatalf("user id %q, want 42", w.Body.String())
	}
}

func TestUserIDFromContext_Unset(t *testing.T) {
	t.Parallel()

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := UserIDFromContext(c); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}
