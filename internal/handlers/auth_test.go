package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Tugas/internal/auth"
	dom "Tugas/internal/domain"
	"Tugas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

type fakeSessions map[string]int64

func (f fakeSessions) GetUserID(_ context.Context, sessionID string) (int64, bool) {
	id, ok := f[sessionID]
	return id, ok
}

// fakeUserRepo holds users keyed by id.
type fakeUserRepo map[int64]dom.User

func (f fakeUserRepo) GetByUsername(_ context.Context, username string) (dom.User, error) {
	for _, u := range f {
		if u.Username == username {
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (f fakeUserRepo) GetByID(_ context.Context, id int64) (dom.User, error) {
	u, ok := f[id]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (f fakeUserRepo) Create(_ context.Context, username, passwordHash string) (dom.User, error) {
	id := int64(len(f) + 1)
	u := dom.User{ID: id, Username: username, PasswordHash: passwordHash, CreatedAt: time.Now()}
	f[id] = u
	return u, nil
}

func newAuthTestRouter(sessions auth.SessionReader, users fakeUserRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(nil, service.NewUserService(users))
	r := gin.New()
	r.GET("/api/auth/me", auth.RequireSession(sessions), h.Me)
	return r
}

func TestMe_ReturnsCurrentUser(t *testing.T) {
	t.Parallel()

	users := fakeUserRepo{7: {ID: 7, Username: "dendi"}}
	r := newAuthTestRouter(fakeSessions{"s1": 7}, users)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "s1"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, want 200: %s", w.Code, w.Body.String())
	}
	var got struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != 7 || got.Username != "dendi" {
		t.Fatalf("got %+v", got)
	}
}

func TestMe_WithoutSession(t *testing.T) {
	t.Parallel()

	r := newAuthTestRouter(fakeSessions{}, fakeUserRepo{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
}

func TestMe_StaleSession(t *testing.T) {
	t.Parallel()

	// Session resolves, but the user is gone.
	r := newAuthTestRouter(fakeSessions{"s1": 99}, fakeUserRepo{})
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "s1"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
}
