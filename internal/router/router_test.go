package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/microblog/backend/internal/events"
	"github.com/anonto42/microblog/backend/internal/repositories"
	"github.com/anonto42/microblog/backend/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

type fakeVerifier struct{}

func (fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if idToken != "good-token" {
		return nil, errors.New("bad token")
	}
	return &auth.Token{UID: "fbuid123", Claims: map[string]interface{}{"email": "fb@gmail.com"}}, nil
}

type journal struct{}

func (journal) Recent(_ context.Context, actorID uint, _ int64) ([]events.Event, error) {
	return []events.Event{{Type: events.PostCreated, ActorID: actorID, PostID: 1}}, nil
}

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=1"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	store := repositories.NewStore(db)
	require.NoError(t, store.AutoMigrate(context.Background()))

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	e := echo.New()
	SetupRoutes(e, Options{
		Deps:      services.Deps{Store: store, Log: log},
		FeedScope: services.ScopeGlobal,
		JWTSecret: testSecret,
		TokenTTL:  time.Hour,
		Firebase:  fakeVerifier{},
		Activity:  journal{},
		Log:       log,
	})
	return e
}

func do(t *testing.T, e *echo.Echo, method, path, token, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var out map[string]interface{}
	if strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func signup(t *testing.T, e *echo.Echo, username string) string {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"email":"example@gmail.com","password":"example13046"}`, username)
	rec, out := do(t, e, http.MethodPost, "/api/v1/auth/signup", "", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return out["token"].(string)
}

func createPost(t *testing.T, e *echo.Echo, token, content string) uint {
	t.Helper()
	rec, out := do(t, e, http.MethodPost, "/api/v1/posts", token, fmt.Sprintf(`{"content":%q}`, content))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return uint(out["id"].(float64))
}

func TestHealth(t *testing.T) {
	e := newServer(t)
	rec, out := do(t, e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", out["status"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e := newServer(t)
	for _, path := range []string{"/api/v1/feed", "/api/v1/posts", "/api/v1/profile", "/api/v1/notifications"} {
		rec, _ := do(t, e, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		rec, _ = do(t, e, http.MethodGet, path, "garbage", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestSignupAndSignin(t *testing.T) {
	e := newServer(t)
	signup(t, e, "ytaisei")

	rec, _ := do(t, e, http.MethodPost, "/api/v1/auth/signup", "", `{"username":"ytaisei","email":"x@gmail.com","password":"example13046"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, out := do(t, e, http.MethodPost, "/api/v1/auth/signup", "", `{"username":"other","email":"bad","password":"example13046"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email", out["field"])

	rec, _ = do(t, e, http.MethodPost, "/api/v1/auth/signin", "", `{"username":"ytaisei","password":"wrong-password"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, out = do(t, e, http.MethodPost, "/api/v1/auth/signin", "", `{"username":"ytaisei","password":"example13046"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	token := out["token"].(string)

	rec, out = do(t, e, http.MethodGet, "/api/v1/profile", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ytaisei", out["user"].(map[string]interface{})["username"])
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestFirebaseLogin(t *testing.T) {
	e := newServer(t)

	rec, _ := do(t, e, http.MethodPost, "/api/v1/auth/firebase-login", "", `{"idToken":"bad-token"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// a local account named after the UID must not be handed to the Firebase user
	squatter := signup(t, e, "fbuid123")
	rec, out := do(t, e, http.MethodGet, "/api/v1/profile", squatter, "")
	require.Equal(t, http.StatusOK, rec.Code)
	squatterID := out["user"].(map[string]interface{})["id"]

	profile := func() map[string]interface{} {
		rec, out := do(t, e, http.MethodPost, "/api/v1/auth/firebase-login", "", `{"idToken":"good-token"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		rec, out = do(t, e, http.MethodGet, "/api/v1/profile", out["token"].(string), "")
		require.Equal(t, http.StatusOK, rec.Code)
		return out["user"].(map[string]interface{})
	}

	first := profile()
	assert.NotEqual(t, squatterID, first["id"])
	assert.NotEqual(t, "fbuid123", first["username"])
	assert.Equal(t, "fb@gmail.com", first["email"])

	second := profile()
	assert.Equal(t, first["id"], second["id"])
}

func TestPostLifecycle(t *testing.T) {
	e := newServer(t)
	author := signup(t, e, "ytaisei")
	other := signup(t, e, "incorrect")

	rec, out := do(t, e, http.MethodPost, "/api/v1/posts", author, `{"content":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "content", out["field"])
	assert.Equal(t, "this field is required", out["message"])

	rec, _ = do(t, e, http.MethodPost, "/api/v1/posts", author, fmt.Sprintf(`{"content":%q}`, strings.Repeat("x", 141)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	id := createPost(t, e, author, "update")
	path := fmt.Sprintf("/api/v1/posts/%d", id)

	rec, out = do(t, e, http.MethodGet, path, other, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "update", out["content"])
	assert.Equal(t, "ytaisei", out["author"].(map[string]interface{})["username"])

	rec, _ = do(t, e, http.MethodPut, path, other, `{"content":"hijacked"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec, _ = do(t, e, http.MethodPut, path, other, `{"content":""}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec, _ = do(t, e, http.MethodDelete, path, other, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, out = do(t, e, http.MethodPut, path, author, `{"content":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "content", out["field"])

	rec, out = do(t, e, http.MethodPut, path, author, `{"content":"updated tweet"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "updated tweet", out["content"])

	rec, _ = do(t, e, http.MethodDelete, path, author, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec, _ = do(t, e, http.MethodGet, path, author, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = do(t, e, http.MethodDelete, path, author, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = do(t, e, http.MethodPut, path, author, `{"content":"ghost"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListPosts(t *testing.T) {
	e := newServer(t)
	u1 := signup(t, e, "user1")
	u2 := signup(t, e, "user2")
	createPost(t, e, u1, "first")
	createPost(t, e, u2, "second")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/posts?author=user1", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+u2)
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var posts []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "first", posts[0]["content"])

	rec, _ = do(t, e, http.MethodGet, "/api/v1/posts?author=ghost", u2, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLikeEndpoints(t *testing.T) {
	e := newServer(t)
	author := signup(t, e, "ytaisei")
	fan := signup(t, e, "fan")
	id := createPost(t, e, author, "like me")
	path := fmt.Sprintf("/api/v1/posts/%d/like", id)

	for i := 0; i < 2; i++ {
		rec, out := do(t, e, http.MethodPost, path, fan, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]interface{}{"liked": true, "count": float64(1)}, out)
	}

	rec, out := do(t, e, http.MethodGet, path, author, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{"liked": false, "count": float64(1)}, out)

	for i := 0; i < 2; i++ {
		rec, out = do(t, e, http.MethodDelete, path, fan, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]interface{}{"liked": false, "count": float64(0)}, out)
	}

	rec, _ = do(t, e, http.MethodPost, "/api/v1/posts/100/like", fan, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = do(t, e, http.MethodPost, "/api/v1/posts/abc/like", fan, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFollowEndpoints(t *testing.T) {
	e := newServer(t)
	u1 := signup(t, e, "user1")
	signup(t, e, "user2")

	rec, _ := do(t, e, http.MethodPost, "/api/v1/users/user1/follow", u1, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec, _ = do(t, e, http.MethodPost, "/api/v1/users/ghost/follow", u1, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, out := do(t, e, http.MethodPost, "/api/v1/users/user2/follow", u1, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["following"])

	rec, out = do(t, e, http.MethodGet, "/api/v1/users/user2/relation", u1, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["has_followed"])
	assert.Equal(t, float64(1), out["follower_count"])

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/user1/following", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+u1)
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":2,"username":"user2"}]`, rec.Body.String())

	rec, out = do(t, e, http.MethodDelete, "/api/v1/users/user2/follow", u1, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, out["following"])
}

func TestFeedEndpoint(t *testing.T) {
	e := newServer(t)
	u1 := signup(t, e, "user1")
	u2 := signup(t, e, "user2")
	createPost(t, e, u1, "user1")
	createPost(t, e, u2, "user2")
	do(t, e, http.MethodPost, "/api/v1/users/user1/follow", u2, "")

	rec, out := do(t, e, http.MethodGet, "/api/v1/feed?limit=1", u2, "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := out["data"].(map[string]interface{})
	posts := data["posts"].([]interface{})
	require.Len(t, posts, 1)
	assert.Equal(t, "user2", posts[0].(map[string]interface{})["content"])
	assert.Equal(t, float64(2), data["total"])
	assert.Equal(t, float64(1), data["following_count"])

	meta := out["meta"].(map[string]interface{})
	assert.Equal(t, float64(2), meta["totalPages"])
	assert.Equal(t, true, meta["hasNextPage"])
	assert.Equal(t, "global", meta["scope"])
}

func TestNotificationEndpoints(t *testing.T) {
	e := newServer(t)
	u1 := signup(t, e, "user1")
	u2 := signup(t, e, "user2")
	do(t, e, http.MethodPost, "/api/v1/users/user1/follow", u2, "")

	rec, out := do(t, e, http.MethodGet, "/api/v1/notifications/unread-count", u1, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), out["unread_count"])

	rec, out = do(t, e, http.MethodGet, "/api/v1/notifications", u1, "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := out["data"].(map[string]interface{})["notifications"].([]interface{})
	require.Len(t, list, 1)
	first := list[0].(map[string]interface{})
	assert.Equal(t, "follow", first["type"])
	assert.Equal(t, "user2", first["actor"].(map[string]interface{})["username"])

	rec, _ = do(t, e, http.MethodPut, fmt.Sprintf("/api/v1/notifications/%d/read", uint(first["id"].(float64))), u2, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = do(t, e, http.MethodPut, "/api/v1/notifications/read-all", u1, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	_, out = do(t, e, http.MethodGet, "/api/v1/notifications/unread-count", u1, "")
	assert.Equal(t, float64(0), out["unread_count"])
}

func TestDeleteAccount(t *testing.T) {
	e := newServer(t)
	u1 := signup(t, e, "user1")
	u2 := signup(t, e, "user2")
	id := createPost(t, e, u1, "bye")

	rec, _ := do(t, e, http.MethodDelete, "/api/v1/profile", u1, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = do(t, e, http.MethodGet, fmt.Sprintf("/api/v1/posts/%d", id), u2, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = do(t, e, http.MethodGet, "/api/v1/users/user1", u2, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	// the token outlives the account
	rec, _ = do(t, e, http.MethodGet, "/api/v1/feed", u1, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestActivityEndpoint(t *testing.T) {
	e := newServer(t)
	u1 := signup(t, e, "user1")

	rec, out := do(t, e, http.MethodGet, "/api/v1/activity", u1, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, out["events"], 1)
}
