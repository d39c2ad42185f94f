package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/entity"
	"storefront/services"
	"storefront/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "mw-secret"

type stubSessions struct {
	active map[string]bool
	err    error
}

func (s stubSessions) Create(context.Context, *entity.Session) error { return nil }
func (s stubSessions) Active(_ context.Context, id string) (bool, error) {
	return s.active[id], s.err
}
func (s stubSessions) Revoke(context.Context, string) (bool, error) { return false, nil }

type stubUsers struct {
	byID map[uint]*entity.User
	err  error
}

func (s stubUsers) CurrentUser(_ context.Context, id uint) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.byID[id]
	if !ok || !u.IsActive {
		return nil, services.ErrUnauthenticated
	}
	return u, nil
}

func activeUsers(ids ...uint) stubUsers {
	users := stubUsers{byID: map[uint]*entity.User{}}
	for _, id := range ids {
		users.byID[id] = &entity.User{ID: id, IsActive: true}
	}
	return users
}

func newAuthRouter(sessions stubSessions, users stubUsers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := AuthMiddleware(secret, sessions, users)
	r.GET("/me", auth, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": utils.CurrentUserID(c), "sid": utils.CurrentSessionID(c)})
	})
	r.GET("/staff", auth, StaffOnly(), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func call(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	now := time.Now()
	live, err := utils.GenerateToken(5, false, "live", secret, now, time.Hour)
	require.NoError(t, err)
	revoked, err := utils.GenerateToken(5, false, "gone", secret, now, time.Hour)
	require.NoError(t, err)
	forged, err := utils.GenerateToken(5, false, "live", "other-secret", now, time.Hour)
	require.NoError(t, err)

	r := newAuthRouter(stubSessions{active: map[string]bool{"live": true}}, activeUsers(5))

	w := call(r, "/me", live)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"uid":5,"sid":"live"}`, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, call(r, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, "/me", revoked).Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, "/me", forged).Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, "/me", "not-a-jwt").Code)
}

func TestAuthMiddlewareSessionStoreDown(t *testing.T) {
	tok, err := utils.GenerateToken(5, false, "live", secret, time.Now(), time.Hour)
	require.NoError(t, err)
	r := newAuthRouter(stubSessions{err: errors.New("redis down")}, activeUsers(5))

	assert.Equal(t, http.StatusInternalServerError, call(r, "/me", tok).Code)
}

func TestAuthMiddlewareRejectsInactiveOrMissingUser(t *testing.T) {
	now := time.Now()
	sessions := stubSessions{active: map[string]bool{"a": true, "b": true, "c": true}}
	users := activeUsers(1)
	users.byID[2] = &entity.User{ID: 2, IsActive: false, IsStaff: true}

	disabled, err := utils.GenerateToken(2, true, "a", secret, now, time.Hour)
	require.NoError(t, err)
	deleted, err := utils.GenerateToken(3, false, "b", secret, now, time.Hour)
	require.NoError(t, err)

	r := newAuthRouter(sessions, users)
	assert.Equal(t, http.StatusUnauthorized, call(r, "/me", disabled).Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, "/staff", disabled).Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, "/me", deleted).Code)

	down := newAuthRouter(sessions, stubUsers{err: errors.New("db down")})
	tok, err := utils.GenerateToken(1, false, "c", secret, now, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, call(down, "/me", tok).Code)
}

func TestStaffOnly(t *testing.T) {
	now := time.Now()
	staff, err := utils.GenerateToken(1, true, "s1", secret, now, time.Hour)
	require.NoError(t, err)
	shopper, err := utils.GenerateToken(2, false, "s2", secret, now, time.Hour)
	require.NoError(t, err)

	users := activeUsers(1, 2)
	users.byID[1].IsStaff = true
	r := newAuthRouter(stubSessions{active: map[string]bool{"s1": true, "s2": true}}, users)
	assert.Equal(t, http.StatusOK, call(r, "/staff", staff).Code)
	assert.Equal(t, http.StatusForbidden, call(r, "/staff", shopper).Code)
}

func TestStaffOnlyFollowsUserRowNotClaim(t *testing.T) {
	now := time.Now()
	// token minted as staff, account demoted since
	demoted, err := utils.GenerateToken(1, true, "s1", secret, now, time.Hour)
	require.NoError(t, err)
	// token minted as shopper, account promoted since
	promoted, err := utils.GenerateToken(2, false, "s2", secret, now, time.Hour)
	require.NoError(t, err)

	users := activeUsers(1, 2)
	users.byID[2].IsStaff = true
	r := newAuthRouter(stubSessions{active: map[string]bool{"s1": true, "s2": true}}, users)
	assert.Equal(t, http.StatusForbidden, call(r, "/staff", demoted).Code)
	assert.Equal(t, http.StatusOK, call(r, "/staff", promoted).Code)
}
