//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"guildhall/internal/domain/member"
	"guildhall/internal/handler/middleware"
	"guildhall/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubTokenValidator struct {
	userID uuid.UUID
	role   member.Role
	err    error
}

func (s *stubTokenValidator) ValidateToken(_ string) (uuid.UUID, member.Role, error) {
	return s.userID, s.role, s.err
}

func setupRouter(validator *stubTokenValidator, minRole member.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	auth := middleware.NewAuthMiddleware(validator)

	handlers := []gin.HandlerFunc{auth.RequireAuth()}
	if minRole != "" {
		handlers = append(handlers, auth.RequireRoleAtLeast(minRole))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	engine.GET("/protected", handlers...)
	return engine
}

func get(engine *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		engine := setupRouter(&stubTokenValidator{}, "")
		rec := get(engine, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		engine := setupRouter(&stubTokenValidator{err: errs.New("bad token")}, "")
		rec := get(engine, "Bearer nope")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bearer token accepted", func(t *testing.T) {
		engine := setupRouter(&stubTokenValidator{userID: uuid.New(), role: member.RoleMember}, "")
		rec := get(engine, "Bearer good")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireRoleAtLeast(t *testing.T) {
	tests := []struct {
		name    string
		role    member.Role
		minRole member.Role
		want    int
	}{
		{"administrator passes any gate", member.RoleAdministrator, member.RoleEditor, http.StatusOK},
		{"exact role passes", member.RoleEditor, member.RoleEditor, http.StatusOK},
		{"member blocked from admin routes", member.RoleMember, member.RoleAdministrator, http.StatusForbidden},
		{"guest blocked from member routes", member.RoleGuest, member.RoleMember, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := setupRouter(&stubTokenValidator{userID: uuid.New(), role: tt.role}, tt.minRole)
			rec := get(engine, "Bearer good")
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
