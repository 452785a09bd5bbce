package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"alibi-backend/internal/config"
	"alibi-backend/internal/middleware"
	"alibi-backend/internal/models"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		hasToken bool
		role     string
		want     middleware.GuardDecision
	}{
		{
			name: "anonymous can see login",
			path: "/login",
			want: middleware.GuardDecision{Action: middleware.GuardAllow},
		},
		{
			name: "anonymous can see register",
			path: "/register",
			want: middleware.GuardDecision{Action: middleware.GuardAllow},
		},
		{
			name: "anonymous on root goes to login",
			path: "/",
			want: middleware.GuardDecision{Action: middleware.GuardRedirect, Target: "/login"},
		},
		{
			name: "anonymous on admin page goes to login",
			path: "/admin/users",
			want: middleware.GuardDecision{Action: middleware.GuardRedirect, Target: "/login"},
		},
		{
			name:     "logged in user leaves login page",
			path:     "/login",
			hasToken: true,
			role:     models.RoleUser,
			want:     middleware.GuardDecision{Action: middleware.GuardRedirect, Target: "/"},
		},
		{
			name:     "logged in admin leaves login page for admin root",
			path:     "/login",
			hasToken: true,
			role:     models.RoleAdmin,
			want:     middleware.GuardDecision{Action: middleware.GuardRedirect, Target: "/admin"},
		},
		{
			name:     "admin on root goes to admin root",
			path:     "/",
			hasToken: true,
			role:     models.RoleAdmin,
			want:     middleware.GuardDecision{Action: middleware.GuardRedirect, Target: "/admin"},
		},
		{
			name:     "user on root stays",
			path:     "/",
			hasToken: true,
			role:     models.RoleUser,
			want:     middleware.GuardDecision{Action: middleware.GuardAllow},
		},
		{
			name:     "user on admin page bounces to app root",
			path:     "/admin/users",
			hasToken: true,
			role:     models.RoleUser,
			want:     middleware.GuardDecision{Action: middleware.GuardRedirect, Target: "/"},
		},
		{
			name:     "admin on admin page stays",
			path:     "/admin/requests",
			hasToken: true,
			role:     models.RoleAdmin,
			want:     middleware.GuardDecision{Action: middleware.GuardAllow},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := middleware.Decide(tt.path, tt.hasToken, tt.role)
			assert.Equal(t, tt.want, got)
		})
	}
}

func guardRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.PageGuard(cfg))
	router.NoRoute(func(c *gin.Context) {
		c.String(http.StatusOK, "page")
	})
	return router
}

func TestPageGuard_RedirectsAnonymousToLogin(t *testing.T) {
	router := guardRouter(&config.Config{JWTSecret: "test-secret"})

	req, _ := http.NewRequest("GET", "/admin/users", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestPageGuard_BouncesNonAdminFromAdminPages(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	router := guardRouter(cfg)

	token, err := middleware.GenerateToken(cfg.JWTSecret, "user-1", models.RoleUser)
	assert.NoError(t, err)

	req, _ := http.NewRequest("GET", "/admin/users", nil)
	req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestPageGuard_ForgedRoleCookieDoesNotGrantAdmin(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	router := guardRouter(cfg)

	token, err := middleware.GenerateToken(cfg.JWTSecret, "user-1", models.RoleUser)
	assert.NoError(t, err)

	// A tampered role cookie must not matter; only the token claim does.
	req, _ := http.NewRequest("GET", "/admin/users", nil)
	req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: token})
	req.AddCookie(&http.Cookie{Name: middleware.RoleCookie, Value: models.RoleAdmin})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestPageGuard_SkipsAPIRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.PageGuard(&config.Config{JWTSecret: "test-secret"}))
	router.GET("/api/v1/gallery", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req, _ := http.NewRequest("GET", "/api/v1/gallery", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPageGuard_InvalidTokenTreatedAsAnonymous(t *testing.T) {
	router := guardRouter(&config.Config{JWTSecret: "test-secret"})

	req, _ := http.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: "garbage"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}
