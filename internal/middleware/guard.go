package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"alibi-backend/internal/config"
	"alibi-backend/internal/models"
)

const (
	appRoot     = "/"
	adminRoot   = "/admin"
	adminPrefix = "/admin"
	loginPath   = "/login"
)

// publicPaths are reachable without a session.
var publicPaths = map[string]bool{
	"/login":      true,
	"/register":   true,
	"/otp-verify": true,
}

type GuardAction int

const (
	GuardAllow GuardAction = iota
	GuardRedirect
)

type GuardDecision struct {
	Action GuardAction
	Target string
}

// Decide is the page-routing guard: a pure function of the requested path,
// token presence, and role claim. Rules are evaluated in precedence order:
//
//  1. root requested by an admin -> admin root
//  2. public path with a session -> away from the public page
//  3. no session on a protected path -> login
//  4. admin path without the admin role -> app root
//  5. otherwise allow
func Decide(path string, hasToken bool, role string) GuardDecision {
	isAdmin := hasToken && role == models.RoleAdmin

	if path == appRoot && isAdmin {
		return GuardDecision{Action: GuardRedirect, Target: adminRoot}
	}

	if publicPaths[path] {
		if hasToken {
			if isAdmin {
				return GuardDecision{Action: GuardRedirect, Target: adminRoot}
			}
			return GuardDecision{Action: GuardRedirect, Target: appRoot}
		}
		return GuardDecision{Action: GuardAllow}
	}

	if !hasToken {
		return GuardDecision{Action: GuardRedirect, Target: loginPath}
	}

	if strings.HasPrefix(path, adminPrefix) && !isAdmin {
		return GuardDecision{Action: GuardRedirect, Target: appRoot}
	}

	return GuardDecision{Action: GuardAllow}
}

// PageGuard applies Decide to page routes before any rendering. API,
// websocket, and health endpoints carry their own auth and pass through.
func PageGuard(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/") || path == "/ws" || path == "/health" {
			c.Next()
			return
		}

		hasToken := false
		role := ""
		if token, err := c.Cookie(TokenCookie); err == nil && token != "" {
			// The role comes from the validated token, not the role cookie:
			// the cookie is a display hint, the claim is authoritative.
			if claims, err := ParseToken(cfg.JWTSecret, token); err == nil {
				hasToken = true
				role = claims.Role
			}
		}

		decision := Decide(path, hasToken, role)
		if decision.Action == GuardRedirect {
			c.Redirect(http.StatusFound, decision.Target)
			c.Abort()
			return
		}
		c.Next()
	}
}
