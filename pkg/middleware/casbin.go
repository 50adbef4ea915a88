package middleware

import (
	"fmt"
	"net/http"

	"MeetingReminder/internal/auth"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch(r.obj, p.obj) && r.act == p.act`

var rbacPolicies = [][]string{
	{auth.RoleScheduler, "/api/runs", http.MethodPost},
	{auth.RoleAdmin, "/api/*", http.MethodGet},
}

var rbacGroupings = [][]string{
	{auth.RoleAdmin, auth.RoleScheduler},
}

// NewEnforcer builds the RBAC enforcer for the API routes.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("casbin model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("casbin enforcer: %w", err)
	}
	for _, p := range rbacPolicies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range rbacGroupings {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}
	return enforcer, nil
}

// Authorize enforces RBAC on the role carried by the JWT claims.
func Authorize(enforcer *casbin.Enforcer, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(claimsKey).(*auth.Claims)
			if !ok || claims == nil {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Unauthorized: missing user claims"})
			}
			obj, act := c.Request().URL.Path, c.Request().Method
			allowed, err := enforcer.Enforce(claims.Role, obj, act)
			if err != nil {
				logger.Error("casbin enforce failed", zap.Error(err))
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "RBAC system error"})
			}
			if !allowed {
				logger.Info("request denied", zap.String("role", claims.Role), zap.String("path", obj), zap.String("method", act))
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Forbidden: insufficient permissions"})
			}
			return next(c)
		}
	}
}
