package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/acadex/acadex-backend/internal/model"
	"github.com/acadex/acadex-backend/internal/response"
	"github.com/acadex/acadex-backend/internal/service"
)

const (
	// ContextKeyClaims is the Gin context key for JWT claims.
	ContextKeyClaims = "claims"
)

// RequireRole validates a JWT from the Authorization header and checks the
// account's role against the expected one.
func RequireRole(authService *service.AuthService, role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := extractAndValidateClaims(c, authService)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		if claims.Role != role {
			response.AbortFail(c, http.StatusForbidden, roleErrCode(role))
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// RequireAdmin guards admin-only routes.
func RequireAdmin(authService *service.AuthService) gin.HandlerFunc {
	return RequireRole(authService, model.RoleAdmin)
}

// RequireDoctor guards doctor-only routes.
func RequireDoctor(authService *service.AuthService) gin.HandlerFunc {
	return RequireRole(authService, model.RoleDoctor)
}

// RequireStudent guards student-only routes.
func RequireStudent(authService *service.AuthService) gin.HandlerFunc {
	return RequireRole(authService, model.RoleStudent)
}

// RequireAuth validates a JWT without constraining the role.
func RequireAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := extractAndValidateClaims(c, authService)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

func roleErrCode(role model.Role) response.ErrCode {
	switch role {
	case model.RoleAdmin:
		return response.ErrAdminAccessOnly
	case model.RoleDoctor:
		return response.ErrDoctorOnly
	default:
		return response.ErrStudentOnly
	}
}

// GetClaims retrieves the JWT claims from the Gin context.
func GetClaims(c *gin.Context) *service.Claims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

func extractAndValidateClaims(c *gin.Context, authService *service.AuthService) (*service.Claims, error) {
	tokenStr := ""

	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			tokenStr = parts[1]
		}
	}

	// Fallback for WebSocket upgrades which cannot send headers from browsers.
	if tokenStr == "" {
		tokenStr = c.Query("token")
	}

	if tokenStr == "" {
		return nil, fmt.Errorf("authorization header or token query required")
	}

	return authService.ValidateToken(tokenStr)
}
