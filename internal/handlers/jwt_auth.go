package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/SIH-2025/edusafe-service/internal/models"
	"github.com/SIH-2025/edusafe-service/internal/repositories"
)

// JWTAuthMiddleware authenticates requests with HMAC-signed bearer tokens.
// The token subject is the user id; the user row is loaded per request so
// role or profile changes take effect immediately.
type JWTAuthMiddleware struct {
	secret   []byte
	userRepo repositories.UserRepository
}

func NewJWTAuthMiddleware(secret string, userRepo repositories.UserRepository) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{
		secret:   []byte(secret),
		userRepo: userRepo,
	}
}

// AuthMiddleware rejects requests without a valid bearer token.
func (am *JWTAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, errMsg := am.userFromRequest(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIResponse{
				Success: false,
				Error:   errMsg,
			})
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Set("user_role", user.Role)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches user info when a valid token is present
// and continues anonymously otherwise.
func (am *JWTAuthMiddleware) OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, _ := am.userFromRequest(c); user != nil {
			c.Set("user", user)
			c.Set("user_id", user.ID)
			c.Set("user_role", user.Role)
		}
		c.Next()
	}
}

func (am *JWTAuthMiddleware) userFromRequest(c *gin.Context) (*models.User, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, "authorization header missing"
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
		return nil, "invalid authorization header format"
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenParts[1], claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return am.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, "invalid or expired token"
	}
	if claims.Subject == "" {
		return nil, "token missing subject"
	}

	user, err := am.userRepo.GetByID(c.Request.Context(), claims.Subject)
	if err != nil {
		return nil, "user not found"
	}
	return user, ""
}

// RequireRoleMiddleware checks if the user has one of the required roles.
// Admins always pass.
func (am *JWTAuthMiddleware) RequireRoleMiddleware(requiredRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("user_role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, APIResponse{
				Success: false,
				Error:   "Access denied",
			})
			return
		}

		role, ok := userRole.(models.UserRole)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, APIResponse{
				Success: false,
				Error:   "Access denied",
			})
			return
		}

		for _, required := range requiredRoles {
			if role == required || role == models.RoleAdmin {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, APIResponse{
			Success: false,
			Error:   "Access denied",
		})
	}
}
