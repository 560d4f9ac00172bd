// internal/middleware/auth.go
package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/panjabighar/panjabi-backend/internal/models"
	"github.com/panjabighar/panjabi-backend/internal/utils"
)

// TokenCookie is the HTTP-only cookie carrying the signed token.
const TokenCookie = "token"

// AuthRequired validates the token from the cookie (or a Bearer header as a
// fallback) and stores the email claim in the request context. Nothing past
// this middleware runs for a missing, malformed or expired token.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			utils.UnauthorizedResponse(c, "Unauthorized access")
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			utils.UnauthorizedResponse(c, "Unauthorized access")
			c.Abort()
			return
		}

		c.Set("email", claims.Email)
		c.Next()
	}
}

// AdminRequired resolves the caller's role from the users table on every
// request. The role claim is never cached in the token, so a demotion takes
// effect without waiting for token expiry.
func AdminRequired(db *gorm.DB) gin.HandlerFunc {
	return requireRole(db, models.RoleAdmin, "Forbidden Access ! Admin only Action")
}

// SellerRequired is the seller counterpart of AdminRequired.
func SellerRequired(db *gorm.DB) gin.HandlerFunc {
	return requireRole(db, models.RoleSeller, "Forbidden Access ! Seller only Action")
}

func requireRole(db *gorm.DB, role models.Role, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, exists := utils.GetEmailFromContext(c)
		if !exists {
			utils.UnauthorizedResponse(c, "Unauthorized access")
			c.Abort()
			return
		}

		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.ForbiddenResponse(c, message)
			} else {
				utils.InternalErrorResponse(c, "")
			}
			c.Abort()
			return
		}

		if user.Role != role {
			utils.ForbiddenResponse(c, message)
			c.Abort()
			return
		}

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if token, err := c.Cookie(TokenCookie); err == nil && token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}

	return ""
}
