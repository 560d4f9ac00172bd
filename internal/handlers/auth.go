// internal/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/panjabighar/panjabi-backend/internal/config"
	"github.com/panjabighar/panjabi-backend/internal/middleware"
	"github.com/panjabighar/panjabi-backend/internal/utils"
)

type AuthHandler struct {
	cfg *config.Config
}

type IssueTokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// POST /jwt
// Signs a long-lived token for the email and sets it as an HTTP-only
// cookie. The frontend authenticates the email out-of-band; this endpoint
// only mints the credential.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		utils.BadRequestResponse(c, "Email is required", nil)
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	token, err := utils.GenerateJWT(req.Email, h.cfg.JWT.TokenTTL)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to issue token")
		return
	}

	h.setTokenCookie(c, token, h.cfg.JWT.TokenTTL*3600)
	utils.SuccessResponse(c, gin.H{"token": token})
}

// GET /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setTokenCookie(c, "", -1)
	utils.SuccessResponse(c, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, token string, maxAge int) {
	secure := h.cfg.IsProduction()
	sameSite := http.SameSiteStrictMode
	if secure {
		// Cross-site frontend needs SameSite=None, which requires Secure.
		sameSite = http.SameSiteNoneMode
	}

	c.SetSameSite(sameSite)
	c.SetCookie(middleware.TokenCookie, token, maxAge, "/", "", secure, true)
}
