// internal/handlers/user.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/panjabighar/panjabi-backend/internal/services"
	"github.com/panjabighar/panjabi-backend/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// POST /users/:email
// First-contact upsert: stores the profile on the first call, returns the
// existing record unchanged afterwards.
func (h *UserHandler) Upsert(c *gin.Context) {
	email := c.Param("email")

	var req services.UpsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	user, err := h.userService.UpsertOnFirstContact(email, &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}

// PATCH /users/:email
// Asks for role elevation; conflicts while a previous request is pending.
func (h *UserHandler) RequestElevation(c *gin.Context) {
	email := c.Param("email")

	if err := h.userService.RequestElevation(email); err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Elevation requested"})
}

// GET /users/role/:email
func (h *UserHandler) GetRole(c *gin.Context) {
	email := c.Param("email")

	role, err := h.userService.GetRole(email)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"role": role})
}

// GET /all-users/:email (admin)
// Lists everyone except the requesting admin.
func (h *UserHandler) ListOthers(c *gin.Context) {
	email := c.Param("email")

	users, err := h.userService.ListOthers(email)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, users)
}

// PATCH /user/role/:email (admin)
// Resolves a pending elevation: overwrites the role, marks the user Verified.
func (h *UserHandler) ResolveElevation(c *gin.Context) {
	email := c.Param("email")

	var req services.ResolveElevationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	user, err := h.userService.ResolveElevation(email, &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}
