// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/panjabighar/panjabi-backend/internal/services"
	"github.com/panjabighar/panjabi-backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// POST /purchases
// Places an order for the authenticated customer. The customer email in the
// body must match the token; the storefront fills both from the same session.
func (h *OrderHandler) Place(c *gin.Context) {
	email, exists := utils.GetEmailFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if req.CustomerEmail == "" {
		req.CustomerEmail = email
	}
	if req.CustomerEmail != email {
		utils.ForbiddenResponse(c, "Cannot place orders for another customer")
		return
	}

	purchase, err := h.orderService.Place(&req)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.CreatedResponse(c, purchase)
}

// GET /customer-purchase/:email
func (h *OrderHandler) ListForCustomer(c *gin.Context) {
	email := c.Param("email")

	// A customer can only read their own history.
	if caller, exists := utils.GetEmailFromContext(c); !exists || caller != email {
		utils.ForbiddenResponse(c, "Cannot read another customer's purchases")
		return
	}

	views, err := h.orderService.ListForCustomer(email)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, views)
}

// GET /seller-purchase/:email (seller)
func (h *OrderHandler) ListForSeller(c *gin.Context) {
	email := c.Param("email")

	if caller, exists := utils.GetEmailFromContext(c); !exists || caller != email {
		utils.ForbiddenResponse(c, "Cannot read another seller's orders")
		return
	}

	views, err := h.orderService.ListForSeller(email)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, views)
}

// PATCH /update-order-status/:id (seller)
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	var req services.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if err := h.orderService.UpdateStatus(id, &req); err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Order status updated"})
}

// DELETE /purchases/:id
// Cancels an order unless it has already been delivered.
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	if err := h.orderService.Cancel(id); err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Order cancelled"})
}
