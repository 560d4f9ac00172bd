// internal/handlers/product.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/panjabighar/panjabi-backend/internal/services"
	"github.com/panjabighar/panjabi-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
	userService    *services.UserService
	storageService *services.StorageService
}

type AdjustQuantityRequest struct {
	QuantityToUpdate int    `json:"quantityToUpdate" validate:"required,min=1"`
	Status           string `json:"status" validate:"omitempty,oneof=increase decrease"`
}

func NewProductHandler(productService *services.ProductService, userService *services.UserService, storageService *services.StorageService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		userService:    userService,
		storageService: storageService,
	}
}

// GET /panjabi
// Public catalog listing.
func (h *ProductHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	products, total, err := h.productService.ListAll(params)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(products, total, params))
}

// GET /panjabi/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	product, err := h.productService.GetByID(id)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

// GET /panjabi/seller (seller)
// The caller's own inventory; the email comes from the validated token.
func (h *ProductHandler) ListOwn(c *gin.Context) {
	email, exists := utils.GetEmailFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	products, err := h.productService.ListBySeller(email)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, products)
}

// POST /panjabi (seller)
func (h *ProductHandler) Create(c *gin.Context) {
	email, exists := utils.GetEmailFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	sellerName := h.sellerName(email)
	product, err := h.productService.Create(email, sellerName, &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.CreatedResponse(c, product)
}

// PUT /panjabi/:id (seller)
// Wholesale replacement of the mutable fields.
func (h *ProductHandler) Update(c *gin.Context) {
	email, exists := utils.GetEmailFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	product, err := h.productService.Update(id, email, &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

// DELETE /panjabi/:id (seller)
func (h *ProductHandler) Delete(c *gin.Context) {
	email, exists := utils.GetEmailFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	if err := h.productService.Delete(id, email); err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Panjabi deleted"})
}

// PATCH /panjabi/quantity/:id
// Atomic inventory adjustment; direction comes from the request's status
// field, defaulting to decrease as the storefront sends it.
func (h *ProductHandler) AdjustQuantity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	var req AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	direction := services.QuantityDecrease
	if req.Status == "increase" {
		direction = services.QuantityIncrease
	}

	if err := h.productService.AdjustQuantity(id, req.QuantityToUpdate, direction); err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Quantity updated"})
}

// POST /panjabi/upload-url (seller)
// Presigned S3 URL for a product image upload.
func (h *ProductHandler) UploadURL(c *gin.Context) {
	email, exists := utils.GetEmailFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	result, err := h.storageService.PresignUpload(email, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, result)
}

func (h *ProductHandler) sellerName(email string) string {
	user, err := h.userService.UpsertOnFirstContact(email, nil)
	if err != nil {
		return ""
	}
	return user.Name
}
