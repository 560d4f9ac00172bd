// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/panjabighar/panjabi-backend/internal/models"
	"github.com/panjabighar/panjabi-backend/internal/utils"
)

// QuantityDirection selects the sign of an inventory adjustment.
type QuantityDirection string

const (
	QuantityIncrease QuantityDirection = "increase"
	QuantityDecrease QuantityDirection = "decrease"
)

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=255"`
	Price       float64  `json:"price" validate:"required,min=0.01"`
	Quantity    int      `json:"quantity" validate:"min=0"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	SizeS       int      `json:"sizeS" validate:"min=0"`
	SizeM       int      `json:"sizeM" validate:"min=0"`
	SizeL       int      `json:"sizeL" validate:"min=0"`
	Tags        []string `json:"tags,omitempty"`
}

// UpdateProductRequest replaces the mutable fields wholesale, mirroring the
// full-document update the sellers' dashboard sends.
type UpdateProductRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=255"`
	Price       float64  `json:"price" validate:"required,min=0.01"`
	Quantity    int      `json:"quantity" validate:"min=0"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	SizeS       int      `json:"sizeS" validate:"min=0"`
	SizeM       int      `json:"sizeM" validate:"min=0"`
	SizeL       int      `json:"sizeL" validate:"min=0"`
	Tags        []string `json:"tags,omitempty"`
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// Create adds a catalog entry owned by the calling seller. Ownership is
// immutable after creation.
func (s *ProductService) Create(sellerEmail, sellerName string, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product := &models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
		Description: req.Description,
		Image:       req.Image,
		SizeS:       req.SizeS,
		SizeM:       req.SizeM,
		SizeL:       req.SizeL,
		Tags:        pq.StringArray(req.Tags),
		SellerEmail: sellerEmail,
		SellerName:  sellerName,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// ListBySeller returns the caller's own inventory.
func (s *ProductService) ListBySeller(email string) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("seller_email = ?", email).Order("created_at desc").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return products, nil
}

// ListAll is the public catalog read.
func (s *ProductService) ListAll(params utils.PaginationParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{})

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "name", "price", "quantity"})
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("database error: %w", err)
	}

	return products, total, nil
}

func (s *ProductService) GetByID(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

// Update replaces the mutable fields of the seller's own product. The
// seller reference is left untouched.
func (s *ProductService) Update(id uuid.UUID, sellerEmail string, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product, err := s.ownedProduct(id, sellerEmail)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"price":       req.Price,
		"quantity":    req.Quantity,
		"category":    req.Category,
		"description": req.Description,
		"image":       req.Image,
		"size_s":      req.SizeS,
		"size_m":      req.SizeM,
		"size_l":      req.SizeL,
	}
	if req.Tags != nil {
		updates["tags"] = pq.StringArray(req.Tags)
	}

	if err := s.db.Model(product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return s.GetByID(id)
}

func (s *ProductService) Delete(id uuid.UUID, sellerEmail string) error {
	product, err := s.ownedProduct(id, sellerEmail)
	if err != nil {
		return err
	}

	if err := s.db.Delete(product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

// AdjustQuantity applies quantity ± qty as a single SQL expression update,
// never as a read-modify-write, so concurrent adjustments on the same row
// cannot lose updates. A decrease is conditional on sufficient stock: the
// quantity can never go negative.
func (s *ProductService) AdjustQuantity(id uuid.UUID, qty int, direction QuantityDirection) error {
	if qty <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrConflict)
	}

	var result *gorm.DB
	switch direction {
	case QuantityIncrease:
		result = s.db.Model(&models.Product{}).
			Where("id = ?", id).
			UpdateColumn("quantity", gorm.Expr("quantity + ?", qty))
	default:
		result = s.db.Model(&models.Product{}).
			Where("id = ? AND quantity >= ?", id, qty).
			UpdateColumn("quantity", gorm.Expr("quantity - ?", qty))
	}

	if result.Error != nil {
		return fmt.Errorf("failed to update quantity: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		if _, err := s.GetByID(id); err != nil {
			return err
		}
		return fmt.Errorf("%w: insufficient stock", ErrConflict)
	}

	return nil
}

func (s *ProductService) ownedProduct(id uuid.UUID, sellerEmail string) (*models.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if product.SellerEmail != sellerEmail {
		return nil, fmt.Errorf("%w: not the owner of this product", ErrForbidden)
	}

	return product, nil
}
