// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/panjabighar/panjabi-backend/internal/models"
	"github.com/panjabighar/panjabi-backend/internal/notify"
	"github.com/panjabighar/panjabi-backend/internal/utils"
)

type OrderService struct {
	db             *gorm.DB
	productService *ProductService
	mailer         *notify.Mailer
}

type PlaceOrderRequest struct {
	ProductID     uuid.UUID `json:"panjabiId" validate:"required"`
	CustomerEmail string    `json:"customer_email" validate:"required,email"`
	CustomerName  string    `json:"customer_name"`
	Quantity      int       `json:"quantity" validate:"required,min=1"`
	Size          string    `json:"size" validate:"omitempty,oneof=S M L"`
	Address       string    `json:"address"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

func NewOrderService(db *gorm.DB, productService *ProductService, mailer *notify.Mailer) *OrderService {
	return &OrderService{
		db:             db,
		productService: productService,
		mailer:         mailer,
	}
}

// Place records a purchase in Pending state. Stock is decremented first with
// the atomic conditional update, so a purchase can never reference
// inventory that was not there. Confirmation emails go out through the
// mailer queue and never delay or fail the order.
func (s *OrderService) Place(req *PlaceOrderRequest) (*models.Purchase, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product, err := s.productService.GetByID(req.ProductID)
	if err != nil {
		return nil, err
	}

	if err := s.productService.AdjustQuantity(product.ID, req.Quantity, QuantityDecrease); err != nil {
		return nil, err
	}

	purchase := &models.Purchase{
		CustomerEmail: req.CustomerEmail,
		CustomerName:  req.CustomerName,
		SellerEmail:   product.SellerEmail,
		ProductID:     product.ID,
		Quantity:      req.Quantity,
		Price:         product.Price,
		Size:          req.Size,
		Address:       req.Address,
		Status:        models.OrderStatusPending,
	}

	if err := s.db.Create(purchase).Error; err != nil {
		// Put the reserved stock back; the purchase never existed.
		if restoreErr := s.productService.AdjustQuantity(product.ID, req.Quantity, QuantityIncrease); restoreErr != nil {
			return nil, fmt.Errorf("failed to save order: %v (stock restore also failed: %w)", err, restoreErr)
		}
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	s.mailer.Enqueue(purchase.CustomerEmail,
		"Order SuccessFull",
		fmt.Sprintf("You've Placed an order successFully. Transaction Id:%s", purchase.ID))
	s.mailer.Enqueue(purchase.SellerEmail,
		"Hurray!, You Have an order to process",
		fmt.Sprintf("Get the panjabi ready for %s", purchase.CustomerName))

	return purchase, nil
}

// UpdateStatus is the seller-driven transition. The write is deliberately
// permissive about ordering (a seller may move straight to Delivered), but
// the value must be a known status and a Delivered purchase stays frozen.
func (s *OrderService) UpdateStatus(id uuid.UUID, req *UpdateOrderStatusRequest) error {
	if !req.Status.Valid() {
		return fmt.Errorf("%w: unknown order status %q", ErrConflict, req.Status)
	}

	purchase, err := s.getPurchase(id)
	if err != nil {
		return err
	}

	if purchase.Status == models.OrderStatusDelivered {
		return fmt.Errorf("%w: order already delivered", ErrConflict)
	}

	if err := s.db.Model(purchase).Update("status", req.Status).Error; err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	return nil
}

// Cancel removes a purchase unless it has been delivered. The delete is a
// single conditional statement so a status change to Delivered between the
// read and the delete cannot slip through, and the reserved stock goes back
// to the product on success.
func (s *OrderService) Cancel(id uuid.UUID) error {
	purchase, err := s.getPurchase(id)
	if err != nil {
		return err
	}

	if purchase.Status == models.OrderStatusDelivered {
		return fmt.Errorf("%w: cannot cancel once the product is delivered", ErrConflict)
	}

	result := s.db.Where("id = ? AND status <> ?", id, models.OrderStatusDelivered).
		Delete(&models.Purchase{})
	if result.Error != nil {
		return fmt.Errorf("failed to cancel order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: cannot cancel once the product is delivered", ErrConflict)
	}

	if err := s.productService.AdjustQuantity(purchase.ProductID, purchase.Quantity, QuantityIncrease); err != nil {
		// The order is gone either way; a missing product just means there
		// is no stock left to restore.
		if !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("order cancelled but stock restore failed: %w", err)
		}
	}

	return nil
}

// ListForCustomer returns the customer's purchases enriched with the
// product's name and image via a join. The product row itself is projected
// out of the result.
func (s *OrderService) ListForCustomer(email string) ([]models.PurchaseView, error) {
	return s.listEnriched("purchases.customer_email = ?", email, true)
}

// ListForSeller returns the seller's order queue, enriched with the product
// name only.
func (s *OrderService) ListForSeller(email string) ([]models.PurchaseView, error) {
	return s.listEnriched("purchases.seller_email = ?", email, false)
}

func (s *OrderService) listEnriched(cond, email string, withImage bool) ([]models.PurchaseView, error) {
	selects := "purchases.*, products.name AS product_name"
	if withImage {
		selects += ", products.image AS product_image"
	}

	var views []models.PurchaseView
	err := s.db.Table("purchases").
		Select(selects).
		Joins("INNER JOIN products ON products.id = purchases.product_id").
		Where(cond, email).
		Where("purchases.deleted_at IS NULL").
		Where("products.deleted_at IS NULL").
		Order("purchases.created_at desc").
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return views, nil
}

func (s *OrderService) getPurchase(id uuid.UUID) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := s.db.First(&purchase, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &purchase, nil
}
