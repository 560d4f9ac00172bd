// internal/models/purchase.go
package models

import (
	"github.com/google/uuid"
)

// Purchase links a customer, a seller and a product. Status starts at
// Pending and is advanced by the seller; a Delivered purchase is immutable.
type Purchase struct {
	BaseModel
	CustomerEmail string      `json:"customer_email" gorm:"size:255;not null;index"`
	CustomerName  string      `json:"customer_name" gorm:"size:100"`
	SellerEmail   string      `json:"seller_email" gorm:"size:255;not null;index"`
	ProductID     uuid.UUID   `json:"product_id" gorm:"type:uuid;not null;index"`
	Quantity      int         `json:"quantity" gorm:"not null"`
	Price         float64     `json:"price" gorm:"type:decimal(10,2)"`
	Size          string      `json:"size" gorm:"size:4"`
	Address       string      `json:"address" gorm:"size:512"`
	Status        OrderStatus `json:"status" gorm:"type:varchar(20);not null;default:'Pending';index"`
}

// PurchaseView is a purchase enriched with fields joined from the referenced
// product. The product row itself is not embedded in the output.
type PurchaseView struct {
	Purchase
	ProductName  string `json:"name" gorm:"column:product_name"`
	ProductImage string `json:"image,omitempty" gorm:"column:product_image"`
}
