// internal/models/product.go
package models

import (
	"github.com/lib/pq"
)

// Product is a catalog entry (a panjabi garment). The owning seller is
// recorded by email and never changes after creation.
type Product struct {
	BaseModel
	Name        string         `json:"name" gorm:"size:255;not null"`
	Price       float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	Quantity    int            `json:"quantity" gorm:"not null;default:0"`
	Category    string         `json:"category" gorm:"size:100;index"`
	Description string         `json:"description" gorm:"type:text"`
	Image       string         `json:"image" gorm:"size:512"`
	SizeS       int            `json:"sizeS" gorm:"column:size_s;default:0"`
	SizeM       int            `json:"sizeM" gorm:"column:size_m;default:0"`
	SizeL       int            `json:"sizeL" gorm:"column:size_l;default:0"`
	Tags        pq.StringArray `json:"tags,omitempty" gorm:"type:text[]"`
	SellerEmail string         `json:"seller_email" gorm:"size:255;not null;index"`
	SellerName  string         `json:"seller_name" gorm:"size:100"`
}
