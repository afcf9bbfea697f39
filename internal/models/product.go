// internal/models/product.go
package models

import (
	"time"
)

const DefaultProductImage = "no-photo.jpg"

type Product struct {
	BaseModel       `bson:",inline"`
	Name            string    `json:"name" bson:"name"`
	Description     string    `json:"description" bson:"description"`
	Price           float64   `json:"price" bson:"price"`
	DiscountedPrice *float64  `json:"discountedPrice" bson:"discountedPrice"`
	Category        string    `json:"category" bson:"category"`
	ExpiryDate      time.Time `json:"expiryDate" bson:"expiryDate"`
	Stock           int       `json:"stock" bson:"stock"`
	ImageURL        string    `json:"imageUrl" bson:"imageUrl"`
	Images          []string  `json:"images" bson:"images"`
	ExpiryPhoto     string    `json:"expiryPhoto,omitempty" bson:"expiryPhoto,omitempty"`
	VendorID        string    `json:"vendor" bson:"vendor"`

	// Populated on read
	VendorName string `json:"vendorName,omitempty" bson:"-"`
}

// EffectivePrice is what a buyer pays right now.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountedPrice != nil {
		return *p.DiscountedPrice
	}
	return p.Price
}
