// internal/models/cart.go
package models

import (
	"time"
)

type CartItem struct {
	ID        string `json:"id" bson:"_id"`
	ProductID string `json:"product" bson:"product"`
	Quantity  int    `json:"quantity" bson:"quantity"`

	// Populated on read
	Product *Product `json:"productDetails,omitempty" bson:"-"`
}

type Cart struct {
	ID        string     `json:"id" bson:"_id"`
	UserID    string     `json:"user" bson:"user"`
	Items     []CartItem `json:"items" bson:"items"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// Line returns the cart line holding productID.
func (c *Cart) Line(productID string) (*CartItem, bool) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i], true
		}
	}
	return nil, false
}
