// internal/models/order.go
package models

import (
	"time"
)

type OrderItem struct {
	ProductID string  `json:"product" bson:"product"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"`

	// Populated on read
	Product *Product `json:"productDetails,omitempty" bson:"-"`
}

type Order struct {
	ID              string      `json:"id" bson:"_id"`
	UserID          string      `json:"user" bson:"user"`
	Products        []OrderItem `json:"products" bson:"products"`
	TotalAmount     float64     `json:"totalAmount" bson:"totalAmount"`
	ShippingAddress string      `json:"shippingAddress" bson:"shippingAddress"`
	Status          OrderStatus `json:"status" bson:"status"`
	CreatedAt       time.Time   `json:"createdAt" bson:"createdAt"`
}
