// internal/models/common.go
package models

import (
	"time"
)

// Base fields shared by every document
type BaseModel struct {
	ID        string    `json:"id" bson:"_id"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Enums
type Role string

const (
	RoleUser   Role = "user"
	RoleVendor Role = "vendor"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleVendor
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)
