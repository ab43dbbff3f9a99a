package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	DefaultProductDescription = "No description"
	DefaultProductImage       = "https://via.placeholder.com/150"
)

// Product represents a single inventory item owned by exactly one user.
type Product struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	UserID      bson.ObjectID `bson:"user_id"`
	Name        string        `bson:"name"`
	SKU         string        `bson:"sku"`
	Category    string        `bson:"category"`
	Quantity    int64         `bson:"quantity"`
	Price       float64       `bson:"price"`
	Description string        `bson:"description"`
	Image       string        `bson:"image"`
	CreatedAt   time.Time     `bson:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at"`
}
