package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Quantité autorisée sur une ligne de panier.
const (
	CartQtyMin = 1
	CartQtyMax = 100
)

// CartProduct est une ligne de panier : un produit, une quantité, un
// utilisateur. L'index unique (userId, productId) garantit au plus une
// ligne par couple — un doublon d'ajout devient un conflit en base.
type CartProduct struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ProductID primitive.ObjectID `json:"productId" bson:"productId"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CartLine est la ligne renvoyée par GET /api/cart/get : la ligne stockée
// avec le produit résolu à la volée (le prix courant, jamais un instantané).
type CartLine struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	Product   Product            `json:"productId" bson:"productId"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}
