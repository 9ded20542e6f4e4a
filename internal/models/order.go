package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Statuts de paiement d'une commande.
const (
	PaymentStatusPending        = "PENDING"
	PaymentStatusPaid           = "PAID"
	PaymentStatusCashOnDelivery = "CASH ON DELIVERY"
)

type OrderItem struct {
	ProductID primitive.ObjectID `json:"productId" bson:"productId"`
	Name      string             `json:"name" bson:"name"`
	Image     string             `json:"image" bson:"image"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	Price     float64            `json:"price" bson:"price"` // prix unitaire remisé au moment du paiement
}

type Order struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID        primitive.ObjectID `json:"userId" bson:"userId"`
	OrderID       string             `json:"orderId" bson:"orderId"` // unique, format ORD-<uuid>
	SessionID     string             `json:"sessionId,omitempty" bson:"sessionId,omitempty"`
	ListItems     []OrderItem        `json:"list_items" bson:"list_items"`
	PaymentID     string             `json:"paymentId,omitempty" bson:"paymentId,omitempty"`
	PaymentStatus string             `json:"payment_status" bson:"payment_status"`
	AddressID     primitive.ObjectID `json:"addressId,omitempty" bson:"addressId,omitempty"`
	SubTotalAmt   float64            `json:"subTotalAmt" bson:"subTotalAmt"`
	TotalAmt      float64            `json:"totalAmt" bson:"totalAmt"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}
