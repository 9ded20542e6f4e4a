package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Address struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID      primitive.ObjectID `json:"userId" bson:"userId"`
	AddressLine string             `json:"address_line" bson:"address_line"`
	City        string             `json:"city" bson:"city"`
	State       string             `json:"state" bson:"state"`
	Pincode     string             `json:"pincode" bson:"pincode"`
	Country     string             `json:"country" bson:"country"`
	Mobile      string             `json:"mobile" bson:"mobile"`
	Status      bool               `json:"status" bson:"status"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}
