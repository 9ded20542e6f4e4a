package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Name        string               `json:"name" bson:"name"`
	Image       []string             `json:"image" bson:"image"`
	Category    []primitive.ObjectID `json:"category" bson:"category"`
	SubCategory []primitive.ObjectID `json:"subCategory" bson:"subCategory"`
	Unit        string               `json:"unit" bson:"unit"`
	Stock       int                  `json:"stock" bson:"stock"`
	Price       float64              `json:"price" bson:"price"`
	Discount    float64              `json:"discount" bson:"discount"` // pourcentage 0–100
	Description string               `json:"description" bson:"description"`
	MoreDetails map[string]string    `json:"more_details,omitempty" bson:"more_details,omitempty"`
	Publish     bool                 `json:"publish" bson:"publish"`
	CreatedAt   time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// PriceAfterDiscount applique la remise (pourcentage) au prix catalogue.
func (p Product) PriceAfterDiscount() float64 {
	if p.Discount <= 0 {
		return p.Price
	}
	return p.Price - p.Price*p.Discount/100
}
