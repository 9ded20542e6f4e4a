package cache

import (
	"context"
	"encoding/json"
	"time"

	"blinkeyit_back_end/internal/database"
	"blinkeyit_back_end/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CategoryCacheTTL = 1 * time.Hour
	ProductCacheTTL  = 10 * time.Minute
)

const categoriesKey = "categories:all"

// GetCategoriesFromCache récupère la liste des catégories depuis Redis,
// sinon depuis MongoDB (et remplit le cache).
func GetCategoriesFromCache(ctx context.Context) ([]models.Category, error) {
	data, err := database.Redis.Get(ctx, categoriesKey).Result()
	if err == nil {
		var cached []models.Category
		if json.Unmarshal([]byte(data), &cached) == nil {
			return cached, nil
		}
	}

	cursor, err := database.Categories().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cats []models.Category
	if err := cursor.All(ctx, &cats); err != nil {
		return nil, err
	}

	if jsonData, err := json.Marshal(cats); err == nil {
		database.Redis.Set(ctx, categoriesKey, jsonData, CategoryCacheTTL)
	}
	return cats, nil
}

// InvalidateCategoriesCache invalide la liste après une mutation admin.
func InvalidateCategoriesCache(ctx context.Context) {
	database.Redis.Del(ctx, categoriesKey)
}

// GetProductFromCache récupère un produit depuis Redis ou MongoDB.
func GetProductFromCache(ctx context.Context, productID primitive.ObjectID) (*models.Product, error) {
	key := "product:" + productID.Hex()

	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var product models.Product
		if json.Unmarshal([]byte(data), &product) == nil {
			return &product, nil
		}
	}

	var product models.Product
	if err := database.Products().FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		return nil, err
	}

	if jsonData, err := json.Marshal(product); err == nil {
		database.Redis.Set(ctx, key, jsonData, ProductCacheTTL)
	}
	return &product, nil
}

// InvalidateProductCache invalide le cache d'un produit.
func InvalidateProductCache(ctx context.Context, productID primitive.ObjectID) {
	database.Redis.Del(ctx, "product:"+productID.Hex())
}
