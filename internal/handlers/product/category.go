package product

import (
	"context"
	"net/http"
	"time"

	"blinkeyit_back_end/internal/cache"
	"blinkeyit_back_end/internal/database"
	"blinkeyit_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ================== CATÉGORIES ==================

// POST /api/category/add-category (admin)
func CreateCategory(c *gin.Context) {
	var input struct {
		Name  string `json:"name" binding:"required"`
		Image string `json:"image"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide category name", "error": true, "success": false})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	category := models.Category{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		Image:     input.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := database.Categories().InsertOne(ctx, category); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"message": "Category already exists", "error": true, "success": false})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create category", "error": true, "success": false})
		return
	}

	cache.InvalidateCategoriesCache(ctx)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Category created successfully",
		"error":   false,
		"success": true,
		"data":    category,
	})
}

// GET /api/category/get
func GetCategories(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	categories, err := cache.GetCategoriesFromCache(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch categories", "error": true, "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category list",
		"error":   false,
		"success": true,
		"data":    categories,
	})
}

// PUT /api/category/update (admin)
func UpdateCategory(c *gin.Context) {
	var input struct {
		ID    string `json:"_id" binding:"required"`
		Name  string `json:"name"`
		Image string `json:"image"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide _id", "error": true, "success": false})
		return
	}

	categoryOID, err := primitive.ObjectIDFromHex(input.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid _id", "error": true, "success": false})
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if input.Name != "" {
		update["name"] = input.Name
	}
	if input.Image != "" {
		update["image"] = input.Image
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := database.Categories().UpdateOne(ctx, bson.M{"_id": categoryOID}, bson.M{"$set": update})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"message": "Category already exists", "error": true, "success": false})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update category", "error": true, "success": false})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found", "error": true, "success": false})
		return
	}

	cache.InvalidateCategoriesCache(ctx)

	c.JSON(http.StatusOK, gin.H{
		"message": "Category updated successfully",
		"error":   false,
		"success": true,
	})
}

// DELETE /api/category/delete (admin)
//
// Refusée tant que des produits ou sous-catégories y sont rattachés,
// pour ne pas laisser de références orphelines.
func DeleteCategory(c *gin.Context) {
	var input struct {
		ID string `json:"_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide _id", "error": true, "success": false})
		return
	}

	categoryOID, err := primitive.ObjectIDFromHex(input.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid _id", "error": true, "success": false})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	subCount, _ := database.SubCategories().CountDocuments(ctx, bson.M{"category": categoryOID})
	prodCount, _ := database.Products().CountDocuments(ctx, bson.M{"category": categoryOID})
	if subCount > 0 || prodCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Category is in use, cannot delete", "error": true, "success": false})
		return
	}

	res, err := database.Categories().DeleteOne(ctx, bson.M{"_id": categoryOID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete category", "error": true, "success": false})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found", "error": true, "success": false})
		return
	}

	cache.InvalidateCategoriesCache(ctx)

	c.JSON(http.StatusOK, gin.H{
		"message": "Category deleted successfully",
		"error":   false,
		"success": true,
	})
}
