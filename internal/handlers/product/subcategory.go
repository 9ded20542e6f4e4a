package product

import (
	"context"
	"net/http"
	"time"

	"blinkeyit_back_end/internal/database"
	"blinkeyit_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ================== SOUS-CATÉGORIES ==================

// parseObjectIDs convertit les ids hex reçus du front en ObjectID.
func parseObjectIDs(hexIDs []string) ([]primitive.ObjectID, bool) {
	oids := make([]primitive.ObjectID, 0, len(hexIDs))
	for _, id := range hexIDs {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, false
		}
		oids = append(oids, oid)
	}
	return oids, true
}

// POST /api/subcategory/create (admin)
func CreateSubCategory(c *gin.Context) {
	var input struct {
		Name     string   `json:"name" binding:"required"`
		Image    string   `json:"image"`
		Category []string `json:"category" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide name and category", "error": true, "success": false})
		return
	}

	categoryOIDs, ok := parseObjectIDs(input.Category)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category id", "error": true, "success": false})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	sub := models.SubCategory{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		Image:     input.Image,
		Category:  categoryOIDs,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := database.SubCategories().InsertOne(ctx, sub); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create subcategory", "error": true, "success": false})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Subcategory created successfully",
		"error":   false,
		"success": true,
		"data":    sub,
	})
}

// POST /api/subcategory/get
func GetSubCategories(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.SubCategories().Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch subcategories", "error": true, "success": false})
		return
	}
	defer cursor.Close(ctx)

	subs := []models.SubCategory{}
	if err := cursor.All(ctx, &subs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to decode subcategories", "error": true, "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Subcategory list",
		"error":   false,
		"success": true,
		"data":    subs,
	})
}

// PUT /api/subcategory/update (admin)
func UpdateSubCategory(c *gin.Context) {
	var input struct {
		ID       string   `json:"_id" binding:"required"`
		Name     string   `json:"name"`
		Image    string   `json:"image"`
		Category []string `json:"category"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide _id", "error": true, "success": false})
		return
	}

	subOID, err := primitive.ObjectIDFromHex(input.ID)
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
	if len(input.Category) > 0 {
		categoryOIDs, ok := parseObjectIDs(input.Category)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category id", "error": true, "success": false})
			return
		}
		update["category"] = categoryOIDs
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := database.SubCategories().UpdateOne(ctx, bson.M{"_id": subOID}, bson.M{"$set": update})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update subcategory", "error": true, "success": false})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Subcategory not found", "error": true, "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Subcategory updated successfully",
		"error":   false,
		"success": true,
	})
}

// DELETE /api/subcategory/delete (admin)
func DeleteSubCategory(c *gin.Context) {
	var input struct {
		ID string `json:"_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide _id", "error": true, "success": false})
		return
	}

	subOID, err := primitive.ObjectIDFromHex(input.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid _id", "error": true, "success": false})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := database.SubCategories().DeleteOne(ctx, bson.M{"_id": subOID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete subcategory", "error": true, "success": false})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Subcategory not found", "error": true, "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Subcategory deleted successfully",
		"error":   false,
		"success": true,
	})
}
