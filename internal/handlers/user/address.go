package user

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

// POST /api/address/create
func CreateAddress(c *gin.Context) {
	userOID, ok := callerObjectID(c)
	if !ok {
		return
	}

	var input struct {
		AddressLine string `json:"address_line" binding:"required"`
		City        string `json:"city" binding:"required"`
		State       string `json:"state" binding:"required"`
		Pincode     string `json:"pincode" binding:"required"`
		Country     string `json:"country" binding:"required"`
		Mobile      string `json:"mobile" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide all address fields", "error": true, "success": false})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	address := models.Address{
		ID:          primitive.NewObjectID(),
		UserID:      userOID,
		AddressLine: input.AddressLine,
		City:        input.City,
		State:       input.State,
		Pincode:     input.Pincode,
		Country:     input.Country,
		Mobile:      input.Mobile,
		Status:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := database.Addresses().InsertOne(ctx, address); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create address", "error": true, "success": false})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Address created successfully",
		"error":   false,
		"success": true,
		"data":    address,
	})
}

// GET /api/address/get
func GetAddresses(c *gin.Context) {
	userOID, ok := callerObjectID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.Addresses().Find(ctx, bson.M{"userId": userOID, "status": true}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch addresses", "error": true, "success": false})
		return
	}
	defer cursor.Close(ctx)

	var addresses []models.Address
	if err := cursor.All(ctx, &addresses); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to decode addresses", "error": true, "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address list",
		"error":   false,
		"success": true,
		"data":    addresses,
	})
}

// DELETE /api/address/disable
//
// Désactivation logique : l'adresse reste référencée par les commandes
// passées, on ne la supprime jamais physiquement.
func DisableAddress(c *gin.Context) {
	userOID, ok := callerObjectID(c)
	if !ok {
		return
	}

	var input struct {
		ID string `json:"_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide _id", "error": true, "success": false})
		return
	}

	addressOID, err := primitive.ObjectIDFromHex(input.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid _id", "error": true, "success": false})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := database.Addresses().UpdateOne(ctx,
		bson.M{"_id": addressOID, "userId": userOID},
		bson.M{"$set": bson.M{"status": false, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to disable address", "error": true, "success": false})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Address not found", "error": true, "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address removed",
		"error":   false,
		"success": true,
	})
}
