package user

import (
	"context"
	"errors"
	"net/http"
	"time"

	"blinkeyit_back_end/internal/database"
	"blinkeyit_back_end/internal/models"
	"blinkeyit_back_end/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ================== COMMANDES ==================

// GET /api/order/order-list
func GetMyOrders(c *gin.Context) {
	userOID, ok := callerObjectID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.Orders().Find(ctx, bson.M{"userId": userOID}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders", "error": true, "success": false})
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to decode orders", "error": true, "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order list",
		"error":   false,
		"success": true,
		"data":    orders,
	})
}

// POST /api/order/cash-on-delivery
//
// Même chemin de finalisation que le paiement Stripe, sans session :
// la commande part du panier courant et le panier est vidé.
func CashOnDelivery(c *gin.Context) {
	userOID, ok := callerObjectID(c)
	if !ok {
		return
	}

	var input struct {
		AddressID string `json:"addressId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide addressId", "error": true, "success": false})
		return
	}

	addressOID, err := primitive.ObjectIDFromHex(input.AddressID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid addressId", "error": true, "success": false})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// L'adresse doit appartenir au user et être active
	count, err := database.Addresses().CountDocuments(ctx, bson.M{"_id": addressOID, "userId": userOID, "status": true})
	if err != nil || count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Address not found", "error": true, "success": false})
		return
	}

	order, err := service.FinalizeOrder(ctx, userOID, addressOID, "", "", models.PaymentStatusCashOnDelivery)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Cart is empty", "error": true, "success": false})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create order", "error": true, "success": false})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"error":   false,
		"success": true,
		"data":    order,
	})
}
