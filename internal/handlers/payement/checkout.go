package payement

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"blinkeyit_back_end/internal/database"
	"blinkeyit_back_end/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/checkout/session"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// POST /api/payment/checkout
//
// Crée une session Stripe Checkout à partir du panier courant. Le front
// stocke session.id localement puis redirige vers session.url ; la
// commande n'est créée qu'à la vérification du paiement.
func CreateCheckoutSession(c *gin.Context) {
	userID := c.GetString("user_id")
	email := c.GetString("email")
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid user id", "error": true, "success": false})
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

	count, err := database.Addresses().CountDocuments(ctx, bson.M{"_id": addressOID, "userId": userOID, "status": true})
	if err != nil || count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Address not found", "error": true, "success": false})
		return
	}

	// Les lignes Stripe sont construites sur les prix catalogue du moment,
	// remise comprise, pas sur ce que le front prétend avoir dans le panier.
	items, _, total, err := service.CartTotals(ctx, userOID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cart is empty", "error": true, "success": false})
		return
	}

	frontend := os.Getenv("FRONTEND_URL")

	var lineItems []*stripe.CheckoutSessionLineItemParams
	for _, item := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String("eur"),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:   stripe.String(item.Name),
					Images: []*string{stripe.String(item.Image)},
				},
				UnitAmount: stripe.Int64(int64(item.Price * 100)),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail:      stripe.String(email),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(frontend + "/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:          stripe.String(frontend + "/cancel"),
		Metadata: map[string]string{
			"userId":    userID,
			"addressId": input.AddressID,
		},
	}

	s, err := session.New(params)
	if err != nil {
		log.Println("❌ Erreur création session Stripe:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create checkout session", "error": true, "success": false})
		return
	}

	log.Printf("💳 Session Checkout créée : %s (%.2f€) pour %s", s.ID, total, email)

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout session created",
		"error":   false,
		"success": true,
		"data": gin.H{
			"id":  s.ID,
			"url": s.URL,
		},
	})
}
