package payement

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"blinkeyit_back_end/internal/models"
	"blinkeyit_back_end/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/checkout/session"
	"github.com/stripe/stripe-go/v83/webhook"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// POST /api/payment/verify
//
// Le front appelle ce point après le retour de Stripe avec le sessionId
// qu'il a gardé localement. La vérification est idempotente : si la
// commande existe déjà pour cette session, on renvoie le même résultat.
func VerifyPayment(c *gin.Context) {
	var input struct {
		SessionID string `json:"sessionId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide sessionId", "error": true, "success": false})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Déjà finalisée ? (retour + refresh, webhook passé avant, double clic)
	existing, err := service.FindOrderBySession(ctx, input.SessionID)
	if err != nil {
		// Panne Mongo : ne surtout pas continuer vers la finalisation, on
		// risquerait de recréer une commande déjà existante.
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to check payment status", "error": true, "success": false})
		return
	}
	if existing != nil {
		c.JSON(http.StatusOK, gin.H{
			"message": "Payment already verified",
			"error":   false,
			"success": true,
			"data":    existing,
		})
		return
	}

	s, err := session.Get(input.SessionID, nil)
	if err != nil {
		log.Println("❌ Session Stripe introuvable:", err)
		c.JSON(http.StatusNotFound, gin.H{"message": "Checkout session not found", "error": true, "success": false})
		return
	}

	if s.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payment not completed", "error": true, "success": false})
		return
	}

	// L'appelant doit être le propriétaire de la session
	if s.Metadata["userId"] != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"message": "Session does not belong to this user", "error": true, "success": false})
		return
	}

	order, err := finalizePaidSession(ctx, s)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to finalize order", "error": true, "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment verified successfully",
		"error":   false,
		"success": true,
		"data":    order,
	})
}

// POST /api/payment/webhook
//
// Chemin serveur-à-serveur : crée la commande même si le front ne revient
// jamais appeler verify. Même finalisation idempotente.
func StripeWebhook(c *gin.Context) {
	const maxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	payload, err := c.GetRawData()
	if err != nil {
		log.Println("❌ Lecture payload échouée:", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to read body", "error": true, "success": false})
		return
	}

	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	var event stripe.Event

	if secret == "" {
		log.Println("⚠️ Pas de STRIPE_WEBHOOK_SECRET — mode test")
		if err := json.Unmarshal(payload, &event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON", "error": true, "success": false})
			return
		}
	} else {
		event, err = webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), secret)
		if err != nil {
			log.Println("❌ Signature Stripe invalide:", err)
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid signature", "error": true, "success": false})
			return
		}
	}

	log.Printf("📥 Événement Stripe reçu : %s", event.Type)

	if event.Type != "checkout.session.completed" {
		c.Status(http.StatusOK)
		return
	}

	var s stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
		log.Println("❌ Erreur décodage CheckoutSession:", err)
		c.Status(http.StatusOK)
		return
	}

	if s.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		c.Status(http.StatusOK)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	existing, err := service.FindOrderBySession(ctx, s.ID)
	if err != nil {
		// Panne Mongo : 500 pour que Stripe rejoue l'événement plus tard
		log.Println("❌ Erreur lecture commande existante:", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	if existing != nil {
		c.Status(http.StatusOK)
		return
	}

	if _, err := finalizePaidSession(ctx, &s); err != nil {
		log.Println("❌ Erreur finalisation via webhook:", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	// 200 : la finalisation a abouti (ou renvoyé la commande du gagnant de
	// la course verify/webhook, l'index unique sur sessionId tranchant).
	c.Status(http.StatusOK)
}

// finalizePaidSession crée la commande d'une session payée à partir des
// métadonnées posées au checkout.
func finalizePaidSession(ctx context.Context, s *stripe.CheckoutSession) (models.Order, error) {
	userOID, err := primitive.ObjectIDFromHex(s.Metadata["userId"])
	if err != nil {
		return models.Order{}, err
	}
	addressOID, err := primitive.ObjectIDFromHex(s.Metadata["addressId"])
	if err != nil {
		return models.Order{}, err
	}

	paymentID := ""
	if s.PaymentIntent != nil {
		paymentID = s.PaymentIntent.ID
	}

	order, err := service.FinalizeOrder(ctx, userOID, addressOID, s.ID, paymentID, models.PaymentStatusPaid)
	if err != nil {
		return models.Order{}, err
	}

	log.Printf("✅ Commande %s créée pour la session %s", order.OrderID, s.ID)
	return order, nil
}
