package user

import (
	"context"
	"log"
	"net/http"
	"time"

	"blinkeyit_back_end/internal/cache"
	"blinkeyit_back_end/internal/database"
	"blinkeyit_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// CartWebSocket gère la synchronisation temps réel du panier : chaque
// mutation publie sur le canal Redis du user et le client connecté reçoit
// la liste rafraîchie.
func CartWebSocket(c *gin.Context) {
	userID := c.GetString("user_id")
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid user id", "error": true, "success": false})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	pubsub := database.Redis.Subscribe(ctx, "cart:"+userID)
	defer pubsub.Close()

	ch := pubsub.Channel()

	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Cart sync enabled",
	})

	for {
		select {
		case msg, open := <-ch:
			if !open {
				return
			}
			if msg.Payload != "updated" {
				continue
			}

			lines, total := currentCart(ctx, userOID)
			response := map[string]interface{}{
				"type":  "cart_updated",
				"items": lines,
				"total": total,
				"count": len(lines),
			}

			if err := conn.WriteJSON(response); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			// Ping pour garder la connexion active
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// currentCart relit les lignes du user avec leurs produits résolus.
func currentCart(ctx context.Context, userOID primitive.ObjectID) ([]models.CartLine, float64) {
	cursor, err := database.CartProducts().Find(ctx, bson.M{"userId": userOID})
	if err != nil {
		return []models.CartLine{}, 0
	}
	defer cursor.Close(ctx)

	var stored []models.CartProduct
	if err := cursor.All(ctx, &stored); err != nil {
		return []models.CartLine{}, 0
	}

	lines := make([]models.CartLine, 0, len(stored))
	total := 0.0
	for _, item := range stored {
		product, err := cache.GetProductFromCache(ctx, item.ProductID)
		if err != nil {
			continue
		}
		lines = append(lines, models.CartLine{
			ID:        item.ID,
			Product:   *product,
			UserID:    item.UserID,
			Quantity:  item.Quantity,
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		})
		total += product.PriceAfterDiscount() * float64(item.Quantity)
	}
	return lines, total
}
