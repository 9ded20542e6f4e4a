package user

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// notifyCartChanged publie sur le canal Redis du user pour réveiller les
// websockets de synchronisation panier.
func notifyCartChanged(ctx context.Context, userID string) {
	database.Redis.Publish(ctx, "cart:"+userID, "updated")
}

func callerObjectID(c *gin.Context) (primitive.ObjectID, bool) {
	userID := c.GetString("user_id")
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid user id", "error": true, "success": false})
		return primitive.NilObjectID, false
	}
	return oid, true
}

//
// 🟢 POST /api/cart/create
//
// Ajoute un produit au panier avec quantité 1. Un deuxième ajout du même
// produit est rejeté en Conflict par l'index unique (userId, productId) —
// jamais fusionné : le client doit passer par update-qty.
func AddToCartItem(c *gin.Context) {
	userOID, ok := callerObjectID(c)
	if !ok {
		return
	}

	var input struct {
		ProductID string `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide productId", "error": true, "success": false})
		return
	}

	productOID, err := primitive.ObjectIDFromHex(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid productId", "error": true, "success": false})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Le produit doit exister avant de créer la ligne
	if err := database.Products().FindOne(ctx, bson.M{"_id": productOID}).Err(); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found", "error": true, "success": false})
		return
	}

	now := time.Now()
	line := models.CartProduct{
		ID:        primitive.NewObjectID(),
		ProductID: productOID,
		UserID:    userOID,
		Quantity:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := database.CartProducts().InsertOne(ctx, line); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// La course entre deux ajouts devient un conflit en base,
			// pas une double insertion.
			c.JSON(http.StatusConflict, gin.H{"message": "Item already in cart", "error": true, "success": false})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add item to cart", "error": true, "success": false})
		return
	}

	notifyCartChanged(ctx, c.GetString("user_id"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added successfully",
		"error":   false,
		"success": true,
		"data":    line,
	})
}

//
// 🔵 GET /api/cart/get
//
// Retourne les lignes du panier, chaque produit résolu avec ses données
// courantes (le prix peut avoir bougé depuis l'ajout — aucun instantané).
func GetCartItem(c *gin.Context) {
	userOID, ok := callerObjectID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.CartProducts().Find(ctx, bson.M{"userId": userOID}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch cart", "error": true, "success": false})
		return
	}
	defer cursor.Close(ctx)

	var stored []models.CartProduct
	if err := cursor.All(ctx, &stored); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to decode cart", "error": true, "success": false})
		return
	}

	lines := make([]models.CartLine, 0, len(stored))
	for _, item := range stored {
		product, err := cache.GetProductFromCache(ctx, item.ProductID)
		if err != nil {
			// Produit retiré du catalogue : la ligne est ignorée
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
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart items",
		"error":   false,
		"success": true,
		"data":    lines,
	})
}

//
// 🟠 PUT /api/cart/update-qty
//
// Écrase la quantité d'une ligne. La quantité 0 n'est jamais stockée : le
// client appelle delete à la place quand il décrémente vers zéro.
func UpdateCartItemQty(c *gin.Context) {
	userOID, ok := callerObjectID(c)
	if !ok {
		return
	}

	var input struct {
		ID  string `json:"_id" binding:"required"`
		Qty int    `json:"qty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide _id and qty", "error": true, "success": false})
		return
	}

	if input.Qty < models.CartQtyMin || input.Qty > models.CartQtyMax {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Quantity must be between 1 and 100", "error": true, "success": false})
		return
	}

	lineOID, err := primitive.ObjectIDFromHex(input.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid _id", "error": true, "success": false})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Le filtre sur userId garantit qu'on ne touche jamais la ligne d'un
	// autre utilisateur — elle apparaît simplement introuvable.
	res, err := database.CartProducts().UpdateOne(ctx,
		bson.M{"_id": lineOID, "userId": userOID},
		bson.M{"$set": bson.M{"quantity": input.Qty, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update cart item", "error": true, "success": false})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Cart item not found", "error": true, "success": false})
		return
	}

	notifyCartChanged(ctx, c.GetString("user_id"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated",
		"error":   false,
		"success": true,
	})
}

//
// ❌ DELETE /api/cart/delete-cart-item
//
func DeleteCartItem(c *gin.Context) {
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

	lineOID, err := primitive.ObjectIDFromHex(input.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid _id", "error": true, "success": false})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := database.CartProducts().DeleteOne(ctx, bson.M{"_id": lineOID, "userId": userOID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to remove cart item", "error": true, "success": false})
		return
	}
	if res.DeletedCount == 0 {
		// Déjà supprimée : le client traite ce cas comme un succès
		c.JSON(http.StatusNotFound, gin.H{"message": "Cart item not found", "error": true, "success": false})
		return
	}

	notifyCartChanged(ctx, c.GetString("user_id"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed",
		"error":   false,
		"success": true,
	})
}
