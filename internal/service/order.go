package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"blinkeyit_back_end/internal/database"
	"blinkeyit_back_end/internal/models"
	"blinkeyit_back_end/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrEmptyCart : impossible de finaliser une commande sans ligne de panier.
var ErrEmptyCart = errors.New("panier vide")

// CartTotals recharge les lignes du panier avec les produits courants et
// calcule les montants : sous-total au prix catalogue, total remisé.
func CartTotals(ctx context.Context, userOID primitive.ObjectID) ([]models.OrderItem, float64, float64, error) {
	cursor, err := database.CartProducts().Find(ctx, bson.M{"userId": userOID})
	if err != nil {
		return nil, 0, 0, err
	}
	defer cursor.Close(ctx)

	var stored []models.CartProduct
	if err := cursor.All(ctx, &stored); err != nil {
		return nil, 0, 0, err
	}
	if len(stored) == 0 {
		return nil, 0, 0, ErrEmptyCart
	}

	var items []models.OrderItem
	var subTotal, total float64

	for _, line := range stored {
		var product models.Product
		if err := database.Products().FindOne(ctx, bson.M{"_id": line.ProductID}).Decode(&product); err != nil {
			// Produit retiré du catalogue entre l'ajout et le paiement
			continue
		}

		image := ""
		if len(product.Image) > 0 {
			image = product.Image[0]
		}

		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Image:     image,
			Quantity:  line.Quantity,
			Price:     product.PriceAfterDiscount(),
		})
		subTotal += product.Price * float64(line.Quantity)
		total += product.PriceAfterDiscount() * float64(line.Quantity)
	}

	if len(items) == 0 {
		return nil, 0, 0, ErrEmptyCart
	}
	return items, subTotal, total, nil
}

// FinalizeOrder crée la commande à partir du panier courant puis vide le
// panier. Appelé par le paiement Stripe vérifié, le webhook et le paiement
// à la livraison — c'est le seul chemin de création de commande.
func FinalizeOrder(ctx context.Context, userOID, addressOID primitive.ObjectID, sessionID, paymentID, paymentStatus string) (models.Order, error) {
	items, subTotal, total, err := CartTotals(ctx, userOID)
	if err != nil {
		return models.Order{}, err
	}

	now := time.Now()
	order := models.Order{
		ID:            primitive.NewObjectID(),
		UserID:        userOID,
		OrderID:       "ORD-" + uuid.NewString(),
		SessionID:     sessionID,
		ListItems:     items,
		PaymentID:     paymentID,
		PaymentStatus: paymentStatus,
		AddressID:     addressOID,
		SubTotalAmt:   subTotal,
		TotalAmt:      total,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := database.Orders().InsertOne(ctx, order); err != nil {
		// Course verify/webhook sur la même session : l'index unique partiel
		// sur sessionId laisse passer une seule insertion. Le perdant renvoie
		// la commande du gagnant, sans revider le panier ni renvoyer d'e-mail.
		if sessionID != "" && mongo.IsDuplicateKeyError(err) {
			existing, lookupErr := FindOrderBySession(ctx, sessionID)
			if lookupErr == nil && existing != nil {
				return *existing, nil
			}
		}
		return models.Order{}, err
	}

	// Le serveur vide le panier ; le client ne fait que refléter l'état
	// en refaisant un fetch.
	if _, err := database.CartProducts().DeleteMany(ctx, bson.M{"userId": userOID}); err != nil {
		log.Println("❌ Erreur vidage panier après commande:", err)
	}
	database.Redis.Publish(ctx, "cart:"+userOID.Hex(), "updated")

	sendOrderConfirmation(userOID, order)

	return order, nil
}

// FindOrderBySession retourne la commande déjà créée pour une session de
// paiement — la clé de l'idempotence de la vérification. (nil, nil) quand
// aucune commande n'existe ; une erreur signale une vraie panne Mongo, que
// l'appelant ne doit pas confondre avec une absence.
func FindOrderBySession(ctx context.Context, sessionID string) (*models.Order, error) {
	var order models.Order
	err := database.Orders().FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// sendOrderConfirmation envoie l'e-mail de confirmation hors du chemin de
// la requête.
func sendOrderConfirmation(userOID primitive.ObjectID, order models.Order) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var user models.User
		if err := database.Users().FindOne(ctx, bson.M{"_id": userOID}).Decode(&user); err != nil {
			log.Println("❌ Utilisateur introuvable pour l'e-mail de confirmation:", err)
			return
		}

		qr, err := utils.GenerateOrderTrackingQR(order.OrderID)
		if err != nil {
			log.Println("❌ Erreur génération QR :", err)
			qr = nil
		}

		html := utils.GenerateOrderConfirmationHTML(order, user.Name)
		subject := fmt.Sprintf("Order %s confirmed", order.OrderID)
		if err := utils.SendEmail(user.Email, subject, html, qr); err != nil {
			log.Println("❌ Erreur envoi e-mail confirmation :", err)
		} else {
			log.Println("📧 E-mail de confirmation envoyé à", user.Email)
		}
	}()
}
