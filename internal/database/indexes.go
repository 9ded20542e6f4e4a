package database

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// indexSpecs décrit les index de chaque collection. Séparé de la création
// pour rester vérifiable sans connexion Mongo.
func indexSpecs() map[string][]mongo.IndexModel {
	unique := options.Index().SetUnique(true)

	// Unique seulement quand le champ existe : les commandes payées à la
	// livraison n'ont pas de sessionId et ne doivent pas entrer en conflit
	// entre elles.
	uniqueSession := options.Index().
		SetUnique(true).
		SetPartialFilterExpression(bson.D{{Key: "sessionId", Value: bson.D{{Key: "$exists", Value: true}}}})

	return map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "role", Value: 1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		"products": {
			{Keys: bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
			{Keys: bson.D{{Key: "subCategory", Value: 1}}},
			{Keys: bson.D{{Key: "price", Value: 1}}},
			{Keys: bson.D{{Key: "publish", Value: 1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		"categories": {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		},
		"subcategories": {
			{Keys: bson.D{{Key: "name", Value: 1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
		"cartproducts": {
			{Keys: bson.D{{Key: "userId", Value: 1}}},
			{Keys: bson.D{{Key: "productId", Value: 1}}},
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "productId", Value: 1}}, Options: unique},
		},
		"orders": {
			{Keys: bson.D{{Key: "userId", Value: 1}}},
			{Keys: bson.D{{Key: "orderId", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "sessionId", Value: 1}}, Options: uniqueSession},
			{Keys: bson.D{{Key: "payment_status", Value: 1}}},
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		"addresses": {
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		},
	}
}

// EnsureIndexes crée les index de toutes les collections au démarrage.
// Deux index portent la sûreté concurrente du système : l'unique
// (userId, productId) sur cartproducts transforme un double ajout simultané
// en conflit en base, et l'unique partiel sur orders.sessionId fait de même
// pour la course verify/webhook sur une même session de paiement.
func EnsureIndexes(ctx context.Context) error {
	for name, models := range indexSpecs() {
		if _, err := MongoDB.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}

	log.Println("✅ Index MongoDB créés")
	return nil
}
