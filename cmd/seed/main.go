package main

import (
	"context"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"blinkeyit_back_end/internal/config"
	"blinkeyit_back_end/internal/database"
	"blinkeyit_back_end/internal/models"
	"blinkeyit_back_end/internal/service"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Importe le catalogue depuis deux CSV :
//
//	categories.csv : name,image
//	products.csv   : name,category,unit,stock,price,discount,description,image
//
// Les imports sont rejouables : les doublons de catégorie sont ignorés et
// les produits sont upsertés par nom.
func main() {
	categoriesPath := flag.String("categories", "data/categories.csv", "CSV des catégories")
	productsPath := flag.String("products", "data/products.csv", "CSV des produits")
	flag.Parse()

	config.Load()
	if err := config.ValidateEnvironment(); err != nil {
		log.Fatal("❌ Configuration invalide : ", err)
	}

	database.ConnectDatabases()
	defer database.CloseMongo()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := database.EnsureIndexes(ctx); err != nil {
		log.Fatal("❌ Erreur création des index : ", err)
	}

	categories := seedCategories(ctx, *categoriesPath)
	seedProducts(ctx, *productsPath, categories)

	log.Println("✅ Import terminé")
}

func readCSV(path string) [][]string {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("❌ Impossible d'ouvrir %s : %v", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("❌ CSV invalide %s : %v", path, err)
	}
	if len(rows) < 2 {
		log.Fatalf("❌ %s ne contient aucune ligne de données", path)
	}
	return rows[1:] // saute l'entête
}

func seedCategories(ctx context.Context, path string) map[string]primitive.ObjectID {
	byName := map[string]primitive.ObjectID{}

	for _, row := range readCSV(path) {
		if len(row) < 1 || row[0] == "" {
			continue
		}
		name := strings.TrimSpace(row[0])
		image := ""
		if len(row) > 1 {
			image = strings.TrimSpace(row[1])
		}

		now := time.Now()
		category := models.Category{
			ID:        primitive.NewObjectID(),
			Name:      name,
			Image:     image,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if _, err := database.Categories().InsertOne(ctx, category); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				var existing models.Category
				if database.Categories().FindOne(ctx, bson.M{"name": name}).Decode(&existing) == nil {
					byName[name] = existing.ID
				}
				continue
			}
			log.Fatalf("❌ Erreur insertion catégorie %s : %v", name, err)
		}

		byName[name] = category.ID
		log.Println("📦 Catégorie créée :", name)
	}
	return byName
}

func seedProducts(ctx context.Context, path string, categories map[string]primitive.ObjectID) {
	count := 0

	for _, row := range readCSV(path) {
		if len(row) < 7 {
			log.Println("⚠️ Ligne produit incomplète ignorée :", row)
			continue
		}

		name := strings.TrimSpace(row[0])
		categoryOID, ok := categories[strings.TrimSpace(row[1])]
		if !ok {
			log.Printf("⚠️ Catégorie inconnue %q pour %s, produit ignoré", row[1], name)
			continue
		}

		stock, _ := strconv.Atoi(strings.TrimSpace(row[3]))
		price, err := strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
		if err != nil || price <= 0 {
			log.Printf("⚠️ Prix invalide pour %s, produit ignoré", name)
			continue
		}
		discount, _ := strconv.ParseFloat(strings.TrimSpace(row[5]), 64)

		var images []string
		if len(row) > 7 && row[7] != "" {
			images = strings.Split(strings.TrimSpace(row[7]), "|")
		}

		now := time.Now()
		p := models.Product{
			ID:          primitive.NewObjectID(),
			Name:        name,
			Image:       images,
			Category:    []primitive.ObjectID{categoryOID},
			Unit:        strings.TrimSpace(row[2]),
			Stock:       stock,
			Price:       price,
			Discount:    discount,
			Description: strings.TrimSpace(row[6]),
			Publish:     true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		// Upsert par nom : rejouer l'import rafraîchit le catalogue
		filter := bson.M{"name": name}
		update := bson.M{
			"$set": bson.M{
				"image": p.Image, "category": p.Category, "unit": p.Unit,
				"stock": p.Stock, "price": p.Price, "discount": p.Discount,
				"description": p.Description, "publish": true, "updatedAt": now,
			},
			"$setOnInsert": bson.M{"_id": p.ID, "name": p.Name, "createdAt": now},
		}
		opts := options.Update().SetUpsert(true)
		if _, err := database.Products().UpdateOne(ctx, filter, update, opts); err != nil {
			log.Printf("⚠️ Erreur upsert produit %s : %v", name, err)
			continue
		}

		// Relecture pour indexer le document effectif (id existant inclus)
		if err := database.Products().FindOne(ctx, filter).Decode(&p); err != nil {
			log.Printf("⚠️ Produit %s introuvable après upsert : %v", name, err)
			continue
		}

		service.IndexProduct(p)
		count++
	}

	log.Printf("📦 %d produits importés", count)
}
