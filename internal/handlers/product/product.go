package product

import (
	"context"
	"net/http"
	"time"

	"blinkeyit_back_end/internal/cache"
	"blinkeyit_back_end/internal/database"
	"blinkeyit_back_end/internal/models"
	"blinkeyit_back_end/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ================== PRODUITS ==================

// POST /api/product/create (admin)
func CreateProduct(c *gin.Context) {
	var input struct {
		Name        string   `json:"name" binding:"required"`
		Image       []string `json:"image" binding:"required,min=1"`
		Category    []string `json:"category" binding:"required,min=1"`
		SubCategory []string `json:"subCategory"`
		Unit        string   `json:"unit" binding:"required"`
		Stock       int      `json:"stock" binding:"min=0"`
		Price       float64  `json:"price" binding:"required,gt=0"`
		Discount    float64  `json:"discount" binding:"min=0,max=100"`
		Description string   `json:"description" binding:"required"`
		MoreDetails map[string]string `json:"more_details"`
		Publish     *bool             `json:"publish"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide all required product fields", "error": true, "success": false})
		return
	}

	categoryOIDs, ok := parseObjectIDs(input.Category)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category id", "error": true, "success": false})
		return
	}
	subCategoryOIDs, ok := parseObjectIDs(input.SubCategory)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid subcategory id", "error": true, "success": false})
		return
	}

	publish := true
	if input.Publish != nil {
		publish = *input.Publish
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	p := models.Product{
		ID:          primitive.NewObjectID(),
		Name:        input.Name,
		Image:       input.Image,
		Category:    categoryOIDs,
		SubCategory: subCategoryOIDs,
		Unit:        input.Unit,
		Stock:       input.Stock,
		Price:       input.Price,
		Discount:    input.Discount,
		Description: input.Description,
		MoreDetails: input.MoreDetails,
		Publish:     publish,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := database.Products().InsertOne(ctx, p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create product", "error": true, "success": false})
		return
	}

	// Indexation asynchrone : Elastic ne doit pas bloquer la création
	go service.IndexProduct(p)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"error":   false,
		"success": true,
		"data":    p,
	})
}

// POST /api/product/get
//
// Pagination à la Mongoose : {page, limit, search} dans le body.
func GetProducts(c *gin.Context) {
	var input struct {
		Page   int    `json:"page"`
		Limit  int    `json:"limit"`
		Search string `json:"search"`
	}
	_ = c.ShouldBindJSON(&input)

	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 || input.Limit > 100 {
		input.Limit = 10
	}

	filter := bson.M{"publish": true}
	if input.Search != "" {
		filter["$text"] = bson.M{"$search": input.Search}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	total, err := database.Products().CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to count products", "error": true, "success": false})
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((input.Page - 1) * input.Limit)).
		SetLimit(int64(input.Limit))

	cursor, err := database.Products().Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch products", "error": true, "success": false})
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to decode products", "error": true, "success": false})
		return
	}

	totalPages := (total + int64(input.Limit) - 1) / int64(input.Limit)

	c.JSON(http.StatusOK, gin.H{
		"message":     "Product list",
		"error":       false,
		"success":     true,
		"totalCount":  total,
		"totalNoPage": totalPages,
		"data":        products,
	})
}

// POST /api/product/get-product-by-category
func GetProductsByCategory(c *gin.Context) {
	var input struct {
		ID string `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide category id", "error": true, "success": false})
		return
	}

	categoryOID, err := primitive.ObjectIDFromHex(input.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category id", "error": true, "success": false})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(15)
	cursor, err := database.Products().Find(ctx, bson.M{"category": categoryOID, "publish": true}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch products", "error": true, "success": false})
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to decode products", "error": true, "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category product list",
		"error":   false,
		"success": true,
		"data":    products,
	})
}

// POST /api/product/get-product-details
func GetProductDetails(c *gin.Context) {
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

	p, err := cache.GetProductFromCache(ctx, productOID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found", "error": true, "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product details",
		"error":   false,
		"success": true,
		"data":    p,
	})
}

// PUT /api/product/update-product-details (admin)
func UpdateProductDetails(c *gin.Context) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "error": true, "success": false})
		return
	}
	id, _ := raw["_id"].(string)
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide _id", "error": true, "success": false})
		return
	}

	productOID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid _id", "error": true, "success": false})
		return
	}

	// Seuls les champs du modèle sont modifiables, _id exclu
	allowed := map[string]bool{
		"name": true, "image": true, "unit": true, "stock": true,
		"price": true, "discount": true, "description": true,
		"more_details": true, "publish": true,
	}
	update := bson.M{"updatedAt": time.Now()}
	for key, value := range raw {
		if allowed[key] {
			update[key] = value
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := database.Products().UpdateOne(ctx, bson.M{"_id": productOID}, bson.M{"$set": update})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update product", "error": true, "success": false})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found", "error": true, "success": false})
		return
	}

	cache.InvalidateProductCache(ctx, productOID)

	// Réindexe la version à jour
	var updated models.Product
	if err := database.Products().FindOne(ctx, bson.M{"_id": productOID}).Decode(&updated); err == nil {
		go service.IndexProduct(updated)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"error":   false,
		"success": true,
	})
}

// DELETE /api/product/delete-product (admin)
func DeleteProduct(c *gin.Context) {
	var input struct {
		ID string `json:"_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide _id", "error": true, "success": false})
		return
	}

	productOID, err := primitive.ObjectIDFromHex(input.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid _id", "error": true, "success": false})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := database.Products().DeleteOne(ctx, bson.M{"_id": productOID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete product", "error": true, "success": false})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found", "error": true, "success": false})
		return
	}

	// Les lignes de panier qui pointaient ce produit deviennent muettes :
	// elles sont filtrées à la lecture et purgées ici.
	database.CartProducts().DeleteMany(ctx, bson.M{"productId": productOID})

	cache.InvalidateProductCache(ctx, productOID)
	go service.DeleteProductIndex(productOID.Hex())

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
		"error":   false,
		"success": true,
	})
}
