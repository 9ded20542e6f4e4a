package product

import (
	"net/http"
	"strconv"

	"blinkeyit_back_end/internal/service"

	"github.com/gin-gonic/gin"
)

// GET /api/product/search-product?q=...&limit=...
//
// Recherche plein texte via Elasticsearch (fuzzy sur nom, description,
// unité). Si Elastic est indisponible, on renvoie 503 : le front retombe
// sur la recherche Mongo paginée de GetProducts.
func SearchProduct(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide search query q", "error": true, "success": false})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	products, err := service.SearchProducts(query, limit)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Search is temporarily unavailable", "error": true, "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Search results",
		"error":   false,
		"success": true,
		"data":    products,
	})
}
