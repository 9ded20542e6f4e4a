package user

import (
	"context"
	"net/http"
	"os"
	"time"

	"blinkeyit_back_end/internal/database"
	"blinkeyit_back_end/internal/models"
	"blinkeyit_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// setAuthCookies pose les deux jetons en cookies httpOnly ; le front peut
// aussi utiliser les valeurs renvoyées dans le body en mode Bearer.
func setAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	secure := os.Getenv("GIN_MODE") == "release"
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie("accessToken", accessToken, int(utils.AccessTokenTTL.Seconds()), "/", "", secure, true)
	c.SetCookie("refreshToken", refreshToken, int(utils.RefreshTokenTTL.Seconds()), "/", "", secure, true)
}

// ================== INSCRIPTION ==================

// POST /api/user/register
func RegisterUser(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide name, email and password", "error": true, "success": false})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password", "error": true, "success": false})
		return
	}

	now := time.Now()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		Email:     input.Email,
		Password:  hashed,
		Status:    "Active",
		Role:      "USER",
		Provider:  "local",
		CreatedAt: now,
		UpdatedAt: now,
	}

	// L'index unique sur email transforme la course entre deux inscriptions
	// en erreur de clé dupliquée.
	if _, err := database.Users().InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"message": "Email already registered", "error": true, "success": false})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register user", "error": true, "success": false})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"error":   false,
		"success": true,
		"data":    user,
	})
}

// ================== CONNEXION ==================

// POST /api/user/login
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide email and password", "error": true, "success": false})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := database.Users().FindOne(ctx, bson.M{"email": input.Email}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password", "error": true, "success": false})
		return
	}

	if user.Status != "Active" {
		c.JSON(http.StatusForbidden, gin.H{"message": "Account is not active, contact support", "error": true, "success": false})
		return
	}

	match, err := utils.VerifyPassword(input.Password, user.Password)
	if err != nil || !match {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password", "error": true, "success": false})
		return
	}

	accessToken, err := utils.GenerateAccessToken(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to issue token", "error": true, "success": false})
		return
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID.Hex())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to issue token", "error": true, "success": false})
		return
	}

	// Le refresh token vit aussi en base pour pouvoir être révoqué
	now := time.Now()
	database.Users().UpdateOne(ctx, bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"refresh_token": refreshToken, "last_login_date": now, "updatedAt": now}})

	setAuthCookies(c, accessToken, refreshToken)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"error":   false,
		"success": true,
		"data": gin.H{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		},
	})
}

// ================== REFRESH TOKEN ==================

// POST /api/user/refresh-token
func RefreshToken(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refreshToken"`
	}
	_ = c.ShouldBindJSON(&input)

	tokenString := input.RefreshToken
	if tokenString == "" {
		if cookie, err := c.Cookie("refreshToken"); err == nil {
			tokenString = cookie
		}
	}
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Missing refresh token", "error": true, "success": false})
		return
	}

	claims, err := utils.ParseToken(tokenString, os.Getenv("JWT_REFRESH_SECRET"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired refresh token", "error": true, "success": false})
		return
	}

	userID, _ := claims["user_id"].(string)
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid refresh token", "error": true, "success": false})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := database.Users().FindOne(ctx, bson.M{"_id": userOID}).Decode(&user); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found", "error": true, "success": false})
		return
	}

	// Un jeton révoqué (logout) ne correspond plus à celui en base
	if user.RefreshToken != tokenString {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Refresh token revoked", "error": true, "success": false})
		return
	}

	accessToken, err := utils.GenerateAccessToken(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to issue token", "error": true, "success": false})
		return
	}

	secure := os.Getenv("GIN_MODE") == "release"
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie("accessToken", accessToken, int(utils.AccessTokenTTL.Seconds()), "/", "", secure, true)

	c.JSON(http.StatusOK, gin.H{
		"message": "New access token issued",
		"error":   false,
		"success": true,
		"data":    gin.H{"accessToken": accessToken},
	})
}

// ================== DÉCONNEXION ==================

// GET /api/user/logout
func Logout(c *gin.Context) {
	userOID, ok := callerObjectID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Révoque le refresh token côté serveur
	database.Users().UpdateOne(ctx, bson.M{"_id": userOID},
		bson.M{"$set": bson.M{"refresh_token": "", "updatedAt": time.Now()}})

	c.SetCookie("accessToken", "", -1, "/", "", false, true)
	c.SetCookie("refreshToken", "", -1, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"message": "Logout successful",
		"error":   false,
		"success": true,
	})
}

// ================== DÉTAILS UTILISATEUR ==================

// GET /api/user/user-details
func UserDetails(c *gin.Context) {
	userOID, ok := callerObjectID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := database.Users().FindOne(ctx, bson.M{"_id": userOID}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found", "error": true, "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User details",
		"error":   false,
		"success": true,
		"data":    user,
	})
}
