package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"blinkeyit_back_end/internal/database"
	"blinkeyit_back_end/internal/models"
	"blinkeyit_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InitOAuthProviders configure goth. Google seulement pour l'instant,
// les autres providers s'ajoutent ici.
func InitOAuthProviders() {
	store := sessions.NewCookieStore([]byte(os.Getenv("SESSION_SECRET")))
	store.MaxAge(300)
	store.Options.HttpOnly = true
	store.Options.Secure = os.Getenv("GIN_MODE") == "release"
	gothic.Store = store

	goth.UseProviders(
		google.New(
			os.Getenv("GOOGLE_CLIENT_ID"),
			os.Getenv("GOOGLE_CLIENT_SECRET"),
			os.Getenv("GOOGLE_REDIRECT_URL"),
			"email", "profile",
		),
	)
}

// withProvider injecte le nom du provider dans la requête pour gothic.
func withProvider(c *gin.Context) bool {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provider is required", "error": true, "success": false})
		return false
	}
	q := c.Request.URL.Query()
	q.Set("provider", provider)
	c.Request.URL.RawQuery = q.Encode()
	return true
}

// GET /api/user/auth/:provider
func BeginAuth(c *gin.Context) {
	if !withProvider(c) {
		return
	}
	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// GET /api/user/auth/:provider/callback
//
// Trouve ou crée l'utilisateur local à partir du profil OAuth, pose les
// cookies JWT puis redirige vers le front.
func CallbackAuth(c *gin.Context) {
	if !withProvider(c) {
		return
	}

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "OAuth authentication failed", "error": true, "success": false})
		return
	}
	if gothUser.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "OAuth provider did not return an email", "error": true, "success": false})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err = database.Users().FindOne(ctx, bson.M{"email": gothUser.Email}).Decode(&user)
	if err != nil {
		// Premier passage : création du compte sans mot de passe local
		now := time.Now()
		user = models.User{
			ID:        primitive.NewObjectID(),
			Name:      gothUser.Name,
			Email:     gothUser.Email,
			Avatar:    gothUser.AvatarURL,
			Status:    "Active",
			Role:      "USER",
			Provider:  gothUser.Provider,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := database.Users().InsertOne(ctx, user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create user", "error": true, "success": false})
			return
		}
	}

	if user.Status != "Active" {
		c.JSON(http.StatusForbidden, gin.H{"message": "Account is not active, contact support", "error": true, "success": false})
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

	now := time.Now()
	database.Users().UpdateOne(ctx, bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"refresh_token": refreshToken, "last_login_date": now, "updatedAt": now}})

	secure := os.Getenv("GIN_MODE") == "release"
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie("accessToken", accessToken, int(utils.AccessTokenTTL.Seconds()), "/", "", secure, true)
	c.SetCookie("refreshToken", refreshToken, int(utils.RefreshTokenTTL.Seconds()), "/", "", secure, true)

	c.Redirect(http.StatusFound, os.Getenv("FRONTEND_URL"))
}
