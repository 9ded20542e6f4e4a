package user

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"blinkeyit_back_end/internal/database"
	"blinkeyit_back_end/internal/models"
	"blinkeyit_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

const otpValidity = 10 * time.Minute

// ================== MOT DE PASSE OUBLIÉ ==================

// PUT /api/user/forgot-password
//
// Envoie un OTP à 6 chiffres par e-mail. La réponse est identique que le
// compte existe ou non, pour ne pas exposer la base d'emails.
func ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide a valid email", "error": true, "success": false})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	neutral := gin.H{
		"message": "If the account exists, a reset code has been sent",
		"error":   false,
		"success": true,
	}

	var user models.User
	if err := database.Users().FindOne(ctx, bson.M{"email": input.Email}).Decode(&user); err != nil {
		c.JSON(http.StatusOK, neutral)
		return
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate reset code", "error": true, "success": false})
		return
	}

	expiry := time.Now().Add(otpValidity)
	database.Users().UpdateOne(ctx, bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"forgot_password_otp": otp, "forgot_password_expiry": expiry, "updatedAt": time.Now()}})

	html := fmt.Sprintf(`<p>Hi %s,</p><p>Your Blinkey It password reset code is <strong>%s</strong>. It expires in 10 minutes.</p>`, user.Name, otp)
	go func() {
		if err := utils.SendEmail(user.Email, "Your password reset code", html, nil); err != nil {
			fmt.Println("❌ Erreur envoi e-mail OTP :", err)
		}
	}()

	c.JSON(http.StatusOK, neutral)
}

// ================== RESET MOT DE PASSE ==================

// PUT /api/user/reset-password
func ResetPassword(c *gin.Context) {
	var input struct {
		Email       string `json:"email" binding:"required,email"`
		OTP         string `json:"otp" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide email, otp and newPassword (8 chars min)", "error": true, "success": false})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := database.Users().FindOne(ctx, bson.M{"email": input.Email}).Decode(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid reset code", "error": true, "success": false})
		return
	}

	if !utils.OTPMatches(user.ForgotPasswordOTP, input.OTP) ||
		user.ForgotPasswordExpiry == nil || time.Now().After(*user.ForgotPasswordExpiry) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired reset code", "error": true, "success": false})
		return
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password", "error": true, "success": false})
		return
	}

	// L'OTP est à usage unique : consommé ici, et le refresh token est
	// révoqué pour forcer une reconnexion partout.
	database.Users().UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set":   bson.M{"password": hashed, "refresh_token": "", "updatedAt": time.Now()},
		"$unset": bson.M{"forgot_password_otp": "", "forgot_password_expiry": ""},
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Password updated successfully",
		"error":   false,
		"success": true,
	})
}
