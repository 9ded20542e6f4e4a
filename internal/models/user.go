package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID                   primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name                 string             `json:"name" bson:"name"`
	Email                string             `json:"email" bson:"email"`
	Password             string             `json:"-" bson:"password"`
	Avatar               string             `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Mobile               string             `json:"mobile,omitempty" bson:"mobile,omitempty"`
	RefreshToken         string             `json:"-" bson:"refresh_token,omitempty"`
	VerifyEmail          bool               `json:"verify_email" bson:"verify_email"`
	LastLoginDate        *time.Time         `json:"last_login_date,omitempty" bson:"last_login_date,omitempty"`
	Status               string             `json:"status" bson:"status"` // Active | Inactive | Suspended
	Role                 string             `json:"role" bson:"role"`     // USER | ADMIN
	Provider             string             `json:"provider,omitempty" bson:"provider,omitempty"`
	ForgotPasswordOTP    string             `json:"-" bson:"forgot_password_otp,omitempty"`
	ForgotPasswordExpiry *time.Time         `json:"-" bson:"forgot_password_expiry,omitempty"`
	CreatedAt            time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time          `json:"updatedAt" bson:"updatedAt"`
}
