package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username              string    `gorm:"column:username;size:20;uniqueIndex;not null" json:"username"`
	Email                 string    `gorm:"column:email;size:120;uniqueIndex;not null" json:"email"`
	PasswordHash          string    `gorm:"column:password_hash;size:255;not null" json:"-"`
	EmailVerified         bool      `gorm:"column:email_verified;default:false" json:"email_verified"`
	VerificationCode      string    `gorm:"column:verification_code;size:6" json:"-"`
	VerificationExpiry    time.Time `gorm:"column:verification_expiry" json:"-"`
	Refresh               string    `gorm:"column:refresh_token;size:255" json:"-"`
	RefreshTokenExpiredAt time.Time `gorm:"column:refresh_token_expired_at" json:"-"`

	Transactions []Transaction `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"transactions,omitempty"`
	Goals        []Goal        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"goals,omitempty"`
}
