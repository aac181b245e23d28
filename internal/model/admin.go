package model

import "time"

// Admin represents an administrator account. Accounts start unverified
// and become verified after OTP confirmation.
type Admin struct {
	ID           int        `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	SecretKey    string     `json:"-"`
	IsVerified   bool       `json:"isVerified"`
	OTP          *string    `json:"-"`
	OTPExpiresAt *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// AdminSignupRequest is the payload for admin registration.
type AdminSignupRequest struct {
	Username  string `json:"username" binding:"required,min=1,max=50"`
	Email     string `json:"email" binding:"required,email,max=255"`
	Password  string `json:"password" binding:"required,min=8,max=20"`
	SecretKey string `json:"secretkey" binding:"required"`
}

// VerifyOTPRequest is the payload for email verification.
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6"`
}

// AdminLoginRequest is the payload for admin authentication.
// Identifier may be a username or an email address.
type AdminLoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required,min=8"`
	SecretKey  string `json:"secretkey" binding:"required"`
}
