package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ============================================================
// Enums
// ============================================================

// User roles
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Verification statuses (shared by users.verification_status and
// verification_requests.status)
const (
	VerificationUnverified = "UNVERIFIED"
	VerificationPending    = "PENDING"
	VerificationApproved   = "APPROVED"
	VerificationRejected   = "REJECTED"
)

// ============================================================
// Auth & Identity Tables
// ============================================================

// User represents users table
type User struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Name               string         `gorm:"size:100" json:"name"`
	Email              string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	HashedPassword     string         `gorm:"size:255" json:"-"`
	Image              string         `gorm:"size:512" json:"image"`
	Bio                string         `gorm:"type:text" json:"bio"`
	Whatsapp           string         `gorm:"size:20" json:"whatsapp"`
	Role               string         `gorm:"size:20;default:'USER'" json:"role"`
	VerificationStatus string         `gorm:"size:20;default:'UNVERIFIED';index" json:"verification_status"`
	EmailVerifiedAt    *time.Time     `json:"email_verified_at"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID                 uint      `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Image              string    `json:"image,omitempty"`
	Bio                string    `json:"bio,omitempty"`
	Whatsapp           string    `json:"whatsapp,omitempty"`
	Role               string    `json:"role"`
	VerificationStatus string    `json:"verification_status"`
	EmailVerified      bool      `json:"email_verified"`
	CreatedAt          time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Image:              u.Image,
		Bio:                u.Bio,
		Whatsapp:           u.Whatsapp,
		Role:               u.Role,
		VerificationStatus: u.VerificationStatus,
		EmailVerified:      u.EmailVerifiedAt != nil,
		CreatedAt:          u.CreatedAt,
	}
}

// OtpCode represents otp_codes table (email verification codes)
type OtpCode struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Email     string    `gorm:"size:100;not null;index" json:"email"`
	Code      string    `gorm:"size:6;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}

func (OtpCode) TableName() string {
	return "otp_codes"
}

func (o *OtpCode) IsExpired() bool {
	return time.Now().After(o.ExpiresAt)
}

// ============================================================
// Verification Tables
// ============================================================

// VerificationRequest represents verification_requests table.
// A row is immutable after creation except for Status and
// RejectionNote; a user accumulates a new row per resubmission.
type VerificationRequest struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"index;not null" json:"user_id"`
	FullName      string    `gorm:"size:100;not null" json:"full_name"`
	Institution   string    `gorm:"size:100;not null" json:"institution"`
	MatricOrNysc  string    `gorm:"size:50;not null" json:"matric_or_nysc"`
	Whatsapp      string    `gorm:"size:20;not null" json:"whatsapp"`
	IDImageURL    string    `gorm:"size:512;not null" json:"id_image_url"`
	Status        string    `gorm:"size:20;default:'PENDING';index" json:"status"`
	RejectionNote string    `gorm:"type:text" json:"rejection_note,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	User          *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (VerificationRequest) TableName() string {
	return "verification_requests"
}

func (r *VerificationRequest) IsTerminal() bool {
	return r.Status == VerificationApproved || r.Status == VerificationRejected
}

// VerificationRequestResponse DTO (admin review list)
type VerificationRequestResponse struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	FullName      string    `json:"full_name"`
	Institution   string    `json:"institution"`
	MatricOrNysc  string    `json:"matric_or_nysc"`
	Whatsapp      string    `json:"whatsapp"`
	IDImageURL    string    `json:"id_image_url"`
	Status        string    `json:"status"`
	RejectionNote string    `json:"rejection_note,omitempty"`
	UserName      string    `json:"user_name,omitempty"`
	UserEmail     string    `json:"user_email,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (r *VerificationRequest) ToResponse() *VerificationRequestResponse {
	resp := &VerificationRequestResponse{
		ID:            r.ID,
		UserID:        r.UserID,
		FullName:      r.FullName,
		Institution:   r.Institution,
		MatricOrNysc:  r.MatricOrNysc,
		Whatsapp:      r.Whatsapp,
		IDImageURL:    r.IDImageURL,
		Status:        r.Status,
		RejectionNote: r.RejectionNote,
		CreatedAt:     r.CreatedAt,
	}

	if r.User != nil {
		resp.UserName = r.User.Name
		resp.UserEmail = r.User.Email
	}

	return resp
}

// ============================================================
// Marketplace & Directory Tables
// ============================================================

// Product represents products table (marketplace listings)
type Product struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Title          string         `gorm:"size:150;not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	Price          float64        `gorm:"type:decimal(15,2);not null" json:"price"`
	Category       string         `gorm:"size:50;index" json:"category"`
	Location       string         `gorm:"size:100" json:"location"`
	Condition      string         `gorm:"size:50" json:"condition"`
	Images         datatypes.JSON `json:"images"`
	WhatsappNumber string         `gorm:"size:20" json:"whatsapp_number"`
	IsSold         bool           `gorm:"default:false" json:"is_sold"`
	SellerID       uint           `gorm:"index;not null" json:"seller_id"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	Seller         *User          `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// Business represents businesses table (brand directory)
type Business struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Category    string         `gorm:"size:50;index" json:"category"`
	Whatsapp    string         `gorm:"size:20" json:"whatsapp"`
	Instagram   string         `gorm:"size:100" json:"instagram"`
	Logo        string         `gorm:"size:512" json:"logo"`
	Banner      string         `gorm:"size:512" json:"banner"`
	OwnerID     uint           `gorm:"index;not null" json:"owner_id"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Owner       *User          `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

func (Business) TableName() string {
	return "businesses"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&OtpCode{},
		&VerificationRequest{},
		&Product{},
		&Business{},
	)
}
