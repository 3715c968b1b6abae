package models

import (
	"time"
)

// Roles a user can hold. Authorization compares them literally, admin does not imply client.
const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

// User represents an account, either a client or an administrator
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"not null" json:"username"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	Role        string    `gorm:"not null;default:client;index" json:"role"`
	Phone       string    `json:"phone"`
	AvatarURL   string    `json:"avatar_url"`
	TotalOrders int       `gorm:"default:0" json:"total_orders"`
	TotalSpent  float64   `gorm:"default:0" json:"total_spent"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PublicUser is the subset of a user exposed alongside orders
type PublicUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// Public returns the owner fields shown in admin order listings
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Phone:    u.Phone,
	}
}

// IsValidRole reports whether role is one of the known roles
func IsValidRole(role string) bool {
	return role == RoleClient || role == RoleAdmin
}
