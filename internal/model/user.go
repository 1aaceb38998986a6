package model

import (
	"time"

	"github.com/google/uuid"
)

// User roles form a closed set; anything else is rejected at binding time.
const (
	RoleAdmin        = "admin"
	RoleDoctor       = "doctor"
	RoleNurse        = "nurse"
	RoleReceptionist = "receptionist"
	RoleStaff        = "staff"
)

// User represents a staff identity. Immutable after registration except IsActive.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	FullName     string    `json:"full_name" db:"full_name"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// RegisterRequest represents user registration parameters
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=admin doctor nurse receptionist staff"`
	FullName string `json:"full_name" binding:"required"`
}

// LoginRequest represents login parameters
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned on successful login
type LoginResponse struct {
	Token    string    `json:"token"`
	Role     string    `json:"role"`
	UserID   uuid.UUID `json:"user_id"`
	FullName string    `json:"full_name"`
}
