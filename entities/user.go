package entities

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleBuyer     UserRole = "buyer"
	UserRoleOrganizer UserRole = "organizer"
	UserRoleAdmin     UserRole = "admin"
)

type User struct {
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	WalletAddress string    `json:"wallet_address" db:"wallet_address"`
	DisplayName   *string   `json:"display_name,omitempty" db:"display_name"`
	Email         *string   `json:"email,omitempty" db:"email"`
	Role          UserRole  `json:"role" db:"role"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
