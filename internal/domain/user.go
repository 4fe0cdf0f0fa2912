package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Perfis de acesso
const (
	RoleAdmin   = 1
	RoleManager = 2
	RoleSales   = 3
	RoleService = 4
	RoleDealer  = 5
)

var roleNames = map[int]string{
	RoleAdmin:   "admin",
	RoleManager: "manager",
	RoleSales:   "sales",
	RoleService: "service",
	RoleDealer:  "dealer",
}

func RoleName(roleID int) string {
	if name, ok := roleNames[roleID]; ok {
		return name
	}
	return "unknown"
}

func ValidRole(roleID int) bool {
	_, ok := roleNames[roleID]
	return ok
}

type User struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Lastname     string     `json:"lastname"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"password,omitempty"`
	Active       bool       `json:"active"`
	RoleID       int        `json:"role_id"`
	DealerID     *string    `json:"dealer_id"`
	AvatarURL    *string    `json:"avatar_url"`
	Deleted      bool       `json:"deleted"`
	DeletedAt    *time.Time `json:"deleted_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type UpdateUserRequest struct {
	ID        int     `json:"id"`
	Name      *string `json:"name"`
	Lastname  *string `json:"lastname"`
	Email     *string `json:"email"`
	Active    *bool   `json:"active"`
	RoleID    *int    `json:"role_id"`
	DealerID  *string `json:"dealer_id"`
	AvatarURL *string `json:"avatar_url"`
	Deleted   *bool   `json:"deleted"`
}

type Claims struct {
	UserID        int
	UserName      string
	UserLastname  string
	UserEmail     string
	UserActive    bool
	UserRoleID    int
	UserDealerID  *string
	UserAvatarURL *string
	jwt.RegisteredClaims
}
