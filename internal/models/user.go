package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role controls what an account may do with the garage log.
type Role string

const (
	// RoleAdmin manages accounts on top of everything an owner can do.
	RoleAdmin Role = "admin"
	// RoleOwner maintains vehicles and logs fuel and maintenance events.
	RoleOwner Role = "owner"
	// RoleViewer is a read-only account, e.g. a household member who only
	// checks reports.
	RoleViewer Role = "viewer"
)

// Actions checked by the permission middleware. They map onto the mounted
// route groups rather than individual endpoints.
const (
	ActionViewVehicles   = "view_vehicles"
	ActionViewReports    = "view_reports"
	ActionManageVehicles = "manage_vehicles"
	ActionLogEvents      = "log_events"
	ActionManageUsers    = "manage_users"
)

// User represents an account in the system
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         Role               `bson:"role" json:"role"`
	FirstName    string             `bson:"first_name" json:"first_name"`
	LastName     string             `bson:"last_name" json:"last_name"`
	IsActive     bool               `bson:"is_active" json:"is_active"`
	LastLogin    *time.Time         `bson:"last_login,omitempty" json:"last_login,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      Role   `json:"role"`
}

// LoginResponse represents a successful login or registration response
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Claims represents JWT claims
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Exp      int64  `json:"exp"`
}

// IsValidRole checks if a role is valid
func IsValidRole(role Role) bool {
	switch role {
	case RoleAdmin, RoleOwner, RoleViewer:
		return true
	default:
		return false
	}
}

// Can reports whether the role is allowed to perform the given action.
func (r Role) Can(action string) bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleOwner:
		return action != ActionManageUsers
	case RoleViewer:
		return action == ActionViewVehicles || action == ActionViewReports
	default:
		return false
	}
}
