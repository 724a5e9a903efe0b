package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Roles assignable to a user. SuperAdmin satisfies every role requirement,
// Admin does not satisfy SuperAdmin-only endpoints.
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// User holds the structure for the users collection in mongo. The password
// hash is never serialized in responses.
type User struct {
	UserID    string             `json:"user_id" bson:"user_id"`
	Username  string             `json:"username" bson:"username"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"`
	Role      string             `json:"role" bson:"role"`
	CreatedAt primitive.DateTime `json:"created_at" bson:"created_at"`
}
