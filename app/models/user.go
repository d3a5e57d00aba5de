package models

import "time"

// Role is the authorization level of a user.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleManager Role = "Manager"
	RoleClerk   Role = "Clerk"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleClerk:
		return true
	}
	return false
}

// User is a row of the credential store.
type User struct {
	ID           uint      `gorm:"primaryKey"                       json:"id"`
	Username     string    `gorm:"size:100;uniqueIndex;not null"    json:"username"`
	PasswordHash string    `gorm:"column:password;size:255;not null" json:"-"` // never serialised
	Role         Role      `gorm:"size:20;not null;default:Clerk"   json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RegisterInput is the body of POST /api/auth/register and POST /api/users.
type RegisterInput struct {
	Username string `json:"username" validate:"required,alpha_dash,min=3,max=100"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     Role   `json:"role"     validate:"nullable,in=Admin,Manager,Clerk"`
}

// LoginInput is the body of POST /api/auth/login.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserPatch is the body of PUT /api/users/{id}.
type UserPatch struct {
	Username *string `json:"username" validate:"nullable,alpha_dash,min=3,max=100"`
	Role     *Role   `json:"role"     validate:"nullable,in=Admin,Manager,Clerk"`
}

// Apply merges the provided fields into u.
func (p UserPatch) Apply(u *User) {
	u.Username = Merge(p.Username, u.Username)
	u.Role = Merge(p.Role, u.Role)
}
