package models

import "time"

// RoleType is the role carried in JWT claims
type RoleType string

const (
	// RoleOfficer is the only role; every account is an OSAS officer
	RoleOfficer RoleType = "OFFICER"
)

// User defines an officer account based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	Username    string     `json:"username" db:"username" example:"osas_officer"`
	Password    string     `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	FullName    string     `json:"fullName" db:"full_name" example:"Jane Cruz"`
	RoleType    RoleType   `json:"roleType" db:"role_type" example:"OFFICER"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
}
