package entity

import "time"

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

type User struct {
	Base
	Username              string     `db:"username"`
	Email                 string     `db:"email"`
	FirstName             *string    `db:"first_name"`
	LastName              *string    `db:"last_name"`
	Bio                   *string    `db:"bio"`
	Role                  UserRole   `db:"role"`
	IsSuperuser           bool       `db:"is_superuser"`
	ConfirmationCodeHash  *string    `db:"confirmation_code_hash"`
	ConfirmationExpiresAt *time.Time `db:"confirmation_expires_at"`
}
