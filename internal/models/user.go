package models

// User represents an account holder. The password hash is internal state and
// is never serialized in API responses.
type User struct {
	Base
	Email        string `json:"email" validate:"required,email"`
	PasswordHash string `json:"-"`
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name" validate:"required"`
	IsAdmin      bool   `json:"is_admin"`
}

// Validate checks the construction-time constraints on the user fields.
func (u *User) Validate() error {
	return validateStruct(u)
}

// ResourceOwnerID identifies the user as the owner of their own record.
func (u *User) ResourceOwnerID() string {
	return u.ID
}
