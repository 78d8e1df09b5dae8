package models

// User is a registered account. Token holds the only token currently
// accepted for this user; every login or registration overwrites it.
type User struct {
	UserName     string
	PasswordHash string
	Token        string
}

// Identity is what a successfully resolved token proves: the caller is UserName.
type Identity struct {
	UserName string
}
