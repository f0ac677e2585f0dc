package models

// User is a registered account. Email is stored trimmed and lower-cased and
// is unique at the storage layer. PasswordHash is a bcrypt hash; the raw
// password is never persisted.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
}
