package entity

// User is an account able to log in and receive access tokens.
// Password holds the bcrypt hash, never the plaintext.
type User struct {
	ID       int64
	Username string
	Password string
}
