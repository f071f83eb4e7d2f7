package domain

import "time"

// User is an account record. The password is only ever stored as a bcrypt
// hash; nothing in the system retains or logs the plaintext.
type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}
