package model

type User struct {
	ID        int64  `db:"id" json:"pk"`
	Username  string `db:"username" json:"username"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Email     string `db:"email" json:"email"`
	IsStaff   int    `db:"is_staff" json:"is_staff"`
	IsActive  int    `db:"is_active" json:"is_active"`
}

// UserRecord carries the password hash and is never serialized to clients.
type UserRecord struct {
	User
	PasswordHash string `db:"password_hash" json:"-"`
}

type UserInput struct {
	Username  string `db:"username" json:"username"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Email     string `db:"email" json:"email"`
	IsStaff   int    `db:"is_staff" json:"is_staff"`
	IsActive  int    `db:"is_active" json:"is_active"`
	Password  string `db:"-" json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// ServerInfo is what GET /api/ reports about this instance.
type ServerInfo struct {
	Server     string `json:"server"`
	Version    string `json:"version"`
	APIVersion int    `json:"apiVersion"`
}
