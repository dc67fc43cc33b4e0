package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"stocktree/collection"
	"stocktree/model"
)

const userColumns = `id, username, first_name, last_name, email, is_staff, is_active`

var userListSpec = ListSpec{
	Select:        userColumns,
	From:          "users",
	SearchColumns: []string{"username", "first_name", "last_name", "email"},
	OrderColumns: map[string]string{
		"username":   "username",
		"first_name": "first_name",
		"last_name":  "last_name",
		"email":      "email",
	},
	FilterColumns: map[string]string{
		"is_staff":  "is_staff",
		"is_active": "is_active",
	},
	DefaultOrder: "username",
}

func ListUsers(db DBTX, q collection.Query) ([]model.User, int, error) {
	users := []model.User{}
	count, err := RunList(db, userListSpec, q, &users)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, count, nil
}

func GetUser(db DBTX, id int64) (*model.User, error) {
	var u model.User
	err := db.Get(&u, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return &u, nil
}

func GetUserByUsername(db DBTX, username string) (*model.UserRecord, error) {
	var u model.UserRecord
	err := db.Get(&u,
		`SELECT `+userColumns+`, password_hash FROM users WHERE username = ?`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", username, err)
	}
	return &u, nil
}

func InsertUser(db DBTX, in model.UserInput, passwordHash string) (int64, error) {
	res, err := db.Exec(
		`INSERT INTO users (username, first_name, last_name, email, is_staff, is_active, password_hash)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.Username, in.FirstName, in.LastName, in.Email, in.IsStaff, in.IsActive, passwordHash)
	if err != nil {
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}
	return res.LastInsertId()
}

func UpdateUser(db DBTX, id int64, in model.UserInput) error {
	_, err := db.Exec(
		`UPDATE users SET first_name = ?, last_name = ?, email = ?, is_staff = ?, is_active = ? WHERE id = ?`,
		in.FirstName, in.LastName, in.Email, in.IsStaff, in.IsActive, id)
	if err != nil {
		return fmt.Errorf("failed to update user %d: %w", id, err)
	}
	return nil
}

func DeleteUsers(db *sqlx.DB, ids []int64) error {
	return deleteByIDs(db, "users", ids)
}
