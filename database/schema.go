package database

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS parts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		ipn TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		units TEXT NOT NULL DEFAULT '',
		active INTEGER NOT NULL DEFAULT 1,
		purchaseable INTEGER NOT NULL DEFAULT 1,
		salable INTEGER NOT NULL DEFAULT 0,
		in_stock REAL NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS companies (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		currency TEXT NOT NULL DEFAULT 'USD',
		is_supplier INTEGER NOT NULL DEFAULT 0,
		is_manufacturer INTEGER NOT NULL DEFAULT 0,
		is_customer INTEGER NOT NULL DEFAULT 0,
		active INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS supplier_parts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		part_id INTEGER NOT NULL REFERENCES parts(id),
		supplier_id INTEGER NOT NULL REFERENCES companies(id),
		sku TEXT NOT NULL,
		packaging TEXT NOT NULL DEFAULT '',
		pack_quantity REAL NOT NULL DEFAULT 1,
		unit_price TEXT NOT NULL DEFAULT '0',
		available REAL NOT NULL DEFAULT 0,
		active INTEGER NOT NULL DEFAULT 1,
		note TEXT NOT NULL DEFAULT '',
		UNIQUE(supplier_id, sku)
	)`,
	`CREATE TABLE IF NOT EXISTS manufacturer_parts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		part_id INTEGER NOT NULL REFERENCES parts(id),
		manufacturer_id INTEGER NOT NULL REFERENCES companies(id),
		mpn TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		link TEXT NOT NULL DEFAULT '',
		UNIQUE(manufacturer_id, mpn)
	)`,
	`CREATE TABLE IF NOT EXISTS purchase_orders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		reference TEXT NOT NULL UNIQUE,
		supplier_id INTEGER NOT NULL REFERENCES companies(id),
		description TEXT NOT NULL DEFAULT '',
		status INTEGER NOT NULL DEFAULT 10,
		currency TEXT NOT NULL DEFAULT 'USD',
		creation_date TEXT NOT NULL DEFAULT '',
		issue_date TEXT NOT NULL DEFAULT '',
		target_date TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS purchase_order_lines (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		order_id INTEGER NOT NULL REFERENCES purchase_orders(id),
		supplier_part_id INTEGER NOT NULL REFERENCES supplier_parts(id),
		quantity REAL NOT NULL DEFAULT 0,
		received REAL NOT NULL DEFAULT 0,
		purchase_price TEXT NOT NULL DEFAULT '0',
		destination TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		is_staff INTEGER NOT NULL DEFAULT 0,
		is_active INTEGER NOT NULL DEFAULT 1,
		password_hash TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS code_sequences (
		name TEXT PRIMARY KEY,
		last_no INTEGER NOT NULL DEFAULT 0
	)`,
}

// InitDatabase creates the schema, seeds the order-reference sequence and
// guarantees an initial staff account exists on a fresh database.
func InitDatabase(db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	if _, err := db.Exec(
		`INSERT OR IGNORE INTO code_sequences (name, last_no) VALUES (?, 0)`,
		SequencePurchaseOrder); err != nil {
		return fmt.Errorf("failed to seed sequences: %w", err)
	}

	var userCount int
	if err := db.Get(&userCount, `SELECT COUNT(*) FROM users`); err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if userCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash initial password: %w", err)
		}
		_, err = db.Exec(
			`INSERT INTO users (username, is_staff, is_active, password_hash) VALUES ('admin', 1, 1, ?)`,
			string(hash))
		if err != nil {
			return fmt.Errorf("failed to seed initial user: %w", err)
		}
		log.Println("WARN: Created initial 'admin' user with default password. Change it.")
	}

	return nil
}
