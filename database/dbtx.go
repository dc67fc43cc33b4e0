package database

import "database/sql"

// DBTX is the subset of sqlx.DB / sqlx.Tx the query helpers need, so the
// same function can run standalone or inside a transaction.
type DBTX interface {
	Get(dest interface{}, query string, args ...interface{}) error
	Select(dest interface{}, query string, args ...interface{}) error
	Exec(query string, args ...interface{}) (sql.Result, error)
}
