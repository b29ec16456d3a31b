package repository

import (
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const dialectSQLite = "sqlite"

func isSQLite(db *gorm.DB) bool {
	return db != nil && db.Dialector != nil && db.Dialector.Name() == dialectSQLite
}

// lockForUpdate adds a row lock where the dialect supports one.
// SQLite has no FOR UPDATE and serialises writers on its own.
func lockForUpdate(db *gorm.DB) *gorm.DB {
	if isSQLite(db) {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// jsonArrayContainsExpr tests whether a JSON string array column holds the bound value.
func jsonArrayContainsExpr(db *gorm.DB, column string) string {
	if isSQLite(db) {
		return fmt.Sprintf("EXISTS (SELECT 1 FROM json_each(%s) WHERE value = ?)", column)
	}
	return fmt.Sprintf("%s::jsonb @> ?", column)
}

func jsonArrayContainsValue(db *gorm.DB, value string) any {
	if isSQLite(db) {
		return value
	}
	return datatypes.JSONSlice[string]{value}
}
