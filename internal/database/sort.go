package database

import "strings"

// sortDirection normalizes a caller-supplied direction to SQL, defaulting
// to ascending.
func sortDirection(dir string) string {
	if strings.EqualFold(dir, "desc") {
		return "DESC"
	}
	return "ASC"
}

// textColumn wraps a text column so string ordering is locale-aware. SQLite
// gets the collation registered at connect time; PostgreSQL sorts with the
// database's own collation.
func textColumn(col string) string {
	if DB.DriverName() == "postgres" {
		return col
	}
	return col + " COLLATE locale"
}
