package database

import "strings"

// mapSQLiteTypeToClickHouse maps a SQLite declared column type to the
// ClickHouse type the target table will use. Matching is case-insensitive
// and exact; any declaration we don't recognize falls back to String, so
// the mapping never fails.
func mapSQLiteTypeToClickHouse(declared string) ColumnType {
	switch strings.ToUpper(strings.TrimSpace(declared)) {
	case "INTEGER", "INT":
		return ColumnTypeInt64
	case "REAL", "FLOAT":
		return ColumnTypeFloat64
	case "VARCHAR", "TEXT":
		return ColumnTypeString
	case "DATETIME":
		return ColumnTypeDateTime
	case "DATE":
		return ColumnTypeDate
	default:
		return ColumnTypeString
	}
}
