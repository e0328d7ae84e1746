package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapSQLiteTypeToClickHouse(t *testing.T) {
	tests := []struct {
		declared string
		want     ColumnType
	}{
		{"INTEGER", ColumnTypeInt64},
		{"INT", ColumnTypeInt64},
		{"REAL", ColumnTypeFloat64},
		{"FLOAT", ColumnTypeFloat64},
		{"VARCHAR", ColumnTypeString},
		{"TEXT", ColumnTypeString},
		{"DATETIME", ColumnTypeDateTime},
		{"DATE", ColumnTypeDate},
	}

	for _, tt := range tests {
		t.Run(tt.declared, func(t *testing.T) {
			assert.Equal(t, tt.want, mapSQLiteTypeToClickHouse(tt.declared))
		})
	}
}

func TestMapSQLiteTypeToClickHouse_CaseInsensitive(t *testing.T) {
	assert.Equal(t, ColumnTypeInt64, mapSQLiteTypeToClickHouse("integer"))
	assert.Equal(t, ColumnTypeString, mapSQLiteTypeToClickHouse("text"))
	assert.Equal(t, ColumnTypeDateTime, mapSQLiteTypeToClickHouse("DateTime"))
	assert.Equal(t, ColumnTypeFloat64, mapSQLiteTypeToClickHouse(" real "))
}

func TestMapSQLiteTypeToClickHouse_UnknownFallsBackToString(t *testing.T) {
	for _, declared := range []string{"BLOB", "NUMERIC", "VARCHAR(255)", "JSON", "", "something else"} {
		assert.Equal(t, ColumnTypeString, mapSQLiteTypeToClickHouse(declared),
			"declared type %q should fall back to String", declared)
	}
}
