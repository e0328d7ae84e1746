package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteSource reads tables, schemas, and rows from a SQLite database file.
type SQLiteSource struct {
	db *sql.DB
}

// NewSQLiteSource opens the SQLite database at path and verifies it is
// readable.
func NewSQLiteSource(path string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return &SQLiteSource{db: db}, nil
}

// Close closes the underlying database handle
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

// Tables returns all user tables in the database with their mapped column
// schemas. Internal sqlite_* tables are excluded.
func (s *SQLiteSource) Tables() ([]TableInfo, error) {
	rows, err := s.db.Query(`
		SELECT name
		FROM sqlite_master
		WHERE type = 'table'
		AND name NOT LIKE 'sqlite_%'
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var tables []TableInfo
	for _, name := range names {
		columns, err := s.columns(name)
		if err != nil {
			return nil, err
		}

		tables = append(tables, TableInfo{
			Name:    name,
			Columns: columns,
		})
	}

	return tables, nil
}

func (s *SQLiteSource) columns(tableName string) ([]ColumnInfo, error) {
	rows, err := s.db.Query(fmt.Sprintf("PRAGMA table_info(%q)", tableName))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []ColumnInfo
	for rows.Next() {
		var cid, notNull, pk int
		var name, declared string
		var defaultValue sql.NullString

		if err := rows.Scan(&cid, &name, &declared, &notNull, &defaultValue, &pk); err != nil {
			return nil, err
		}

		col := ColumnInfo{
			Name:     name,
			Declared: declared,
			Nullable: notNull == 0,
			Type:     mapSQLiteTypeToClickHouse(declared),
		}
		if defaultValue.Valid {
			col.Default = &defaultValue.String
		}

		columns = append(columns, col)
	}

	return columns, rows.Err()
}

// Rows opens a SELECT * cursor over the named table.
func (s *SQLiteSource) Rows(table string) (RowScanner, error) {
	rows, err := s.db.Query(fmt.Sprintf("SELECT * FROM %q", table))
	if err != nil {
		return nil, fmt.Errorf("failed to select from %s: %w", table, err)
	}
	return rows, nil
}
