package database

import "context"

// Config holds all configuration for a copy run
type Config struct {
	SQLitePath string
	Host       string
	Port       int
	Database   string
	User       string
	Password   string
	ChunkSize  int
	SSHKey     string
	SSHUser    string
	SSHHost    string
	SSHPort    int
}

// ColumnType is the ClickHouse-side type assigned to a source column.
type ColumnType string

const (
	ColumnTypeInt64    ColumnType = "Int64"
	ColumnTypeUInt32   ColumnType = "UInt32"
	ColumnTypeUInt64   ColumnType = "UInt64"
	ColumnTypeFloat64  ColumnType = "Float64"
	ColumnTypeString   ColumnType = "String"
	ColumnTypeDateTime ColumnType = "DateTime"
	ColumnTypeDate     ColumnType = "Date"
	ColumnTypeBoolean  ColumnType = "Boolean"
)

// ColumnInfo stores information about a column's structure
type ColumnInfo struct {
	Name     string
	Declared string
	Nullable bool
	Default  *string
	Type     ColumnType
}

// TableInfo stores information about a table's structure
type TableInfo struct {
	Name    string
	Columns []ColumnInfo
}

// RowScanner is the subset of *sql.Rows the batcher consumes.
type RowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// Source reads tables, column metadata, and row cursors from the
// relational database being copied.
type Source interface {
	// Tables returns every user table with its mapped column schema,
	// in source enumeration order.
	Tables() ([]TableInfo, error)
	// Rows opens a SELECT * cursor over the named table.
	Rows(table string) (RowScanner, error)
	Close() error
}

// Target writes tables and batches of converted rows to the analytical
// database being copied into.
type Target interface {
	// TableExists reports whether the table is already present. A probe
	// failure is an error, not absence.
	TableExists(ctx context.Context, table string) (bool, error)
	CreateTable(ctx context.Context, table TableInfo) error
	// DescribeTable returns "name -> type" pairs from the target's view
	// of the table schema.
	DescribeTable(ctx context.Context, table string) ([]string, error)
	// Insert writes one batch, preserving row order.
	Insert(ctx context.Context, table TableInfo, rows [][]any) error
	Optimize(ctx context.Context, table string) error
	Close() error
}

// Migrator handles the database migration process
type Migrator struct {
	source    Source
	target    Target
	chunkSize int
}
