package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// ClickHouseTarget writes tables and rows to a ClickHouse database over
// the native protocol.
type ClickHouseTarget struct {
	conn     driver.Conn
	database string
	cleanup  func()
}

// NewClickHouseTarget connects to ClickHouse using the given configuration,
// tunneling over SSH when an SSH key is configured. Null values are
// coerced to column defaults on insert (input_format_null_as_default).
func NewClickHouseTarget(config Config) (*ClickHouseTarget, error) {
	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)

	var cleanup func()
	if config.SSHKey != "" {
		var err error
		addr, cleanup, err = SetupTunnel(config)
		if err != nil {
			return nil, fmt.Errorf("failed to setup SSH tunnel: %w", err)
		}
	}

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: config.Database,
			Username: config.User,
			Password: config.Password,
		},
		Settings: clickhouse.Settings{
			"input_format_null_as_default": 1,
			"max_insert_block_size":        1000000,
			"max_threads":                  8,
		},
	})
	if err != nil {
		if cleanup != nil {
			cleanup()
		}
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	if err := conn.Ping(context.Background()); err != nil {
		conn.Close()
		if cleanup != nil {
			cleanup()
		}
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &ClickHouseTarget{
		conn:     conn,
		database: config.Database,
		cleanup:  cleanup,
	}, nil
}

// Close closes the connection and tears down the SSH tunnel if one is up
func (t *ClickHouseTarget) Close() error {
	err := t.conn.Close()
	if t.cleanup != nil {
		t.cleanup()
	}
	return err
}

// TableExists reports whether the table exists in the target database.
// Probe failures surface as errors rather than reading as absence, so a
// transport or auth problem can never silently trigger table creation.
func (t *ClickHouseTarget) TableExists(ctx context.Context, table string) (bool, error) {
	var count uint64
	row := t.conn.QueryRow(ctx,
		"SELECT count() FROM system.tables WHERE database = ? AND name = ?",
		t.database, table,
	)
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check existence of table %s: %w", table, err)
	}
	return count > 0, nil
}

// CreateTable creates the table with a ReplacingMergeTree engine and no
// explicit ordering key.
func (t *ClickHouseTarget) CreateTable(ctx context.Context, table TableInfo) error {
	var columnDefs []string
	for _, col := range table.Columns {
		columnDefs = append(columnDefs, fmt.Sprintf("`%s` %s", col.Name, col.Type))
	}

	query := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS `%s`.`%s` (%s) ENGINE = ReplacingMergeTree ORDER BY tuple()",
		t.database,
		table.Name,
		strings.Join(columnDefs, ", "),
	)

	if err := t.conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table.Name, err)
	}
	return nil
}

// DescribeTable returns "name -> type" pairs from DESCRIBE TABLE.
func (t *ClickHouseTarget) DescribeTable(ctx context.Context, table string) ([]string, error) {
	rows, err := t.conn.Query(ctx, fmt.Sprintf("DESCRIBE TABLE `%s`.`%s`", t.database, table))
	if err != nil {
		return nil, fmt.Errorf("failed to describe table %s: %w", table, err)
	}
	defer rows.Close()

	var schema []string
	for rows.Next() {
		var name, typ, defaultType, defaultExpr, comment, codec, ttl string
		if err := rows.Scan(&name, &typ, &defaultType, &defaultExpr, &comment, &codec, &ttl); err != nil {
			return nil, err
		}
		schema = append(schema, fmt.Sprintf("%s -> %s", name, typ))
	}

	return schema, rows.Err()
}

// Insert writes one batch of rows in order.
func (t *ClickHouseTarget) Insert(ctx context.Context, table TableInfo, rows [][]any) error {
	names := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		names[i] = fmt.Sprintf("`%s`", col.Name)
	}

	batch, err := t.conn.PrepareBatch(ctx, fmt.Sprintf(
		"INSERT INTO `%s`.`%s` (%s)",
		t.database,
		table.Name,
		strings.Join(names, ", "),
	))
	if err != nil {
		return fmt.Errorf("failed to prepare insert into %s: %w", table.Name, err)
	}

	for _, row := range rows {
		if err := batch.Append(row...); err != nil {
			return fmt.Errorf("failed to append row to %s: %w", table.Name, err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to insert batch into %s: %w", table.Name, err)
	}
	return nil
}

// Optimize asks ClickHouse to merge the table's parts after loading.
func (t *ClickHouseTarget) Optimize(ctx context.Context, table string) error {
	if err := t.conn.Exec(ctx, fmt.Sprintf("OPTIMIZE TABLE `%s`.`%s`", t.database, table)); err != nil {
		return fmt.Errorf("failed to optimize table %s: %w", table, err)
	}
	return nil
}
