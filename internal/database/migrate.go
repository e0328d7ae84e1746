package database

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// NewMigrator opens the source and target stores and returns a migrator
// ready to run.
func NewMigrator(config Config) (*Migrator, error) {
	source, err := NewSQLiteSource(config.SQLitePath)
	if err != nil {
		return nil, err
	}
	log.Infof("Connected to SQLite database: %s", config.SQLitePath)

	target, err := NewClickHouseTarget(config)
	if err != nil {
		source.Close()
		return nil, err
	}
	log.Infof("Connected to ClickHouse at %s:%d", config.Host, config.Port)

	return &Migrator{
		source:    source,
		target:    target,
		chunkSize: config.ChunkSize,
	}, nil
}

// Close releases both store connections
func (m *Migrator) Close() {
	if m.source != nil {
		m.source.Close()
	}
	if m.target != nil {
		m.target.Close()
	}
}

// Run copies every table from the source into the target, one table at a
// time, in source enumeration order. The first structural error aborts
// the run; row-level conversion failures only degrade and warn.
func (m *Migrator) Run(ctx context.Context) error {
	tables, err := m.source.Tables()
	if err != nil {
		return fmt.Errorf("failed to get tables: %w", err)
	}

	var total int64
	for _, table := range tables {
		count, err := m.copyTable(ctx, table)
		if err != nil {
			return fmt.Errorf("failed to copy table %s: %w", table.Name, err)
		}
		total += count
	}

	log.Infof("Conversion completed successfully: %d rows across %d tables", total, len(tables))
	return nil
}

func (m *Migrator) copyTable(ctx context.Context, table TableInfo) (int64, error) {
	log.Infof("Processing table: %s", table.Name)

	if err := m.ensureTable(ctx, table); err != nil {
		return 0, err
	}

	schema, err := m.target.DescribeTable(ctx, table.Name)
	if err != nil {
		return 0, err
	}
	log.Infof("ClickHouse schema %s: %s", table.Name, strings.Join(schema, ", "))

	rows, err := m.source.Rows(table.Name)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var count int64
	batcher := NewBatcher(rows, table, m.chunkSize)
	for {
		batch, err := batcher.Next()
		if err != nil {
			return count, err
		}
		if batch == nil {
			break
		}

		if err := m.target.Insert(ctx, table, batch); err != nil {
			return count, err
		}
		count += int64(len(batch))
		log.Infof("Inserted %d rows into %s", len(batch), table.Name)
	}

	// Compaction is a hint; failing to merge parts must not abort the run.
	if err := m.target.Optimize(ctx, table.Name); err != nil {
		log.Warnf("Failed to optimize table %s: %v", table.Name, err)
	} else {
		log.Infof("Optimized table %s in ClickHouse", table.Name)
	}

	return count, nil
}

func (m *Migrator) ensureTable(ctx context.Context, table TableInfo) error {
	exists, err := m.target.TableExists(ctx, table.Name)
	if err != nil {
		return err
	}
	if exists {
		log.Infof("Table %s already exists in ClickHouse", table.Name)
		return nil
	}

	log.Infof("Table %s does not exist. Creating a new table", table.Name)
	return m.target.CreateTable(ctx, table)
}
