package database

const defaultChunkSize = 10000

// Batcher pages rows out of a live cursor and converts each one to its
// ClickHouse representation, one chunk at a time. Only one chunk is ever
// held in memory, so peak usage is bounded by the chunk size no matter how
// large the table is.
type Batcher struct {
	rows  RowScanner
	table TableInfo
	size  int
}

// NewBatcher wraps a row cursor for the given table. A non-positive size
// falls back to the default chunk size.
func NewBatcher(rows RowScanner, table TableInfo, size int) *Batcher {
	if size <= 0 {
		size = defaultChunkSize
	}
	return &Batcher{rows: rows, table: table, size: size}
}

// Next returns the next batch of converted rows in cursor order. The final
// batch may be short; a nil batch means the cursor is exhausted.
func (b *Batcher) Next() ([][]any, error) {
	width := len(b.table.Columns)

	values := make([]any, width)
	valuePtrs := make([]any, width)
	for i := range values {
		valuePtrs[i] = &values[i]
	}

	var batch [][]any
	for len(batch) < b.size && b.rows.Next() {
		if err := b.rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		row := make([]any, width)
		for i, col := range b.table.Columns {
			row[i] = coerceValue(values[i], col.Type)
		}
		batch = append(batch, row)
	}

	if err := b.rows.Err(); err != nil {
		return nil, err
	}
	if len(batch) == 0 {
		return nil, nil
	}
	return batch, nil
}
