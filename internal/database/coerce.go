package database

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	dateTimeLayout = "2006-01-02 15:04:05"
	dateLayout     = "2006-01-02"
)

// coerceValue converts one raw source value into the native representation
// for the column's ClickHouse type. It never fails: values that cannot be
// converted degrade to the type's default and log a warning, so a bad cell
// can't abort a batch.
func coerceValue(value any, typ ColumnType) any {
	switch typ {
	case ColumnTypeInt64:
		return asInt64(value)
	case ColumnTypeUInt32:
		// Wrap-around, not saturation: keep the low 32 bits.
		return uint32(asInt64(value) & 0xFFFFFFFF)
	case ColumnTypeUInt64:
		// Wrap-around at 64 bits.
		return uint64(asInt64(value))
	case ColumnTypeFloat64:
		return asFloat64(value)
	case ColumnTypeString:
		if b, ok := value.([]byte); ok {
			return string(b)
		}
		return fmt.Sprintf("%v", value)
	case ColumnTypeBoolean:
		return asBool(value)
	case ColumnTypeDateTime:
		if t, ok := value.(time.Time); ok {
			return &t
		}
		return parseDateTime(asString(value))
	case ColumnTypeDate:
		if t, ok := value.(time.Time); ok {
			return &t
		}
		return parseDate(asString(value))
	default:
		return value
	}
}

// parseDateTime parses "YYYY-MM-DD HH:MM:SS", discarding any fractional
// seconds. Blank input means no value; unparseable input is logged and
// yields no value rather than an error.
func parseDateTime(value string) *time.Time {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	value = strings.SplitN(value, ".", 2)[0]
	t, err := time.Parse(dateTimeLayout, strings.TrimSpace(value))
	if err != nil {
		log.Warnf("Failed to parse DateTime: %s", value)
		return nil
	}
	return &t
}

// parseDate parses "YYYY-MM-DD" with the same blank and failure handling
// as parseDateTime.
func parseDate(value string) *time.Time {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		log.Warnf("Failed to parse Date: %s", value)
		return nil
	}
	return &t
}

func asInt64(value any) int64 {
	switch v := value.(type) {
	case nil:
		return 0
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case []byte:
		return parseInt(string(v))
	case string:
		return parseInt(v)
	default:
		log.Warnf("Cannot convert %T to integer, using 0", value)
		return 0
	}
}

func parseInt(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		log.Warnf("Failed to parse integer: %s", s)
		return 0
	}
	return n
}

func asFloat64(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case []byte:
		return parseFloat(string(v))
	case string:
		return parseFloat(v)
	default:
		log.Warnf("Cannot convert %T to float, using 0", value)
		return 0
	}
}

func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.Warnf("Failed to parse float: %s", s)
		return 0
	}
	return f
}

// asBool applies truthiness: nil, numeric zero, and empty strings are
// false; everything else, including non-empty strings like "0", is true.
func asBool(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case int64:
		return v != 0
	case int:
		return v != 0
	case float64:
		return v != 0
	case string:
		return v != ""
	case []byte:
		return len(v) > 0
	default:
		return true
	}
}

func asString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", value)
	}
}
