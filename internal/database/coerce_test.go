package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceInt64(t *testing.T) {
	assert.Equal(t, int64(42), coerceValue(int64(42), ColumnTypeInt64))
	assert.Equal(t, int64(42), coerceValue("42", ColumnTypeInt64))
	assert.Equal(t, int64(3), coerceValue(3.9, ColumnTypeInt64))
	assert.Equal(t, int64(0), coerceValue(nil, ColumnTypeInt64))
	assert.Equal(t, int64(0), coerceValue("", ColumnTypeInt64))
	assert.Equal(t, int64(0), coerceValue("not a number", ColumnTypeInt64))
	assert.Equal(t, int64(1), coerceValue(true, ColumnTypeInt64))
}

func TestCoerceUInt32_WrapsAround(t *testing.T) {
	assert.Equal(t, uint32(4294967295), coerceValue(int64(-1), ColumnTypeUInt32))
	assert.Equal(t, uint32(0), coerceValue(int64(4294967296), ColumnTypeUInt32))
	assert.Equal(t, uint32(1), coerceValue(int64(4294967297), ColumnTypeUInt32))
	assert.Equal(t, uint32(7), coerceValue(int64(7), ColumnTypeUInt32))
	assert.Equal(t, uint32(0), coerceValue(nil, ColumnTypeUInt32))
}

func TestCoerceUInt64_WrapsAround(t *testing.T) {
	assert.Equal(t, uint64(18446744073709551615), coerceValue(int64(-1), ColumnTypeUInt64))
	assert.Equal(t, uint64(7), coerceValue(int64(7), ColumnTypeUInt64))
	assert.Equal(t, uint64(0), coerceValue(nil, ColumnTypeUInt64))
}

func TestCoerceFloat64(t *testing.T) {
	assert.Equal(t, 1.5, coerceValue(1.5, ColumnTypeFloat64))
	assert.Equal(t, 1.5, coerceValue("1.5", ColumnTypeFloat64))
	assert.Equal(t, 2.0, coerceValue(int64(2), ColumnTypeFloat64))
	assert.Equal(t, 0.0, coerceValue(nil, ColumnTypeFloat64))
	assert.Equal(t, 0.0, coerceValue("", ColumnTypeFloat64))
	assert.Equal(t, 0.0, coerceValue("nope", ColumnTypeFloat64))
}

func TestCoerceString(t *testing.T) {
	assert.Equal(t, "hello", coerceValue("hello", ColumnTypeString))
	assert.Equal(t, "hello", coerceValue([]byte("hello"), ColumnTypeString))
	assert.Equal(t, "42", coerceValue(int64(42), ColumnTypeString))
	// Null renders as the literal text form of no value.
	assert.Equal(t, "<nil>", coerceValue(nil, ColumnTypeString))
}

func TestCoerceBoolean_Truthiness(t *testing.T) {
	assert.Equal(t, false, coerceValue(nil, ColumnTypeBoolean))
	assert.Equal(t, false, coerceValue(int64(0), ColumnTypeBoolean))
	assert.Equal(t, false, coerceValue(0.0, ColumnTypeBoolean))
	assert.Equal(t, false, coerceValue("", ColumnTypeBoolean))
	assert.Equal(t, true, coerceValue(int64(1), ColumnTypeBoolean))
	assert.Equal(t, true, coerceValue(int64(-3), ColumnTypeBoolean))
	assert.Equal(t, true, coerceValue(true, ColumnTypeBoolean))
	// Non-empty strings are truthy, even "0".
	assert.Equal(t, true, coerceValue("0", ColumnTypeBoolean))
	assert.Equal(t, true, coerceValue("false", ColumnTypeBoolean))
}

func TestCoerceDateTime(t *testing.T) {
	want := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	got := coerceValue("2024-01-02 03:04:05", ColumnTypeDateTime)
	require.IsType(t, (*time.Time)(nil), got)
	assert.True(t, got.(*time.Time).Equal(want))
}

func TestCoerceDateTime_DiscardsFractionalSeconds(t *testing.T) {
	plain := coerceValue("2024-01-02 03:04:05", ColumnTypeDateTime)
	fractional := coerceValue("2024-01-02 03:04:05.999", ColumnTypeDateTime)

	require.NotNil(t, plain)
	require.NotNil(t, fractional)
	assert.Equal(t, plain, fractional)
}

func TestCoerceDateTime_BlankAndBadInputs(t *testing.T) {
	assert.Nil(t, coerceValue(nil, ColumnTypeDateTime))
	assert.Nil(t, coerceValue("", ColumnTypeDateTime))
	assert.Nil(t, coerceValue("   ", ColumnTypeDateTime))
	assert.Nil(t, coerceValue("not-a-date", ColumnTypeDateTime))
}

func TestCoerceDateTime_PassesThroughNativeTime(t *testing.T) {
	want := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	got := coerceValue(want, ColumnTypeDateTime)
	require.IsType(t, (*time.Time)(nil), got)
	assert.True(t, got.(*time.Time).Equal(want))
}

func TestCoerceDate(t *testing.T) {
	want := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	got := coerceValue("2024-01-02", ColumnTypeDate)
	require.IsType(t, (*time.Time)(nil), got)
	assert.True(t, got.(*time.Time).Equal(want))

	assert.Nil(t, coerceValue("", ColumnTypeDate))
	assert.Nil(t, coerceValue("02/01/2024", ColumnTypeDate))
}

func TestCoerceUnknownTypePassesThrough(t *testing.T) {
	assert.Equal(t, "raw", coerceValue("raw", ColumnType("UUID")))
	assert.Equal(t, int64(9), coerceValue(int64(9), ColumnType("")))
}
