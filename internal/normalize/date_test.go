package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDate_Empty(t *testing.T) {
	_, ok := Date("")
	assert.False(t, ok)
	_, ok = Date("   ")
	assert.False(t, ok)
}

func TestDate_USFormat(t *testing.T) {
	got, ok := Date("01/15/2024")
	require.True(t, ok)
	assert.Equal(t, date(2024, time.January, 15), got)
}

func TestDate_USShortYear(t *testing.T) {
	got, ok := Date("01/15/24")
	require.True(t, ok)
	assert.Equal(t, date(2024, time.January, 15), got)
}

func TestDate_EUFormat(t *testing.T) {
	// Day 15 cannot be a month, so the EU layout is the first to fully match.
	got, ok := Date("15/01/2024")
	require.True(t, ok)
	assert.Equal(t, date(2024, time.January, 15), got)
}

func TestDate_AmbiguousPrefersUS(t *testing.T) {
	got, ok := Date("01/02/2024")
	require.True(t, ok)
	assert.Equal(t, date(2024, time.January, 2), got)
}

func TestDate_ISO(t *testing.T) {
	got, ok := Date("2024-01-15")
	require.True(t, ok)
	assert.Equal(t, date(2024, time.January, 15), got)

	got, ok = Date("2024/01/15")
	require.True(t, ok)
	assert.Equal(t, date(2024, time.January, 15), got)
}

func TestDate_DashSeparated(t *testing.T) {
	got, ok := Date("01-15-2024")
	require.True(t, ok)
	assert.Equal(t, date(2024, time.January, 15), got)

	got, ok = Date("15-01-2024")
	require.True(t, ok)
	assert.Equal(t, date(2024, time.January, 15), got)
}

func TestDate_LongMonthNames(t *testing.T) {
	got, ok := Date("January 15, 2024")
	require.True(t, ok)
	assert.Equal(t, date(2024, time.January, 15), got)

	got, ok = Date("Jan 15, 2024")
	require.True(t, ok)
	assert.Equal(t, date(2024, time.January, 15), got)

	got, ok = Date("15 January 2024")
	require.True(t, ok)
	assert.Equal(t, date(2024, time.January, 15), got)
}

func TestDate_CompactNumeric(t *testing.T) {
	got, ok := Date("20240115")
	require.True(t, ok)
	assert.Equal(t, date(2024, time.January, 15), got)
}

func TestDate_PermissiveFallback(t *testing.T) {
	got, ok := Date("2024-01-15T10:30:00Z")
	require.True(t, ok)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 15, got.Day())
}

func TestDate_Unparseable(t *testing.T) {
	_, ok := Date("not a date")
	assert.False(t, ok)
}
