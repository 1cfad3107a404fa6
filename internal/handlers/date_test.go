package handlers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-15")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-15", d.String())

	_, err = ParseDate("15/01/2025")
	assert.Error(t, err)

	_, err = ParseDate("not-a-date")
	assert.Error(t, err)
}

func TestDateAddDays(t *testing.T) {
	d, err := ParseDate("2025-01-28")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-04", d.AddDays(7).String())
	assert.Equal(t, "2025-02-11", d.AddDays(7).AddDays(7).String())
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(time.Date(2025, 3, 9, 17, 30, 0, 0, time.UTC))

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-09"`, string(raw))

	var parsed Date
	require.NoError(t, json.Unmarshal(raw, &parsed))
	assert.Equal(t, "2025-03-09", parsed.String())
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-06-01", d.String())

	require.NoError(t, d.Scan([]byte("2025-07-02")))
	assert.Equal(t, "2025-07-02", d.String())

	assert.Error(t, d.Scan(42))
}
