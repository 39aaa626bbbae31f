package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNow(t *testing.T) {
	sp, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	got, err := parseNow("", sp)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	got, err = parseNow("2024-02-29", sp)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, sp), got)

	got, err = parseNow("2024-02-29T15:00:00Z", sp)
	require.NoError(t, err)
	assert.Equal(t, sp, got.Location())
	assert.True(t, got.Equal(time.Date(2024, 2, 29, 15, 0, 0, 0, time.UTC)))

	got, err = parseNow("2024-02", sp)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 999999999, sp), got)

	_, err = parseNow("2024-13", sp)
	assert.Error(t, err)
	_, err = parseNow("soon", sp)
	assert.ErrorContains(t, err, "invalid --now")
}
