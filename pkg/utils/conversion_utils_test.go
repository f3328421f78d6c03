package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDollarsToCents(t *testing.T) {
	assert.Equal(t, int64(4999), DollarsToCents(49.99))
	assert.Equal(t, int64(1000), DollarsToCents(10))
	assert.Equal(t, int64(0), DollarsToCents(0))
	// Binary float artifacts must round to the exact cent.
	assert.Equal(t, int64(30), DollarsToCents(0.1+0.2))
	assert.Equal(t, int64(1), DollarsToCents(0.01))
}

func TestStrToInt64(t *testing.T) {
	n, err := StrToInt64("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	_, err = StrToInt64("forty-two")
	assert.Error(t, err)
}

func TestInt64ToStr(t *testing.T) {
	assert.Equal(t, "42", Int64ToStr(42))
}
