package util

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviveJSON(t *testing.T) {
	data := []byte(`{
		"bytes": {"flag": "FLAG_TYPED_ARRAY", "data": [1, 2, 255, 256]},
		"amount": "1000000000000000000n",
		"created": "2023-10-01T12:30:45.123Z",
		"noFraction": "2023-10-01T12:30:45Z",
		"plain": "hello",
		"count": 3,
		"nested": [{"value": "42n"}, null, true]
	}`)

	v, err := ReviveJSON(data)
	require.NoError(t, err)
	m := v.(map[string]any)

	assert.Equal(t, []byte{1, 2, 255, 0}, m["bytes"])

	amount, ok := m["amount"].(*big.Int)
	require.True(t, ok)
	assert.Equal(t, "1000000000000000000", amount.String())

	created, ok := m["created"].(time.Time)
	require.True(t, ok)
	assert.True(t, created.Equal(time.Date(2023, 10, 1, 12, 30, 45, 123e6, time.UTC)))

	assert.Equal(t, "2023-10-01T12:30:45Z", m["noFraction"])
	assert.Equal(t, "hello", m["plain"])
	assert.Equal(t, float64(3), m["count"])

	nested := m["nested"].([]any)
	assert.Equal(t, "42", nested[0].(map[string]any)["value"].(*big.Int).String())
	assert.Nil(t, nested[1])
	assert.Equal(t, true, nested[2])
}

func TestReviveJSONInvalid(t *testing.T) {
	_, err := ReviveJSON([]byte(`{"a":`))
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestReviveLeavesOtherFlags(t *testing.T) {
	v := Revive(map[string]any{"flag": "OTHER", "data": []any{1.0}})
	assert.Equal(t, map[string]any{"flag": "OTHER", "data": []any{1.0}}, v)
}
