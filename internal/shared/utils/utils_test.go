package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhereBuilder(t *testing.T) {
	var w WhereBuilder
	assert.Empty(t, w.SQL())

	w.Add("status = ?", "draft")
	w.Add("(title ILIKE ? OR slug ILIKE ?)", "%tarte%", "%tarte%")
	limit := w.Next(20)

	assert.Equal(t, "WHERE status = $1 AND (title ILIKE $2 OR slug ILIKE $3)", w.SQL())
	assert.Equal(t, "$4", limit)
	assert.Equal(t, []any{"draft", "%tarte%", "%tarte%", 20}, w.Args())
}

func TestTrimToNil(t *testing.T) {
	assert.Nil(t, TrimToNil(nil))

	blank := "   "
	assert.Nil(t, TrimToNil(&blank))

	value := "  Beurre  "
	got := TrimToNil(&value)
	require.NotNil(t, got)
	assert.Equal(t, "Beurre", *got)
}

func TestUUIDOrNil(t *testing.T) {
	assert.Equal(t, uuid.Nil, UUIDOrNil("nope"))
	assert.Equal(t, uuid.Nil, UUIDOrNil(""))

	id := uuid.New()
	assert.Equal(t, id, UUIDOrNil(" "+id.String()+" "))
}

func TestDecimalPtr(t *testing.T) {
	assert.Nil(t, DecimalPtr(nil, QuantityPlaces))

	f := 1.5
	d := DecimalPtr(&f, QuantityPlaces)
	require.NotNil(t, d)
	assert.Equal(t, "1.5", d.String())

	third := 1.0 / 3.0
	d = DecimalPtr(&third, QuantityPlaces)
	require.NotNil(t, d)
	assert.Equal(t, "0.333", d.String())
}

func TestIsBlank(t *testing.T) {
	empty, spaces, word := "", " \t ", "sel"
	assert.True(t, IsBlank(nil))
	assert.True(t, IsBlank(&empty))
	assert.True(t, IsBlank(&spaces))
	assert.False(t, IsBlank(&word))
}
