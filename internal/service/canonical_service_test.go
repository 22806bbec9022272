package service

import (
	"testing"

	"agent-settlement/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalHasher_KeyOrderIndependent(t *testing.T) {
	h := NewCanonicalHasher()

	a, err := h.Hash(map[string]any{"b": 2, "a": 1, "c": []any{"x", "y"}})
	require.NoError(t, err)
	b, err := h.Hash(map[string]any{"c": []any{"x", "y"}, "a": 1, "b": 2})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 64) // sha-256 hex
}

func TestCanonicalHasher_DetectsAnyFieldChange(t *testing.T) {
	h := NewCanonicalHasher()

	contents := domain.CartContents{
		ID:           "cart_1",
		MerchantName: "virtual-bookstore",
		LineItems: []domain.CartItem{
			{Label: "Book", Amount: domain.NewAmount("BRL", 2990), Quantity: 1},
		},
		Total: domain.NewAmount("BRL", 2990),
	}
	original, err := h.Hash(contents)
	require.NoError(t, err)

	// One cent off is a different cart.
	contents.Total.MinorUnits = 2991
	changed, err := h.Hash(contents)
	require.NoError(t, err)
	assert.NotEqual(t, original, changed)

	contents.Total.MinorUnits = 2990
	same, err := h.Hash(contents)
	require.NoError(t, err)
	assert.Equal(t, original, same)
}

func TestCanonicalJSON_SortedCompact(t *testing.T) {
	out, err := CanonicalJSON(map[string]any{"z": 1, "a": map[string]any{"k": "v", "b": true}})
	require.NoError(t, err)
	assert.Equal(t, `{"a":{"b":true,"k":"v"},"z":1}`, string(out))
}

func TestCanonicalJSON_IntegersStayIntegral(t *testing.T) {
	out, err := CanonicalJSON(map[string]any{"amount": int64(8980), "rate": 0.5})
	require.NoError(t, err)
	assert.Equal(t, `{"amount":8980,"rate":0.5}`, string(out))
}

func TestCanonicalHasher_RejectsUnencodable(t *testing.T) {
	h := NewCanonicalHasher()
	_, err := h.Hash(make(chan int))
	assert.Error(t, err)
}
