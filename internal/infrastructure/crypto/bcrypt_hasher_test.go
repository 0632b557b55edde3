package crypto_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/users-api/internal/domain"
	infracrypto "github.com/jhoicas/users-api/internal/infrastructure/crypto"
)

func TestBcryptHasher_HashYCompare(t *testing.T) {
	h := infracrypto.NewBcryptHasher(bcrypt.MinCost)
	ctx := context.Background()

	hash, err := h.Hash(ctx, "Abcdef1!")
	require.NoError(t, err)
	assert.NotContains(t, hash, "Abcdef1!")

	ok, err := h.Compare(ctx, hash, "Abcdef1!")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Compare(ctx, hash, "Abcdef1?")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_SalDistintaPorHash(t *testing.T) {
	h := infracrypto.NewBcryptHasher(bcrypt.MinCost)
	a, err := h.Hash(context.Background(), "Abcdef1!")
	require.NoError(t, err)
	b, err := h.Hash(context.Background(), "Abcdef1!")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestBcryptHasher_CostoPorDefecto(t *testing.T) {
	for _, cost := range []int{0, 2, 99} {
		hash, err := infracrypto.NewBcryptHasher(cost).Hash(context.Background(), "Abcdef1!")
		require.NoError(t, err)
		got, err := infracrypto.Cost(hash)
		require.NoError(t, err)
		assert.Equal(t, infracrypto.DefaultCost, got, "cost %d fuera de rango", cost)
	}
}

func TestBcryptHasher_HashMalFormadoNoEsError(t *testing.T) {
	h := infracrypto.NewBcryptHasher(bcrypt.MinCost)
	for _, stored := range []string{"", "abc", "$9$10$" + strings.Repeat("a", 53), "not-a-bcrypt-hash-but-long-enough-to-pass-the-length-check-xxxxxxxx"} {
		ok, err := h.Compare(context.Background(), stored, "Abcdef1!")
		assert.NoError(t, err, stored)
		assert.False(t, ok, stored)
	}
}

func TestBcryptHasher_PasswordDemasiadoLargo(t *testing.T) {
	h := infracrypto.NewBcryptHasher(bcrypt.MinCost)
	_, err := h.Hash(context.Background(), "Aa1!"+strings.Repeat("x", 80))
	assert.True(t, domain.IsValidation(err))
}
