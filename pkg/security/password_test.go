package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("correct horse battery")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.NoError(t, hasher.Compare(hash, "correct horse battery"))
	assert.Error(t, hasher.Compare(hash, "wrong password"))
}

func TestOutOfRangeCostFallsBackToDefault(t *testing.T) {
	hasher := NewBcryptHasher(999)

	hash, err := hasher.Hash("correct horse battery")
	require.NoError(t, err)
	assert.NoError(t, hasher.Compare(hash, "correct horse battery"))
}

func TestHashesAreSalted(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	a, err := hasher.Hash("same password")
	require.NoError(t, err)
	b, err := hasher.Hash("same password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
