package services_test

import (
	"strings"
	"testing"

	"kvauth/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestIsValidPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Abcdef1!", true},
		{"xY9@longerpassword", true},
		{"abcdefg1", false},  // no upper, no special
		{"ABCDEFG1!", false}, // no lower
		{"Abcdefgh!", false}, // no digit
		{"Abcdefg1", false},  // no special
		{"Abcde1!", false},   // seven characters
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			assert.Equal(t, tt.want, services.IsValidPassword(tt.password))
		})
	}
}

func TestIsValidPassword_NoUpperBound(t *testing.T) {
	assert.True(t, services.IsValidPassword("Abcdef1!"+strings.Repeat("x", 200)))
}

func TestHashPassword(t *testing.T) {
	for _, n := range []int{0, 64, 65, 200} {
		password := "Abcdef1!" + strings.Repeat("x", n)
		hash, err := services.HashPassword(password, bcrypt.MinCost)
		require.NoError(t, err)
		assert.NotContains(t, hash, password)
		assert.True(t, services.CheckPassword(hash, password))
		assert.False(t, services.CheckPassword(hash, password+"x"))
	}
	assert.False(t, services.CheckPassword("not-a-hash", "Abcdef1!"))
}
