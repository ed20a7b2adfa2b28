package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	a := NewAuthService("test-secret")

	token, err := a.GenerateToken(123)
	require.NoError(t, err)

	got, err := a.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(123), got)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	a := NewAuthService("secret-a")
	b := NewAuthService("secret-b")

	token, err := a.GenerateToken(123)
	require.NoError(t, err)

	_, err = b.ParseToken(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	a := NewAuthService("test-secret")

	_, err := a.ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestOwnerContext(t *testing.T) {
	_, ok := OwnerFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithOwner(context.Background(), 9)
	id, ok := OwnerFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(9), id)
}
