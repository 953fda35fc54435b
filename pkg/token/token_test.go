package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	svc := NewService("secret", time.Hour)
	id := uuid.New()

	signed, err := svc.Issue(id)
	require.NoError(t, err)

	got, err := svc.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signed, err := NewService("secret-a", time.Hour).Issue(uuid.New())
	require.NoError(t, err)

	_, err = NewService("secret-b", time.Hour).Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	svc := NewService("secret", -time.Minute)
	signed, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := NewService("secret", time.Hour).Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
