package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", 24*time.Hour)

	token, expiresAt, err := m.GenerateJWT("507f1f77bcf86cd799439011", "admin@school.org", "admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)

	claims, err := m.ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "507f1f77bcf86cd799439011", claims.UserID)
	assert.Equal(t, "admin@school.org", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseJWTRejects(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	_, err := m.ParseJWT("")
	assert.Error(t, err)

	_, err = m.ParseJWT("not.a.jwt")
	assert.Error(t, err)

	other := NewJWTManager("other", time.Hour)
	token, _, err := other.GenerateJWT("u", "e@x.org", "admin")
	require.NoError(t, err)
	_, err = m.ParseJWT(token)
	assert.Error(t, err)
}

func TestParseJWTExpired(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	issued := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return issued }

	token, _, err := m.GenerateJWT("u", "e@x.org", "admin")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ParseJWT(token)
	assert.Error(t, err)
}
