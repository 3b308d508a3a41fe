package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "secreto-de-pruebas"
	testIssuer = "kardex-api"
)

func TestGenerateYParse_RoundTrip(t *testing.T) {
	token, err := Generate(testSecret, "uid-123", "jdoe", "manager", testIssuer, 15)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, username, role, err := Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "uid-123", userID)
	assert.Equal(t, "jdoe", username)
	assert.Equal(t, "manager", role)
}

func TestGenerate_SecretVacioFalla(t *testing.T) {
	_, err := Generate("", "uid-123", "jdoe", "user", testIssuer, 15)
	assert.Error(t, err)
}

func TestParse_FirmaIncorrectaFalla(t *testing.T) {
	token, err := Generate(testSecret, "uid-123", "jdoe", "user", testIssuer, 15)
	require.NoError(t, err)

	_, _, _, err = Parse("otro-secreto", token)
	assert.Error(t, err, "un token firmado con otro secreto no debe validar")
}

func TestParse_TokenExpiradoFalla(t *testing.T) {
	// Expiración negativa: el token nace ya expirado.
	token, err := Generate(testSecret, "uid-123", "jdoe", "user", testIssuer, -5)
	require.NoError(t, err)

	_, _, _, err = Parse(testSecret, token)
	assert.Error(t, err)
}

func TestParse_BasuraFalla(t *testing.T) {
	_, _, _, err := Parse(testSecret, "esto.no.es-un-jwt")
	assert.Error(t, err)
}
