package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/asterisk-academy/backend/models"
)

func testUser() models.User {
	return models.User{
		ID:                primitive.NewObjectID(),
		UserName:          "amara",
		Email:             "amara@example.com",
		PasswordChangedAt: time.Now().Add(-time.Hour),
	}
}

func TestJwtRoundTrip(t *testing.T) {
	JWTSecret = "test-secret"
	user := testUser()

	token, err := JwtGenerate(user)
	require.NoError(t, err)

	claims, err := VerifyJwtToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.Email, claims["email"])
	assert.Equal(t, user.UserName, claims["userName"])
	assert.Equal(t, user.ID.Hex(), claims["id"])

	assert.NoError(t, IsTokenValid(claims, user))
}

func TestVerifyJwtTokenStripsBearerPrefix(t *testing.T) {
	JWTSecret = "test-secret"
	token, err := JwtGenerate(testUser())
	require.NoError(t, err)

	claims, err := VerifyJwtToken("Bearer " + token)
	require.NoError(t, err)
	assert.NotEmpty(t, claims["id"])
}

func TestVerifyJwtTokenRejectsWrongSecret(t *testing.T) {
	JWTSecret = "test-secret"
	token, err := JwtGenerate(testUser())
	require.NoError(t, err)

	JWTSecret = "different-secret"
	_, err = VerifyJwtToken(token)
	assert.Error(t, err)
}

func TestIsTokenValidAfterPasswordChange(t *testing.T) {
	JWTSecret = "test-secret"
	user := testUser()

	token, err := JwtGenerate(user)
	require.NoError(t, err)
	claims, err := VerifyJwtToken(token)
	require.NoError(t, err)

	user.PasswordChangedAt = time.Now().Add(time.Hour)
	assert.Error(t, IsTokenValid(claims, user))
}
